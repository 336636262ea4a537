package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrwaste/wastecrm/internal/service"
)

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), service.CustomerInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) listCustomerServiceRequests(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	requests, err := h.customers.ListServiceRequests(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}
