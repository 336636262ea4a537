package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrwaste/wastecrm/internal/service"
)

func (h *Handler) listSubcontractors(c *gin.Context) {
	subs, err := h.subcontractors.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs})
}

func (h *Handler) createSubcontractor(c *gin.Context) {
	var req subcontractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sub, err := h.subcontractors.Create(c.Request.Context(), service.SubcontractorInput{
		Name:      req.Name,
		Contact:   req.Contact,
		Phone:     req.Phone,
		Email:     req.Email,
		Location:  req.Location,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) getSubcontractor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sub, err := h.subcontractors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) deleteSubcontractor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.subcontractors.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) nearbySubcontractors(c *gin.Context) {
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		badRequest(c, "invalid latitude")
		return
	}
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		badRequest(c, "invalid longitude")
		return
	}
	profile, ok := profileQuery(c)
	if !ok {
		return
	}

	nearby, err := h.subcontractors.NearbyWithRates(c.Request.Context(), service.NearbyQuery{
		Latitude:  latitude,
		Longitude: longitude,
		Requested: profile,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": nearby})
}
