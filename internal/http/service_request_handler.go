package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/service"
)

func (h *Handler) createServiceRequest(c *gin.Context) {
	var req serviceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	subcontractorID, err := uuid.Parse(strings.TrimSpace(req.SubcontractorID))
	if err != nil {
		badRequest(c, "invalid subcontractorId")
		return
	}
	rateID, err := parseOptionalID(req.RateID)
	if err != nil {
		badRequest(c, "invalid rateId")
		return
	}
	scheduledStart, err := parseDate(req.ScheduledStart)
	if err != nil && strings.TrimSpace(req.ScheduledStart) != "" {
		badRequest(c, "invalid scheduledStart")
		return
	}
	scheduledRemoval, err := parseOptionalDate(req.ScheduledRemoval)
	if err != nil {
		badRequest(c, "invalid scheduledRemoval")
		return
	}

	id, err := h.requests.Create(c.Request.Context(), service.CreateServiceRequestInput{
		Customer: service.CustomerInput{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
			Notes: req.Customer.Notes,
		},
		SubcontractorID:      subcontractorID,
		RateID:               rateID,
		Address:              req.Address,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		BinSize:              req.BinSize,
		ServiceType:          serviceType(req.ServiceType),
		MaterialType:         materialType(req.MaterialType),
		ScheduledStart:       scheduledStart,
		ScheduledRemoval:     scheduledRemoval,
		SpecialInstructions:  req.SpecialInstructions,
		AppliedRateStructure: req.AppliedRateStructure.toModel(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"serviceRequestId": id})
}

func (h *Handler) listServiceRequests(c *gin.Context) {
	requests, err := h.requests.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

func (h *Handler) getServiceRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	request, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) agreement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := h.requests.Agreement(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypePDF, file)
}
