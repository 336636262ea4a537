package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/service"
)

func (h *Handler) quote(c *gin.Context) {
	var req rateStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	breakdown, err := h.rates.Quote(req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *Handler) listRates(c *gin.Context) {
	rates, err := h.rates.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rates})
}

func (h *Handler) getRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rate, err := h.rates.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (h *Handler) createRate(c *gin.Context) {
	input, ok := bindRate(c)
	if !ok {
		return
	}
	rate, err := h.rates.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

func (h *Handler) updateRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	input, ok := bindRate(c)
	if !ok {
		return
	}
	rate, err := h.rates.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (h *Handler) deleteRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rates.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listSubcontractorRates returns the raw catalogue, or the ranked selection
// when the query names a bin size, service type and material type.
func (h *Handler) listSubcontractorRates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if c.Query("binSize") == "" && c.Query("serviceType") == "" && c.Query("materialType") == "" {
		rates, err := h.rates.ListBySubcontractor(c.Request.Context(), id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rates})
		return
	}

	profile, ok := profileQuery(c)
	if !ok {
		return
	}
	ranked, err := h.rates.Rank(c.Request.Context(), id, profile)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ranked})
}

func (h *Handler) exportRates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := h.rates.ExportRateSheet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypeXLSX, file)
}

func bindRate(c *gin.Context) (service.RateInput, bool) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return service.RateInput{}, false
	}

	var subcontractorID uuid.UUID
	if raw := strings.TrimSpace(req.SubcontractorID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid subcontractorId")
			return service.RateInput{}, false
		}
		subcontractorID = parsed
	}

	// A missing effectiveDate is reported by the service; only garbage is rejected here.
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil && strings.TrimSpace(req.EffectiveDate) != "" {
		badRequest(c, "invalid effectiveDate")
		return service.RateInput{}, false
	}
	expiryDate, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		badRequest(c, "invalid expiryDate")
		return service.RateInput{}, false
	}

	return service.RateInput{
		SubcontractorID: subcontractorID,
		BinSize:         req.BinSize,
		ServiceType:     serviceType(req.ServiceType),
		MaterialType:    materialType(req.MaterialType),
		RateStructure:   req.RateStructure.toModel(),
		EffectiveDate:   effectiveDate,
		ExpiryDate:      expiryDate,
		Notes:           req.Notes,
	}, true
}

func profileQuery(c *gin.Context) (model.ServiceProfile, bool) {
	binSize, err := strconv.Atoi(c.Query("binSize"))
	if err != nil {
		badRequest(c, "invalid binSize")
		return model.ServiceProfile{}, false
	}
	return model.ServiceProfile{
		BinSize:      binSize,
		ServiceType:  serviceType(c.Query("serviceType")),
		MaterialType: materialType(c.Query("materialType")),
	}, true
}
