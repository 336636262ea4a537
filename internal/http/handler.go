package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrwaste/wastecrm/internal/pricing"
	"github.com/mrwaste/wastecrm/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type Handler struct {
	subcontractors *service.SubcontractorService
	rates          *service.RateService
	customers      *service.CustomerService
	requests       *service.ServiceRequestService
	log            zerolog.Logger
}

func NewHandler(
	subcontractors *service.SubcontractorService,
	rates *service.RateService,
	customers *service.CustomerService,
	requests *service.ServiceRequestService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		subcontractors: subcontractors,
		rates:          rates,
		customers:      customers,
		requests:       requests,
		log:            log,
	}
}

// Register mounts every route behind authMiddleware. Deletes additionally
// require adminOnly.
func (h *Handler) Register(router *gin.Engine, authMiddleware, adminOnly gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/quotes", h.quote)

	protected.GET("/subcontractors", h.listSubcontractors)
	protected.POST("/subcontractors", h.createSubcontractor)
	protected.GET("/subcontractors/nearby", h.nearbySubcontractors)
	protected.GET("/subcontractors/:id", h.getSubcontractor)
	protected.DELETE("/subcontractors/:id", adminOnly, h.deleteSubcontractor)
	protected.GET("/subcontractors/:id/rates", h.listSubcontractorRates)
	protected.GET("/subcontractors/:id/rates/export", h.exportRates)

	protected.GET("/rates", h.listRates)
	protected.POST("/rates", h.createRate)
	protected.GET("/rates/:id", h.getRate)
	protected.PUT("/rates/:id", h.updateRate)
	protected.DELETE("/rates/:id", adminOnly, h.deleteRate)

	protected.GET("/customers", h.listCustomers)
	protected.POST("/customers", h.createCustomer)
	protected.GET("/customers/:id", h.getCustomer)
	protected.GET("/customers/:id/service-requests", h.listCustomerServiceRequests)

	protected.GET("/service-requests", h.listServiceRequests)
	protected.POST("/service-requests", h.createServiceRequest)
	protected.GET("/service-requests/:id", h.getServiceRequest)
	protected.GET("/service-requests/:id/agreement.pdf", h.agreement)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var violations *pricing.ValidationError
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "violations": violations.Violations})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func sendFile(c *gin.Context, contentType string, file *service.File) {
	c.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	c.Data(http.StatusOK, contentType, file.Content)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &id, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
