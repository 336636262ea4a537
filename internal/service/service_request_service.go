package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

type ServiceRequestService struct {
	requests       ServiceRequestRepository
	subcontractors SubcontractorRepository
	rates          RateRepository
	agreements     AgreementGenerator
	company        model.Company
	log            zerolog.Logger
	now            func() time.Time
}

type CreateServiceRequestInput struct {
	Customer             CustomerInput
	SubcontractorID      uuid.UUID
	RateID               *uuid.UUID
	Address              string
	Latitude             float64
	Longitude            float64
	BinSize              int
	ServiceType          model.ServiceType
	MaterialType         model.MaterialType
	ScheduledStart       time.Time
	ScheduledRemoval     *time.Time
	SpecialInstructions  string
	AppliedRateStructure model.RateStructure
}

// PricedServiceRequest is a stored request with the total of its applied
// rate structure.
type PricedServiceRequest struct {
	model.ServiceRequestDetail
	TotalCost decimal.Decimal `json:"totalCost"`
}

func NewServiceRequestService(
	requests ServiceRequestRepository,
	subcontractors SubcontractorRepository,
	rates RateRepository,
	agreements AgreementGenerator,
	company model.Company,
	log zerolog.Logger,
) *ServiceRequestService {
	return &ServiceRequestService{
		requests:       requests,
		subcontractors: subcontractors,
		rates:          rates,
		agreements:     agreements,
		company:        company,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create runs the pricing workflow: the applied rate structure is validated
// before anything is read or written, then the customer is resolved by email
// and the request stored with a private copy of the structure. Customer and
// request are committed together or not at all.
func (s *ServiceRequestService) Create(ctx context.Context, input CreateServiceRequestInput) (uuid.UUID, error) {
	if err := pricing.Validate(input.AppliedRateStructure); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	customer, err := customerFromInput(input.Customer)
	if err != nil {
		return uuid.Nil, err
	}
	if err := validateServiceRequestInput(input); err != nil {
		return uuid.Nil, err
	}

	if _, err := s.subcontractors.GetSubcontractor(ctx, input.SubcontractorID); err != nil {
		return uuid.Nil, translate(err, "subcontractor")
	}
	if input.RateID != nil {
		rate, err := s.rates.GetRate(ctx, *input.RateID)
		if err != nil {
			return uuid.Nil, translate(err, "rate")
		}
		if rate.SubcontractorID != input.SubcontractorID {
			return uuid.Nil, fmt.Errorf("%w: rate does not belong to the subcontractor", ErrInvalidInput)
		}
		if rate.ExpiredAt(s.now()) {
			return uuid.Nil, fmt.Errorf("%w: rate has expired", ErrInvalidInput)
		}
	}

	saved, reused, err := s.requests.CreateServiceRequest(ctx, customer, model.ServiceRequest{
		SubcontractorID:      input.SubcontractorID,
		RateID:               input.RateID,
		Address:              strings.TrimSpace(input.Address),
		Latitude:             input.Latitude,
		Longitude:            input.Longitude,
		BinSize:              input.BinSize,
		ServiceType:          input.ServiceType,
		MaterialType:         input.MaterialType,
		ScheduledStart:       input.ScheduledStart.UTC(),
		ScheduledRemoval:     utcPtr(input.ScheduledRemoval),
		SpecialInstructions:  input.SpecialInstructions,
		AppliedRateStructure: input.AppliedRateStructure.Clone(),
	})
	if err != nil {
		return uuid.Nil, translate(err, "service request references")
	}

	s.log.Info().
		Str("service_request_id", saved.ID.String()).
		Str("customer_id", saved.CustomerID.String()).
		Bool("customer_reused", reused).
		Msg("service request created")

	return saved.ID, nil
}

func (s *ServiceRequestService) Get(ctx context.Context, id uuid.UUID) (*PricedServiceRequest, error) {
	detail, err := s.requests.GetServiceRequest(ctx, id)
	if err != nil {
		return nil, translate(err, "service request")
	}
	priced := price(*detail)
	return &priced, nil
}

func (s *ServiceRequestService) List(ctx context.Context) ([]PricedServiceRequest, error) {
	details, err := s.requests.ListServiceRequests(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]PricedServiceRequest, len(details))
	for i, detail := range details {
		result[i] = price(detail)
	}
	return result, nil
}

// Agreement renders the subcontractor agreement from the frozen applied rate
// structure of the request.
func (s *ServiceRequestService) Agreement(ctx context.Context, id uuid.UUID) (*File, error) {
	detail, err := s.requests.GetServiceRequest(ctx, id)
	if err != nil {
		return nil, translate(err, "service request")
	}

	issuedAt := s.now()
	content, err := s.agreements.Generate(model.Agreement{
		Request:   *detail,
		InvoiceTo: s.company,
		IssuedAt:  issuedAt,
	})
	if err != nil {
		return nil, err
	}

	return &File{
		FileName: fmt.Sprintf("agreement-%s.pdf", detail.ID),
		Content:  content,
	}, nil
}

func price(detail model.ServiceRequestDetail) PricedServiceRequest {
	return PricedServiceRequest{
		ServiceRequestDetail: detail,
		TotalCost:            pricing.CalculateTotalCost(detail.AppliedRateStructure),
	}
}

func validateServiceRequestInput(input CreateServiceRequestInput) error {
	if input.SubcontractorID == uuid.Nil {
		return fmt.Errorf("%w: subcontractorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return err
	}
	if err := validateProfile(model.ServiceProfile{
		BinSize:      input.BinSize,
		ServiceType:  input.ServiceType,
		MaterialType: input.MaterialType,
	}); err != nil {
		return err
	}
	if input.ScheduledStart.IsZero() {
		return fmt.Errorf("%w: scheduledStart is required", ErrInvalidInput)
	}
	if input.ScheduledRemoval != nil && input.ScheduledRemoval.Before(input.ScheduledStart) {
		return fmt.Errorf("%w: scheduledRemoval must not be before scheduledStart", ErrInvalidInput)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
