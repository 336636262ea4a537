package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/geo"
	"github.com/mrwaste/wastecrm/internal/model"
)

// The repository contracts are satisfied by the PostgreSQL repositories and by
// the BoltDB store alike. Lookups of unknown ids return repository.ErrNotFound.

type SubcontractorRepository interface {
	CreateSubcontractor(ctx context.Context, sub model.Subcontractor) (*model.Subcontractor, error)
	GetSubcontractor(ctx context.Context, id uuid.UUID) (*model.Subcontractor, error)
	ListSubcontractors(ctx context.Context) ([]model.Subcontractor, error)
	ListSubcontractorsWithin(ctx context.Context, box geo.BoundingBox) ([]model.Subcontractor, error)
	DeleteSubcontractor(ctx context.Context, id uuid.UUID) error
}

type RateRepository interface {
	CreateRate(ctx context.Context, rate model.Rate) (*model.Rate, error)
	UpdateRate(ctx context.Context, rate model.Rate) (*model.Rate, error)
	DeleteRate(ctx context.Context, id uuid.UUID) error
	GetRate(ctx context.Context, id uuid.UUID) (*model.Rate, error)
	ListRates(ctx context.Context) ([]model.Rate, error)
	ListRatesBySubcontractor(ctx context.Context, subcontractorID uuid.UUID) ([]model.Rate, error)
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

type ServiceRequestRepository interface {
	// CreateServiceRequest resolves the customer by email (creating it when
	// unknown) and stores the request atomically. The bool reports reuse.
	CreateServiceRequest(ctx context.Context, customer model.Customer, req model.ServiceRequest) (*model.ServiceRequest, bool, error)
	GetServiceRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestDetail, error)
	ListServiceRequests(ctx context.Context) ([]model.ServiceRequestDetail, error)
	ListServiceRequestsByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.ServiceRequest, error)
}

type AgreementGenerator interface {
	Generate(agreement model.Agreement) ([]byte, error)
}

type RateSheetGenerator interface {
	Generate(sheet model.RateSheet) ([]byte, error)
}

// File is a generated document ready to be served.
type File struct {
	FileName string
	Content  []byte
}
