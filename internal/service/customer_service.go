package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
)

type CustomerService struct {
	customers CustomerRepository
	requests  ServiceRequestRepository
}

type CustomerInput struct {
	Name  string
	Email *string
	Phone string
	Notes string
}

func NewCustomerService(customers CustomerRepository, requests ServiceRequestRepository) *CustomerService {
	return &CustomerService{customers: customers, requests: requests}
}

// Create inserts a customer. An email already on file yields ErrConflict;
// the service request workflow reuses such customers instead.
func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*model.Customer, error) {
	customer, err := customerFromInput(input)
	if err != nil {
		return nil, err
	}
	saved, err := s.customers.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, translate(err, "customer email already exists")
	}
	return saved, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, translate(err, "customer")
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.customers.ListCustomers(ctx)
}

func (s *CustomerService) ListServiceRequests(ctx context.Context, customerID uuid.UUID) ([]model.ServiceRequest, error) {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		return nil, translate(err, "customer")
	}
	return s.requests.ListServiceRequestsByCustomer(ctx, customerID)
}

func customerFromInput(input CustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Customer{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	email := normalizeEmail(input.Email)
	if email != nil && !strings.Contains(*email, "@") {
		return model.Customer{}, fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}
	return model.Customer{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(input.Phone),
		Notes: input.Notes,
	}, nil
}
