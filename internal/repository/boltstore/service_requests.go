package boltstore

import (
	"context"
	"sort"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

// CreateServiceRequest resolves or creates the customer and stores the
// request in one write transaction. The bool reports whether an existing
// customer was reused.
func (s *Store) CreateServiceRequest(
	_ context.Context,
	customer model.Customer,
	req model.ServiceRequest,
) (*model.ServiceRequest, bool, error) {
	var reused bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSubcontractors).Get([]byte(req.SubcontractorID.String())) == nil {
			return repository.ErrConflict
		}
		if req.RateID != nil && tx.Bucket(bucketRates).Get([]byte(req.RateID.String())) == nil {
			return repository.ErrConflict
		}

		customerID, customerReused, err := s.resolveCustomer(tx, customer)
		if err != nil {
			return err
		}
		reused = customerReused

		req.ID = uuid.New()
		req.CustomerID = customerID
		req.CreatedAt = s.now()
		req.AppliedRateStructure = req.AppliedRateStructure.Clone()
		return put(tx.Bucket(bucketServiceRequests), req.ID, req)
	})
	if err != nil {
		return nil, false, err
	}
	return &req, reused, nil
}

func (s *Store) GetServiceRequest(_ context.Context, id uuid.UUID) (*model.ServiceRequestDetail, error) {
	var detail model.ServiceRequestDetail
	err := s.db.View(func(tx *bolt.Tx) error {
		var req model.ServiceRequest
		found, err := get(tx.Bucket(bucketServiceRequests), id, &req)
		if err != nil {
			return err
		}
		if !found {
			return repository.ErrNotFound
		}
		detail, err = withParties(tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Store) ListServiceRequests(_ context.Context) ([]model.ServiceRequestDetail, error) {
	details := []model.ServiceRequestDetail{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(bucketServiceRequests), func(req model.ServiceRequest) error {
			detail, err := withParties(tx, req)
			if err != nil {
				return err
			}
			details = append(details, detail)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})
	return details, nil
}

func (s *Store) ListServiceRequestsByCustomer(_ context.Context, customerID uuid.UUID) ([]model.ServiceRequest, error) {
	requests := []model.ServiceRequest{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(bucketServiceRequests), func(req model.ServiceRequest) error {
			if req.CustomerID == customerID {
				requests = append(requests, req)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func withParties(tx *bolt.Tx, req model.ServiceRequest) (model.ServiceRequestDetail, error) {
	detail := model.ServiceRequestDetail{ServiceRequest: req}
	if err := loadCustomer(tx, req.CustomerID, &detail.Customer); err != nil {
		return detail, err
	}
	found, err := get(tx.Bucket(bucketSubcontractors), req.SubcontractorID, &detail.Subcontractor)
	if err != nil {
		return detail, err
	}
	if !found {
		return detail, repository.ErrNotFound
	}
	return detail, nil
}
