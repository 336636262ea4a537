package boltstore

import (
	"context"
	"sort"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

func (s *Store) CreateRate(_ context.Context, rate model.Rate) (*model.Rate, error) {
	now := s.now()
	rate.ID = uuid.New()
	rate.CreatedAt = now
	rate.UpdatedAt = now
	rate.RateStructure = rate.RateStructure.Clone()

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketSubcontractors).Get([]byte(rate.SubcontractorID.String())) == nil {
			return repository.ErrConflict
		}
		return put(tx.Bucket(bucketRates), rate.ID, rate)
	})
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *Store) UpdateRate(_ context.Context, rate model.Rate) (*model.Rate, error) {
	var saved model.Rate
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRates)
		found, err := get(b, rate.ID, &saved)
		if err != nil {
			return err
		}
		if !found {
			return repository.ErrNotFound
		}

		saved.BinSize = rate.BinSize
		saved.ServiceType = rate.ServiceType
		saved.MaterialType = rate.MaterialType
		saved.RateStructure = rate.RateStructure.Clone()
		saved.EffectiveDate = rate.EffectiveDate
		saved.ExpiryDate = rate.ExpiryDate
		saved.Notes = rate.Notes
		saved.UpdatedAt = s.now()
		return put(b, saved.ID, saved)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteRate removes the rate and clears it from the provenance of service
// requests, which keep their applied rate structure.
func (s *Store) DeleteRate(_ context.Context, id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		rates := tx.Bucket(bucketRates)
		if rates.Get([]byte(id.String())) == nil {
			return repository.ErrNotFound
		}

		requests := tx.Bucket(bucketServiceRequests)
		var orphaned []model.ServiceRequest
		err := each(requests, func(req model.ServiceRequest) error {
			if req.RateID != nil && *req.RateID == id {
				orphaned = append(orphaned, req)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, req := range orphaned {
			req.RateID = nil
			if err := put(requests, req.ID, req); err != nil {
				return err
			}
		}

		return rates.Delete([]byte(id.String()))
	})
}

func (s *Store) GetRate(_ context.Context, id uuid.UUID) (*model.Rate, error) {
	var rate model.Rate
	err := s.db.View(func(tx *bolt.Tx) error {
		found, err := get(tx.Bucket(bucketRates), id, &rate)
		if err != nil {
			return err
		}
		if !found {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *Store) ListRates(_ context.Context) ([]model.Rate, error) {
	return s.listRates(func(model.Rate) bool { return true })
}

func (s *Store) ListRatesBySubcontractor(_ context.Context, subcontractorID uuid.UUID) ([]model.Rate, error) {
	return s.listRates(func(rate model.Rate) bool { return rate.SubcontractorID == subcontractorID })
}

func (s *Store) listRates(keep func(model.Rate) bool) ([]model.Rate, error) {
	rates := []model.Rate{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(bucketRates), func(rate model.Rate) error {
			if keep(rate) {
				rates = append(rates, rate)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rates, func(i, j int) bool {
		if !rates[i].EffectiveDate.Equal(rates[j].EffectiveDate) {
			return rates[i].EffectiveDate.After(rates[j].EffectiveDate)
		}
		return rates[i].CreatedAt.After(rates[j].CreatedAt)
	})
	return rates, nil
}
