package boltstore

import (
	"context"
	"sort"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/geo"
	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

func (s *Store) CreateSubcontractor(_ context.Context, sub model.Subcontractor) (*model.Subcontractor, error) {
	now := s.now()
	sub.ID = uuid.New()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	err := s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(bucketSubcontractors), sub.ID, sub)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) GetSubcontractor(_ context.Context, id uuid.UUID) (*model.Subcontractor, error) {
	var sub model.Subcontractor
	err := s.db.View(func(tx *bolt.Tx) error {
		found, err := get(tx.Bucket(bucketSubcontractors), id, &sub)
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
	return &sub, nil
}

func (s *Store) ListSubcontractors(_ context.Context) ([]model.Subcontractor, error) {
	return s.listSubcontractors(func(model.Subcontractor) bool { return true })
}

func (s *Store) ListSubcontractorsWithin(_ context.Context, box geo.BoundingBox) ([]model.Subcontractor, error) {
	return s.listSubcontractors(func(sub model.Subcontractor) bool {
		return box.Contains(sub.Latitude, sub.Longitude)
	})
}

func (s *Store) listSubcontractors(keep func(model.Subcontractor) bool) ([]model.Subcontractor, error) {
	subs := []model.Subcontractor{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(bucketSubcontractors), func(sub model.Subcontractor) error {
			if keep(sub) {
				subs = append(subs, sub)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].ID.String() < subs[j].ID.String()
	})
	return subs, nil
}

// DeleteSubcontractor cascades to the subcontractor's rates and refuses with
// ErrConflict while service requests still reference it.
func (s *Store) DeleteSubcontractor(_ context.Context, id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		subs := tx.Bucket(bucketSubcontractors)
		if subs.Get([]byte(id.String())) == nil {
			return repository.ErrNotFound
		}

		referenced := false
		err := each(tx.Bucket(bucketServiceRequests), func(req model.ServiceRequest) error {
			if req.SubcontractorID == id {
				referenced = true
				return errStopIteration
			}
			return nil
		})
		if err != nil {
			return err
		}
		if referenced {
			return repository.ErrConflict
		}

		var rateIDs []uuid.UUID
		rates := tx.Bucket(bucketRates)
		err = each(rates, func(rate model.Rate) error {
			if rate.SubcontractorID == id {
				rateIDs = append(rateIDs, rate.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, rateID := range rateIDs {
			if err := rates.Delete([]byte(rateID.String())); err != nil {
				return err
			}
		}

		return subs.Delete([]byte(id.String()))
	})
}
