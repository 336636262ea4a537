package boltstore

import (
	"context"
	"sort"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

// CreateCustomer inserts a customer. An email that is already taken yields
// ErrConflict.
func (s *Store) CreateCustomer(_ context.Context, customer model.Customer) (*model.Customer, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if customer.Email != nil && tx.Bucket(bucketCustomerEmails).Get([]byte(*customer.Email)) != nil {
			return repository.ErrConflict
		}
		return s.insertCustomer(tx, &customer)
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Store) GetCustomer(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.View(func(tx *bolt.Tx) error {
		return loadCustomer(tx, id, &customer)
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(bucketCustomers), func(customer model.Customer) error {
			customers = append(customers, customer)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(customers, func(i, j int) bool {
		if customers[i].Name != customers[j].Name {
			return customers[i].Name < customers[j].Name
		}
		return customers[i].ID.String() < customers[j].ID.String()
	})
	return customers, nil
}

func (s *Store) insertCustomer(tx *bolt.Tx, customer *model.Customer) error {
	now := s.now()
	customer.ID = uuid.New()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := put(tx.Bucket(bucketCustomers), customer.ID, customer); err != nil {
		return err
	}
	if customer.Email != nil {
		return tx.Bucket(bucketCustomerEmails).Put([]byte(*customer.Email), []byte(customer.ID.String()))
	}
	return nil
}

// resolveCustomer returns the id of the customer owning customer.Email,
// inserting the customer when there is none.
func (s *Store) resolveCustomer(tx *bolt.Tx, customer model.Customer) (uuid.UUID, bool, error) {
	if customer.Email != nil {
		if raw := tx.Bucket(bucketCustomerEmails).Get([]byte(*customer.Email)); raw != nil {
			id, err := uuid.ParseBytes(raw)
			return id, err == nil, err
		}
	}
	if err := s.insertCustomer(tx, &customer); err != nil {
		return uuid.Nil, false, err
	}
	return customer.ID, false, nil
}

func loadCustomer(tx *bolt.Tx, id uuid.UUID, dest *model.Customer) error {
	found, err := get(tx.Bucket(bucketCustomers), id, dest)
	if err != nil {
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}
