// Package boltstore is an embedded, single-file storage driver. It implements
// the same contracts as the PostgreSQL repositories so the service can run
// without a database server.
//
// BoltDB allows one writer at a time, so every read-then-write sequence done
// inside a single Update transaction is atomic. The customer email dedup relies on this.
package boltstore

import (
	"encoding/json"
	"errors"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
)

var (
	bucketSubcontractors  = []byte("subcontractors")
	bucketRates           = []byte("rates")
	bucketCustomers       = []byte("customers")
	bucketCustomerEmails  = []byte("customer_emails")
	bucketServiceRequests = []byte("service_requests")

	allBuckets = [][]byte{
		bucketSubcontractors,
		bucketRates,
		bucketCustomers,
		bucketCustomerEmails,
		bucketServiceRequests,
	}

	errStopIteration = errors.New("stop iteration")
)

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func put(b *bolt.Bucket, id uuid.UUID, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.Put([]byte(id.String()), data)
}

func get(b *bolt.Bucket, id uuid.UUID, dest interface{}) (bool, error) {
	data := b.Get([]byte(id.String()))
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

// each decodes every value of b into a fresh T and passes it to fn.
func each[T any](b *bolt.Bucket, fn func(T) error) error {
	err := b.ForEach(func(_, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return err
		}
		return fn(item)
	})
	if errors.Is(err, errStopIteration) {
		return nil
	}
	return err
}
