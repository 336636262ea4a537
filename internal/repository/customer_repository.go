package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrwaste/wastecrm/internal/model"
)

const customerColumns = `
	id,
	name,
	email,
	phone,
	notes,
	created_at,
	updated_at`

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CreateCustomer inserts a customer. A second customer with the same email
// violates uq_customer_email and yields ErrConflict.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	var saved model.Customer
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO customer (name, email, phone, notes)
		VALUES (?, ?, ?, ?)
		RETURNING`+customerColumns,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Notes,
	).Scan(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (r *CustomerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+customerColumns+`
		FROM customer
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&customer).Error
	if err != nil {
		return nil, translateError(err)
	}
	if customer.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &customer, nil
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT` + customerColumns + `
		FROM customer
		ORDER BY name ASC, id ASC
	`).Scan(&customers).Error
	if err != nil {
		return nil, translateError(err)
	}
	return customers, nil
}

// resolveCustomer returns the id of the customer owning customer.Email,
// inserting the customer when there is none. Customers without email are
// always inserted. A concurrent insert of the same email is absorbed by
// ON CONFLICT and a second lookup.
func resolveCustomer(tx *gorm.DB, customer model.Customer) (uuid.UUID, bool, error) {
	var inserted idRow
	if customer.Email == nil {
		err := tx.Raw(`
			INSERT INTO customer (name, email, phone, notes)
			VALUES (?, NULL, ?, ?)
			RETURNING id
		`, customer.Name, customer.Phone, customer.Notes).Scan(&inserted).Error
		return inserted.ID, false, translateError(err)
	}

	id, err := customerIDByEmail(tx, *customer.Email)
	if err != nil {
		return uuid.Nil, false, err
	}
	if id != uuid.Nil {
		return id, true, nil
	}

	err = tx.Raw(`
		INSERT INTO customer (name, email, phone, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) WHERE email IS NOT NULL DO NOTHING
		RETURNING id
	`, customer.Name, *customer.Email, customer.Phone, customer.Notes).Scan(&inserted).Error
	if err != nil {
		return uuid.Nil, false, translateError(err)
	}
	if inserted.ID != uuid.Nil {
		return inserted.ID, false, nil
	}

	id, err = customerIDByEmail(tx, *customer.Email)
	if err != nil {
		return uuid.Nil, false, err
	}
	if id == uuid.Nil {
		return uuid.Nil, false, ErrConflict
	}
	return id, true, nil
}

type idRow struct {
	ID uuid.UUID
}

func customerIDByEmail(tx *gorm.DB, email string) (uuid.UUID, error) {
	var row idRow
	err := tx.Raw(`
		SELECT id
		FROM customer
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&row).Error
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return row.ID, nil
}
