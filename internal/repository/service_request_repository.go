package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrwaste/wastecrm/internal/model"
)

const serviceRequestColumns = `
	sr.id,
	sr.customer_id,
	sr.subcontractor_id,
	sr.rate_id,
	sr.address,
	sr.latitude,
	sr.longitude,
	sr.bin_size,
	sr.service_type,
	sr.material_type,
	sr.scheduled_start,
	sr.scheduled_removal,
	sr.special_instructions,
	sr.applied_rate_structure,
	sr.created_at`

const serviceRequestDetailQuery = `
	SELECT` + serviceRequestColumns + `,
		c.name AS customer_name,
		c.email AS customer_email,
		c.phone AS customer_phone,
		c.notes AS customer_notes,
		c.created_at AS customer_created_at,
		c.updated_at AS customer_updated_at,
		s.name AS subcontractor_name,
		s.contact AS subcontractor_contact,
		s.phone AS subcontractor_phone,
		s.email AS subcontractor_email,
		s.location AS subcontractor_location,
		s.latitude AS subcontractor_latitude,
		s.longitude AS subcontractor_longitude,
		s.notes AS subcontractor_notes,
		s.created_at AS subcontractor_created_at,
		s.updated_at AS subcontractor_updated_at
	FROM service_request sr
	JOIN customer c ON c.id = sr.customer_id
	JOIN subcontractor s ON s.id = sr.subcontractor_id
`

type serviceRequestRow struct {
	ID                   uuid.UUID
	CustomerID           uuid.UUID
	SubcontractorID      uuid.UUID
	RateID               *uuid.UUID
	Address              string
	Latitude             float64
	Longitude            float64
	BinSize              int
	ServiceType          string
	MaterialType         string
	ScheduledStart       time.Time
	ScheduledRemoval     *time.Time
	SpecialInstructions  string
	AppliedRateStructure datatypes.JSONType[model.RateStructure]
	CreatedAt            time.Time
}

func (row serviceRequestRow) toModel() model.ServiceRequest {
	return model.ServiceRequest{
		ID:                   row.ID,
		CustomerID:           row.CustomerID,
		SubcontractorID:      row.SubcontractorID,
		RateID:               row.RateID,
		Address:              row.Address,
		Latitude:             row.Latitude,
		Longitude:            row.Longitude,
		BinSize:              row.BinSize,
		ServiceType:          model.ServiceType(row.ServiceType),
		MaterialType:         model.MaterialType(row.MaterialType),
		ScheduledStart:       row.ScheduledStart,
		ScheduledRemoval:     row.ScheduledRemoval,
		SpecialInstructions:  row.SpecialInstructions,
		AppliedRateStructure: row.AppliedRateStructure.Data(),
		CreatedAt:            row.CreatedAt,
	}
}

type serviceRequestDetailRow struct {
	Request                serviceRequestRow `gorm:"embedded"`
	CustomerName           string
	CustomerEmail          *string
	CustomerPhone          string
	CustomerNotes          string
	CustomerCreatedAt      time.Time
	CustomerUpdatedAt      time.Time
	SubcontractorName      string
	SubcontractorContact   string
	SubcontractorPhone     string
	SubcontractorEmail     string
	SubcontractorLocation  string
	SubcontractorLatitude  float64
	SubcontractorLongitude float64
	SubcontractorNotes     string
	SubcontractorCreatedAt time.Time
	SubcontractorUpdatedAt time.Time
}

func (row serviceRequestDetailRow) toModel() model.ServiceRequestDetail {
	return model.ServiceRequestDetail{
		ServiceRequest: row.Request.toModel(),
		Customer: model.Customer{
			ID:        row.Request.CustomerID,
			Name:      row.CustomerName,
			Email:     row.CustomerEmail,
			Phone:     row.CustomerPhone,
			Notes:     row.CustomerNotes,
			CreatedAt: row.CustomerCreatedAt,
			UpdatedAt: row.CustomerUpdatedAt,
		},
		Subcontractor: model.Subcontractor{
			ID:        row.Request.SubcontractorID,
			Name:      row.SubcontractorName,
			Contact:   row.SubcontractorContact,
			Phone:     row.SubcontractorPhone,
			Email:     row.SubcontractorEmail,
			Location:  row.SubcontractorLocation,
			Latitude:  row.SubcontractorLatitude,
			Longitude: row.SubcontractorLongitude,
			Notes:     row.SubcontractorNotes,
			CreatedAt: row.SubcontractorCreatedAt,
			UpdatedAt: row.SubcontractorUpdatedAt,
		},
	}
}

type ServiceRequestRepository struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

// CreateServiceRequest resolves or creates the customer and inserts the
// request in a single transaction; either both are committed or neither.
func (r *ServiceRequestRepository) CreateServiceRequest(
	ctx context.Context,
	customer model.Customer,
	req model.ServiceRequest,
) (*model.ServiceRequest, bool, error) {
	var (
		row            serviceRequestRow
		customerReused bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customerID, reused, err := resolveCustomer(tx, customer)
		if err != nil {
			return err
		}
		customerReused = reused

		err = tx.Raw(`
			INSERT INTO service_request AS sr (
				customer_id,
				subcontractor_id,
				rate_id,
				address,
				latitude,
				longitude,
				bin_size,
				service_type,
				material_type,
				scheduled_start,
				scheduled_removal,
				special_instructions,
				applied_rate_structure
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING`+serviceRequestColumns,
			customerID,
			req.SubcontractorID,
			req.RateID,
			req.Address,
			req.Latitude,
			req.Longitude,
			req.BinSize,
			req.ServiceType,
			req.MaterialType,
			req.ScheduledStart,
			req.ScheduledRemoval,
			req.SpecialInstructions,
			datatypes.NewJSONType(req.AppliedRateStructure),
		).Scan(&row).Error
		return translateError(err)
	})
	if err != nil {
		return nil, false, err
	}
	saved := row.toModel()
	return &saved, customerReused, nil
}

func (r *ServiceRequestRepository) GetServiceRequest(ctx context.Context, id uuid.UUID) (*model.ServiceRequestDetail, error) {
	var row serviceRequestDetailRow
	err := r.db.WithContext(ctx).Raw(serviceRequestDetailQuery+`
		WHERE sr.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	if row.Request.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	detail := row.toModel()
	return &detail, nil
}

func (r *ServiceRequestRepository) ListServiceRequests(ctx context.Context) ([]model.ServiceRequestDetail, error) {
	var rows []serviceRequestDetailRow
	err := r.db.WithContext(ctx).Raw(serviceRequestDetailQuery + `
		ORDER BY sr.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	details := make([]model.ServiceRequestDetail, len(rows))
	for i, row := range rows {
		details[i] = row.toModel()
	}
	return details, nil
}

func (r *ServiceRequestRepository) ListServiceRequestsByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.ServiceRequest, error) {
	var rows []serviceRequestRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+serviceRequestColumns+`
		FROM service_request sr
		WHERE sr.customer_id = ?
		ORDER BY sr.created_at DESC
	`, customerID).Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	requests := make([]model.ServiceRequest, len(rows))
	for i, row := range rows {
		requests[i] = row.toModel()
	}
	return requests, nil
}
