package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrwaste/wastecrm/internal/geo"
	"github.com/mrwaste/wastecrm/internal/model"
)

const subcontractorColumns = `
	id,
	name,
	contact,
	phone,
	email,
	location,
	latitude,
	longitude,
	notes,
	created_at,
	updated_at`

type SubcontractorRepository struct {
	db *gorm.DB
}

func NewSubcontractorRepository(db *gorm.DB) *SubcontractorRepository {
	return &SubcontractorRepository{db: db}
}

func (r *SubcontractorRepository) CreateSubcontractor(ctx context.Context, sub model.Subcontractor) (*model.Subcontractor, error) {
	var saved model.Subcontractor
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO subcontractor (
			name,
			contact,
			phone,
			email,
			location,
			latitude,
			longitude,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+subcontractorColumns,
		sub.Name,
		sub.Contact,
		sub.Phone,
		sub.Email,
		sub.Location,
		sub.Latitude,
		sub.Longitude,
		sub.Notes,
	).Scan(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (r *SubcontractorRepository) GetSubcontractor(ctx context.Context, id uuid.UUID) (*model.Subcontractor, error) {
	var sub model.Subcontractor
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+subcontractorColumns+`
		FROM subcontractor
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&sub).Error
	if err != nil {
		return nil, translateError(err)
	}
	if sub.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (r *SubcontractorRepository) ListSubcontractors(ctx context.Context) ([]model.Subcontractor, error) {
	subs := []model.Subcontractor{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT` + subcontractorColumns + `
		FROM subcontractor
		ORDER BY name ASC, id ASC
	`).Scan(&subs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return subs, nil
}

func (r *SubcontractorRepository) ListSubcontractorsWithin(ctx context.Context, box geo.BoundingBox) ([]model.Subcontractor, error) {
	subs := []model.Subcontractor{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+subcontractorColumns+`
		FROM subcontractor
		WHERE latitude BETWEEN ? AND ?
			AND longitude BETWEEN ? AND ?
		ORDER BY name ASC, id ASC
	`, box.MinLatitude, box.MaxLatitude, box.MinLongitude, box.MaxLongitude).Scan(&subs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return subs, nil
}

// DeleteSubcontractor removes the subcontractor and, through the foreign key,
// all of its rates. Service requests keep it alive: deletion then fails with ErrConflict.
func (r *SubcontractorRepository) DeleteSubcontractor(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM subcontractor WHERE id = ?`, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
