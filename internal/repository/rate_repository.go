package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrwaste/wastecrm/internal/model"
)

const rateColumns = `
	id,
	subcontractor_id,
	bin_size,
	service_type,
	material_type,
	rate_structure,
	effective_date,
	expiry_date,
	notes,
	created_at,
	updated_at`

type rateRow struct {
	ID              uuid.UUID
	SubcontractorID uuid.UUID
	BinSize         int
	ServiceType     string
	MaterialType    string
	RateStructure   datatypes.JSONType[model.RateStructure]
	EffectiveDate   time.Time
	ExpiryDate      *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (row rateRow) toModel() model.Rate {
	return model.Rate{
		ID:              row.ID,
		SubcontractorID: row.SubcontractorID,
		BinSize:         row.BinSize,
		ServiceType:     model.ServiceType(row.ServiceType),
		MaterialType:    model.MaterialType(row.MaterialType),
		RateStructure:   row.RateStructure.Data(),
		EffectiveDate:   row.EffectiveDate,
		ExpiryDate:      row.ExpiryDate,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func ratesFromRows(rows []rateRow) []model.Rate {
	rates := make([]model.Rate, len(rows))
	for i, row := range rows {
		rates[i] = row.toModel()
	}
	return rates
}

type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

func (r *RateRepository) CreateRate(ctx context.Context, rate model.Rate) (*model.Rate, error) {
	var row rateRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO rate (
			subcontractor_id,
			bin_size,
			service_type,
			material_type,
			rate_structure,
			effective_date,
			expiry_date,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+rateColumns,
		rate.SubcontractorID,
		rate.BinSize,
		rate.ServiceType,
		rate.MaterialType,
		datatypes.NewJSONType(rate.RateStructure),
		rate.EffectiveDate,
		rate.ExpiryDate,
		rate.Notes,
	).Scan(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	saved := row.toModel()
	return &saved, nil
}

// UpdateRate replaces every editable field of the rate. The owning
// subcontractor never changes.
func (r *RateRepository) UpdateRate(ctx context.Context, rate model.Rate) (*model.Rate, error) {
	var row rateRow
	err := r.db.WithContext(ctx).Raw(`
		UPDATE rate
		SET
			bin_size = ?,
			service_type = ?,
			material_type = ?,
			rate_structure = ?,
			effective_date = ?,
			expiry_date = ?,
			notes = ?,
			updated_at = NOW()
		WHERE id = ?
		RETURNING`+rateColumns,
		rate.BinSize,
		rate.ServiceType,
		rate.MaterialType,
		datatypes.NewJSONType(rate.RateStructure),
		rate.EffectiveDate,
		rate.ExpiryDate,
		rate.Notes,
		rate.ID,
	).Scan(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	saved := row.toModel()
	return &saved, nil
}

func (r *RateRepository) DeleteRate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM rate WHERE id = ?`, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RateRepository) GetRate(ctx context.Context, id uuid.UUID) (*model.Rate, error) {
	var row rateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+rateColumns+`
		FROM rate
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	rate := row.toModel()
	return &rate, nil
}

func (r *RateRepository) ListRates(ctx context.Context) ([]model.Rate, error) {
	var rows []rateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT` + rateColumns + `
		FROM rate
		ORDER BY effective_date DESC, created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ratesFromRows(rows), nil
}

func (r *RateRepository) ListRatesBySubcontractor(ctx context.Context, subcontractorID uuid.UUID) ([]model.Rate, error) {
	var rows []rateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+rateColumns+`
		FROM rate
		WHERE subcontractor_id = ?
		ORDER BY effective_date DESC, created_at DESC
	`, subcontractorID).Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ratesFromRows(rows), nil
}
