package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_type') THEN
			CREATE TYPE service_type AS ENUM ('rolloff', 'frontend');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'material_type') THEN
			CREATE TYPE material_type AS ENUM ('waste', 'recycling', 'concrete', 'dirt', 'mixed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS subcontractor (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(256) NOT NULL,
		contact VARCHAR(256) NOT NULL DEFAULT '',
		phone VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(256) NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		latitude NUMERIC(10,6) NOT NULL,
		longitude NUMERIC(10,6) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_subcontractor_location ON subcontractor (latitude, longitude);`,
	`CREATE TABLE IF NOT EXISTS customer (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(256) NOT NULL,
		email VARCHAR(256),
		phone VARCHAR(20) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_customer_email ON customer (email) WHERE email IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS rate (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		subcontractor_id UUID NOT NULL REFERENCES subcontractor(id) ON DELETE CASCADE,
		bin_size INTEGER NOT NULL CHECK (bin_size > 0),
		service_type service_type NOT NULL,
		material_type material_type NOT NULL,
		rate_structure JSONB NOT NULL,
		effective_date TIMESTAMPTZ NOT NULL,
		expiry_date TIMESTAMPTZ,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_rate_subcontractor_id ON rate (subcontractor_id);`,
	`CREATE TABLE IF NOT EXISTS service_request (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL REFERENCES customer(id),
		subcontractor_id UUID NOT NULL REFERENCES subcontractor(id),
		rate_id UUID REFERENCES rate(id) ON DELETE SET NULL,
		address TEXT NOT NULL,
		latitude NUMERIC(10,6) NOT NULL,
		longitude NUMERIC(10,6) NOT NULL,
		bin_size INTEGER NOT NULL CHECK (bin_size > 0),
		service_type service_type NOT NULL,
		material_type material_type NOT NULL,
		scheduled_start TIMESTAMPTZ NOT NULL,
		scheduled_removal TIMESTAMPTZ,
		special_instructions TEXT NOT NULL DEFAULT '',
		applied_rate_structure JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_request_customer_id ON service_request (customer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_request_subcontractor_id ON service_request (subcontractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_request_created_at ON service_request (created_at DESC);`,
}

// Migrate applies the schema statements in order. Every statement is idempotent.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
