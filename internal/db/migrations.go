package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS motos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		year INTEGER NOT NULL,
		model VARCHAR(100) NOT NULL,
		plate VARCHAR(7) NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_motos_plate_active ON motos (plate) WHERE deleted = FALSE;`,
	`CREATE TABLE IF NOT EXISTS delivery_persons (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		cnpj VARCHAR(14) NOT NULL,
		birth_date DATE NOT NULL,
		cnh_number VARCHAR(11) NOT NULL,
		cnh_type VARCHAR(4) NOT NULL,
		cnh_image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_delivery_persons_cnpj ON delivery_persons (cnpj);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_delivery_persons_cnh_number ON delivery_persons (cnh_number);`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		moto_id UUID NOT NULL REFERENCES motos(id),
		delivery_person_id UUID NOT NULL REFERENCES delivery_persons(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		plan_type INTEGER NOT NULL CHECK (plan_type IN (7, 15, 30, 45, 50)),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date - start_date = plan_type)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_rentals_moto_id ON rentals (moto_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rentals_delivery_person_id ON rentals (delivery_person_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
