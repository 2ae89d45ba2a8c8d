// internal/repository/postgres/migrate.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL CHECK (email = lower(email)),
		password TEXT NOT NULL,
		phone CHAR(11) NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'customer')) DEFAULT 'customer',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id SERIAL PRIMARY KEY,
		vehicle_name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('car', 'bike', 'van', 'SUV')),
		registration_number TEXT UNIQUE NOT NULL,
		daily_rent_price NUMERIC NOT NULL CHECK (daily_rent_price > 0),
		availability_status TEXT NOT NULL CHECK (availability_status IN ('available', 'booked')) DEFAULT 'available',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		reference TEXT UNIQUE NOT NULL,
		customer_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE RESTRICT,
		rent_start_date DATE NOT NULL,
		rent_end_date DATE NOT NULL CHECK (rent_end_date > rent_start_date),
		total_price NUMERIC NOT NULL CHECK (total_price > 0),
		status TEXT NOT NULL CHECK (status IN ('active', 'cancelled', 'returned')),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status_end_date ON bookings (status, rent_end_date)`,
}

// InitSchema creates the tables the service needs. Safe to run on every
// startup.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
