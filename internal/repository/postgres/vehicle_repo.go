// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleColumns = `id, vehicle_name, type, registration_number, daily_rent_price, availability_status, is_active, created_at, updated_at`

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create inserts a new vehicle, available by default. A duplicate
// registration number maps to ErrConflict.
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (vehicle_name, type, registration_number, daily_rent_price, availability_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, availability_status, is_active, created_at, updated_at
	`

	if v.Availability == "" {
		v.Availability = vehicle.AvailabilityAvailable
	}

	err := r.db.QueryRow(ctx, query, v.Name, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.Availability).
		Scan(&v.ID, &v.Availability, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return xerrors.Wrap(xerrors.ErrConflict, "registration number already in use")
	}
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)
	return scanVehicle(r.db.QueryRow(ctx, query, id))
}

func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles ORDER BY id ASC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.Availability, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Update applies the non-nil fields of req.
func (r *VehicleRepository) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	updates := []string{}
	values := []interface{}{}
	idx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("vehicle_name = $%d", idx))
		values = append(values, *req.Name)
		idx++
	}
	if req.Type != nil {
		updates = append(updates, fmt.Sprintf("type = $%d", idx))
		values = append(values, *req.Type)
		idx++
	}
	if req.RegistrationNumber != nil {
		updates = append(updates, fmt.Sprintf("registration_number = $%d", idx))
		values = append(values, *req.RegistrationNumber)
		idx++
	}
	if req.DailyRentPrice != nil {
		updates = append(updates, fmt.Sprintf("daily_rent_price = $%d", idx))
		values = append(values, *req.DailyRentPrice)
		idx++
	}
	if req.Availability != nil {
		updates = append(updates, fmt.Sprintf("availability_status = $%d", idx))
		values = append(values, *req.Availability)
		idx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", idx))
		values = append(values, *req.IsActive)
		idx++
	}

	if len(updates) == 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	values = append(values, id)

	query := fmt.Sprintf(`
		UPDATE vehicles
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(updates, ", "), idx, vehicleColumns)

	v, err := scanVehicle(r.db.QueryRow(ctx, query, values...))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "registration number already in use")
	}
	return v, err
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// HasActiveBooking reports whether an active booking references the vehicle.
func (r *VehicleRepository) HasActiveBooking(ctx context.Context, vehicleID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vehicle_id = $1 AND status = 'active'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, vehicleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active bookings: %w", err)
	}
	return exists, nil
}

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.Availability, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}
