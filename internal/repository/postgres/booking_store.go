// internal/repository/postgres/booking_store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentorio-service/internal/domain/booking"
	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, reference, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at`

// BookingStore implements booking.Store on PostgreSQL. All row locks are
// plain SELECT ... FOR UPDATE inside one pgx transaction.
type BookingStore struct {
	db *pgxpool.Pool
}

func NewBookingStore(db *pgxpool.Pool) *BookingStore {
	return &BookingStore{db: db}
}

// RunInTx executes fn inside one transaction. The deferred rollback makes
// every error and panic path leave the store untouched; Commit makes the
// rollback a no-op.
func (s *BookingStore) RunInTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *BookingStore) ListForAdmin(ctx context.Context) ([]booking.AdminView, error) {
	query := `
		SELECT
			b.id, b.reference, b.customer_id, b.vehicle_id,
			b.rent_start_date, b.rent_end_date, b.total_price, b.status,
			b.created_at, b.updated_at,
			u.name, u.email,
			v.vehicle_name, v.registration_number
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		JOIN vehicles v ON b.vehicle_id = v.id
		ORDER BY b.id ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var views []booking.AdminView
	for rows.Next() {
		var v booking.AdminView
		if err := rows.Scan(
			&v.ID, &v.Reference, &v.CustomerID, &v.VehicleID,
			&v.RentStartDate, &v.RentEndDate, &v.TotalPrice, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
			&v.CustomerName, &v.CustomerEmail,
			&v.VehicleName, &v.VehicleRegistration,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (s *BookingStore) ListForCustomer(ctx context.Context, customerID int64) ([]booking.CustomerView, error) {
	query := `
		SELECT
			b.id, b.reference, b.customer_id, b.vehicle_id,
			b.rent_start_date, b.rent_end_date, b.total_price, b.status,
			b.created_at, b.updated_at,
			v.vehicle_name, v.registration_number, v.type
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		WHERE b.customer_id = $1
		ORDER BY b.id ASC
	`

	rows, err := s.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	defer rows.Close()

	var views []booking.CustomerView
	for rows.Next() {
		var v booking.CustomerView
		if err := rows.Scan(
			&v.ID, &v.Reference, &v.CustomerID, &v.VehicleID,
			&v.RentStartDate, &v.RentEndDate, &v.TotalPrice, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
			&v.VehicleName, &v.VehicleRegistration, &v.VehicleType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// bookingTx adapts one pgx.Tx to booking.Tx.
type bookingTx struct {
	tx pgx.Tx
}

func (t *bookingTx) VehicleForUpdate(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1 FOR UPDATE`, vehicleColumns)
	return scanVehicle(t.tx.QueryRow(ctx, query, vehicleID))
}

func (t *bookingTx) BookingForUpdate(ctx context.Context, bookingID int64) (*booking.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)
	return scanBooking(t.tx.QueryRow(ctx, query, bookingID))
}

func (t *bookingTx) InsertBooking(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (reference, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRow(ctx, query,
		b.Reference, b.CustomerID, b.VehicleID,
		b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (t *bookingTx) UpdateBookingStatus(ctx context.Context, bookingID int64, status booking.Status) (*booking.Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, bookingColumns)

	return scanBooking(t.tx.QueryRow(ctx, query, status, bookingID))
}

func (t *bookingTx) SetVehicleAvailability(ctx context.Context, vehicleID int64, a vehicle.Availability) error {
	query := `
		UPDATE vehicles
		SET availability_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := t.tx.Exec(ctx, query, a, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (t *bookingTx) VehicleAvailability(ctx context.Context, vehicleID int64) (vehicle.Availability, error) {
	var a vehicle.Availability
	err := t.tx.QueryRow(ctx, `SELECT availability_status FROM vehicles WHERE id = $1`, vehicleID).Scan(&a)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", xerrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read vehicle availability: %w", err)
	}
	return a, nil
}

func (t *bookingTx) OverdueForUpdate(ctx context.Context, before time.Time) ([]booking.Overdue, error) {
	query := `
		SELECT id, vehicle_id
		FROM bookings
		WHERE status = 'active' AND rent_end_date < $1
		FOR UPDATE
	`

	rows, err := t.tx.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to lock overdue bookings: %w", err)
	}
	defer rows.Close()

	var overdue []booking.Overdue
	for rows.Next() {
		var o booking.Overdue
		if err := rows.Scan(&o.BookingID, &o.VehicleID); err != nil {
			return nil, fmt.Errorf("failed to scan overdue booking: %w", err)
		}
		overdue = append(overdue, o)
	}
	return overdue, rows.Err()
}

func (t *bookingTx) ReturnBookings(ctx context.Context, bookingIDs []int64) error {
	query := `
		UPDATE bookings
		SET status = 'returned', updated_at = NOW()
		WHERE id = ANY($1)
	`

	if _, err := t.tx.Exec(ctx, query, bookingIDs); err != nil {
		return fmt.Errorf("failed to return bookings: %w", err)
	}
	return nil
}

func (t *bookingTx) FreeVehicles(ctx context.Context, vehicleIDs []int64) error {
	query := `
		UPDATE vehicles
		SET availability_status = 'available', updated_at = NOW()
		WHERE id = ANY($1)
	`

	if _, err := t.tx.Exec(ctx, query, vehicleIDs); err != nil {
		return fmt.Errorf("failed to free vehicles: %w", err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.CustomerID, &b.VehicleID,
		&b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return &b, nil
}
