// internal/domain/booking/store.go
package booking

import (
	"context"
	"time"

	"rentorio-service/internal/domain/vehicle"
)

// Overdue identifies one lapsed active booking and the vehicle it holds.
type Overdue struct {
	BookingID int64
	VehicleID int64
}

// Tx is the set of row operations available inside one transaction.
// The ForUpdate lookups take an exclusive row lock that is held until the
// transaction ends, so conflicting read-validate-write sequences serialize
// instead of racing.
type Tx interface {
	VehicleForUpdate(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error)
	BookingForUpdate(ctx context.Context, bookingID int64) (*Booking, error)

	InsertBooking(ctx context.Context, b *Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID int64, status Status) (*Booking, error)
	SetVehicleAvailability(ctx context.Context, vehicleID int64, a vehicle.Availability) error
	VehicleAvailability(ctx context.Context, vehicleID int64) (vehicle.Availability, error)

	// OverdueForUpdate locks every active booking whose rental period ended
	// before the given date.
	OverdueForUpdate(ctx context.Context, before time.Time) ([]Overdue, error)
	ReturnBookings(ctx context.Context, bookingIDs []int64) error
	FreeVehicles(ctx context.Context, vehicleIDs []int64) error
}

// Store owns the transaction boundary for the reservation engine. RunInTx
// commits when fn returns nil and rolls back every mutation otherwise; no
// partial state is ever visible to another transaction.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	ListForAdmin(ctx context.Context) ([]AdminView, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]CustomerView, error)
}
