// internal/service/booking/booking.go
package booking

import (
	"context"
	"fmt"
	"time"

	"rentorio-service/internal/domain/booking"
	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service is the reservation engine. Every state transition runs inside one
// store transaction holding the relevant row locks, so a booking status
// write and its paired vehicle availability write are observed together or
// not at all.
type Service struct {
	store  booking.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store booking.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Create reserves a vehicle for the given period. The vehicle row is locked
// first, so concurrent attempts on the same vehicle serialize and at most
// one of them finds it available.
func (s *Service) Create(ctx context.Context, customerID, vehicleID int64, start, end time.Time) (*booking.CreatedBooking, error) {
	var out *booking.CreatedBooking

	err := s.store.RunInTx(ctx, func(tx booking.Tx) error {
		v, err := tx.VehicleForUpdate(ctx, vehicleID)
		if err != nil {
			return xerrors.Wrap(err, "vehicle lookup failed")
		}

		if v.Availability != vehicle.AvailabilityAvailable {
			return xerrors.Wrap(xerrors.ErrConflict, "vehicle is not available for booking")
		}

		days := rentalDays(start, end)
		if days <= 0 {
			return xerrors.Wrap(xerrors.ErrInvalidInput, "rent_end_date must be after rent_start_date")
		}

		b := &booking.Booking{
			Reference:     ulid.Make().String(),
			CustomerID:    customerID,
			VehicleID:     vehicleID,
			RentStartDate: dateOnly(start),
			RentEndDate:   dateOnly(end),
			TotalPrice:    v.DailyRentPrice * float64(days),
			Status:        booking.StatusActive,
		}

		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.SetVehicleAvailability(ctx, vehicleID, vehicle.AvailabilityBooked); err != nil {
			return err
		}

		out = &booking.CreatedBooking{
			Booking: *b,
			Vehicle: booking.VehicleSummary{
				Name:           v.Name,
				DailyRentPrice: v.DailyRentPrice,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", out.ID),
		zap.String("reference", out.Reference),
		zap.Int64("customer_id", customerID),
		zap.Int64("vehicle_id", vehicleID),
		zap.Float64("total_price", out.TotalPrice),
	)
	return out, nil
}

// Cancel transitions an active booking to cancelled and frees its vehicle.
// Only the owning customer may cancel, and only strictly before the rental
// starts.
func (s *Service) Cancel(ctx context.Context, bookingID, requesterID int64) (*booking.Booking, error) {
	var out *booking.Booking

	err := s.store.RunInTx(ctx, func(tx booking.Tx) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return xerrors.Wrap(err, "booking lookup failed")
		}

		if b.CustomerID != requesterID {
			return xerrors.Wrap(xerrors.ErrForbidden, "you can only manage your own bookings")
		}
		if b.Status != booking.StatusActive {
			return xerrors.Wrap(xerrors.ErrForbidden, "only active bookings can be cancelled")
		}

		today := dateOnly(s.now())
		if !today.Before(dateOnly(b.RentStartDate)) {
			return xerrors.Wrap(xerrors.ErrForbidden, "booking can only be cancelled before the start date")
		}

		updated, err := tx.UpdateBookingStatus(ctx, bookingID, booking.StatusCancelled)
		if err != nil {
			return err
		}
		if err := tx.SetVehicleAvailability(ctx, b.VehicleID, vehicle.AvailabilityAvailable); err != nil {
			return err
		}

		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.Int64("booking_id", out.ID),
		zap.Int64("customer_id", requesterID),
	)
	return out, nil
}

// MarkReturned transitions an active booking to returned, frees the vehicle
// and reports the vehicle's availability as read inside the same
// transaction.
func (s *Service) MarkReturned(ctx context.Context, bookingID int64) (*booking.ReturnedBooking, error) {
	var out *booking.ReturnedBooking

	err := s.store.RunInTx(ctx, func(tx booking.Tx) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return xerrors.Wrap(err, "booking lookup failed")
		}

		if b.Status != booking.StatusActive {
			return xerrors.Wrap(xerrors.ErrForbidden, "only active bookings can be marked as returned")
		}

		updated, err := tx.UpdateBookingStatus(ctx, bookingID, booking.StatusReturned)
		if err != nil {
			return err
		}
		if err := tx.SetVehicleAvailability(ctx, b.VehicleID, vehicle.AvailabilityAvailable); err != nil {
			return err
		}

		availability, err := tx.VehicleAvailability(ctx, b.VehicleID)
		if err != nil {
			return err
		}

		out = &booking.ReturnedBooking{
			Booking:             *updated,
			VehicleAvailability: availability,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking returned",
		zap.Int64("booking_id", out.ID),
		zap.String("vehicle_availability", string(out.VehicleAvailability)),
	)
	return out, nil
}

// SweepOverdue bulk-returns every active booking whose rental period ended
// before today and frees the vehicles, all in one transaction. Running it
// with nothing overdue is a no-op, so repeated sweeps are harmless.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	var swept int

	err := s.store.RunInTx(ctx, func(tx booking.Tx) error {
		overdue, err := tx.OverdueForUpdate(ctx, dateOnly(s.now()))
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}

		bookingIDs := make([]int64, 0, len(overdue))
		vehicleIDs := make([]int64, 0, len(overdue))
		for _, o := range overdue {
			bookingIDs = append(bookingIDs, o.BookingID)
			vehicleIDs = append(vehicleIDs, o.VehicleID)
		}

		if err := tx.ReturnBookings(ctx, bookingIDs); err != nil {
			return err
		}
		if err := tx.FreeVehicles(ctx, vehicleIDs); err != nil {
			return err
		}

		swept = len(overdue)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("overdue sweep failed: %w", err)
	}

	if swept > 0 {
		s.logger.Info("overdue bookings returned", zap.Int("count", swept))
	}
	return swept, nil
}

// ListForAdmin returns every booking joined with customer and vehicle data.
func (s *Service) ListForAdmin(ctx context.Context) ([]booking.AdminView, error) {
	return s.store.ListForAdmin(ctx)
}

// ListForCustomer returns the customer's own bookings with vehicle data.
func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]booking.CustomerView, error) {
	return s.store.ListForCustomer(ctx, customerID)
}

// rentalDays truncates the span between start and end to whole days.
// Fractional days round down, matching the pricing rule the rest of the
// system is built around.
func rentalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
