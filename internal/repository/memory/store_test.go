package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentorio-service/internal/domain/booking"
	"rentorio-service/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTxCommit(t *testing.T) {
	store := NewStore()
	v := store.AddVehicle(vehicle.Vehicle{Name: "Van", Type: vehicle.TypeVan, RegistrationNumber: "V-1", DailyRentPrice: 80})

	err := store.RunInTx(context.Background(), func(tx booking.Tx) error {
		b := &booking.Booking{
			CustomerID:    1,
			VehicleID:     v.ID,
			RentStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			RentEndDate:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			TotalPrice:    160,
			Status:        booking.StatusActive,
		}
		if err := tx.InsertBooking(context.Background(), b); err != nil {
			return err
		}
		return tx.SetVehicleAvailability(context.Background(), v.ID, vehicle.AvailabilityBooked)
	})
	require.NoError(t, err)

	assert.Equal(t, vehicle.AvailabilityBooked, store.Vehicle(v.ID).Availability)
	assert.Equal(t, 1, store.ActiveBookingCount(v.ID))
}

// A failed transaction must leave no trace of its staged writes.
func TestRunInTxRollback(t *testing.T) {
	store := NewStore()
	v := store.AddVehicle(vehicle.Vehicle{Name: "Van", Type: vehicle.TypeVan, RegistrationNumber: "V-1", DailyRentPrice: 80})

	boom := errors.New("boom")
	err := store.RunInTx(context.Background(), func(tx booking.Tx) error {
		b := &booking.Booking{
			CustomerID: 1,
			VehicleID:  v.ID,
			Status:     booking.StatusActive,
		}
		if err := tx.InsertBooking(context.Background(), b); err != nil {
			return err
		}
		if err := tx.SetVehicleAvailability(context.Background(), v.ID, vehicle.AvailabilityBooked); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, vehicle.AvailabilityAvailable, store.Vehicle(v.ID).Availability)
	assert.Equal(t, 0, store.ActiveBookingCount(v.ID))
}

// Reads inside a transaction see staged writes before they are committed.
func TestRunInTxReadsOwnWrites(t *testing.T) {
	store := NewStore()
	v := store.AddVehicle(vehicle.Vehicle{Name: "Van", Type: vehicle.TypeVan, RegistrationNumber: "V-1", DailyRentPrice: 80})

	err := store.RunInTx(context.Background(), func(tx booking.Tx) error {
		if err := tx.SetVehicleAvailability(context.Background(), v.ID, vehicle.AvailabilityBooked); err != nil {
			return err
		}
		got, err := tx.VehicleAvailability(context.Background(), v.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, vehicle.AvailabilityBooked, got)
		return nil
	})
	require.NoError(t, err)
}

func TestBookingIDsSurviveRolledBackTx(t *testing.T) {
	store := NewStore()
	v := store.AddVehicle(vehicle.Vehicle{Name: "Van", Type: vehicle.TypeVan, RegistrationNumber: "V-1", DailyRentPrice: 80})

	_ = store.RunInTx(context.Background(), func(tx booking.Tx) error {
		b := &booking.Booking{CustomerID: 1, VehicleID: v.ID, Status: booking.StatusActive}
		_ = tx.InsertBooking(context.Background(), b)
		return errors.New("abort")
	})

	var gotID int64
	err := store.RunInTx(context.Background(), func(tx booking.Tx) error {
		b := &booking.Booking{CustomerID: 1, VehicleID: v.ID, Status: booking.StatusActive}
		if err := tx.InsertBooking(context.Background(), b); err != nil {
			return err
		}
		gotID = b.ID
		return nil
	})
	require.NoError(t, err)

	// The aborted transaction's ID counter bump was discarded with the rest
	// of its staged state.
	assert.Equal(t, int64(1), gotID)
	assert.NotNil(t, store.Booking(gotID))
}
