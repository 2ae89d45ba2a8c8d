package booking

import (
	"rentorio-service/internal/domain/vehicle"
)

// CreateBookingRequest is the inbound payload for a new reservation.
// Dates use the YYYY-MM-DD wire format; CustomerID is optional for
// customers (it defaults to, and must match, the authenticated account).
type CreateBookingRequest struct {
	CustomerID    int64  `json:"customer_id"`
	VehicleID     int64  `json:"vehicle_id" binding:"required"`
	RentStartDate string `json:"rent_start_date" binding:"required"`
	RentEndDate   string `json:"rent_end_date" binding:"required"`
}

// UpdateBookingRequest carries the requested status transition.
type UpdateBookingRequest struct {
	Status Status `json:"status" binding:"required,oneof=cancelled returned"`
}

// VehicleSummary is the slice of vehicle data returned alongside a
// freshly created booking.
type VehicleSummary struct {
	Name           string  `json:"vehicle_name"`
	DailyRentPrice float64 `json:"daily_rent_price"`
}

// CreatedBooking is the create operation's result.
type CreatedBooking struct {
	Booking
	Vehicle VehicleSummary `json:"vehicle"`
}

// ReturnedBooking is the mark-returned result: the updated booking plus
// the vehicle's availability as confirmed inside the same transaction.
type ReturnedBooking struct {
	Booking
	VehicleAvailability vehicle.Availability `json:"vehicle_availability_status"`
}

// AdminView is one row of the staff booking listing.
type AdminView struct {
	Booking
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	VehicleName         string `json:"vehicle_name"`
	VehicleRegistration string `json:"vehicle_registration"`
}

// CustomerView is one row of a customer's own booking listing.
type CustomerView struct {
	Booking
	VehicleName         string       `json:"vehicle_name"`
	VehicleRegistration string       `json:"vehicle_registration"`
	VehicleType         vehicle.Type `json:"vehicle_type"`
}
