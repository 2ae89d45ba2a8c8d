package booking

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// Booking records one rental of one vehicle. Status only ever moves
// active -> cancelled or active -> returned; it never re-enters active.
type Booking struct {
	ID            int64     `json:"id" db:"id"`
	Reference     string    `json:"reference" db:"reference"`
	CustomerID    int64     `json:"customer_id" db:"customer_id"`
	VehicleID     int64     `json:"vehicle_id" db:"vehicle_id"`
	RentStartDate time.Time `json:"rent_start_date" db:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date" db:"rent_end_date"`
	TotalPrice    float64   `json:"total_price" db:"total_price"`
	Status        Status    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Terminal reports whether the booking has left the active state.
func (b *Booking) Terminal() bool {
	return b.Status != StatusActive
}
