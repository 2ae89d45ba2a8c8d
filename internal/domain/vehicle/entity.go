package vehicle

import "time"

type Type string
type Availability string

const (
	TypeCar  Type = "car"
	TypeBike Type = "bike"
	TypeVan  Type = "van"
	TypeSUV  Type = "SUV"

	AvailabilityAvailable Availability = "available"
	AvailabilityBooked    Availability = "booked"
)

// Vehicle represents a rentable vehicle. Availability is owned by the
// reservation engine; descriptive fields are owned by administrative CRUD.
type Vehicle struct {
	ID                 int64        `json:"id" db:"id"`
	Name               string       `json:"vehicle_name" db:"vehicle_name"`
	Type               Type         `json:"type" db:"type"`
	RegistrationNumber string       `json:"registration_number" db:"registration_number"`
	DailyRentPrice     float64      `json:"daily_rent_price" db:"daily_rent_price"`
	Availability       Availability `json:"availability_status" db:"availability_status"`
	IsActive           bool         `json:"is_active" db:"is_active"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

// ValidType reports whether t is one of the supported vehicle types.
func ValidType(t Type) bool {
	switch t {
	case TypeCar, TypeBike, TypeVan, TypeSUV:
		return true
	}
	return false
}
