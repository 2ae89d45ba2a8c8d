package vehicle

// CreateVehicleRequest for registering a new vehicle
type CreateVehicleRequest struct {
	Name               string  `json:"vehicle_name" binding:"required"`
	Type               Type    `json:"type" binding:"required,oneof=car bike van SUV"`
	RegistrationNumber string  `json:"registration_number" binding:"required"`
	DailyRentPrice     float64 `json:"daily_rent_price" binding:"required,gt=0"`
}

// UpdateVehicleRequest for partial updates of vehicle details
type UpdateVehicleRequest struct {
	Name               *string       `json:"vehicle_name"`
	Type               *Type         `json:"type" binding:"omitempty,oneof=car bike van SUV"`
	RegistrationNumber *string       `json:"registration_number"`
	DailyRentPrice     *float64      `json:"daily_rent_price" binding:"omitempty,gt=0"`
	Availability       *Availability `json:"availability_status" binding:"omitempty,oneof=available booked"`
	IsActive           *bool         `json:"is_active"`
}
