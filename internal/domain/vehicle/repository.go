// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
	Update(ctx context.Context, id int64, req *UpdateVehicleRequest) (*Vehicle, error)
	Delete(ctx context.Context, id int64) error

	// HasActiveBooking reports whether an active booking references the vehicle.
	HasActiveBooking(ctx context.Context, vehicleID int64) (bool, error)
}
