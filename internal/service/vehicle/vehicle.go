// internal/service/vehicle/vehicle.go
package vehicle

import (
	"context"

	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type VehicleService struct {
	vehicleRepo vehicle.Repository
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo vehicle.Repository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	if !vehicle.ValidType(req.Type) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown vehicle type")
	}
	if req.DailyRentPrice <= 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "daily rent price must be positive")
	}

	v := &vehicle.Vehicle{
		Name:               req.Name,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		Availability:       vehicle.AvailabilityAvailable,
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle created",
		zap.Int64("vehicle_id", v.ID),
		zap.String("registration", v.RegistrationNumber),
	)
	return v, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	if req.Type != nil && !vehicle.ValidType(*req.Type) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown vehicle type")
	}
	if req.DailyRentPrice != nil && *req.DailyRentPrice <= 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "daily rent price must be positive")
	}

	v, err := s.vehicleRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehicle updated", zap.Int64("vehicle_id", id))
	return v, nil
}

// DeleteVehicle removes a vehicle. Deletion is rejected while an active
// booking still references it.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	if _, err := s.vehicleRepo.FindByID(ctx, id); err != nil {
		return err
	}

	busy, err := s.vehicleRepo.HasActiveBooking(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return xerrors.Wrap(xerrors.ErrConflict, "vehicle has an active booking")
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("vehicle deleted", zap.Int64("vehicle_id", id))
	return nil
}
