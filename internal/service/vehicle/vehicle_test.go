package vehicle

import (
	"context"
	"testing"

	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVehicleRepo struct {
	mock.Mock
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVehicleRepo) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*vehicle.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]vehicle.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVehicleRepo) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*vehicle.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockVehicleRepo) HasActiveBooking(ctx context.Context, vehicleID int64) (bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Bool(0), args.Error(1)
}

func TestCreateVehicle(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *vehicle.Vehicle) bool {
		return v.Availability == vehicle.AvailabilityAvailable
	})).Return(nil)

	v, err := svc.CreateVehicle(context.Background(), &vehicle.CreateVehicleRequest{
		Name:               "Toyota Axio",
		Type:               vehicle.TypeCar,
		RegistrationNumber: "DHK-1234",
		DailyRentPrice:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, vehicle.AvailabilityAvailable, v.Availability)
	repo.AssertExpectations(t)
}

func TestCreateVehicleInvalidInput(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	_, err := svc.CreateVehicle(context.Background(), &vehicle.CreateVehicleRequest{
		Name: "Hoverboard", Type: "hoverboard", RegistrationNumber: "X-1", DailyRentPrice: 10,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.CreateVehicle(context.Background(), &vehicle.CreateVehicleRequest{
		Name: "Free Car", Type: vehicle.TypeCar, RegistrationNumber: "X-2", DailyRentPrice: 0,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVehicleDuplicateRegistration(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).
		Return(xerrors.Wrap(xerrors.ErrConflict, "registration number already exists"))

	_, err := svc.CreateVehicle(context.Background(), &vehicle.CreateVehicleRequest{
		Name: "Toyota Axio", Type: vehicle.TypeCar, RegistrationNumber: "DHK-1234", DailyRentPrice: 100,
	})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestDeleteVehicle(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	repo.On("FindByID", mock.Anything, int64(1)).Return(&vehicle.Vehicle{ID: 1}, nil)
	repo.On("HasActiveBooking", mock.Anything, int64(1)).Return(false, nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	require.NoError(t, svc.DeleteVehicle(context.Background(), 1))
	repo.AssertExpectations(t)
}

// A vehicle referenced by an active booking cannot be deleted.
func TestDeleteVehicleWithActiveBooking(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	repo.On("FindByID", mock.Anything, int64(1)).Return(&vehicle.Vehicle{ID: 1}, nil)
	repo.On("HasActiveBooking", mock.Anything, int64(1)).Return(true, nil)

	err := svc.DeleteVehicle(context.Background(), 1)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteVehicleNotFound(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	repo.On("FindByID", mock.Anything, int64(42)).Return(nil, xerrors.ErrNotFound)

	err := svc.DeleteVehicle(context.Background(), 42)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestUpdateVehicleValidation(t *testing.T) {
	repo := new(mockVehicleRepo)
	svc := NewVehicleService(repo, zap.NewNop())

	badType := vehicle.Type("boat")
	_, err := svc.UpdateVehicle(context.Background(), 1, &vehicle.UpdateVehicleRequest{Type: &badType})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	badPrice := -5.0
	_, err = svc.UpdateVehicle(context.Background(), 1, &vehicle.UpdateVehicleRequest{DailyRentPrice: &badPrice})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
