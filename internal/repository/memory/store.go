// internal/repository/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"rentorio-service/internal/domain/booking"
	"rentorio-service/internal/domain/user"
	"rentorio-service/internal/domain/vehicle"
	xerrors "rentorio-service/internal/pkg/errors"
)

// Store is an in-memory booking.Store. One mutex plays the role of the
// database's row locks: a transaction holds it for its whole
// read-validate-write sequence, so conflicting operations serialize exactly
// as they do against PostgreSQL. Mutations are staged on cloned maps and
// only swapped in on commit, which makes rollback a no-op.
type Store struct {
	mu sync.Mutex

	users    map[int64]*user.User
	vehicles map[int64]*vehicle.Vehicle
	bookings map[int64]*booking.Booking

	nextBookingID int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*user.User),
		vehicles: make(map[int64]*vehicle.Vehicle),
		bookings: make(map[int64]*booking.Booking),
	}
}

// AddUser seeds a user row.
func (s *Store) AddUser(u user.User) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = int64(len(s.users) + 1)
	}
	s.users[u.ID] = &u
	return &u
}

// AddVehicle seeds a vehicle row.
func (s *Store) AddVehicle(v vehicle.Vehicle) *vehicle.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == 0 {
		v.ID = int64(len(s.vehicles) + 1)
	}
	if v.Availability == "" {
		v.Availability = vehicle.AvailabilityAvailable
	}
	v.IsActive = true
	s.vehicles[v.ID] = &v
	return &v
}

// Vehicle returns a copy of the stored vehicle, or nil.
func (s *Store) Vehicle(id int64) *vehicle.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}

// Booking returns a copy of the stored booking, or nil.
func (s *Store) Booking(id int64) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

// ActiveBookingCount reports how many active bookings reference the vehicle.
func (s *Store) ActiveBookingCount(vehicleID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, b := range s.bookings {
		if b.VehicleID == vehicleID && b.Status == booking.StatusActive {
			n++
		}
	}
	return n
}

func (s *Store) RunInTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		vehicles:      cloneMap(s.vehicles),
		bookings:      cloneMap(s.bookings),
		nextBookingID: s.nextBookingID,
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.vehicles = tx.vehicles
	s.bookings = tx.bookings
	s.nextBookingID = tx.nextBookingID
	return nil
}

func (s *Store) ListForAdmin(ctx context.Context) ([]booking.AdminView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var views []booking.AdminView
	for _, b := range s.bookings {
		view := booking.AdminView{Booking: *b}
		if u, ok := s.users[b.CustomerID]; ok {
			view.CustomerName = u.Name
			view.CustomerEmail = u.Email
		}
		if v, ok := s.vehicles[b.VehicleID]; ok {
			view.VehicleName = v.Name
			view.VehicleRegistration = v.RegistrationNumber
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func (s *Store) ListForCustomer(ctx context.Context, customerID int64) ([]booking.CustomerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var views []booking.CustomerView
	for _, b := range s.bookings {
		if b.CustomerID != customerID {
			continue
		}
		view := booking.CustomerView{Booking: *b}
		if v, ok := s.vehicles[b.VehicleID]; ok {
			view.VehicleName = v.Name
			view.VehicleRegistration = v.RegistrationNumber
			view.VehicleType = v.Type
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// memTx stages mutations on cloned maps.
type memTx struct {
	vehicles      map[int64]*vehicle.Vehicle
	bookings      map[int64]*booking.Booking
	nextBookingID int64
}

func (t *memTx) VehicleForUpdate(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	v, ok := t.vehicles[vehicleID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (t *memTx) BookingForUpdate(ctx context.Context, bookingID int64) (*booking.Booking, error) {
	b, ok := t.bookings[bookingID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) InsertBooking(ctx context.Context, b *booking.Booking) error {
	t.nextBookingID++
	b.ID = t.nextBookingID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	cp := *b
	t.bookings[b.ID] = &cp
	return nil
}

func (t *memTx) UpdateBookingStatus(ctx context.Context, bookingID int64, status booking.Status) (*booking.Booking, error) {
	b, ok := t.bookings[bookingID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	cp := *b
	cp.Status = status
	cp.UpdatedAt = time.Now()
	t.bookings[bookingID] = &cp

	out := cp
	return &out, nil
}

func (t *memTx) SetVehicleAvailability(ctx context.Context, vehicleID int64, a vehicle.Availability) error {
	v, ok := t.vehicles[vehicleID]
	if !ok {
		return xerrors.ErrNotFound
	}

	cp := *v
	cp.Availability = a
	cp.UpdatedAt = time.Now()
	t.vehicles[vehicleID] = &cp
	return nil
}

func (t *memTx) VehicleAvailability(ctx context.Context, vehicleID int64) (vehicle.Availability, error) {
	v, ok := t.vehicles[vehicleID]
	if !ok {
		return "", xerrors.ErrNotFound
	}
	return v.Availability, nil
}

func (t *memTx) OverdueForUpdate(ctx context.Context, before time.Time) ([]booking.Overdue, error) {
	var overdue []booking.Overdue
	for _, b := range t.bookings {
		if b.Status == booking.StatusActive && b.RentEndDate.Before(before) {
			overdue = append(overdue, booking.Overdue{BookingID: b.ID, VehicleID: b.VehicleID})
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].BookingID < overdue[j].BookingID })
	return overdue, nil
}

func (t *memTx) ReturnBookings(ctx context.Context, bookingIDs []int64) error {
	for _, id := range bookingIDs {
		b, ok := t.bookings[id]
		if !ok {
			continue
		}
		cp := *b
		cp.Status = booking.StatusReturned
		cp.UpdatedAt = time.Now()
		t.bookings[id] = &cp
	}
	return nil
}

func (t *memTx) FreeVehicles(ctx context.Context, vehicleIDs []int64) error {
	for _, id := range vehicleIDs {
		v, ok := t.vehicles[id]
		if !ok {
			continue
		}
		cp := *v
		cp.Availability = vehicle.AvailabilityAvailable
		cp.UpdatedAt = time.Now()
		t.vehicles[id] = &cp
	}
	return nil
}

func cloneMap[V any](in map[int64]*V) map[int64]*V {
	out := make(map[int64]*V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
