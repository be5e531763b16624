package app_test

import (
	"context"
	"errors"
	"strings"

	"hotel_api/internal/domain"
)

// ---- fakes ----

// fakeStore keeps rows in maps and counts reads so tests can tell cache
// hits from storage reads. Cascades are not modelled.
type fakeStore struct {
	hotels       map[int64]domain.Hotel
	rooms        map[domain.RoomKey]domain.HotelRoom
	reservations map[domain.ReservationKey]domain.RoomReservation
	reads        int
	failWith     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hotels:       map[int64]domain.Hotel{},
		rooms:        map[domain.RoomKey]domain.HotelRoom{},
		reservations: map[domain.ReservationKey]domain.RoomReservation{},
	}
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.failWith }

func (f *fakeStore) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	out := []domain.Hotel{}
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, f.failWith
}
func (f *fakeStore) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.reads++
	if f.failWith != nil {
		return domain.Hotel{}, f.failWith
	}
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}
func (f *fakeStore) HotelExists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.hotels[id]
	return ok, f.failWith
}
func (f *fakeStore) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	h.ID = int64(len(f.hotels) + 1)
	f.hotels[h.ID] = h
	return h, nil
}
func (f *fakeStore) UpdateHotel(ctx context.Context, id int64, h domain.Hotel) (domain.WriteOutcome, error) {
	if _, ok := f.hotels[id]; !ok {
		return domain.NotFound, nil
	}
	h.ID = id
	f.hotels[id] = h
	return domain.Updated, nil
}
func (f *fakeStore) DeleteHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	delete(f.hotels, id)
	return h, nil
}

func (f *fakeStore) ListRooms(ctx context.Context) ([]domain.HotelRoom, error) {
	out := []domain.HotelRoom{}
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeStore) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.HotelRoom, error) {
	out := []domain.HotelRoom{}
	for k, r := range f.rooms {
		if k.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeStore) GetRoom(ctx context.Context, key domain.RoomKey) (domain.HotelRoom, error) {
	f.reads++
	r, ok := f.rooms[key]
	if !ok {
		return domain.HotelRoom{}, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeStore) RoomExists(ctx context.Context, key domain.RoomKey) (bool, error) {
	_, ok := f.rooms[key]
	return ok, nil
}
func (f *fakeStore) CreateRoom(ctx context.Context, r domain.HotelRoom) (domain.HotelRoom, error) {
	if _, ok := f.rooms[r.Key()]; ok {
		return domain.HotelRoom{}, domain.ErrConflict
	}
	f.rooms[r.Key()] = r
	return r, nil
}
func (f *fakeStore) UpdateRoom(ctx context.Context, key domain.RoomKey, r domain.HotelRoom) (domain.WriteOutcome, error) {
	if _, ok := f.rooms[key]; !ok {
		return domain.NotFound, nil
	}
	f.rooms[key] = r
	return domain.Updated, nil
}
func (f *fakeStore) DeleteRoom(ctx context.Context, key domain.RoomKey) (domain.HotelRoom, error) {
	r, ok := f.rooms[key]
	if !ok {
		return domain.HotelRoom{}, domain.ErrNotFound
	}
	delete(f.rooms, key)
	return r, nil
}

func (f *fakeStore) ListReservations(ctx context.Context) ([]domain.RoomReservation, error) {
	out := []domain.RoomReservation{}
	for _, r := range f.reservations {
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeStore) ListReservationsByRoom(ctx context.Context, key domain.RoomKey) ([]domain.RoomReservation, error) {
	out := []domain.RoomReservation{}
	for k, r := range f.reservations {
		if k.Room() == key {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeStore) GetReservation(ctx context.Context, key domain.ReservationKey) (domain.RoomReservation, error) {
	f.reads++
	r, ok := f.reservations[key]
	if !ok {
		return domain.RoomReservation{}, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeStore) GetReservationByID(ctx context.Context, id int64) (domain.RoomReservation, error) {
	for k, r := range f.reservations {
		if k.ReservationID == id {
			return r, nil
		}
	}
	return domain.RoomReservation{}, domain.ErrNotFound
}
func (f *fakeStore) ReservationExists(ctx context.Context, key domain.ReservationKey) (bool, error) {
	_, ok := f.reservations[key]
	return ok, nil
}
func (f *fakeStore) CreateReservation(ctx context.Context, r domain.RoomReservation) (domain.RoomReservation, error) {
	if r.ReservationID == 0 {
		r.ReservationID = int64(len(f.reservations) + 1)
	}
	f.reservations[r.Key()] = r
	return r, nil
}
func (f *fakeStore) UpdateReservation(ctx context.Context, key domain.ReservationKey, r domain.RoomReservation) (domain.WriteOutcome, error) {
	if _, ok := f.reservations[key]; !ok {
		return domain.NotFound, nil
	}
	f.reservations[key] = r
	return domain.Updated, nil
}
func (f *fakeStore) DeleteReservation(ctx context.Context, key domain.ReservationKey) (domain.RoomReservation, error) {
	r, ok := f.reservations[key]
	if !ok {
		return domain.RoomReservation{}, domain.ErrNotFound
	}
	delete(f.reservations, key)
	return r, nil
}

func (f *fakeStore) ListRoomTypes(ctx context.Context) ([]domain.Lookup, error) {
	return []domain.Lookup{{ID: 1, Name: "Standard"}}, nil
}
func (f *fakeStore) ListBedTypes(ctx context.Context) ([]domain.Lookup, error) {
	return []domain.Lookup{{ID: 1, Name: "Single"}}, nil
}

type fakeCache struct {
	store  map[string]any
	dels   []string
	ttls   []int
	getErr error
	delErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *domain.HotelRoom:
		*d = v.(domain.HotelRoom)
	case *domain.RoomReservation:
		*d = v.(domain.RoomReservation)
	default:
		return false, errors.New("fakeCache: unsupported type")
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.ttls = append(c.ttls, ttlSec)
	return nil
}
func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.dels = append(c.dels, keys...)
	for _, k := range keys {
		delete(c.store, k)
	}
	return c.delErr
}
func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) error {
	c.dels = append(c.dels, prefix+"*")
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return c.delErr
}
