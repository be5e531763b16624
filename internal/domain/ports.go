package domain

import "context"

type HotelRepository interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	HotelExists(ctx context.Context, id int64) (bool, error)
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	UpdateHotel(ctx context.Context, id int64, h Hotel) (WriteOutcome, error)
	DeleteHotel(ctx context.Context, id int64) (Hotel, error)
}

type RoomRepository interface {
	ListRooms(ctx context.Context) ([]HotelRoom, error)
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]HotelRoom, error)
	GetRoom(ctx context.Context, key RoomKey) (HotelRoom, error)
	RoomExists(ctx context.Context, key RoomKey) (bool, error)
	CreateRoom(ctx context.Context, r HotelRoom) (HotelRoom, error)
	UpdateRoom(ctx context.Context, key RoomKey, r HotelRoom) (WriteOutcome, error)
	DeleteRoom(ctx context.Context, key RoomKey) (HotelRoom, error)
}

type ReservationRepository interface {
	ListReservations(ctx context.Context) ([]RoomReservation, error)
	ListReservationsByRoom(ctx context.Context, key RoomKey) ([]RoomReservation, error)
	GetReservation(ctx context.Context, key ReservationKey) (RoomReservation, error)
	GetReservationByID(ctx context.Context, id int64) (RoomReservation, error)
	ReservationExists(ctx context.Context, key ReservationKey) (bool, error)
	CreateReservation(ctx context.Context, r RoomReservation) (RoomReservation, error)
	UpdateReservation(ctx context.Context, key ReservationKey, r RoomReservation) (WriteOutcome, error)
	DeleteReservation(ctx context.Context, key ReservationKey) (RoomReservation, error)
}

type LookupRepository interface {
	ListRoomTypes(ctx context.Context) ([]Lookup, error)
	ListBedTypes(ctx context.Context) ([]Lookup, error)
}

// Store is everything the application services need from storage.
type Store interface {
	HotelRepository
	RoomRepository
	ReservationRepository
	LookupRepository
	Ping(ctx context.Context) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, keys ...string) error
	// DelPrefix removes every key starting with prefix.
	DelPrefix(ctx context.Context, prefix string) error
}
