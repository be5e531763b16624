package domain

import "time"

type Hotel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// HotelRoom is keyed by (RoomNumber, HotelID); room numbers repeat across hotels.
type HotelRoom struct {
	RoomNumber   int64   `json:"roomNumber"`
	HotelID      int64   `json:"hotelId"`
	NightlyRate  float64 `json:"nightlyRate"`
	NumberOfBeds int     `json:"numberOfBeds"`
	RoomTypeID   int64   `json:"roomTypeId"`
	BedTypeID    int64   `json:"bedTypeId"`
}

func (r HotelRoom) Key() RoomKey { return RoomKey{HotelID: r.HotelID, RoomNumber: r.RoomNumber} }

// RoomReservation does not validate StartDate < EndDate and overlapping
// reservations for the same room are accepted.
type RoomReservation struct {
	ReservationID int64     `json:"reservationId"`
	HotelID       int64     `json:"hotelId"`
	RoomNumber    int64     `json:"roomNumber"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

func (r RoomReservation) Key() ReservationKey {
	return ReservationKey{HotelID: r.HotelID, RoomNumber: r.RoomNumber, ReservationID: r.ReservationID}
}

// Lookup rows (room types, bed types) are seed data and read only through the API.
type Lookup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RoomKey struct {
	HotelID    int64
	RoomNumber int64
}

type ReservationKey struct {
	HotelID       int64
	RoomNumber    int64
	ReservationID int64
}

func (k ReservationKey) Room() RoomKey { return RoomKey{HotelID: k.HotelID, RoomNumber: k.RoomNumber} }
