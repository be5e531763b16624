package sqlstore

import (
	"time"

	"hotel_api/internal/domain"
)

// Row types mirror the tables created by the migrations in schema.go.
// Keys and constraints live in the DDL, not in gorm tags.

type hotelRow struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	Name        string
	Address     string
	PhoneNumber string
}

func (hotelRow) TableName() string { return "hotels" }

type hotelRoomRow struct {
	RoomNumber   int64 `gorm:"primaryKey;autoIncrement:false"`
	HotelID      int64 `gorm:"primaryKey;autoIncrement:false"`
	NightlyRate  float64
	NumberOfBeds int
	RoomTypeID   int64
	BedTypeID    int64
}

func (hotelRoomRow) TableName() string { return "hotel_rooms" }

type roomReservationRow struct {
	ReservationID int64 `gorm:"primaryKey;autoIncrement"`
	HotelID       int64
	RoomNumber    int64
	StartDate     time.Time
	EndDate       time.Time
}

func (roomReservationRow) TableName() string { return "room_reservations" }

type roomTypeRow struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
}

func (roomTypeRow) TableName() string { return "room_types" }

type bedTypeRow struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
}

func (bedTypeRow) TableName() string { return "bed_types" }

func (r hotelRow) toDomain() domain.Hotel {
	return domain.Hotel{ID: r.ID, Name: r.Name, Address: r.Address, PhoneNumber: r.PhoneNumber}
}

func hotelFromDomain(h domain.Hotel) hotelRow {
	return hotelRow{ID: h.ID, Name: h.Name, Address: h.Address, PhoneNumber: h.PhoneNumber}
}

func (r hotelRoomRow) toDomain() domain.HotelRoom {
	return domain.HotelRoom{
		RoomNumber:   r.RoomNumber,
		HotelID:      r.HotelID,
		NightlyRate:  r.NightlyRate,
		NumberOfBeds: r.NumberOfBeds,
		RoomTypeID:   r.RoomTypeID,
		BedTypeID:    r.BedTypeID,
	}
}

func roomFromDomain(r domain.HotelRoom) hotelRoomRow {
	return hotelRoomRow{
		RoomNumber:   r.RoomNumber,
		HotelID:      r.HotelID,
		NightlyRate:  r.NightlyRate,
		NumberOfBeds: r.NumberOfBeds,
		RoomTypeID:   r.RoomTypeID,
		BedTypeID:    r.BedTypeID,
	}
}

func (r roomReservationRow) toDomain() domain.RoomReservation {
	return domain.RoomReservation{
		ReservationID: r.ReservationID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		StartDate:     r.StartDate.UTC(),
		EndDate:       r.EndDate.UTC(),
	}
}

func reservationFromDomain(r domain.RoomReservation) roomReservationRow {
	return roomReservationRow{
		ReservationID: r.ReservationID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		StartDate:     r.StartDate.UTC(),
		EndDate:       r.EndDate.UTC(),
	}
}
