package app

import (
	"fmt"

	"hotel_api/internal/domain"
)

// Cache layout:
//   hotel:{id}
//   room:{hotelId}:{roomNumber}
//   reservation:{hotelId}:{roomNumber}:{reservationId}
// so a hotel or room delete can evict its dependants by prefix.

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func roomKey(k domain.RoomKey) string { return fmt.Sprintf("room:%d:%d", k.HotelID, k.RoomNumber) }

func reservationKey(k domain.ReservationKey) string {
	return fmt.Sprintf("reservation:%d:%d:%d", k.HotelID, k.RoomNumber, k.ReservationID)
}

func hotelRoomsPrefix(hotelID int64) string { return fmt.Sprintf("room:%d:", hotelID) }

func hotelReservationsPrefix(hotelID int64) string { return fmt.Sprintf("reservation:%d:", hotelID) }

func roomReservationsPrefix(k domain.RoomKey) string {
	return fmt.Sprintf("reservation:%d:%d:", k.HotelID, k.RoomNumber)
}
