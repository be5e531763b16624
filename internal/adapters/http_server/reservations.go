package httpserver

import (
	"fmt"
	"net/http"

	"hotel_api/internal/domain"
)

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListReservations(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) listRoomReservations(w http.ResponseWriter, r *http.Request) {
	key, err := roomPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.ListReservationsByRoom(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	key, err := reservationPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.GetReservation(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getReservationByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "reservationId")
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.GetReservationByID(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

// createReservationInRoom handles POST .../Room/{roomNumber}/Reservation.
// Body keys default to the path; a body reservationId is inserted as given.
func (h *Handlers) createReservationInRoom(w http.ResponseWriter, r *http.Request) {
	room, err := roomPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var body reservationBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if err := checkRoomKeys(body, room); err != nil {
		fail(w, r, err)
		return
	}
	key := domain.ReservationKey{HotelID: room.HotelID, RoomNumber: room.RoomNumber}
	if body.ReservationID != nil {
		key.ReservationID = *body.ReservationID
	}
	h.insertReservation(w, r, body.toDomain(key))
}

// createReservationWithID handles POST .../Reservation/{reservationId}; the
// row is inserted with the path id, so a taken id is a conflict.
func (h *Handlers) createReservationWithID(w http.ResponseWriter, r *http.Request) {
	key, err := reservationPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var body reservationBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if err := checkRoomKeys(body, key.Room()); err != nil {
		fail(w, r, err)
		return
	}
	if !defaultsTo(body.ReservationID, key.ReservationID) {
		fail(w, r, mismatch("reservationId"))
		return
	}
	h.insertReservation(w, r, body.toDomain(key))
}

// createReservation handles the flat POST /api/RoomReservation.
func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var body reservationBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if body.HotelID == nil || body.RoomNumber == nil {
		fail(w, r, fmt.Errorf("%w: hotelId and roomNumber are required", domain.ErrValidation))
		return
	}
	key := domain.ReservationKey{HotelID: *body.HotelID, RoomNumber: *body.RoomNumber}
	if body.ReservationID != nil {
		key.ReservationID = *body.ReservationID
	}
	h.insertReservation(w, r, body.toDomain(key))
}

func checkRoomKeys(body reservationBody, room domain.RoomKey) error {
	if !defaultsTo(body.HotelID, room.HotelID) {
		return mismatch("hotelId")
	}
	if !defaultsTo(body.RoomNumber, room.RoomNumber) {
		return mismatch("roomNumber")
	}
	return nil
}

func (h *Handlers) insertReservation(w http.ResponseWriter, r *http.Request, res domain.RoomReservation) {
	created, err := h.C.CreateReservation(r.Context(), res)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/Hotel/%d/Room/%d/Reservation/%d",
		created.HotelID, created.RoomNumber, created.ReservationID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	key, err := reservationPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var body reservationBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	switch {
	case !sameKey(body.HotelID, key.HotelID):
		err = mismatch("hotelId")
	case !sameKey(body.RoomNumber, key.RoomNumber):
		err = mismatch("roomNumber")
	case !sameKey(body.ReservationID, key.ReservationID):
		err = mismatch("reservationId")
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	h.applyReservationUpdate(w, r, key, body)
}

// updateReservationByID handles PUT /api/RoomReservation/{reservationId}.
// The body names the owning room; a reservation under another room is 404.
func (h *Handlers) updateReservationByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "reservationId")
	if err != nil {
		fail(w, r, err)
		return
	}
	var body reservationBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if !sameKey(body.ReservationID, id) {
		fail(w, r, mismatch("reservationId"))
		return
	}
	if body.HotelID == nil || body.RoomNumber == nil {
		fail(w, r, fmt.Errorf("%w: hotelId and roomNumber are required", domain.ErrValidation))
		return
	}
	key := domain.ReservationKey{HotelID: *body.HotelID, RoomNumber: *body.RoomNumber, ReservationID: id}
	h.applyReservationUpdate(w, r, key, body)
}

func (h *Handlers) applyReservationUpdate(w http.ResponseWriter, r *http.Request, key domain.ReservationKey, body reservationBody) {
	outcome, err := h.C.UpdateReservation(r.Context(), key, body.toDomain(key))
	if err != nil {
		fail(w, r, err)
		return
	}
	if outcome == domain.NotFound {
		fail(w, r, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteReservation(w http.ResponseWriter, r *http.Request) {
	key, err := reservationPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	deleted, err := h.C.DeleteReservation(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *Handlers) deleteReservationByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "reservationId")
	if err != nil {
		fail(w, r, err)
		return
	}
	deleted, err := h.C.DeleteReservationByID(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
