package httpserver

import (
	"fmt"
	"net/http"

	"hotel_api/internal/domain"
)

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListRooms(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) listHotelRooms(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.ListRoomsByHotel(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	key, err := roomPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.GetRoom(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

// createRoomInHotel handles POST /api/Hotel/{id}; hotelId defaults to the path.
func (h *Handlers) createRoomInHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := pathKey(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var body roomBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if !defaultsTo(body.HotelID, hotelID) {
		fail(w, r, mismatch("hotelId"))
		return
	}
	h.insertRoom(w, r, body.toDomain(hotelID))
}

// createRoom handles the flat POST /api/HotelRoom, where hotelId is required.
func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var body roomBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if body.HotelID == nil {
		fail(w, r, fmt.Errorf("%w: hotelId is required", domain.ErrValidation))
		return
	}
	h.insertRoom(w, r, body.toDomain(*body.HotelID))
}

func (h *Handlers) insertRoom(w http.ResponseWriter, r *http.Request, room domain.HotelRoom) {
	created, err := h.C.CreateRoom(r.Context(), room)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/Hotel/%d/Room/%d", created.HotelID, created.RoomNumber))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	key, err := roomPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var body roomBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if !sameKey(body.HotelID, key.HotelID) {
		fail(w, r, mismatch("hotelId"))
		return
	}
	if !sameKey(body.RoomNumber, key.RoomNumber) {
		fail(w, r, mismatch("roomNumber"))
		return
	}
	outcome, err := h.C.UpdateRoom(r.Context(), key, body.toDomain(key.HotelID))
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

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	key, err := roomPath(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	deleted, err := h.C.DeleteRoom(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
