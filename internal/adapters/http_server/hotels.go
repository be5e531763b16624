package httpserver

import (
	"fmt"
	"net/http"

	"hotel_api/internal/domain"
)

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListHotels(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var body hotelBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	created, err := h.C.CreateHotel(r.Context(), body.toDomain(0))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/Hotel/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var body hotelBody
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	if !sameKey(body.ID, id) {
		fail(w, r, mismatch("id"))
		return
	}
	outcome, err := h.C.UpdateHotel(r.Context(), id, body.toDomain(id))
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

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathKey(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	deleted, err := h.C.DeleteHotel(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
