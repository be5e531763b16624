package httpserver

import "net/http"

func (h *Handlers) listRoomTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListRoomTypes(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) listBedTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListBedTypes(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}
