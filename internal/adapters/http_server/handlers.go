package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotel_api/internal/app"
	"hotel_api/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/RoomType", h.listRoomTypes)
		r.Get("/BedType", h.listBedTypes)

		r.Route("/Hotel", func(r chi.Router) {
			r.Get("/", h.listHotels)
			r.Post("/", h.createHotel)
			r.Get("/Room", h.listRooms)
			r.Get("/Room/Reservations", h.listReservations)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getHotel)
				r.Put("/", h.updateHotel)
				r.Delete("/", h.deleteHotel)
				r.Post("/", h.createRoomInHotel)
				r.Get("/Room", h.listHotelRooms)

				r.Route("/Room/{roomNumber}", func(r chi.Router) {
					r.Get("/", h.getRoom)
					r.Put("/", h.updateRoom)
					r.Delete("/", h.deleteRoom)
					r.Get("/Reservation", h.listRoomReservations)
					r.Post("/Reservation", h.createReservationInRoom)

					r.Route("/Reservation/{reservationId}", func(r chi.Router) {
						r.Get("/", h.getReservation)
						r.Put("/", h.updateReservation)
						r.Post("/", h.createReservationWithID)
						r.Delete("/", h.deleteReservation)
					})
				})
			})
		})

		r.Route("/HotelRoom", func(r chi.Router) {
			r.Get("/", h.listRooms)
			r.Post("/", h.createRoom)
		})

		r.Route("/RoomReservation", func(r chi.Router) {
			r.Get("/", h.listReservations)
			r.Post("/", h.createReservation)
			r.Get("/{reservationId}", h.getReservationByID)
			r.Put("/{reservationId}", h.updateReservationByID)
			r.Delete("/{reservationId}", h.deleteReservationByID)
		})
	})
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Q.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check: database unreachable")
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "database unreachable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// fail maps an error from decoding or the services onto a problem response.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", "the resource already exists or references a missing parent")
	default:
		log.Error().Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeCacheable answers GETs with a weak ETag and honours If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		fail(w, r, errors.New("marshal response body"))
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func pathKey(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

func roomPath(r *http.Request) (domain.RoomKey, error) {
	hotelID, err := pathKey(r, "id")
	if err != nil {
		return domain.RoomKey{}, err
	}
	number, err := pathKey(r, "roomNumber")
	if err != nil {
		return domain.RoomKey{}, err
	}
	return domain.RoomKey{HotelID: hotelID, RoomNumber: number}, nil
}

func reservationPath(r *http.Request) (domain.ReservationKey, error) {
	room, err := roomPath(r)
	if err != nil {
		return domain.ReservationKey{}, err
	}
	id, err := pathKey(r, "reservationId")
	if err != nil {
		return domain.ReservationKey{}, err
	}
	return domain.ReservationKey{HotelID: room.HotelID, RoomNumber: room.RoomNumber, ReservationID: id}, nil
}

func mismatch(field string) error {
	return fmt.Errorf("%w: %s in body does not match the URL", domain.ErrValidation, field)
}

// sameKey: the body must carry the key and it must equal the path.
func sameKey(body *int64, path int64) bool { return body != nil && *body == path }

// defaultsTo: an omitted body key takes the path value.
func defaultsTo(body *int64, path int64) bool { return body == nil || *body == path }
