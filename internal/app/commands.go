package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_api/internal/domain"
)

// CommandService performs writes and evicts the cache entries they make
// stale. Eviction is best effort: a failure is logged and the write still
// succeeds, entries then age out with their TTL.
type CommandService struct {
	store domain.Store
	cache domain.Cache
}

func NewCommandService(s domain.Store, c domain.Cache) *CommandService {
	return &CommandService{store: s, cache: c}
}

func (s *CommandService) evict(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache evict failed")
	}
}

func (s *CommandService) evictPrefix(ctx context.Context, prefixes ...string) {
	if s.cache == nil {
		return
	}
	for _, p := range prefixes {
		if err := s.cache.DelPrefix(ctx, p); err != nil {
			log.Warn().Err(err).Str("prefix", p).Msg("cache evict failed")
		}
	}
}

func (s *CommandService) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	return s.store.CreateHotel(ctx, h)
}

func (s *CommandService) UpdateHotel(ctx context.Context, id int64, h domain.Hotel) (domain.WriteOutcome, error) {
	out, err := s.store.UpdateHotel(ctx, id, h)
	if err == nil && out == domain.Updated {
		s.evict(ctx, hotelKey(id))
	}
	return out, err
}

// DeleteHotel also evicts the hotel's rooms and reservations, which the
// database removed by cascade.
func (s *CommandService) DeleteHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := s.store.DeleteHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.evict(ctx, hotelKey(id))
	s.evictPrefix(ctx, hotelRoomsPrefix(id), hotelReservationsPrefix(id))
	return h, nil
}

func (s *CommandService) CreateRoom(ctx context.Context, r domain.HotelRoom) (domain.HotelRoom, error) {
	return s.store.CreateRoom(ctx, r)
}

func (s *CommandService) UpdateRoom(ctx context.Context, key domain.RoomKey, r domain.HotelRoom) (domain.WriteOutcome, error) {
	out, err := s.store.UpdateRoom(ctx, key, r)
	if err == nil && out == domain.Updated {
		s.evict(ctx, roomKey(key))
	}
	return out, err
}

func (s *CommandService) DeleteRoom(ctx context.Context, key domain.RoomKey) (domain.HotelRoom, error) {
	r, err := s.store.DeleteRoom(ctx, key)
	if err != nil {
		return domain.HotelRoom{}, err
	}
	s.evict(ctx, roomKey(key))
	s.evictPrefix(ctx, roomReservationsPrefix(key))
	return r, nil
}

func (s *CommandService) CreateReservation(ctx context.Context, r domain.RoomReservation) (domain.RoomReservation, error) {
	return s.store.CreateReservation(ctx, r)
}

func (s *CommandService) UpdateReservation(ctx context.Context, key domain.ReservationKey, r domain.RoomReservation) (domain.WriteOutcome, error) {
	out, err := s.store.UpdateReservation(ctx, key, r)
	if err == nil && out == domain.Updated {
		s.evict(ctx, reservationKey(key))
	}
	return out, err
}

func (s *CommandService) DeleteReservation(ctx context.Context, key domain.ReservationKey) (domain.RoomReservation, error) {
	r, err := s.store.DeleteReservation(ctx, key)
	if err != nil {
		return domain.RoomReservation{}, err
	}
	s.evict(ctx, reservationKey(key))
	return r, nil
}

// DeleteReservationByID resolves the owning room first, then deletes by
// the full key.
func (s *CommandService) DeleteReservationByID(ctx context.Context, id int64) (domain.RoomReservation, error) {
	r, err := s.store.GetReservationByID(ctx, id)
	if err != nil {
		return domain.RoomReservation{}, err
	}
	return s.DeleteReservation(ctx, r.Key())
}
