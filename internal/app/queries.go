package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_api/internal/domain"
)

// QueryService serves reads. Single-entity lookups go through the cache
// when one is configured; lists always hit storage.
type QueryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService reads through c for up to ttl. A ttl <= 0 disables the
// cache rather than storing entries that never expire.
func NewQueryService(s domain.Store, c domain.Cache, ttl time.Duration) *QueryService {
	if ttl <= 0 {
		c = nil
	}
	return &QueryService{store: s, cache: c, cacheTTL: ttl}
}

// ttlSeconds rounds up so a sub-second ttl still expires.
func (s *QueryService) ttlSeconds() int {
	return int((s.cacheTTL + time.Second - 1) / time.Second)
}

// cached is a read-through helper; cache failures degrade to a storage read.
// A read racing a write can re-populate the old value after the write's
// eviction, so entries may be stale for up to one ttl.
func cached[T any](ctx context.Context, s *QueryService, key string, load func() (T, error)) (T, error) {
	var v T
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &v)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		if ok && err == nil {
			return v, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, v, s.ttlSeconds()); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return v, nil
}

func (s *QueryService) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.store.ListHotels(ctx)
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return cached(ctx, s, hotelKey(id), func() (domain.Hotel, error) {
		return s.store.GetHotel(ctx, id)
	})
}

func (s *QueryService) ListRooms(ctx context.Context) ([]domain.HotelRoom, error) {
	return s.store.ListRooms(ctx)
}

// ListRoomsByHotel returns domain.ErrNotFound for an unknown hotel rather
// than an empty list.
func (s *QueryService) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.HotelRoom, error) {
	ok, err := s.store.HotelExists(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.store.ListRoomsByHotel(ctx, hotelID)
}

func (s *QueryService) GetRoom(ctx context.Context, key domain.RoomKey) (domain.HotelRoom, error) {
	return cached(ctx, s, roomKey(key), func() (domain.HotelRoom, error) {
		return s.store.GetRoom(ctx, key)
	})
}

func (s *QueryService) ListReservations(ctx context.Context) ([]domain.RoomReservation, error) {
	return s.store.ListReservations(ctx)
}

func (s *QueryService) ListReservationsByRoom(ctx context.Context, key domain.RoomKey) ([]domain.RoomReservation, error) {
	ok, err := s.store.RoomExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.store.ListReservationsByRoom(ctx, key)
}

func (s *QueryService) GetReservation(ctx context.Context, key domain.ReservationKey) (domain.RoomReservation, error) {
	return cached(ctx, s, reservationKey(key), func() (domain.RoomReservation, error) {
		return s.store.GetReservation(ctx, key)
	})
}

func (s *QueryService) GetReservationByID(ctx context.Context, id int64) (domain.RoomReservation, error) {
	return s.store.GetReservationByID(ctx, id)
}

func (s *QueryService) ListRoomTypes(ctx context.Context) ([]domain.Lookup, error) {
	return s.store.ListRoomTypes(ctx)
}

func (s *QueryService) ListBedTypes(ctx context.Context) ([]domain.Lookup, error) {
	return s.store.ListBedTypes(ctx)
}
