package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// QueryService is a cache-through reader in front of the booking backend.
// It caches raw records only; view models are always rebuilt by callers.
// A nil cache or zero ttl makes it a plain passthrough.
type QueryService struct {
	api      domain.BookingReader
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(api domain.BookingReader, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{api: api, cache: c, cacheTTL: ttl}
}

var _ domain.BookingReader = (*QueryService)(nil)

/********** cache keys **********/

func hotelsAllKey() string { return "hotels:all" }
func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }
func roomKey(id int64) string { return fmt.Sprintf("room:%d", id) }
func roomReviewsKey(id int64) string { return fmt.Sprintf("reviews:room:%d", id) }

// hotelsSearchKey keeps the caller's case: the backend's matching rules are
// its own, so "Sea" and "sea" are cached as separate searches.
func hotelsSearchKey(keyword, city string) string {
	return fmt.Sprintf("hotels:search:%s|%s", keyword, city)
}

/********** reads **********/

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	return cached(ctx, s, hotelsAllKey(), func() ([]domain.HotelRecord, error) {
		return s.api.ListHotels(ctx)
	})
}

func (s *QueryService) SearchHotels(ctx context.Context, keyword, city string) ([]domain.HotelRecord, error) {
	return cached(ctx, s, hotelsSearchKey(keyword, city), func() ([]domain.HotelRecord, error) {
		return s.api.SearchHotels(ctx, keyword, city)
	})
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.HotelRecord, error) {
	return cached(ctx, s, hotelKey(id), func() (domain.HotelRecord, error) {
		return s.api.GetHotel(ctx, id)
	})
}

func (s *QueryService) GetRoom(ctx context.Context, id int64) (domain.RoomRecord, error) {
	return cached(ctx, s, roomKey(id), func() (domain.RoomRecord, error) {
		return s.api.GetRoom(ctx, id)
	})
}

func (s *QueryService) ListRoomReviews(ctx context.Context, roomID int64) ([]domain.ReviewRecord, error) {
	return cached(ctx, s, roomReviewsKey(roomID), func() ([]domain.ReviewRecord, error) {
		return s.api.ListRoomReviews(ctx, roomID)
	})
}

// InvalidateRoom drops the cached room and its reviews.
func (s *QueryService) InvalidateRoom(ctx context.Context, roomID int64) {
	if !s.caching() {
		return
	}
	for _, k := range []string{roomKey(roomID), roomReviewsKey(roomID)} {
		if err := s.cache.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache del failed")
		}
	}
}

func (s *QueryService) caching() bool { return s.cache != nil && s.cacheTTL > 0 }

// cached serves key from the cache or loads it; cache errors degrade to a load.
func cached[T any](ctx context.Context, s *QueryService, key string, load func() (T, error)) (T, error) {
	if !s.caching() {
		return load()
	}
	var v T
	if ok, err := s.cache.Get(ctx, key, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, max(1, int(s.cacheTTL.Seconds()))); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return v, nil
}
