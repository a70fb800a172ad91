package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type DetailService struct {
	api domain.BookingReader
}

func NewDetailService(api domain.BookingReader) *DetailService { return &DetailService{api: api} }

// ParseID parses a route id. Non-integers yield ErrInvalidID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

func (s *DetailService) Hotel(ctx context.Context, rawID string) (domain.HotelDetail, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return domain.HotelDetail{}, err
	}
	h, err := s.api.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelDetail{}, fmt.Errorf("load hotel %d: %w", id, err)
	}
	return mapHotelDetail(h), nil
}

// Room loads a room and its reviews. Reviews are best-effort: a failure there
// is logged and leaves the list empty.
func (s *DetailService) Room(ctx context.Context, rawID string) (domain.RoomDetail, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return domain.RoomDetail{}, err
	}
	r, err := s.api.GetRoom(ctx, id)
	if err != nil {
		return domain.RoomDetail{}, fmt.Errorf("load room %d: %w", id, err)
	}
	reviews, err := s.api.ListRoomReviews(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("room_id", id).Msg("load reviews failed")
		reviews = nil
	}
	return mapRoomDetail(r, reviews), nil
}
