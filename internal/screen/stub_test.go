package screen_test

import (
	"context"
	"sync"

	"hotel_booking/internal/domain"
)

type stubReader struct {
	mu       sync.Mutex
	list     func(ctx context.Context, call int) ([]domain.HotelRecord, error)
	search   func(ctx context.Context, keyword, city string) ([]domain.HotelRecord, error)
	hotels   map[int64]domain.HotelRecord
	rooms    map[int64]domain.RoomRecord
	reviews  map[int64][]domain.ReviewRecord
	lists    int
	searches []string
}

func (s *stubReader) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	s.mu.Lock()
	s.lists++
	n, fn := s.lists, s.list
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, n)
}

func (s *stubReader) SearchHotels(ctx context.Context, keyword, city string) ([]domain.HotelRecord, error) {
	s.mu.Lock()
	s.searches = append(s.searches, keyword+"|"+city)
	fn := s.search
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, keyword, city)
}

func (s *stubReader) GetHotel(_ context.Context, id int64) (domain.HotelRecord, error) {
	h, ok := s.hotels[id]
	if !ok {
		return domain.HotelRecord{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *stubReader) GetRoom(_ context.Context, id int64) (domain.RoomRecord, error) {
	r, ok := s.rooms[id]
	if !ok {
		return domain.RoomRecord{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *stubReader) ListRoomReviews(_ context.Context, id int64) ([]domain.ReviewRecord, error) {
	return s.reviews[id], nil
}

func (s *stubReader) counts() (lists int, searches []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, append([]string(nil), s.searches...)
}

func hotel(id int64, name, city string) domain.HotelRecord {
	return domain.HotelRecord{HotelID: id, HotelName: name, City: city, Country: "Vietnam"}
}

func ids(in []domain.HotelViewModel) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		out = append(out, h.ID)
	}
	return out
}

func staticList(recs ...domain.HotelRecord) func(context.Context, int) ([]domain.HotelRecord, error) {
	return func(context.Context, int) ([]domain.HotelRecord, error) { return recs, nil }
}
