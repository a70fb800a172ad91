package app_test

import (
	"context"
	"sync"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

type searchCall struct{ keyword, city string }

type fakeBackend struct {
	mu       sync.Mutex
	all      []domain.HotelRecord
	byCity   map[string][]domain.HotelRecord
	byWord   map[string][]domain.HotelRecord
	hotels   map[int64]domain.HotelRecord
	rooms    map[int64]domain.RoomRecord
	reviews  map[int64][]domain.ReviewRecord
	err      error
	errCity  string
	revErr   error
	listHits int
	searches []searchCall
	created  []domain.ReviewRequest
	regs     []domain.RegisterRequest
}

func (f *fakeBackend) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

func (f *fakeBackend) SearchHotels(ctx context.Context, keyword, city string) ([]domain.HotelRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{keyword, city})
	if f.err != nil || (f.errCity != "" && f.errCity == city) {
		if f.err != nil {
			return nil, f.err
		}
		return nil, domain.ErrForbidden
	}
	if city != "" {
		return f.byCity[city], nil
	}
	return f.byWord[keyword], nil
}

func (f *fakeBackend) GetHotel(ctx context.Context, id int64) (domain.HotelRecord, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.HotelRecord{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeBackend) GetRoom(ctx context.Context, id int64) (domain.RoomRecord, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.RoomRecord{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeBackend) ListRoomReviews(ctx context.Context, roomID int64) ([]domain.ReviewRecord, error) {
	if f.revErr != nil {
		return nil, f.revErr
	}
	return f.reviews[roomID], nil
}

func (f *fakeBackend) CreateReview(ctx context.Context, req domain.ReviewRequest) (domain.ReviewRecord, error) {
	if f.err != nil {
		return domain.ReviewRecord{}, f.err
	}
	f.created = append(f.created, req)
	return domain.ReviewRecord{ReviewID: 1, RoomID: req.RoomID, Rating: req.Rating, Comment: req.Comment}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResult, error) {
	f.regs = append(f.regs, req)
	return domain.RegisterResult{Message: "ok", PhoneNumber: req.PhoneNumber}, nil
}

// fakeCache stores values by key; Get copies through a type switch like the real JSON round trip would.
type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.HotelRecord:
		*d = v.([]domain.HotelRecord)
	case *domain.HotelRecord:
		*d = v.(domain.HotelRecord)
	case *domain.RoomRecord:
		*d = v.(domain.RoomRecord)
	case *[]domain.ReviewRecord:
		*d = v.([]domain.ReviewRecord)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func hotel(id int64, name, city string) domain.HotelRecord {
	return domain.HotelRecord{HotelID: id, HotelName: name, City: city, Country: "VN"}
}

func ptr[T any](v T) *T { return &v }
