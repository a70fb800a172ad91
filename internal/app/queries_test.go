package app_test

import (
	"context"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	be := &fakeBackend{hotels: map[int64]domain.HotelRecord{42: {HotelID: 42, HotelName: "Hotel Test"}}}
	cache := &fakeCache{}
	q := app.NewQueryService(be, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	h, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.HotelID != 42 || h.HotelName != "Hotel Test" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate backend to ensure second read indeed comes from cache
	be.hotels[42] = domain.HotelRecord{HotelID: 42, HotelName: "SHOULD NOT SEE THIS"}

	h2, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.HotelName != "Hotel Test" {
		t.Fatalf("expected cached name, got %s", h2.HotelName)
	}
}

func TestSearchHotels_KeyedByKeywordAndCity(t *testing.T) {
	be := &fakeBackend{byCity: map[string][]domain.HotelRecord{
		"Hue":   {hotel(1, "", "Hue")},
		"Hanoi": {hotel(2, "", "Hanoi")},
	}}
	q := app.NewQueryService(be, &fakeCache{}, time.Minute)

	a, _ := q.SearchHotels(context.Background(), "", "Hue")
	b, _ := q.SearchHotels(context.Background(), "", "Hanoi")
	again, _ := q.SearchHotels(context.Background(), "", "Hue")

	if a[0].HotelID != 1 || b[0].HotelID != 2 || again[0].HotelID != 1 {
		t.Fatalf("unexpected results: %v %v %v", a, b, again)
	}
	if len(be.searches) != 2 {
		t.Fatalf("expected 2 backend searches, got %d", len(be.searches))
	}
}

func TestSearchHotels_KeywordCaseIsPartOfKey(t *testing.T) {
	be := &fakeBackend{byWord: map[string][]domain.HotelRecord{
		"Sea": {hotel(1, "Sea View", "Hue")},
		"sea": {hotel(2, "seaside", "Hue")},
	}}
	q := app.NewQueryService(be, &fakeCache{}, time.Minute)

	upper, _ := q.SearchHotels(context.Background(), "Sea", "")
	lower, _ := q.SearchHotels(context.Background(), "sea", "")

	if len(upper) != 1 || upper[0].HotelID != 1 || len(lower) != 1 || lower[0].HotelID != 2 {
		t.Fatalf("case variants shared a cache entry: %v %v", upper, lower)
	}
	if len(be.searches) != 2 {
		t.Fatalf("expected 2 backend searches, got %d", len(be.searches))
	}
}

func TestQueryService_ErrorsAreNotCached(t *testing.T) {
	be := &fakeBackend{}
	cache := &fakeCache{}
	q := app.NewQueryService(be, cache, time.Minute)

	if _, err := q.GetRoom(context.Background(), 1); err == nil {
		t.Fatalf("expected not found")
	}
	if len(cache.store) != 0 {
		t.Fatalf("error result must not be cached: %v", cache.store)
	}
}

func TestQueryService_NilCachePassthrough(t *testing.T) {
	be := &fakeBackend{all: []domain.HotelRecord{hotel(1, "", "")}}
	q := app.NewQueryService(be, nil, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := q.ListHotels(context.Background()); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	if be.listHits != 2 {
		t.Fatalf("expected passthrough, got %d hits", be.listHits)
	}
	q.InvalidateRoom(context.Background(), 1) // no-op without cache
}

func TestWarmService_WarmsDetailAndCity(t *testing.T) {
	be := &fakeBackend{
		all:    []domain.HotelRecord{hotel(1, "", "Hue"), hotel(2, "", "")},
		hotels: map[int64]domain.HotelRecord{1: hotel(1, "", "Hue")},
		byCity: map[string][]domain.HotelRecord{"Hue": {hotel(1, "", "Hue")}},
	}
	cache := &fakeCache{}
	w := app.NewWarmService(app.NewQueryService(be, cache, time.Minute))

	hs, err := w.Hotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for _, h := range hs {
		if err := w.WarmHotel(context.Background(), h); err != nil {
			t.Fatalf("warm %d: %v", h.HotelID, err)
		}
	}
	for _, k := range []string{"hotels:all", "hotel:1", "hotels:search:|Hue"} {
		if _, ok := cache.store[k]; !ok {
			t.Fatalf("expected %s cached, have %v", k, cache.store)
		}
	}
}
