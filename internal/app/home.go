package app

import (
	"context"

	"hotel_booking/internal/domain"
)

// bestCount is how many hotels lead the home feed.
const bestCount = 2

type HomeService struct {
	pipeline *Pipeline
}

func NewHomeService(p *Pipeline) *HomeService { return &HomeService{pipeline: p} }

// Feed loads every hotel once and splits it into the home sections.
// On failure every section is empty.
func (s *HomeService) Feed(ctx context.Context) (domain.HomeFeed, error) {
	recs, err := s.pipeline.Records(ctx, Query{})
	if err != nil {
		return EmptyFeed(), err
	}
	return BuildHomeFeed(recs), nil
}

func BuildHomeFeed(recs []domain.HotelRecord) domain.HomeFeed {
	cards := MapHotels(recs)
	n := min(bestCount, len(cards))
	return domain.HomeFeed{
		Best:   cards[:n:n],
		Nearby: append([]domain.HotelViewModel{}, cards[n:]...),
		Cities: ExtractCities(recs),
	}
}

// EmptyFeed is the feed with every section empty.
func EmptyFeed() domain.HomeFeed {
	return domain.HomeFeed{
		Best:   []domain.HotelViewModel{},
		Nearby: []domain.HotelViewModel{},
		Cities: []domain.CityOption{},
	}
}
