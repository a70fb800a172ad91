package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// Query is one search/filter request from a list screen.
type Query struct {
	Keyword string
	Cities  []string
	Sort    domain.SortKey
}

const (
	strategyAll     = "all"
	strategyKeyword = "keyword"
	strategyCity    = "city"
)

// Pipeline decides how to fetch hotels for a Query and turns the records into view models.
type Pipeline struct {
	api domain.BookingReader
}

func NewPipeline(api domain.BookingReader) *Pipeline {
	return &Pipeline{api: api}
}

// Search runs q. On any backend failure it returns an empty list together with the error.
func (p *Pipeline) Search(ctx context.Context, q Query) ([]domain.HotelViewModel, error) {
	recs, err := p.Records(ctx, q)
	if err != nil {
		return []domain.HotelViewModel{}, err
	}
	return MapHotels(recs), nil
}

// Records is Search without the final mapping; screens that also need the raw
// records (locality options) use it.
func (p *Pipeline) Records(ctx context.Context, q Query) ([]domain.HotelRecord, error) {
	keyword := strings.TrimSpace(q.Keyword)
	cities := selectedCities(q.Cities)

	var (
		strategy string
		recs     []domain.HotelRecord
		err      error
	)
	switch {
	case len(cities) > 0:
		strategy = strategyCity
		recs, err = p.byCities(ctx, keyword, cities)
	case keyword != "":
		strategy = strategyKeyword
		recs, err = p.api.SearchHotels(ctx, keyword, "")
	default:
		strategy = strategyAll
		recs, err = p.api.ListHotels(ctx)
	}
	observability.ObservePipeline(strategy, err)
	if err != nil {
		log.Warn().Err(err).
			Str("strategy", strategy).
			Str("keyword", keyword).
			Strs("cities", cities).
			Msg("hotel search failed")
		return []domain.HotelRecord{}, err
	}
	return ApplySort(recs, q.Sort), nil
}

// byCities searches one city at a time, in selection order, keeping only exact
// (normalized) city matches, then merges with first-wins dedup by hotel id.
func (p *Pipeline) byCities(ctx context.Context, keyword string, cities []string) ([]domain.HotelRecord, error) {
	var merged []domain.HotelRecord
	for _, city := range cities {
		recs, err := p.api.SearchHotels(ctx, keyword, city)
		if err != nil {
			return nil, fmt.Errorf("search city %q: %w", city, err)
		}
		merged = append(merged, filterCity(recs, city)...)
	}
	return DedupHotels(merged), nil
}

// filterCity guards against the backend's city search being a substring match.
func filterCity(in []domain.HotelRecord, city string) []domain.HotelRecord {
	want := normalizeCity(city)
	out := make([]domain.HotelRecord, 0, len(in))
	for _, h := range in {
		if h.City == "" {
			continue
		}
		if normalizeCity(h.City) == want {
			out = append(out, h)
		}
	}
	return out
}

// DedupHotels keeps the first record for each hotel id, preserving order.
func DedupHotels(in []domain.HotelRecord) []domain.HotelRecord {
	seen := make(map[int64]struct{}, len(in))
	out := make([]domain.HotelRecord, 0, len(in))
	for _, h := range in {
		if _, ok := seen[h.HotelID]; ok {
			continue
		}
		seen[h.HotelID] = struct{}{}
		out = append(out, h)
	}
	return out
}

// selectedCities drops blank selections.
func selectedCities(in []string) []string {
	var out []string
	for _, c := range in {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
