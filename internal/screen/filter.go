package screen

import (
	"context"
	"slices"
	"strings"
	"sync"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type FilterState struct {
	Hotels  []domain.HotelViewModel
	Loading bool
	Sort    domain.SortKey
	Cities  []string
	Alert   string
}

// Filter is the sort + locality screen.
type Filter struct {
	pipeline *app.Pipeline

	mu    sync.Mutex
	guard fetchGuard
	st    FilterState
	// records backs the current list so a sort change needs no refetch.
	records []domain.HotelRecord
	// all is the last list-all result; locality options come from it.
	all []domain.HotelRecord
}

func NewFilter(p *app.Pipeline) *Filter {
	return &Filter{
		pipeline: p,
		st:       FilterState{Hotels: []domain.HotelViewModel{}, Sort: domain.SortPopularity},
	}
}

// Load lists every hotel and clears the locality selection.
func (f *Filter) Load(ctx context.Context) error {
	f.mu.Lock()
	f.st.Cities = nil
	f.mu.Unlock()
	return f.run(ctx, nil)
}

// ApplyLocalities searches the selected cities. A selection with no
// non-blank city is a Load.
func (f *Filter) ApplyLocalities(ctx context.Context, cities []string) error {
	cities = slices.DeleteFunc(slices.Clone(cities), func(c string) bool { return strings.TrimSpace(c) == "" })
	if len(cities) == 0 {
		return f.Load(ctx)
	}
	f.mu.Lock()
	f.st.Cities = slices.Clone(cities)
	f.mu.Unlock()
	return f.run(ctx, cities)
}

func (f *Filter) ClearLocalities(ctx context.Context) error { return f.Load(ctx) }

// SelectSort reorders what is already loaded.
func (f *Filter) SelectSort(key domain.SortKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.Sort = key
	f.st.Hotels = app.MapHotels(app.ApplySort(f.records, key))
}

// Localities lists the cities of the last full load, sorted.
func (f *Filter) Localities() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return app.LocalityOptions(f.all)
}

func (f *Filter) ToggleFavorite(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.Hotels = app.ToggleFavorite(f.st.Hotels, id)
}

func (f *Filter) State() FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.st
	st.Hotels = slices.Clone(f.st.Hotels)
	st.Cities = slices.Clone(f.st.Cities)
	return st
}

func (f *Filter) run(parent context.Context, cities []string) error {
	f.mu.Lock()
	ctx, gen := f.guard.begin(parent)
	q := app.Query{Cities: cities, Sort: f.st.Sort}
	f.st.Loading = true
	f.mu.Unlock()

	recs, err := f.pipeline.Records(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.guard.current(gen) {
		observability.ObserveStale("filter")
		return ErrSuperseded
	}
	f.guard.finish()
	f.records = recs
	if len(cities) == 0 {
		f.all = recs
	}
	f.st.Hotels = app.MapHotels(recs)
	f.st.Loading = false
	f.st.Alert = alertFor(err)
	return err
}
