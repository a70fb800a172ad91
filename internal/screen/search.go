package screen

import (
	"context"
	"slices"
	"sync"
	"time"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
)

type SearchState struct {
	Hotels  []domain.HotelViewModel
	Loading bool
	Keyword string
	Alert   string
}

// Search is the free-text search screen. Typing is debounced; only the last
// keystroke of a burst reaches the backend.
type Search struct {
	pipeline *app.Pipeline
	deb      *shared.Debouncer
	// bg is the parent context for debounced fetches, which have no caller ctx.
	bg context.Context

	mu       sync.Mutex
	guard    fetchGuard
	st       SearchState
	onChange func(SearchState)
	closed   bool
}

func NewSearch(bg context.Context, p *app.Pipeline, delay time.Duration) *Search {
	return &Search{
		pipeline: p,
		deb:      shared.NewDebouncer(delay),
		bg:       bg,
		st:       SearchState{Hotels: []domain.HotelViewModel{}},
	}
}

// OnChange registers fn to receive a snapshot after every committed fetch.
// fn runs on the goroutine that committed, which may be the debounce timer.
func (s *Search) OnChange(fn func(SearchState)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Load lists every hotel.
func (s *Search) Load(ctx context.Context) error {
	return s.run(ctx, "")
}

// Type records the current input and restarts the quiet period.
func (s *Search) Type(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.st.Keyword = text
	s.mu.Unlock()

	s.deb.Trigger(func() {
		observability.ObserveDebounceFire()
		_ = s.run(s.bg, text)
	})
}

func (s *Search) ToggleFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Hotels = app.ToggleFavorite(s.st.Hotels, id)
}

func (s *Search) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close drops any pending keystroke and cancels the in-flight fetch. A
// debounced fetch that was already firing is dropped too.
func (s *Search) Close() {
	s.deb.Cancel()
	s.mu.Lock()
	s.closed = true
	s.guard.stop()
	s.st.Loading = false
	s.mu.Unlock()
}

func (s *Search) run(parent context.Context, keyword string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	ctx, gen := s.guard.begin(parent)
	s.st.Loading = true
	s.mu.Unlock()

	hotels, err := s.pipeline.Search(ctx, app.Query{Keyword: keyword})

	s.mu.Lock()
	if !s.guard.current(gen) {
		s.mu.Unlock()
		observability.ObserveStale("search")
		return ErrSuperseded
	}
	s.guard.finish()
	s.st.Hotels = hotels
	s.st.Loading = false
	s.st.Alert = alertFor(err)
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return err
}

func (s *Search) snapshot() SearchState {
	st := s.st
	st.Hotels = slices.Clone(s.st.Hotels)
	return st
}
