package screen

import (
	"context"
	"sync"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Section string

const (
	SectionBest   Section = "best"
	SectionNearby Section = "nearby"
)

type HomeState struct {
	Feed    domain.HomeFeed
	Loading bool
	Alert   string
}

type Home struct {
	svc *app.HomeService

	mu    sync.Mutex
	guard fetchGuard
	st    HomeState
}

func NewHome(svc *app.HomeService) *Home {
	return &Home{svc: svc, st: HomeState{Feed: app.EmptyFeed()}}
}

func (h *Home) Load(ctx context.Context) error {
	h.mu.Lock()
	ctx, gen := h.guard.begin(ctx)
	h.st.Loading = true
	h.mu.Unlock()

	feed, err := h.svc.Feed(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.guard.current(gen) {
		observability.ObserveStale("home")
		return ErrSuperseded
	}
	h.guard.finish()
	h.st = HomeState{Feed: feed, Alert: alertFor(err)}
	return err
}

// ToggleFavorite flips id within one section only. Unknown sections are ignored.
func (h *Home) ToggleFavorite(section Section, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch section {
	case SectionBest:
		h.st.Feed.Best = app.ToggleFavorite(h.st.Feed.Best, id)
	case SectionNearby:
		h.st.Feed.Nearby = app.ToggleFavorite(h.st.Feed.Nearby, id)
	}
}

func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	// sections are only ever replaced, never mutated in place
	return h.st
}
