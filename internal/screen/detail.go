package screen

import (
	"context"
	"sync"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// DetailState is what a detail screen renders. A nil Detail after a load
// means the screen should go back.
type DetailState[T any] struct {
	Detail   *T
	Loading  bool
	Favorite bool
	Alert    string
}

type detailScreen[T any] struct {
	name string
	load func(ctx context.Context, rawID string) (T, error)

	mu    sync.Mutex
	guard fetchGuard
	st    DetailState[T]
}

// Load fetches the record for rawID. The favorite flag starts off on every load.
func (d *detailScreen[T]) Load(ctx context.Context, rawID string) error {
	d.mu.Lock()
	ctx, gen := d.guard.begin(ctx)
	d.st.Loading = true
	d.mu.Unlock()

	v, err := d.load(ctx, rawID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.guard.current(gen) {
		observability.ObserveStale(d.name)
		return ErrSuperseded
	}
	d.guard.finish()
	d.st = DetailState[T]{Alert: alertFor(err)}
	if err == nil {
		d.st.Detail = &v
	}
	return err
}

func (d *detailScreen[T]) ToggleFavorite() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.Favorite = !d.st.Favorite
}

func (d *detailScreen[T]) State() DetailState[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st
}

type HotelDetail struct {
	detailScreen[domain.HotelDetail]
}

func NewHotelDetail(svc *app.DetailService) *HotelDetail {
	return &HotelDetail{detailScreen[domain.HotelDetail]{name: "hotel_detail", load: svc.Hotel}}
}

type RoomDetail struct {
	detailScreen[domain.RoomDetail]
}

func NewRoomDetail(svc *app.DetailService) *RoomDetail {
	return &RoomDetail{detailScreen[domain.RoomDetail]{name: "room_detail", load: svc.Room}}
}
