package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/booking"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/screen"
	"hotel_booking/internal/shared"
)

const help = `commands:
  home                 load the home feed
  type <text>          search as you type (debounced)
  filter [city,city]   filter by localities; no cities lists all
  localities           list locality options
  sort <key>           popularity|nearby|rating|price-low|price-high
  fav <id>             toggle favorite on the current search list
  hotel <id>           hotel detail
  room <id>            room detail with reviews
  quit`

func main() {
	cfg := shared.Load()
	base := flag.String("base", cfg.BookingBase, "booking backend base URL")
	token := flag.String("token", cfg.BookingToken, "bearer token")
	debounce := flag.Duration("debounce", cfg.SearchDebounce, "search quiet period")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log.Logger = observability.NewLogger("dev", *level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := booking.New(*base, *token, cfg.BookingRPS, cfg.BookingTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	p := app.NewPipeline(client)
	details := app.NewDetailService(client)

	b := &browser{
		out:    os.Stdout,
		home:   screen.NewHome(app.NewHomeService(p)),
		search: screen.NewSearch(ctx, p, *debounce),
		filter: screen.NewFilter(p),
		hotel:  screen.NewHotelDetail(details),
		room:   screen.NewRoomDetail(details),
	}
	b.search.OnChange(func(st screen.SearchState) {
		fmt.Fprintf(b.out, "\nresults for %q:\n", strings.TrimSpace(st.Keyword))
		b.printHotels(st.Hotels, st.Alert)
		fmt.Fprint(b.out, "> ")
	})
	defer b.search.Close()

	fmt.Fprintln(b.out, help)
	b.loop(ctx, os.Stdin)
}

type browser struct {
	out    io.Writer
	home   *screen.Home
	search *screen.Search
	filter *screen.Filter
	hotel  *screen.HotelDetail
	room   *screen.RoomDetail
}

func (b *browser) loop(ctx context.Context, in io.Reader) {
	sc := bufio.NewScanner(in)
	fmt.Fprint(b.out, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		switch cmd {
		case "":
		case "quit", "exit":
			return
		case "home":
			b.showHome(ctx)
		case "type":
			b.search.Type(arg)
		case "filter":
			b.applyFilter(ctx, arg)
		case "localities":
			if len(b.filter.Localities()) == 0 {
				_ = b.filter.Load(ctx)
			}
			fmt.Fprintln(b.out, strings.Join(b.filter.Localities(), "\n"))
		case "sort":
			b.filter.SelectSort(domain.ParseSortKey(arg))
			st := b.filter.State()
			b.printHotels(st.Hotels, st.Alert)
		case "fav":
			b.search.ToggleFavorite(arg)
			b.printHotels(b.search.State().Hotels, "")
		case "hotel":
			b.showHotel(ctx, arg)
		case "room":
			b.showRoom(ctx, arg)
		default:
			fmt.Fprintln(b.out, help)
		}
		fmt.Fprint(b.out, "> ")
	}
}

func (b *browser) showHome(ctx context.Context) {
	_ = b.home.Load(ctx)
	st := b.home.State()
	if st.Alert != "" {
		fmt.Fprintln(b.out, st.Alert)
		return
	}
	fmt.Fprintln(b.out, "best:")
	b.printHotels(st.Feed.Best, "")
	fmt.Fprintln(b.out, "nearby:")
	b.printHotels(st.Feed.Nearby, "")
	names := make([]string, 0, len(st.Feed.Cities))
	for _, c := range st.Feed.Cities {
		names = append(names, c.Name)
	}
	fmt.Fprintf(b.out, "cities: %s\n", strings.Join(names, ", "))
}

func (b *browser) applyFilter(ctx context.Context, arg string) {
	var cities []string
	for _, c := range strings.Split(arg, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	_ = b.filter.ApplyLocalities(ctx, cities)
	st := b.filter.State()
	b.printHotels(st.Hotels, st.Alert)
}

func (b *browser) showHotel(ctx context.Context, id string) {
	_ = b.hotel.Load(ctx, id)
	st := b.hotel.State()
	if st.Detail == nil {
		fmt.Fprintln(b.out, st.Alert)
		return
	}
	d := st.Detail
	fmt.Fprintf(b.out, "%s\n  %s\n  %s\n  price: %s\n  %s\n", d.Hotel.HotelName, d.DisplayAddress, d.Location, d.PriceLabel, d.Hotel.Description)
}

func (b *browser) showRoom(ctx context.Context, id string) {
	_ = b.room.Load(ctx, id)
	st := b.room.State()
	if st.Detail == nil {
		fmt.Fprintln(b.out, st.Alert)
		return
	}
	d := st.Detail
	fmt.Fprintf(b.out, "%s (%s) %s  %.0f/night, up to %d guests\n",
		d.Room.RoomType, d.HotelLabel, strings.Repeat("*", d.FilledStars), d.Room.PricePerNight, d.Room.Capacity)
	for _, r := range d.Reviews {
		fmt.Fprintf(b.out, "  [%d] %s: %s (%s)\n", r.Rating, r.UserName, r.Comment, r.CreatedAt.Format(time.DateOnly))
	}
}

func (b *browser) printHotels(hs []domain.HotelViewModel, alert string) {
	if alert != "" {
		fmt.Fprintln(b.out, alert)
		return
	}
	if len(hs) == 0 {
		fmt.Fprintln(b.out, "  (no hotels)")
		return
	}
	for _, h := range hs {
		fav := " "
		if h.IsFavorite {
			fav = "♥"
		}
		fmt.Fprintf(b.out, "%s %-4s %-30s %-28s %8.0f\n", fav, h.ID, h.Name, h.Location, h.Price)
	}
}
