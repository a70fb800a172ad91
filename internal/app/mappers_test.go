package app_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func TestMapHotels_PreservesLengthAndOrder(t *testing.T) {
	in := []domain.HotelRecord{hotel(3, "C", "Hue"), hotel(1, "A", "Hanoi"), hotel(2, "B", "Hanoi")}

	out := app.MapHotels(in)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"3", "1", "2"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "Hue, VN", out[0].Location)
}

func TestMapHotel_Defaults(t *testing.T) {
	vm := app.MapHotel(domain.HotelRecord{HotelID: 7, HotelName: "Seven"})

	assert.Equal(t, "7", vm.ID)
	assert.Zero(t, vm.Price)
	assert.Equal(t, "", vm.ImageURL)
	assert.Zero(t, vm.Rating)
	assert.Zero(t, vm.ReviewCount)
	assert.False(t, vm.IsFavorite)
}

func TestMapHotel_ImageFallbacks(t *testing.T) {
	h := domain.HotelRecord{HotelID: 1, PricePerNight: ptr(120.5), ImageURLs: []string{"g1", "g2"}}
	assert.Equal(t, "g1", app.MapHotel(h).ImageURL)
	assert.Equal(t, 120.5, app.MapHotel(h).Price)

	h.MainImageURL = ptr("")
	assert.Equal(t, "g1", app.MapHotel(h).ImageURL, "empty main image falls through")

	h.MainImageURL = ptr("main")
	assert.Equal(t, "main", app.MapHotel(h).ImageURL)
}

func TestExtractCities_CapAndOrder(t *testing.T) {
	in := []domain.HotelRecord{
		hotel(1, "", "Hanoi"), hotel(2, "", ""), hotel(3, "", "Hue"), hotel(4, "", "Hanoi"),
		hotel(5, "", "Da Nang"), hotel(6, "", "Hoi An"), hotel(7, "", "Sapa"), hotel(8, "", "Vung Tau"),
	}

	out := app.ExtractCities(in)

	require.Len(t, out, app.MaxCities)
	var names []string
	for i, c := range out {
		names = append(names, c.Name)
		assert.Equal(t, app.CityPlaceholderImage, c.ImageURL)
		assert.Equal(t, string(rune('1'+i)), c.ID)
	}
	assert.Equal(t, []string{"Hanoi", "Hue", "Da Nang", "Hoi An", "Sapa"}, names)
	assert.NotContains(t, names, "")
}

func TestExtractCities_Empty(t *testing.T) {
	assert.Empty(t, app.ExtractCities(nil))
}

func TestLocalityOptions_SortedDistinct(t *testing.T) {
	in := []domain.HotelRecord{hotel(1, "", "Hue"), hotel(2, "", "Da Nang"), hotel(3, "", "Hue"), hotel(4, "", "")}
	assert.Equal(t, []string{"Da Nang", "Hue"}, app.LocalityOptions(in))
}

func TestToggleFavorite_OnlyTarget(t *testing.T) {
	list := app.MapHotels([]domain.HotelRecord{hotel(5, "", ""), hotel(7, "", ""), hotel(9, "", "")})

	out := app.ToggleFavorite(list, "7")

	assert.Equal(t, []bool{false, true, false}, []bool{out[0].IsFavorite, out[1].IsFavorite, out[2].IsFavorite})
	assert.Equal(t, []string{"5", "7", "9"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.False(t, list[1].IsFavorite, "input must not change")

	back := app.ToggleFavorite(out, "7")
	assert.False(t, back[1].IsFavorite)
}

func TestToggleFavorite_UnknownID(t *testing.T) {
	list := app.MapHotels([]domain.HotelRecord{hotel(1, "", "")})
	assert.Equal(t, list, app.ToggleFavorite(list, "404"))
}

func TestApplySort_KeepsFetchOrder(t *testing.T) {
	in := []domain.HotelRecord{
		{HotelID: 1, PricePerNight: ptr(300.0)},
		{HotelID: 2, PricePerNight: ptr(100.0)},
	}
	for _, k := range domain.SortKeys {
		out := app.ApplySort(in, k)
		assert.Equal(t, in, out, string(k))
	}
}

func TestApplySort_ZeroKeyIsPopularity(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	in := []domain.HotelRecord{{HotelID: 1}, {HotelID: 2}}
	assert.Equal(t, in, app.ApplySort(in, ""))
	assert.Equal(t, in, app.ApplySort(in, domain.SortPopularity))
	assert.Empty(t, buf.String())

	app.ApplySort(in, domain.SortRating)
	assert.Contains(t, buf.String(), "sort key has no comparator")
}

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"abc":            "",
		"012":            "(012",
		"01234":          "(012) 34",
		"0123456789":     "(012) 345-6789",
		"012-345-678999": "(012) 345-6789",
		"912345678999":   "0912345678",
	}
	for in, want := range cases {
		assert.Equal(t, want, app.FormatPhone(in), in)
	}
}
