package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func ids(list []domain.HotelViewModel) []string {
	out := make([]string, 0, len(list))
	for _, h := range list {
		out = append(out, h.ID)
	}
	return out
}

func TestPipeline_NoFilterListsAll(t *testing.T) {
	be := &fakeBackend{all: []domain.HotelRecord{hotel(1, "A", "Hanoi"), hotel(2, "B", "Hue")}}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Keyword: "   "})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(out))
	assert.Equal(t, 1, be.listHits)
	assert.Empty(t, be.searches)
}

func TestPipeline_KeywordIsTrimmed(t *testing.T) {
	be := &fakeBackend{byWord: map[string][]domain.HotelRecord{"sea": {hotel(4, "Sea View", "Nha Trang")}}}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Keyword: "  sea "})

	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(out))
	assert.Equal(t, []searchCall{{keyword: "sea"}}, be.searches)
	assert.Zero(t, be.listHits)
}

func TestPipeline_CityExactNormalizedMatch(t *testing.T) {
	be := &fakeBackend{byCity: map[string][]domain.HotelRecord{
		"Hanoi": {hotel(1, "", "Hanoi"), hotel(2, "", " hanoi "), hotel(3, "", "Ha Noi"), hotel(4, "", "  Hanoi\t")},
	}}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Cities: []string{"Hanoi"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, ids(out))
}

func TestPipeline_CityCollapsesInternalWhitespace(t *testing.T) {
	be := &fakeBackend{byCity: map[string][]domain.HotelRecord{
		"Da  Nang": {hotel(1, "", "Da Nang"), hotel(2, "", "Da   Nang"), hotel(3, "", "DaNang")},
	}}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Cities: []string{"Da  Nang"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(out))
}

func TestPipeline_CityMergeDedupsFirstWins(t *testing.T) {
	first := hotel(42, "From Hanoi", "Hanoi")
	dup := hotel(42, "From Hue", "Hue")
	be := &fakeBackend{byCity: map[string][]domain.HotelRecord{
		"Hanoi": {first, hotel(1, "", "Hanoi")},
		"Hue":   {dup, hotel(2, "", "Hue")},
	}}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Cities: []string{"Hanoi", "Hue"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"42", "1", "2"}, ids(out))
	assert.Equal(t, "From Hanoi", out[0].Name)
	// sequential, in selection order
	assert.Equal(t, []searchCall{{city: "Hanoi"}, {city: "Hue"}}, be.searches)
}

func TestPipeline_CityCarriesKeyword(t *testing.T) {
	be := &fakeBackend{byCity: map[string][]domain.HotelRecord{"Hue": {hotel(2, "", "Hue")}}}

	_, err := app.NewPipeline(be).Search(context.Background(), app.Query{Keyword: "spa", Cities: []string{"", "Hue"}})

	require.NoError(t, err)
	assert.Equal(t, []searchCall{{keyword: "spa", city: "Hue"}}, be.searches)
}

func TestPipeline_FailureYieldsEmptyList(t *testing.T) {
	be := &fakeBackend{err: errors.New("connection refused")}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{})

	require.Error(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPipeline_CityFailureStopsLoop(t *testing.T) {
	be := &fakeBackend{
		errCity: "Hue",
		byCity:  map[string][]domain.HotelRecord{"Hanoi": {hotel(1, "", "Hanoi")}},
	}

	out, err := app.NewPipeline(be).Search(context.Background(), app.Query{Cities: []string{"Hue", "Hanoi"}})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, out)
	assert.Len(t, be.searches, 1)
}

func TestDedupHotels(t *testing.T) {
	out := app.DedupHotels([]domain.HotelRecord{hotel(1, "a", ""), hotel(2, "", ""), hotel(1, "b", "")})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].HotelName)
}
