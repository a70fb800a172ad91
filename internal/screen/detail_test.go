package screen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/screen"
)

func TestHotelDetail_Load(t *testing.T) {
	be := &stubReader{hotels: map[int64]domain.HotelRecord{5: hotel(5, "Lotus", "Hue")}}
	d := screen.NewHotelDetail(app.NewDetailService(be))

	require.NoError(t, d.Load(context.Background(), "5"))
	st := d.State()
	require.NotNil(t, st.Detail)
	assert.Equal(t, "Lotus", st.Detail.Hotel.HotelName)
	assert.Empty(t, st.Alert)

	d.ToggleFavorite()
	assert.True(t, d.State().Favorite)

	// a reload starts unfavorited
	require.NoError(t, d.Load(context.Background(), "5"))
	assert.False(t, d.State().Favorite)
}

func TestHotelDetail_InvalidAndMissingIDsGoBack(t *testing.T) {
	d := screen.NewHotelDetail(app.NewDetailService(&stubReader{}))

	for _, raw := range []string{"abc", "404"} {
		err := d.Load(context.Background(), raw)
		require.Error(t, err, raw)
		st := d.State()
		assert.Nil(t, st.Detail, raw)
		assert.Equal(t, screen.GenericAlert, st.Alert, raw)
	}
}

func TestRoomDetail_Load(t *testing.T) {
	be := &stubReader{
		rooms:   map[int64]domain.RoomRecord{3: {RoomID: 3, RoomType: "Deluxe", HotelName: "Lotus"}},
		reviews: map[int64][]domain.ReviewRecord{3: {{ReviewID: 1, Rating: 5, Comment: "great", RoomID: 3}}},
	}
	d := screen.NewRoomDetail(app.NewDetailService(be))

	require.NoError(t, d.Load(context.Background(), "3"))
	st := d.State()
	require.NotNil(t, st.Detail)
	assert.Equal(t, "Deluxe", st.Detail.Room.RoomType)
	assert.Len(t, st.Detail.Reviews, 1)
}
