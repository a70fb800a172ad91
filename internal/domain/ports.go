package domain

import "context"

// BookingReader is the read side of the booking backend.
type BookingReader interface {
	ListHotels(ctx context.Context) ([]HotelRecord, error)
	SearchHotels(ctx context.Context, keyword, city string) ([]HotelRecord, error)
	GetHotel(ctx context.Context, id int64) (HotelRecord, error)
	GetRoom(ctx context.Context, id int64) (RoomRecord, error)
	ListRoomReviews(ctx context.Context, roomID int64) ([]ReviewRecord, error)
}

type BookingWriter interface {
	CreateReview(ctx context.Context, req ReviewRequest) (ReviewRecord, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResult, error)
}

type BookingAPI interface {
	BookingReader
	BookingWriter
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type authTokenKey struct{}

// WithAuthToken attaches a bearer token for outbound calls made with ctx.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

func AuthToken(ctx context.Context) string {
	s, _ := ctx.Value(authTokenKey{}).(string)
	return s
}
