package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

/********** reviews **********/

type ReviewService struct {
	api     domain.BookingWriter
	queries *QueryService
}

// NewReviewService wires the writer; queries may be nil when nothing is cached.
func NewReviewService(api domain.BookingWriter, q *QueryService) *ReviewService {
	return &ReviewService{api: api, queries: q}
}

// Submit validates and posts a review for the room id taken from a route
// parameter. A non-numeric id becomes 0 and is left to the backend to reject.
func (s *ReviewService) Submit(ctx context.Context, rawRoomID string, rating int, comment string) (domain.ReviewRecord, error) {
	roomID, err := strconv.ParseInt(strings.TrimSpace(rawRoomID), 10, 64)
	if err != nil {
		roomID = 0
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.ReviewRecord{}, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return domain.ReviewRecord{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	rv, err := s.api.CreateReview(ctx, domain.ReviewRequest{RoomID: roomID, Rating: rating, Comment: comment})
	if err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("create review for room %d: %w", roomID, err)
	}
	// room rating and review list changed server-side
	if s.queries != nil {
		s.queries.InvalidateRoom(ctx, roomID)
	}
	log.Info().Int64("room_id", roomID).Int("rating", rating).Msg("review submitted")
	return rv, nil
}

/********** registration **********/

var phonePattern = regexp.MustCompile(`^0\d{9}$`)

type RegistrationService struct {
	api domain.BookingWriter
}

func NewRegistrationService(api domain.BookingWriter) *RegistrationService {
	return &RegistrationService{api: api}
}

// Register validates the form and posts it with a digits-only phone number.
func (s *RegistrationService) Register(ctx context.Context, f domain.RegistrationForm) (domain.RegisterResult, error) {
	req, err := BuildRegisterRequest(f)
	if err != nil {
		return domain.RegisterResult{}, err
	}
	res, err := s.api.Register(ctx, req)
	if err != nil {
		return domain.RegisterResult{}, fmt.Errorf("register: %w", err)
	}
	return res, nil
}

func BuildRegisterRequest(f domain.RegistrationForm) (domain.RegisterRequest, error) {
	if strings.TrimSpace(f.FullName) == "" || strings.TrimSpace(f.Email) == "" || f.PhoneNumber == "" {
		return domain.RegisterRequest{}, fmt.Errorf("%w: full name, email and phone number are required", domain.ErrValidation)
	}
	phone := digits(f.PhoneNumber)
	if !phonePattern.MatchString(phone) {
		return domain.RegisterRequest{}, fmt.Errorf("%w: phone number must start with 0 and have 10 digits", domain.ErrValidation)
	}
	gender := f.Gender
	if gender == "" {
		gender = domain.GenderMale
	}
	if gender != domain.GenderMale && gender != domain.GenderFemale {
		return domain.RegisterRequest{}, fmt.Errorf("%w: gender must be Male or Female", domain.ErrValidation)
	}
	if f.DateOfBirth.IsZero() {
		return domain.RegisterRequest{}, fmt.Errorf("%w: date of birth is required", domain.ErrValidation)
	}
	return domain.RegisterRequest{
		FullName:    strings.TrimSpace(f.FullName),
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: phone,
		DateOfBirth: f.DateOfBirth.Format("2006-01-02"),
		Gender:      gender,
	}, nil
}

// FormatPhone renders typed input as "(012) 345-6789", forcing a leading 0 and
// at most 10 digits.
func FormatPhone(text string) string {
	d := digits(text)
	if d == "" {
		return ""
	}
	if d[0] != '0' {
		return "0" + d[:min(len(d), 9)]
	}
	d = d[:min(len(d), 10)]
	switch {
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

/********** cache warming **********/

// WarmService preloads the shared cache so the first screen loads are served warm.
type WarmService struct {
	queries *QueryService
}

func NewWarmService(q *QueryService) *WarmService { return &WarmService{queries: q} }

// Hotels loads the full list (and caches it) and returns it for per-hotel warming.
func (s *WarmService) Hotels(ctx context.Context) ([]domain.HotelRecord, error) {
	return s.queries.ListHotels(ctx)
}

// WarmHotel caches the detail record of one hotel and the per-city search of its city.
// A hotel that vanished between list and detail is not an error.
func (s *WarmService) WarmHotel(ctx context.Context, h domain.HotelRecord) error {
	if _, err := s.queries.GetHotel(ctx, h.HotelID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNoData) {
			log.Debug().Int64("id", h.HotelID).Msg("hotel gone, skipping")
			return nil
		}
		return err
	}
	if h.City != "" {
		if _, err := s.queries.SearchHotels(ctx, "", h.City); err != nil {
			return fmt.Errorf("warm city %q: %w", h.City, err)
		}
	}
	return nil
}
