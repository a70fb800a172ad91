package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/booking"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// Handlers exposes the booking read models and commands as JSON.
type Handlers struct {
	Pipeline     *app.Pipeline
	Home         *app.HomeService
	Detail       *app.DetailService
	Reviews      *app.ReviewService
	Registration *app.RegistrationService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type registerBody struct {
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	DateOfBirth string        `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      domain.Gender `json:"gender"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/home", h.home)
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/localities", h.localities)
		r.Get("/rooms/{id}", h.getRoom)
		r.Post("/rooms/{id}/reviews", h.createReview)
		r.Post("/register", h.register)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps app and backend errors onto problem responses. The backend's
// own message is passed through as the detail when it sent one.
func writeError(w http.ResponseWriter, err error) {
	detail := booking.Message(err)
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoData):
		writeProblem(w, http.StatusNotFound, "Not Found", detail)
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", detail)
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", detail)
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Gateway Timeout", "booking backend timed out")
	default:
		log.Error().Err(err).Msg("booking backend call failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", detail)
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with a weak ETag, answering 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeCreated(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write created body")
	}
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Home.Feed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, feed)
}

// listHotels serves search and filter: ?keyword=&city=&city=&sort=.
// city may repeat or hold a comma separated list.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	var cities []string
	for _, v := range qs["city"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cities = append(cities, c)
			}
		}
	}
	q := app.Query{
		Keyword: qs.Get("keyword"),
		Cities:  cities,
		Sort:    domain.ParseSortKey(qs.Get("sort")),
	}
	out, err := h.Pipeline.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) localities(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Pipeline.Records(r.Context(), app.Query{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, app.LocalityOptions(recs))
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	d, err := h.Detail.Hotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, d)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	d, err := h.Detail.Room(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, d)
}

// createReview forwards the caller's Authorization header to the backend.
func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON {rating, comment}")
		return
	}
	ctx := r.Context()
	if tok := r.Header.Get("Authorization"); tok != "" {
		ctx = domain.WithAuthToken(ctx, tok)
	}
	rv, err := h.Reviews.Submit(ctx, chi.URLParam(r, "id"), body.Rating, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, rv)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON registration form")
		return
	}
	dob, err := time.Parse("2006-01-02", body.DateOfBirth)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request", "dateOfBirth must be YYYY-MM-DD")
		return
	}
	res, err := h.Registration.Register(r.Context(), domain.RegistrationForm{
		FullName:    body.FullName,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		DateOfBirth: dob,
		Gender:      body.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}
