package booking

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// Client talks to the hotel-booking backend REST API.
type Client struct {
	base  string
	hc    *http.Client
	token string
	rl    *rate.Limiter
	jwtp  *jwt.Parser
	now   func() time.Time
	// retries is how many extra attempts a GET gets; 0 means a failure surfaces immediately.
	retries int
}

// New builds a client for base (e.g. http://host/api/v1). token is the default
// bearer token; a token carried by the request context takes precedence.
func New(base, token string, rps int, timeout time.Duration) (*Client, error) {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, fmt.Errorf("booking base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("booking base URL: %w", err)
	}
	if rps <= 0 {
		rps = 10
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:  base,
		hc:    &http.Client{Timeout: timeout},
		token: token,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
		jwtp:  jwt.NewParser(),
		now:   time.Now,
	}, nil
}

// WithRetries lets GETs retry up to n more times on 429, 5xx and transport
// errors. Writes are never retried. Callers that show failures to users keep
// the default of no retries.
func (c *Client) WithRetries(n int) *Client {
	c.retries = max(0, n)
	return c
}

// ---- Public API ----

func (c *Client) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	return fetchList[domain.HotelRecord](ctx, c, "hotels.list", "/hotels", nil)
}

// SearchHotels sends only the non-empty parameters.
func (c *Client) SearchHotels(ctx context.Context, keyword, city string) ([]domain.HotelRecord, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if city != "" {
		q.Set("city", city)
	}
	return fetchList[domain.HotelRecord](ctx, c, "hotels.search", "/hotels/search", q)
}

func (c *Client) GetHotel(ctx context.Context, id int64) (domain.HotelRecord, error) {
	return fetchOne[domain.HotelRecord](ctx, c, "hotels.get", fmt.Sprintf("/hotels/%d", id))
}

func (c *Client) GetRoom(ctx context.Context, id int64) (domain.RoomRecord, error) {
	return fetchOne[domain.RoomRecord](ctx, c, "rooms.get", fmt.Sprintf("/rooms/%d", id))
}

func (c *Client) ListRoomReviews(ctx context.Context, roomID int64) ([]domain.ReviewRecord, error) {
	return fetchList[domain.ReviewRecord](ctx, c, "reviews.by_room", fmt.Sprintf("/reviews/room/%d", roomID), nil)
}

// CreateReview requires a bearer token; an expired JWT is rejected before any request is sent.
func (c *Client) CreateReview(ctx context.Context, req domain.ReviewRequest) (domain.ReviewRecord, error) {
	tok, err := c.bearer(ctx)
	if err != nil {
		return domain.ReviewRecord{}, err
	}
	var env envelope[domain.ReviewRecord]
	if err := c.do(ctx, call{endpoint: "reviews.create", method: http.MethodPost, path: "/reviews", body: req, token: tok}, &env); err != nil {
		return domain.ReviewRecord{}, err
	}
	if !env.ok() {
		return domain.ReviewRecord{}, messageErr(env.Message, domain.ErrNoData)
	}
	return *env.Data, nil
}

// Register accepts either success=true or a populated data field, like the backend's register flow.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResult, error) {
	var env envelope[json.RawMessage]
	if err := c.do(ctx, call{endpoint: "auth.register", method: http.MethodPost, path: "/auth/register", body: req}, &env); err != nil {
		return domain.RegisterResult{}, err
	}
	if !env.Success && env.Data == nil {
		return domain.RegisterResult{}, messageErr(env.Message, domain.ErrNoData)
	}
	return domain.RegisterResult{Message: env.Message, PhoneNumber: req.PhoneNumber}, nil
}

// ---- Internals ----

func fetchList[T any](ctx context.Context, c *Client, endpoint, path string, q url.Values) ([]T, error) {
	var env envelope[[]T]
	if err := c.do(ctx, call{endpoint: endpoint, method: http.MethodGet, path: path, query: q}, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return []T{}, nil
	}
	return *env.Data, nil
}

func fetchOne[T any](ctx context.Context, c *Client, endpoint, path string) (T, error) {
	var zero T
	var env envelope[T]
	if err := c.do(ctx, call{endpoint: endpoint, method: http.MethodGet, path: path}, &env); err != nil {
		return zero, err
	}
	if !env.ok() {
		return zero, domain.ErrNoData
	}
	return *env.Data, nil
}

type call struct {
	endpoint string // metrics label
	method   string
	path     string
	query    url.Values
	body     any
	token    string
}

func (c *Client) bearer(ctx context.Context) (string, error) {
	tok := domain.AuthToken(ctx)
	if tok == "" {
		tok = c.token
	}
	tok = strings.TrimSpace(strings.TrimPrefix(tok, "Bearer "))
	if tok == "" {
		return "", fmt.Errorf("missing session token: %w", domain.ErrUnauthorized)
	}
	// Opaque tokens are passed through; only JWTs get a local expiry check.
	claims := jwt.MapClaims{}
	if _, _, err := c.jwtp.ParseUnverified(tok, claims); err != nil {
		return tok, nil
	}
	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && !exp.After(c.now()) {
		return "", fmt.Errorf("session token expired at %s: %w", exp.Format(time.RFC3339), domain.ErrUnauthorized)
	}
	return tok, nil
}

// do performs one logical call with client-side rate limiting and JSON decode into out.
// With retries enabled, GETs are retried on 429, transient 5xx and transport errors, honoring Retry-After.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	var payload []byte
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", cl.endpoint, err)
		}
		payload = b
	}
	attempts := 1
	if cl.method == http.MethodGet {
		attempts += c.retries
	}
	reqID := uuid.NewString()

	var lastErr error
	for i := 0; i < attempts; i++ {
		// build a fresh request each attempt
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-booking-client/1.0")
		req.Header.Set("X-Request-ID", reqID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if cl.token != "" {
			req.Header.Set("Authorization", "Bearer "+cl.token)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveBackend(cl.endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveBackend(cl.endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if resp.StatusCode == http.StatusNoContent {
				drain(resp)
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if errors.Is(err, io.EOF) {
				return nil // empty body decodes to "no data"
			}
			if err != nil {
				return fmt.Errorf("decode %s: %w", cl.endpoint, err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp)
			apiErr := readAPIError(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = apiErr
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			return readAPIError(resp)
		}
	}
	return lastErr
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

var _ domain.BookingAPI = (*Client)(nil)
