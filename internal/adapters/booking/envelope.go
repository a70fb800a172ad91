package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hotel_booking/internal/domain"
)

// envelope is the backend's response wrapper: {success, message, data}.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// ok reports whether the envelope carries data. Anything else is "no data".
func (e envelope[T]) ok() bool { return e.Success && e.Data != nil }

// APIError is a non-2xx backend response. Message is the backend's own text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking backend status %d", e.Status)
	}
	return fmt.Sprintf("booking backend status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	return nil
}

// Message returns the backend message carried by err, if any.
func Message(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return ""
}

type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string {
	if e.msg == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.msg
}

func (e *messageError) Unwrap() error { return e.err }

func messageErr(msg string, err error) error { return &messageError{msg: msg, err: err} }

// readAPIError consumes and closes the body.
func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	ae := &APIError{Status: resp.StatusCode}
	var env struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &env) == nil && env.Message != "" {
		ae.Message = env.Message
	} else {
		ae.Message = strings.TrimSpace(string(b))
	}
	return ae
}
