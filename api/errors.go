package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Code    int
	Message string // backend-provided message, if any
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Code)
}

// newStatusError builds a StatusError, pulling the "message" field out of a
// JSON error body. Validation errors from the backend carry a list of
// messages; they are joined.
func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{Code: code, Body: body}
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil || len(payload.Message) == 0 {
		return e
	}
	var s string
	if json.Unmarshal(payload.Message, &s) == nil {
		e.Message = s
		return e
	}
	var list []string
	if json.Unmarshal(payload.Message, &list) == nil {
		e.Message = strings.Join(list, "; ")
	}
	return e
}

func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	code := statusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// MessageOr returns the backend's message for err, or fallback when the
// backend did not send one (or err is a transport error).
func MessageOr(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
