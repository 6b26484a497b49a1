// Package apperr defines the closed set of error kinds used across the
// comment and headline subsystems, so every handler maps failures to HTTP
// statuses the same way instead of deciding case by case.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	NotFound Kind = iota
	ValidationFailed
	UpstreamUnavailable
	// Degraded marks a response served from stale cache or static fallback.
	// It is never surfaced as an HTTP error.
	Degraded
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case Degraded:
		return "degraded"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or UpstreamUnavailable for errors that
// did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UpstreamUnavailable
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	case Degraded:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
