// Package errors defines the domain error kinds used across services and
// the mapping from infrastructure errors onto them. Handlers translate a
// kind into exactly one HTTP status, so services never deal with statuses.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error carries a kind plus a user-facing message. The wrapped cause, if
// any, is kept for logs only and never leaks to the response body.
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

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Msg: msg} }
func InvalidInput(msg string) error { return &Error{Kind: KindInvalidInput, Msg: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "internal server error", Err: err}
}

// Map converts repo/infra errors into domain errors.
// Keeps the service layer clean by centralizing error translation.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var domain *Error
	if stderrors.As(err, &domain) {
		return err
	}

	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Msg: "record not found", Err: err}

	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Msg: "record already exists", Err: err}

	case stderrors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindInternal, Msg: "request timed out", Err: err}

	case stderrors.Is(err, context.Canceled):
		return &Error{Kind: KindInternal, Msg: "request was canceled", Err: err}

	default:
		return Internal(err)
	}
}

// KindOf reports the kind of an error, KindInternal for anything unknown.
func KindOf(err error) Kind {
	var domain *Error
	if stderrors.As(err, &domain) {
		return domain.Kind
	}
	return KindInternal
}

// Status maps an error to the HTTP status the request layer should return.
func Status(err error) int {
	switch KindOf(Map(err)) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error. Internal causes are
// masked behind a generic message.
func Message(err error) string {
	mapped := Map(err)
	var domain *Error
	if stderrors.As(mapped, &domain) {
		return domain.Msg
	}
	return "internal server error"
}
