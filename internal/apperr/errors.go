package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is raised for malformed request parameters at the API edge.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// Kind classifies failures of search and space operations.
type Kind string

const (
	KindInvalidArgument       Kind = "invalid_argument"
	KindNotAuthenticated      Kind = "not_authenticated"
	KindTransportFailure      Kind = "transport_failure"
	KindUpstreamRejected      Kind = "upstream_rejected"
	KindResponseMalformed     Kind = "response_malformed"
	KindAuthExchangeFailed    Kind = "auth_exchange_failed"
	KindCookieExchangeFailed  Kind = "cookie_exchange_failed"
	KindBroadcastCreateFailed Kind = "broadcast_create_failed"
)

// Upstream reports whether the kind represents a non-success status from an upstream service.
func (k Kind) Upstream() bool {
	switch k {
	case KindUpstreamRejected, KindAuthExchangeFailed, KindCookieExchangeFailed, KindBroadcastCreateFailed:
		return true
	default:
		return false
	}
}

// Sentinels for errors.Is checks; matching is by Kind only.
var (
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNotAuthenticated      = &Error{Kind: KindNotAuthenticated}
	ErrTransportFailure      = &Error{Kind: KindTransportFailure}
	ErrUpstreamRejected      = &Error{Kind: KindUpstreamRejected}
	ErrResponseMalformed     = &Error{Kind: KindResponseMalformed}
	ErrAuthExchangeFailed    = &Error{Kind: KindAuthExchangeFailed}
	ErrCookieExchangeFailed  = &Error{Kind: KindCookieExchangeFailed}
	ErrBroadcastCreateFailed = &Error{Kind: KindBroadcastCreateFailed}
)

// Error is a classified failure. Op names the operation that failed, Status and Body carry the
// upstream response when there was one.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Status  int
	Body    string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Message: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Upstream builds an error for a non-success response, keeping the raw body for diagnostics.
func Upstream(kind Kind, op string, status int, body []byte) *Error {
	return &Error{Kind: kind, Op: op, Status: status, Body: string(body)}
}

func InvalidArgument(op, msg string) *Error {
	return New(KindInvalidArgument, op, msg)
}

func NotAuthenticated(op string) *Error {
	return New(KindNotAuthenticated, op, "session is not logged in")
}

func Malformed(op, msg string) *Error {
	return New(KindResponseMalformed, op, msg)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
