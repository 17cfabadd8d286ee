package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so retry and presentation code can react to it
// without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindRateLimited
	KindUnavailable
	KindUpstreamRejected
	KindSessionExpired
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindSessionExpired:
		return "session_expired"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidAddress is returned before any network call for a malformed address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrSessionExpired is returned when a credential is needed but the session is gone.
	ErrSessionExpired = errors.New("session expired")
)

// Error carries a Kind and the operation that failed. The wrapped error is the
// root cause and its text is kept in Error().
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a kinded error from a format string.
func Newf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func InvalidInput(op string, err error) error     { return New(KindInvalidInput, op, err) }
func Unauthorized(op string, err error) error     { return New(KindUnauthorized, op, err) }
func RateLimited(op string, err error) error      { return New(KindRateLimited, op, err) }
func Unavailable(op string, err error) error      { return New(KindUnavailable, op, err) }
func UpstreamRejected(op string, err error) error { return New(KindUpstreamRejected, op, err) }
func NotFound(op string, err error) error         { return New(KindNotFound, op, err) }

// SessionExpired wraps ErrSessionExpired with the operation name.
func SessionExpired(op string) error {
	return New(KindSessionExpired, op, ErrSessionExpired)
}

// KindOf returns the kind of the outermost *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable reports whether err is transient. Only rate limiting and
// transport unavailability qualify.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindRateLimited, KindUnavailable:
		return true
	default:
		return false
	}
}
