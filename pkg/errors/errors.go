// Package errors provides the failure taxonomy for the Nativ API client.
// Every failure reported by the API is one of six kinds, selected purely by
// the HTTP status of the response. Local pre-flight failures reuse the same
// kinds without a status code.
package errors

import (
	"fmt"
	"net/http"
)

// Kind identifies the category of a NativError.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindInsufficientCredits
	KindValidation
	KindNotFound
	KindRateLimit
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindInsufficientCredits:
		return "insufficient_credits"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a kind.
var (
	ErrAuthentication      = &NativError{Kind: KindAuthentication, Message: "authentication failed"}
	ErrInsufficientCredits = &NativError{Kind: KindInsufficientCredits, Message: "insufficient credits"}
	ErrValidation          = &NativError{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound            = &NativError{Kind: KindNotFound, Message: "not found"}
	ErrRateLimit           = &NativError{Kind: KindRateLimit, Message: "rate limited"}
	ErrServer              = &NativError{Kind: KindServer, Message: "server error"}
)

// NativError is the base error type for all API failures.
type NativError struct {
	Kind    Kind
	Message string

	// StatusCode is the HTTP status of the failed response, 0 for local failures.
	StatusCode int

	// Body is the parsed error payload, or {"detail": <raw text>} when the
	// payload was not structured. Nil for local failures.
	Body map[string]any
}

func (e *NativError) Error() string {
	return e.Message
}

// Is reports whether target is a NativError of the same kind.
func (e *NativError) Is(target error) bool {
	t, ok := target.(*NativError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HasStatus reports whether the error came from an HTTP response.
func (e *NativError) HasStatus() bool {
	return e.StatusCode != 0
}

// Detail returns the "detail" field of the error body, if any.
func (e *NativError) Detail() string {
	if e.Body == nil {
		return ""
	}
	if d, ok := e.Body["detail"]; ok && d != nil {
		return fmt.Sprint(d)
	}
	return ""
}

// AuthenticationError is returned for a missing or invalid API key (HTTP 401).
type AuthenticationError struct {
	NativError
}

// InsufficientCreditsError is returned when the workspace quota is exhausted (HTTP 402).
type InsufficientCreditsError struct {
	NativError
}

// ValidationError is returned for malformed requests (HTTP 400, 422, other 4xx)
// and for requests rejected locally before they are sent.
type ValidationError struct {
	NativError
}

// NotFoundError is returned for unknown resource ids (HTTP 404).
type NotFoundError struct {
	NativError
}

// RateLimitError is returned when the request budget is exceeded (HTTP 429).
type RateLimitError struct {
	NativError
}

// ServerError is returned for upstream faults (HTTP 5xx).
type ServerError struct {
	NativError
}

// NewAuthentication creates a local AuthenticationError with no status.
func NewAuthentication(message string) *AuthenticationError {
	return &AuthenticationError{NativError{Kind: KindAuthentication, Message: message}}
}

// NewValidation creates a local ValidationError with no status.
func NewValidation(message string) *ValidationError {
	return &ValidationError{NativError{Kind: KindValidation, Message: message}}
}

// FromResponse maps a non-2xx response to its taxonomy member.
// body is the parsed payload or its {"detail": text} fallback.
func FromResponse(status int, body map[string]any, message string) error {
	base := NativError{Message: message, StatusCode: status, Body: body}

	switch {
	case status == http.StatusUnauthorized:
		base.Kind = KindAuthentication
		return &AuthenticationError{base}
	case status == http.StatusPaymentRequired:
		base.Kind = KindInsufficientCredits
		return &InsufficientCreditsError{base}
	case status == http.StatusNotFound:
		base.Kind = KindNotFound
		return &NotFoundError{base}
	case status == http.StatusTooManyRequests:
		base.Kind = KindRateLimit
		return &RateLimitError{base}
	case status >= 400 && status < 500:
		base.Kind = KindValidation
		return &ValidationError{base}
	default:
		base.Kind = KindServer
		return &ServerError{base}
	}
}

// KindOf returns the kind of err, or KindUnknown if err is not a NativError.
func KindOf(err error) Kind {
	if b, ok := base(err); ok {
		return b.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if b, ok := base(err); ok {
		return b.StatusCode
	}
	return 0
}

// BodyOf returns the error body carried by err, or nil.
func BodyOf(err error) map[string]any {
	if b, ok := base(err); ok {
		return b.Body
	}
	return nil
}

// carrier is implemented by every leaf through the embedded NativError.
type carrier interface {
	base() *NativError
}

func (e *NativError) base() *NativError { return e }

func base(err error) (*NativError, bool) {
	for err != nil {
		if c, ok := err.(carrier); ok {
			return c.base(), true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
