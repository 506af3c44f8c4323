package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a failure so callers can branch on it without knowing
// which transport produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidIdentifier
	KindInvalidRequest
	KindNotFound
	KindRateLimited
	KindExternalService
)

func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindExternalService:
		return "external_service"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks. Every *Error matches the sentinel of its Kind.
var (
	ErrInvalidIdentifier = errors.New("invalid employee identifier")
	ErrInvalidRequest    = errors.New("invalid employee request")
	ErrNotFound          = errors.New("employee not found")
	ErrRateLimited       = errors.New("rate limited by external service")
	ErrExternalService   = errors.New("external service failure")
)

var kindSentinels = map[Kind]error{
	KindInvalidIdentifier: ErrInvalidIdentifier,
	KindInvalidRequest:    ErrInvalidRequest,
	KindNotFound:          ErrNotFound,
	KindRateLimited:       ErrRateLimited,
	KindExternalService:   ErrExternalService,
}

// Error is the classified failure raised by the data-access layer.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "fetch_one"
	ID      string // employee id, when known
	Message string

	// Violations lists one message per failed rule (KindInvalidRequest only).
	Violations []string

	// RetryAfter is the delay hinted by the remote service (KindRateLimited only).
	RetryAfter time.Duration

	// Err is the underlying cause, kept for diagnostics.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(kindSentinels[e.Kind].Error())
	}
	if len(e.Violations) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Violations, "; "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// NewInvalidIdentifier reports a malformed or blank employee id.
func NewInvalidIdentifier(id, msg string) *Error {
	return &Error{Kind: KindInvalidIdentifier, ID: id, Message: msg}
}

// NewInvalidRequest reports a create payload that failed validation.
func NewInvalidRequest(violations []string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: "validation failed", Violations: violations}
}

// NewNotFound reports that the remote service has no employee with id.
func NewNotFound(op, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		ID:      id,
		Message: fmt.Sprintf("employee not found with id: %s", id),
	}
}

// NewRateLimited reports a remote throttling response.
func NewRateLimited(op string, retryAfter time.Duration) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Op:         op,
		Message:    "too many requests",
		RetryAfter: retryAfter,
	}
}

// NewExternalService reports any other remote or transport failure.
func NewExternalService(op, msg string, cause error) *Error {
	return &Error{Kind: KindExternalService, Op: op, Message: msg, Err: cause}
}
