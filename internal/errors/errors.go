package errors

import (
	"errors"
	"fmt"
)

// Meta keys shared by the repositories, the orchestrator and the transport
const (
	MetaBattleID         = "battle_id"
	MetaSide             = "side"
	MetaValidationErrors = "validation_errors"
)

// Error carries a code, a message and structured meta that survives the
// trip through gRPC status details.
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMeta sets one meta entry and returns e for chaining
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{}, 2)
	}
	e.Meta[key] = value
	return e
}

// WithMetaMap merges meta into the error's meta
func (e *Error) WithMetaMap(meta map[string]interface{}) *Error {
	for k, v := range meta {
		e.WithMeta(k, v)
	}
	return e
}

// WithBattle tags the error with the battle side it concerns
func (e *Error) WithBattle(battleID, side string) *Error {
	return e.WithMeta(MetaBattleID, battleID).WithMeta(MetaSide, side)
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and meta of an *Error cause are kept;
// anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeInternal, Message: message, Cause: err}
	var cause *Error
	if errors.As(err, &cause) {
		wrapped.Code = cause.Code
		wrapped.Meta = cause.Meta
	}
	return wrapped
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under a new code, copying any meta it carries
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: code, Message: message, Cause: err, Meta: map[string]interface{}{}}
	var cause *Error
	if errors.As(err, &cause) {
		for k, v := range cause.Meta {
			wrapped.Meta[k] = v
		}
	}
	return wrapped
}

// NotFound is returned when a battle session does not exist
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// InvalidArgument marks bad input, including malformed requests
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return newf(CodeInvalidArgument, format, args...)
}

// Internal marks a broken invariant or an unexpected dependency failure
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf is Internal with a formatted message
func Internalf(format string, args ...interface{}) *Error {
	return newf(CodeInternal, format, args...)
}

// Unavailable marks a choice the server refused that may be retried
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// Unavailablef is Unavailable with a formatted message
func Unavailablef(format string, args ...interface{}) *Error {
	return newf(CodeUnavailable, format, args...)
}

// FailedPrecondition marks a request no legal choice can satisfy
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...interface{}) *Error {
	return newf(CodeFailedPrecondition, format, args...)
}

// Aborted marks a second concurrent call for the same battle side
func Aborted(message string) *Error { return New(CodeAborted, message) }

// OutOfRange marks human input that matches no legal option
func OutOfRange(message string) *Error { return New(CodeOutOfRange, message) }

// OutOfRangef is OutOfRange with a formatted message
func OutOfRangef(format string, args ...interface{}) *Error {
	return newf(CodeOutOfRange, format, args...)
}

// Canceled marks abandoned work
func Canceled(message string) *Error { return New(CodeCanceled, message) }
