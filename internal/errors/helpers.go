package errors

import (
	"context"
	"errors"
)

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// GetCode returns the code of the outermost *Error in err's chain.
// Plain errors are Internal and nil is OK.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the meta of the outermost *Error in err's chain
func GetMeta(err error) map[string]interface{} {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without the code prefix or causes
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsRetryable reports whether err's code allows retrying with fresher state
func IsRetryable(err error) bool {
	return err != nil && GetCode(err).Retryable()
}

// FromContext maps a context error to Canceled or DeadlineExceeded.
// Other errors are wrapped unchanged.
func FromContext(err error, message string) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return WrapWithCode(err, CodeCanceled, message)
	case errors.Is(err, context.DeadlineExceeded):
		return WrapWithCode(err, CodeDeadlineExceeded, message)
	default:
		return Wrap(err, message)
	}
}

// IsNotFound reports a missing battle session
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports bad input
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsInternal reports an unexpected failure
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnavailable reports a retryable rejection
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsFailedPrecondition reports an unsatisfiable request
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsAborted reports a concurrent call for a busy side
func IsAborted(err error) bool { return GetCode(err) == CodeAborted }

// IsOutOfRange reports input that matches no legal option
func IsOutOfRange(err error) bool { return GetCode(err) == CodeOutOfRange }

// IsCanceled reports abandoned work
func IsCanceled(err error) bool { return GetCode(err) == CodeCanceled }
