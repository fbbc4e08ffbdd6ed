package engine

import "github.com/KirkDiggler/showdown-player/internal/errors"

// IsUnavailableChoice reports whether the simulator rejected a choice that
// was legal when it was made. The request should be resolved again.
func IsUnavailableChoice(err error) bool {
	return errors.IsUnavailable(err)
}

// IsMalformedRequest reports whether a request did not have the shape its
// kind requires.
func IsMalformedRequest(err error) bool {
	return errors.IsInvalidArgument(err)
}

// MetaReason distinguishes engine failures that share an error code
const MetaReason = "reason"

// ReasonUnsatisfiable marks a slot that had neither a legal move nor a legal switch
const ReasonUnsatisfiable = "unsatisfiable"

// IsUnsatisfiable reports whether a slot had neither a legal move nor a legal switch.
func IsUnsatisfiable(err error) bool {
	return errors.IsFailedPrecondition(err) && errors.GetMeta(err)[MetaReason] == ReasonUnsatisfiable
}

// IsOutOfRangeSelection reports whether an interactive selection did not map
// to a legal option.
func IsOutOfRangeSelection(err error) bool {
	return errors.IsOutOfRange(err)
}
