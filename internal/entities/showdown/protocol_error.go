package showdown

import (
	"strings"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Error prefixes the simulator puts on rejected choices.
const (
	PrefixUnavailableChoice = "[Unavailable choice]"
	PrefixInvalidChoice     = "[Invalid choice]"
)

// ParseProtocolError maps the body of an "|error|" line to an error code.
// Unavailable choices are recoverable and map to Unavailable. Invalid choices
// map to InvalidArgument. Anything else is Internal.
func ParseProtocolError(message string) error {
	message = strings.TrimSpace(message)

	switch {
	case strings.HasPrefix(message, PrefixUnavailableChoice):
		detail := strings.TrimSpace(strings.TrimPrefix(message, PrefixUnavailableChoice))
		return errors.Unavailable("choice is no longer available").WithMeta("detail", detail)
	case strings.HasPrefix(message, PrefixInvalidChoice):
		detail := strings.TrimSpace(strings.TrimPrefix(message, PrefixInvalidChoice))
		return errors.InvalidArgument("choice was rejected as invalid").WithMeta("detail", detail)
	default:
		return errors.Internal("simulator reported an error").WithMeta("detail", message)
	}
}
