package engine

import "github.com/KirkDiggler/showdown-player/internal/entities/showdown"

// Classify returns the kind of a request.
// Wait wins, then forced switch, then active choice; team preview is the fallback.
func Classify(req *showdown.Request) RequestKind {
	switch {
	case req.Wait:
		return KindWait
	case len(req.ForceSwitch) > 0:
		return KindForcedSwitch
	case len(req.Active) > 0:
		return KindActiveChoice
	default:
		return KindTeamPreview
	}
}
