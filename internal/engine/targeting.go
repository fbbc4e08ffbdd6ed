package engine

import (
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
)

// foePositions is the number of foe positions a single-target move can aim at.
const foePositions = 2

// ResolveTarget returns the positional suffix for a move: a foe position
// (1 or 2), an own position (-1 or -2), or 0 when no suffix is needed.
// Single-slot formats never get a suffix.
func ResolveTarget(src prng.Source, target showdown.MoveTarget, index, activeCount int, hasAlly bool) int {
	if activeCount <= 1 {
		return 0
	}

	switch target {
	case showdown.TargetNormal, showdown.TargetAny, showdown.TargetAdjacentFoe:
		return 1 + src.IntN(foePositions)
	case showdown.TargetAdjacentAlly:
		return -(AllyPosition(index) + 1)
	case showdown.TargetAdjacentAllyOrSelf:
		if hasAlly && src.IntN(2) == 1 {
			return -(AllyPosition(index) + 1)
		}
		return -(index + 1)
	default:
		return 0
	}
}
