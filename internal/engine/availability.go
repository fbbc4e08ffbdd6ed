package engine

import (
	"slices"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
)

// AllyPosition returns the position paired with index in a multi-slot format.
func AllyPosition(index int) int {
	return index ^ 1
}

// HasLivingAlly reports whether the slot at index has a paired ally that is
// on the field and not fainted.
func HasLivingAlly(roster []*showdown.Pokemon, activeCount, index int) bool {
	if activeCount <= 1 {
		return false
	}
	ally := AllyPosition(index)
	if ally >= activeCount || ally >= len(roster) {
		return false
	}
	return !roster[ally].Fainted()
}

// UsesMaxMoves reports whether the slot picks from its max-move list: it is
// already dynamaxed, or it will dynamax with this decision.
func UsesMaxMoves(active *showdown.ActivePokemon, willDynamax bool) bool {
	if active.MaxMoves == nil {
		return false
	}
	return !active.CanDynamax || willDynamax
}

// EnumerateMoves returns the legal moves of a slot.
// Disabled moves are never offered. Moves aimed at an adjacent ally are
// dropped when there is no living ally, unless that leaves nothing.
func EnumerateMoves(active *showdown.ActivePokemon, maxMoves, zmove, hasAlly bool) []MoveOption {
	var moves []MoveOption

	if maxMoves && active.MaxMoves != nil {
		for i, m := range active.MaxMoves.MaxMoves {
			if m.Disabled {
				continue
			}
			moves = append(moves, MoveOption{
				Slot:   i + 1,
				Name:   m.Move,
				Target: m.Target,
				Max:    true,
			})
		}
	} else {
		for i, m := range active.Moves {
			if m.Disabled {
				continue
			}
			moves = append(moves, MoveOption{
				Slot:   i + 1,
				Name:   m.Move,
				Target: m.Target,
			})
		}
	}

	if zmove {
		for i, z := range active.CanZMove {
			if z == nil {
				continue
			}
			moves = append(moves, MoveOption{
				Slot:   i + 1,
				Name:   z.Move,
				Target: z.Target,
				ZMove:  true,
			})
		}
	}

	if hasAlly {
		return moves
	}

	filtered := make([]MoveOption, 0, len(moves))
	for _, m := range moves {
		if m.Target != showdown.TargetAdjacentAlly {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return moves
	}
	return filtered
}

// EnumerateSwitches returns the roster slots an active slot may switch to.
// A trapped slot has none.
func EnumerateSwitches(roster []*showdown.Pokemon, chosen []int, trapped bool) []SwitchOption {
	if trapped {
		return nil
	}
	return switchTargets(roster, chosen, 0)
}

// EnumerateForcedSwitches returns the replacements for a forced switch.
// Positions up to activeCount are already on the field and never offered.
func EnumerateForcedSwitches(roster []*showdown.Pokemon, activeCount int, chosen []int) []SwitchOption {
	return switchTargets(roster, chosen, activeCount)
}

func switchTargets(roster []*showdown.Pokemon, chosen []int, skip int) []SwitchOption {
	var switches []SwitchOption
	for i, p := range roster {
		slot := i + 1
		if i < skip || p.Active || p.Fainted() || slices.Contains(chosen, slot) {
			continue
		}
		switches = append(switches, SwitchOption{
			Slot:    slot,
			Pokemon: p,
		})
	}
	return switches
}
