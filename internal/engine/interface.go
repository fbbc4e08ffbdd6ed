// Package engine turns one decision request into the choice command for a side.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/showdown-player/internal/engine Engine,Policy

import (
	"context"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
)

// Engine resolves decision requests into choice commands
type Engine interface {
	// Resolve classifies the request, picks an action per slot and encodes the batch
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// Policy picks one option among the legal ones for a slot.
// Implementations may block; they must honour ctx cancellation.
type Policy interface {
	// ChooseAction picks a move or switch for an active slot.
	// At least one of moves and switches is non-empty.
	ChooseAction(ctx context.Context, slot *SlotContext, moves []MoveOption, switches []SwitchOption) (Option, error)

	// ChooseSwitch picks the replacement for a slot that must switch.
	// switches is non-empty.
	ChooseSwitch(ctx context.Context, slot *SlotContext, switches []SwitchOption) (SwitchOption, error)

	// ChooseTeamPreview answers a team preview request.
	ChooseTeamPreview(ctx context.Context, side *showdown.Side, maxTeamSize int) (ChosenAction, error)
}
