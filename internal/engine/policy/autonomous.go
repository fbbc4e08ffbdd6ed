// Package policy provides the choice policies the engine resolves requests with.
package policy

import (
	"context"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
)

// DefaultMoveBias always moves when a move is legal.
const DefaultMoveBias = 1.0

// AutonomousConfig holds the configuration for the autonomous policy
type AutonomousConfig struct {
	Source prng.Source
	// MoveBias is the probability of moving when both a move and a switch are legal
	MoveBias float64
}

// Validate ensures all required dependencies are provided
func (cfg *AutonomousConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Source == nil {
		vb.RequiredField("Source")
	}
	errors.ValidateProbability("move_bias", cfg.MoveBias, vb)
	return vb.Build()
}

// Autonomous samples uniformly among legal options
type Autonomous struct {
	source   prng.Source
	moveBias float64
}

// NewAutonomous creates an autonomous policy
func NewAutonomous(cfg *AutonomousConfig) (*Autonomous, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Autonomous{
		source:   cfg.Source,
		moveBias: cfg.MoveBias,
	}, nil
}

var _ engine.Policy = (*Autonomous)(nil)

// ChooseAction switches only when no move is legal or a draw beats the move bias.
func (a *Autonomous) ChooseAction(
	_ context.Context,
	slot *engine.SlotContext,
	moves []engine.MoveOption,
	switches []engine.SwitchOption,
) (engine.Option, error) {
	if len(switches) > 0 && (len(moves) == 0 || a.source.Float64() > a.moveBias) {
		return engine.SwitchChoice(prng.Sample(a.source, switches)), nil
	}
	if len(moves) > 0 {
		return engine.MoveChoice(prng.Sample(a.source, moves)), nil
	}
	return engine.Option{}, errors.Internalf("no options offered for slot %d", slot.Index+1)
}

// ChooseSwitch picks a replacement uniformly.
func (a *Autonomous) ChooseSwitch(
	_ context.Context,
	slot *engine.SlotContext,
	switches []engine.SwitchOption,
) (engine.SwitchOption, error) {
	if len(switches) == 0 {
		return engine.SwitchOption{}, errors.Internalf("no switches offered for slot %d", slot.Index+1)
	}
	return prng.Sample(a.source, switches), nil
}

// ChooseTeamPreview keeps the simulator's default order.
func (a *Autonomous) ChooseTeamPreview(_ context.Context, _ *showdown.Side, _ int) (engine.ChosenAction, error) {
	return engine.ChosenAction{Kind: engine.ActionDefault}, nil
}
