package engine

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Config holds the configuration for the engine
type Config struct {
	// TransformProbability is the chance a slot tries dynamax, mega or ultra
	// when one is available
	TransformProbability float64
}

// Validate ensures the configuration is usable
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateProbability("transform_probability", cfg.TransformProbability, vb)
	return vb.Build()
}

type engine struct {
	transformProbability float64
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &engine{
		transformProbability: cfg.TransformProbability,
	}, nil
}

// batch is the mutable state of one Resolve call
type batch struct {
	phase     Phase
	resources Resources
	chosen    []int
	actions   []ChosenAction
}

func (e *engine) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Request == nil {
		vb.RequiredField("request")
	}
	if input.Policy == nil {
		vb.RequiredField("policy")
	}
	if input.Source == nil {
		vb.RequiredField("source")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := input.Request.Validate(); err != nil {
		return nil, err
	}

	b := &batch{
		phase:     PhaseIdle,
		resources: NewResources(),
	}

	kind := Classify(input.Request)
	b.phase = PhaseClassified

	var err error
	switch kind {
	case KindWait:
		return &ResolveOutput{
			Kind:      kind,
			Resources: b.resources,
			Phase:     b.phase,
		}, nil
	case KindForcedSwitch:
		err = e.resolveForcedSwitch(ctx, b, input)
	case KindActiveChoice:
		err = e.resolveActive(ctx, b, input)
	case KindTeamPreview:
		err = e.resolveTeamPreview(ctx, b, input)
	}
	if err != nil {
		return nil, err
	}

	choice := EncodeBatch(b.actions)
	b.phase = PhaseEncoded

	return &ResolveOutput{
		Kind:      kind,
		Actions:   b.actions,
		Choice:    choice,
		Resources: b.resources,
		Phase:     b.phase,
	}, nil
}

func (e *engine) resolveForcedSwitch(ctx context.Context, b *batch, input *ResolveInput) error {
	req := input.Request
	roster := req.Roster()
	activeCount := len(req.ForceSwitch)

	for i, mustSwitch := range req.ForceSwitch {
		if err := ctx.Err(); err != nil {
			return errors.FromContext(err, "resolution abandoned")
		}

		if !mustSwitch {
			b.actions = append(b.actions, PassAction())
			continue
		}

		switches := EnumerateForcedSwitches(roster, activeCount, b.chosen)
		b.phase = PhaseEnumerated
		if len(switches) == 0 {
			b.actions = append(b.actions, PassAction())
			continue
		}

		slot := &SlotContext{
			Index:       i,
			ActiveCount: activeCount,
			Forced:      true,
			Pokemon:     roster[i],
			Side:        req.Side,
			Chosen:      slices.Clone(b.chosen),
			Resources:   b.resources,
		}
		if i < len(req.Active) {
			slot.Active = req.Active[i]
		}

		picked, err := input.Policy.ChooseSwitch(ctx, slot, switches)
		if err != nil {
			return errors.Wrapf(err, "failed to choose switch for slot %d", i+1)
		}
		if !containsSwitch(switches, picked.Slot) {
			return errors.Internalf("policy picked illegal switch %d for slot %d", picked.Slot, i+1)
		}
		b.phase = PhaseChosen

		b.chosen = append(b.chosen, picked.Slot)
		b.actions = append(b.actions, SwitchAction(picked.Slot))
	}

	return nil
}

func (e *engine) resolveActive(ctx context.Context, b *batch, input *ResolveInput) error {
	req := input.Request
	roster := req.Roster()
	activeCount := len(req.Active)

	for i, active := range req.Active {
		if err := ctx.Err(); err != nil {
			return errors.FromContext(err, "resolution abandoned")
		}

		pokemon := roster[i]
		if pokemon.Fainted() {
			b.actions = append(b.actions, PassAction())
			continue
		}

		effective := b.resources.Gate(active)
		b.phase = PhaseResourceGated

		change := effective.CanTransform() && input.Source.Float64() < e.transformProbability
		maxMoves := UsesMaxMoves(active, change && effective.Dynamax)
		hasAlly := HasLivingAlly(roster, activeCount, i)

		moves := EnumerateMoves(active, maxMoves, effective.ZMove, hasAlly)
		switches := EnumerateSwitches(roster, b.chosen, active.Trapped)
		b.phase = PhaseEnumerated

		if len(moves) == 0 && len(switches) == 0 {
			err := b.unsatisfiable(i, effective)
			b.phase = PhaseUnsatisfiable
			return err
		}

		slot := &SlotContext{
			Index:       i,
			ActiveCount: activeCount,
			Active:      active,
			Pokemon:     pokemon,
			Side:        req.Side,
			Chosen:      slices.Clone(b.chosen),
			Resources:   effective,
			MaxMoves:    maxMoves,
		}

		picked, err := input.Policy.ChooseAction(ctx, slot, moves, switches)
		if err != nil {
			return errors.Wrapf(err, "failed to choose action for slot %d", i+1)
		}
		b.phase = PhaseChosen

		switch picked.Kind {
		case OptionSwitch:
			if !containsSwitch(switches, picked.Switch.Slot) {
				return errors.Internalf("policy picked illegal switch %d for slot %d", picked.Switch.Slot, i+1)
			}
			b.chosen = append(b.chosen, picked.Switch.Slot)
			b.actions = append(b.actions, SwitchAction(picked.Switch.Slot))
		case OptionMove:
			if !slices.Contains(moves, picked.Move) {
				return errors.Internalf("policy picked illegal move %d for slot %d", picked.Move.Slot, i+1)
			}

			action := ChosenAction{
				Kind: ActionMove,
				Move: picked.Move.Slot,
			}
			if picked.Move.ZMove {
				action.ZMove = true
				b.resources.ConsumeZMove()
			} else if change {
				action.Transform = effective.PickTransform()
				b.resources.ConsumeTransform(action.Transform)
			}

			action.Target = ResolveTarget(input.Source, picked.Move.Target, i, activeCount, hasAlly)
			b.phase = PhaseTargetResolved

			b.actions = append(b.actions, action)
		default:
			return errors.Internalf("policy returned no option for slot %d", i+1)
		}
	}

	return nil
}

func (e *engine) resolveTeamPreview(ctx context.Context, b *batch, input *ResolveInput) error {
	req := input.Request

	action, err := input.Policy.ChooseTeamPreview(ctx, req.Side, req.MaxChosenTeamSize)
	if err != nil {
		return errors.Wrap(err, "failed to choose team order")
	}
	b.phase = PhaseChosen

	switch action.Kind {
	case ActionDefault:
	case ActionTeam:
		if err := validateTeamOrder(action.TeamOrder, len(req.Roster())); err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "policy picked an illegal team order")
		}
	default:
		return errors.Internalf("policy returned %s for team preview", action.Kind)
	}

	b.actions = append(b.actions, action)
	return nil
}

func (b *batch) unsatisfiable(index int, effective Resources) error {
	chosen := make([]string, len(b.chosen))
	for i, slot := range b.chosen {
		chosen[i] = strconv.Itoa(slot)
	}

	return errors.FailedPreconditionf("unable to make choice for slot %d", index+1).
		WithMetaMap(map[string]interface{}{
			MetaReason: ReasonUnsatisfiable,
			"slot":     index + 1,
			"phase":    string(b.phase),
			"mega":     effective.Mega,
			"ultra":    effective.Ultra,
			"zmove":    effective.ZMove,
			"dynamax":  effective.Dynamax,
			"chosen":   strings.Join(chosen, ","),
		})
}

// validateTeamOrder checks that every index is on the roster and none repeats.
func validateTeamOrder(order []int, rosterSize int) error {
	if len(order) == 0 {
		return errors.InvalidArgument("team order is empty")
	}
	seen := make(map[int]bool, len(order))
	for _, slot := range order {
		if slot < 1 || slot > rosterSize {
			return errors.OutOfRangef("no pokemon in slot %d", slot)
		}
		if seen[slot] {
			return errors.InvalidArgumentf("slot %d listed twice", slot)
		}
		seen[slot] = true
	}
	return nil
}

// ValidateTeamOrder is exported for policies that collect an order from input.
func ValidateTeamOrder(order []int, side *showdown.Side) error {
	size := 0
	if side != nil {
		size = len(side.Pokemon)
	}
	return validateTeamOrder(order, size)
}

func containsSwitch(switches []SwitchOption, slot int) bool {
	for _, s := range switches {
		if s.Slot == slot {
			return true
		}
	}
	return false
}
