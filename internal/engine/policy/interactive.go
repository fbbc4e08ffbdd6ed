package policy

//go:generate mockgen -destination=mock/mock_interactive.go -package=policymock github.com/KirkDiggler/showdown-player/internal/engine/policy Input,Prompter

import (
	"context"
	"strconv"
	"strings"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Input delivers the next line typed by the human deciding for a side.
type Input interface {
	// Await blocks until a line arrives or ctx is done.
	Await(ctx context.Context) (string, error)
}

// Prompter presents options and corrections to the human.
type Prompter interface {
	Prompt(ctx context.Context, prompt *Prompt) error
	Reject(ctx context.Context, reason string) error
}

// PromptKind tells the prompter which question is being asked
type PromptKind string

// Prompt kinds
const (
	PromptAction PromptKind = "action"
	PromptSwitch PromptKind = "switch"
	PromptTeam   PromptKind = "team"
)

// Prompt is the structured question shown to the human
type Prompt struct {
	Kind PromptKind
	// Slot describes the deciding slot; nil for team preview
	Slot *engine.SlotSummary
	// Legal moves and switches for this slot right now
	Moves    []engine.MoveOption
	Switches []engine.SwitchCandidate
	// Team is the roster for team preview
	Team        []engine.SwitchCandidate
	MaxTeamSize int
}

// InteractiveConfig holds the configuration for the interactive policy
type InteractiveConfig struct {
	Input    Input
	Prompter Prompter
}

// Validate ensures all required dependencies are provided
func (cfg *InteractiveConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Input == nil {
		vb.RequiredField("Input")
	}
	if cfg.Prompter == nil {
		vb.RequiredField("Prompter")
	}
	return vb.Build()
}

// Interactive asks a human and re-prompts until the answer is legal
type Interactive struct {
	input    Input
	prompter Prompter
}

// NewInteractive creates an interactive policy
func NewInteractive(cfg *InteractiveConfig) (*Interactive, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Interactive{
		input:    cfg.Input,
		prompter: cfg.Prompter,
	}, nil
}

var _ engine.Policy = (*Interactive)(nil)

// ChooseAction accepts "<n>", "<n> zmove" and "switch <n>".
func (p *Interactive) ChooseAction(
	ctx context.Context,
	slot *engine.SlotContext,
	moves []engine.MoveOption,
	switches []engine.SwitchOption,
) (engine.Option, error) {
	summary := engine.SummarizeSlot(slot.Index, slot.Active, rosterOf(slot.Side))
	prompt := &Prompt{
		Kind:     PromptAction,
		Slot:     &summary,
		Moves:    moves,
		Switches: engine.CandidatesFor(switches),
	}

	return ask(ctx, p, prompt, func(line string) (engine.Option, error) {
		return parseAction(line, slot, moves, switches)
	})
}

// ChooseSwitch accepts "<n>" or "switch <n>".
func (p *Interactive) ChooseSwitch(
	ctx context.Context,
	slot *engine.SlotContext,
	switches []engine.SwitchOption,
) (engine.SwitchOption, error) {
	summary := engine.SlotSummary{
		Index:      slot.Index,
		MustSwitch: true,
	}
	if slot.Pokemon != nil {
		summary.Pokemon = slot.Pokemon.Name()
		summary.Fainted = slot.Pokemon.Fainted()
	}
	prompt := &Prompt{
		Kind:     PromptSwitch,
		Slot:     &summary,
		Switches: engine.CandidatesFor(switches),
	}

	return ask(ctx, p, prompt, func(line string) (engine.SwitchOption, error) {
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 2 && fields[0] == "switch" {
			fields = fields[1:]
		}
		if len(fields) != 1 {
			return engine.SwitchOption{}, unrecognised(line)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return engine.SwitchOption{}, unrecognised(line)
		}
		return pickSwitch(n, slot, switches)
	})
}

// ChooseTeamPreview accepts "default", "team <order>" or a bare order such as "312".
func (p *Interactive) ChooseTeamPreview(
	ctx context.Context,
	side *showdown.Side,
	maxTeamSize int,
) (engine.ChosenAction, error) {
	team := make([]engine.SwitchOption, 0, len(rosterOf(side)))
	for i, pokemon := range rosterOf(side) {
		team = append(team, engine.SwitchOption{Slot: i + 1, Pokemon: pokemon})
	}
	prompt := &Prompt{
		Kind:        PromptTeam,
		Team:        engine.CandidatesFor(team),
		MaxTeamSize: maxTeamSize,
	}

	return ask(ctx, p, prompt, func(line string) (engine.ChosenAction, error) {
		return parseTeam(line, side)
	})
}

// ask prompts once and reads lines until parse accepts one.
// Parse failures are shown to the human and never returned.
func ask[T any](ctx context.Context, p *Interactive, prompt *Prompt, parse func(string) (T, error)) (T, error) {
	var zero T

	if err := p.prompter.Prompt(ctx, prompt); err != nil {
		return zero, errors.Wrap(err, "failed to show prompt")
	}

	for {
		line, err := p.input.Await(ctx)
		if err != nil {
			return zero, errors.FromContext(err, "wait for input abandoned")
		}

		result, err := parse(strings.TrimSpace(line))
		if err == nil {
			return result, nil
		}

		if err := p.prompter.Reject(ctx, errors.GetMessage(err)); err != nil {
			return zero, errors.Wrap(err, "failed to show correction")
		}
	}
}

func parseAction(
	line string,
	slot *engine.SlotContext,
	moves []engine.MoveOption,
	switches []engine.SwitchOption,
) (engine.Option, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 2 && fields[0] == "switch":
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return engine.Option{}, unrecognised(line)
		}
		if slot.Active != nil && slot.Active.Trapped {
			return engine.Option{}, errors.OutOfRange("you are trapped and cannot switch")
		}
		picked, err := pickSwitch(n, slot, switches)
		if err != nil {
			return engine.Option{}, err
		}
		return engine.SwitchChoice(picked), nil
	case len(fields) == 1 || (len(fields) == 2 && fields[1] == "zmove"):
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return engine.Option{}, unrecognised(line)
		}
		picked, err := pickMove(n, len(fields) == 2, slot, moves)
		if err != nil {
			return engine.Option{}, err
		}
		return engine.MoveChoice(picked), nil
	default:
		return engine.Option{}, unrecognised(line)
	}
}

func pickMove(n int, zmove bool, slot *engine.SlotContext, moves []engine.MoveOption) (engine.MoveOption, error) {
	for _, m := range moves {
		if m.Slot == n && m.ZMove == zmove {
			return m, nil
		}
	}

	count, disabled := moveListState(slot, n)
	switch {
	case n < 1 || n > count:
		return engine.MoveOption{}, errors.OutOfRangef("there is no move %d", n)
	case zmove:
		return engine.MoveOption{}, errors.OutOfRangef("move %d has no z-move available", n)
	case disabled:
		return engine.MoveOption{}, errors.OutOfRangef("move %d is disabled", n)
	default:
		return engine.MoveOption{}, errors.OutOfRangef("move %d cannot be used now", n)
	}
}

// moveListState returns the size of the list the slot picks from and whether
// entry n of it is disabled.
func moveListState(slot *engine.SlotContext, n int) (int, bool) {
	if slot.Active == nil {
		return 0, false
	}
	if slot.MaxMoves && slot.Active.MaxMoves != nil {
		list := slot.Active.MaxMoves.MaxMoves
		if n >= 1 && n <= len(list) {
			return len(list), bool(list[n-1].Disabled)
		}
		return len(list), false
	}
	list := slot.Active.Moves
	if n >= 1 && n <= len(list) {
		return len(list), bool(list[n-1].Disabled)
	}
	return len(list), false
}

func pickSwitch(n int, slot *engine.SlotContext, switches []engine.SwitchOption) (engine.SwitchOption, error) {
	for _, s := range switches {
		if s.Slot == n {
			return s, nil
		}
	}

	roster := rosterOf(slot.Side)
	if n < 1 || n > len(roster) {
		return engine.SwitchOption{}, errors.OutOfRangef("there is no pokemon in slot %d", n)
	}
	pokemon := roster[n-1]
	for _, chosen := range slot.Chosen {
		if chosen == n {
			return engine.SwitchOption{}, errors.OutOfRangef("%s is already chosen to switch in", pokemon.Name())
		}
	}
	switch {
	case pokemon.Fainted():
		return engine.SwitchOption{}, errors.OutOfRangef("%s has fainted", pokemon.Name())
	case pokemon.Active || (slot.Forced && n <= slot.ActiveCount):
		return engine.SwitchOption{}, errors.OutOfRangef("%s is already in battle", pokemon.Name())
	default:
		return engine.SwitchOption{}, errors.OutOfRangef("%s cannot switch in now", pokemon.Name())
	}
}

func parseTeam(line string, side *showdown.Side) (engine.ChosenAction, error) {
	lower := strings.ToLower(line)
	if lower == "default" {
		return engine.ChosenAction{Kind: engine.ActionDefault}, nil
	}

	order := strings.TrimSpace(strings.TrimPrefix(lower, "team"))
	if order == "" {
		return engine.ChosenAction{}, unrecognised(line)
	}

	var parts []string
	if strings.ContainsAny(order, ", ") {
		parts = strings.FieldsFunc(order, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		parts = strings.Split(order, "")
	}

	slots := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return engine.ChosenAction{}, unrecognised(line)
		}
		slots = append(slots, n)
	}

	if err := engine.ValidateTeamOrder(slots, side); err != nil {
		return engine.ChosenAction{}, errors.WrapWithCode(err, errors.CodeOutOfRange, errors.GetMessage(err))
	}

	return engine.ChosenAction{Kind: engine.ActionTeam, TeamOrder: slots}, nil
}

func unrecognised(line string) error {
	return errors.OutOfRangef("unrecognised input %q", line)
}

func rosterOf(side *showdown.Side) []*showdown.Pokemon {
	if side == nil {
		return nil
	}
	return side.Pokemon
}
