package engine

import (
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
)

// RequestKind is the classification of a decision request
type RequestKind string

// Request kinds
const (
	KindWait         RequestKind = "wait"
	KindForcedSwitch RequestKind = "forced_switch"
	KindActiveChoice RequestKind = "active_choice"
	KindTeamPreview  RequestKind = "team_preview"
)

// Phase is the per-turn resolution state
type Phase string

// Resolution phases
const (
	PhaseIdle           Phase = "idle"
	PhaseClassified     Phase = "classified"
	PhaseEnumerated     Phase = "enumerated"
	PhaseResourceGated  Phase = "resource_gated"
	PhaseChosen         Phase = "chosen"
	PhaseTargetResolved Phase = "target_resolved"
	PhaseEncoded        Phase = "encoded"
	PhaseUnsatisfiable  Phase = "unsatisfiable"
)

// Transform is a one-shot form change requested alongside a move
type Transform string

// Transforms
const (
	TransformNone    Transform = ""
	TransformDynamax Transform = "dynamax"
	TransformMega    Transform = "mega"
	TransformUltra   Transform = "ultra"
)

// ActionKind is the kind of a chosen action
type ActionKind string

// Action kinds
const (
	ActionPass    ActionKind = "pass"
	ActionMove    ActionKind = "move"
	ActionSwitch  ActionKind = "switch"
	ActionTeam    ActionKind = "team"
	ActionDefault ActionKind = "default"
)

// OptionKind tells which field of an Option is set
type OptionKind string

// Option kinds
const (
	OptionMove   OptionKind = "move"
	OptionSwitch OptionKind = "switch"
)

// MoveOption is one legal move for a slot
type MoveOption struct {
	// Slot is the 1-based move index sent in the command
	Slot   int
	Name   string
	Target showdown.MoveTarget
	ZMove  bool
	Max    bool
}

// SwitchOption is one legal switch target
type SwitchOption struct {
	// Slot is the 1-based roster index
	Slot    int
	Pokemon *showdown.Pokemon
}

// Option is a policy's pick for an active slot
type Option struct {
	Kind   OptionKind
	Move   MoveOption
	Switch SwitchOption
}

// MoveChoice wraps a move as an Option
func MoveChoice(m MoveOption) Option {
	return Option{Kind: OptionMove, Move: m}
}

// SwitchChoice wraps a switch target as an Option
func SwitchChoice(s SwitchOption) Option {
	return Option{Kind: OptionSwitch, Switch: s}
}

// ChosenAction is the decision for one slot, ready to encode
type ChosenAction struct {
	Kind ActionKind

	// Move is the 1-based move index
	Move int
	// Target is the positional suffix; 0 means none, negative means ally side
	Target    int
	ZMove     bool
	Transform Transform

	// Switch is the 1-based roster index
	Switch int

	// TeamOrder lists 1-based roster indexes for team preview
	TeamOrder []int
}

// PassAction is the action for a slot that does nothing
func PassAction() ChosenAction {
	return ChosenAction{Kind: ActionPass}
}

// SwitchAction switches to a roster slot
func SwitchAction(slot int) ChosenAction {
	return ChosenAction{Kind: ActionSwitch, Switch: slot}
}

// SlotContext is what a policy sees about the slot it is deciding for
type SlotContext struct {
	// Index is the 0-based active position
	Index       int
	ActiveCount int
	Forced      bool
	Active      *showdown.ActivePokemon
	Pokemon     *showdown.Pokemon
	Side        *showdown.Side
	// Chosen lists roster slots already picked earlier in the batch
	Chosen []int
	// Resources are the effective resources for this slot
	Resources Resources
	MaxMoves  bool
}

// ResolveInput contains parameters for resolving a request
type ResolveInput struct {
	Request *showdown.Request
	Policy  Policy
	Source  prng.Source
}

// ResolveOutput contains the resolved batch
type ResolveOutput struct {
	Kind    RequestKind
	Actions []ChosenAction
	// Choice is the encoded command; empty for wait requests
	Choice    string
	Resources Resources
	Phase     Phase
}
