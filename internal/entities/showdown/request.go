// Package showdown provides the decision request shapes sent by the battle simulator.
package showdown

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypePokemon is the core.Entity type of roster entries.
const EntityTypePokemon = "pokemon"

// faintedSuffix marks a fainted Pokémon's condition, e.g. "0 fnt".
const faintedSuffix = " fnt"

// Request is one decision request for a single side.
type Request struct {
	Active            []*ActivePokemon `json:"active,omitempty"`
	Side              *Side            `json:"side,omitempty"`
	ForceSwitch       []bool           `json:"forceSwitch,omitempty"`
	Wait              bool             `json:"wait,omitempty"`
	TeamPreview       bool             `json:"teamPreview,omitempty"`
	MaxChosenTeamSize int              `json:"maxChosenTeamSize,omitempty"`
	NoCancel          bool             `json:"noCancel,omitempty"`
	RQID              int              `json:"rqid,omitempty"`
}

// Roster returns the side's Pokémon, or nil when the request has no side.
func (r *Request) Roster() []*Pokemon {
	if r == nil || r.Side == nil {
		return nil
	}
	return r.Side.Pokemon
}

// Side is the requesting player's side of the field.
type Side struct {
	Name    string     `json:"name"`
	ID      string     `json:"id"`
	Pokemon []*Pokemon `json:"pokemon"`
}

// Pokemon is one roster entry.
type Pokemon struct {
	Ident     string   `json:"ident"`
	Details   string   `json:"details"`
	Condition string   `json:"condition"`
	Active    bool     `json:"active"`
	Moves     []string `json:"moves,omitempty"`
	Ability   string   `json:"baseAbility,omitempty"`
	Item      string   `json:"item,omitempty"`
}

// GetID returns the Pokémon's ident, e.g. "p1: Pikachu".
func (p *Pokemon) GetID() string {
	return p.Ident
}

// GetType returns EntityTypePokemon.
func (p *Pokemon) GetType() string {
	return EntityTypePokemon
}

var _ core.Entity = (*Pokemon)(nil)

// Fainted reports whether the condition marks the Pokémon as fainted.
func (p *Pokemon) Fainted() bool {
	return strings.HasSuffix(p.Condition, faintedSuffix)
}

// Name returns the ident without the side prefix.
func (p *Pokemon) Name() string {
	if _, name, ok := strings.Cut(p.Ident, ": "); ok {
		return name
	}
	return p.Ident
}

// ActivePokemon is one battle slot waiting for a decision.
type ActivePokemon struct {
	Moves         []*MoveSlot `json:"moves"`
	CanMegaEvo    bool        `json:"canMegaEvo,omitempty"`
	CanUltraBurst bool        `json:"canUltraBurst,omitempty"`
	CanZMove      []*ZMove    `json:"canZMove,omitempty"`
	CanDynamax    bool        `json:"canDynamax,omitempty"`
	MaxMoves      *MaxMoves   `json:"maxMoves,omitempty"`
	Trapped       bool        `json:"trapped,omitempty"`
	MaybeTrapped  bool        `json:"maybeTrapped,omitempty"`
}

// HasZMove reports whether any z-move variant is offered.
func (a *ActivePokemon) HasZMove() bool {
	for _, z := range a.CanZMove {
		if z != nil {
			return true
		}
	}
	return false
}

// MoveSlot is one entry of a slot's move list.
type MoveSlot struct {
	Move     string     `json:"move"`
	ID       string     `json:"id"`
	PP       int        `json:"pp"`
	MaxPP    int        `json:"maxpp"`
	Target   MoveTarget `json:"target"`
	Disabled Disabled   `json:"disabled,omitempty"`
}

// ZMove is a z-move variant of the move at the same index.
type ZMove struct {
	Move   string     `json:"move"`
	Target MoveTarget `json:"target"`
}

// MaxMoves lists the max-move variants of a slot.
type MaxMoves struct {
	MaxMoves   []*MaxMove `json:"maxMoves"`
	Gigantamax string     `json:"gigantamax,omitempty"`
}

// MaxMove is a max-move variant of the move at the same index.
type MaxMove struct {
	Move     string     `json:"move"`
	Target   MoveTarget `json:"target"`
	Disabled Disabled   `json:"disabled,omitempty"`
}

// Disabled is a move's disabled flag. The simulator sends either a boolean or
// the name of the disabling effect.
type Disabled bool

// UnmarshalJSON accepts true/false or a string; a non-empty string means disabled.
func (d *Disabled) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = false
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var source string
		if err := json.Unmarshal(data, &source); err != nil {
			return err
		}
		*d = source != ""
		return nil
	}

	var flag bool
	if err := json.Unmarshal(data, &flag); err != nil {
		return err
	}
	*d = Disabled(flag)
	return nil
}

// MoveTarget is the simulator's target type of a move.
type MoveTarget string

// Move target types
const (
	TargetNormal             MoveTarget = "normal"
	TargetAny                MoveTarget = "any"
	TargetAdjacentFoe        MoveTarget = "adjacentFoe"
	TargetAdjacentAlly       MoveTarget = "adjacentAlly"
	TargetAdjacentAllyOrSelf MoveTarget = "adjacentAllyOrSelf"
	TargetSelf               MoveTarget = "self"
	TargetAllAdjacent        MoveTarget = "allAdjacent"
	TargetAllAdjacentFoes    MoveTarget = "allAdjacentFoes"
	TargetAll                MoveTarget = "all"
	TargetAllySide           MoveTarget = "allySide"
	TargetFoeSide            MoveTarget = "foeSide"
	TargetAllies             MoveTarget = "allies"
	TargetAllyTeam           MoveTarget = "allyTeam"
	TargetRandomNormal       MoveTarget = "randomNormal"
	TargetScripted           MoveTarget = "scripted"
)
