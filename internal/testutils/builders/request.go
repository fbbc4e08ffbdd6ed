// Package builders provides test data builders for creating test fixtures
package builders

import (
	"encoding/json"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
)

// RequestBuilder provides a fluent interface for building test decision requests
type RequestBuilder struct {
	req *showdown.Request
}

// NewRequestBuilder creates a new builder for side p1 with rqid 1
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		req: &showdown.Request{
			Side: &showdown.Side{
				Name: "Tester",
				ID:   "p1",
			},
			RQID: 1,
		},
	}
}

// WithSideID sets the side id used to prefix idents
func (b *RequestBuilder) WithSideID(id string) *RequestBuilder {
	b.req.Side.ID = id
	return b
}

// WithRQID sets the request id
func (b *RequestBuilder) WithRQID(rqid int) *RequestBuilder {
	b.req.RQID = rqid
	return b
}

// WithWait marks the request as a wait request
func (b *RequestBuilder) WithWait() *RequestBuilder {
	b.req.Wait = true
	return b
}

// WithTeamPreview marks the request as team preview
func (b *RequestBuilder) WithTeamPreview(maxTeamSize int) *RequestBuilder {
	b.req.TeamPreview = true
	b.req.MaxChosenTeamSize = maxTeamSize
	return b
}

// WithForceSwitch sets the per-slot forced switch flags
func (b *RequestBuilder) WithForceSwitch(flags ...bool) *RequestBuilder {
	b.req.ForceSwitch = flags
	return b
}

// WithPokemon appends a healthy roster entry
func (b *RequestBuilder) WithPokemon(name string, active bool) *RequestBuilder {
	return b.WithPokemonCondition(name, "100/100", active)
}

// WithFaintedPokemon appends a fainted roster entry
func (b *RequestBuilder) WithFaintedPokemon(name string, active bool) *RequestBuilder {
	return b.WithPokemonCondition(name, "0 fnt", active)
}

// WithPokemonCondition appends a roster entry with the given condition
func (b *RequestBuilder) WithPokemonCondition(name, condition string, active bool) *RequestBuilder {
	b.req.Side.Pokemon = append(b.req.Side.Pokemon, &showdown.Pokemon{
		Ident:     b.req.Side.ID + ": " + name,
		Details:   name + ", L50",
		Condition: condition,
		Active:    active,
	})
	return b
}

// WithActive appends an active slot
func (b *RequestBuilder) WithActive(active *showdown.ActivePokemon) *RequestBuilder {
	b.req.Active = append(b.req.Active, active)
	return b
}

// Build returns the built request
func (b *RequestBuilder) Build() *showdown.Request {
	return b.req
}

// JSON returns the request encoded the way the simulator sends it
func (b *RequestBuilder) JSON() []byte {
	data, err := json.Marshal(b.req)
	if err != nil {
		panic(err)
	}
	return data
}

// ActiveBuilder provides a fluent interface for building an active slot
type ActiveBuilder struct {
	active *showdown.ActivePokemon
}

// NewActiveBuilder creates an active slot with no moves
func NewActiveBuilder() *ActiveBuilder {
	return &ActiveBuilder{
		active: &showdown.ActivePokemon{},
	}
}

// WithMove appends an enabled move
func (b *ActiveBuilder) WithMove(id string, target showdown.MoveTarget) *ActiveBuilder {
	b.active.Moves = append(b.active.Moves, &showdown.MoveSlot{
		Move:   id,
		ID:     id,
		PP:     10,
		MaxPP:  16,
		Target: target,
	})
	return b
}

// WithDisabledMove appends a disabled move
func (b *ActiveBuilder) WithDisabledMove(id string, target showdown.MoveTarget) *ActiveBuilder {
	b.active.Moves = append(b.active.Moves, &showdown.MoveSlot{
		Move:     id,
		ID:       id,
		PP:       0,
		MaxPP:    16,
		Target:   target,
		Disabled: true,
	})
	return b
}

// WithZMoves sets the z-move list; nil entries mark moves without a variant
func (b *ActiveBuilder) WithZMoves(zmoves ...*showdown.ZMove) *ActiveBuilder {
	b.active.CanZMove = zmoves
	return b
}

// WithMaxMoves sets max-move variants, all targeting adjacent foes
func (b *ActiveBuilder) WithMaxMoves(ids ...string) *ActiveBuilder {
	maxMoves := &showdown.MaxMoves{}
	for _, id := range ids {
		maxMoves.MaxMoves = append(maxMoves.MaxMoves, &showdown.MaxMove{
			Move:   id,
			Target: showdown.TargetAdjacentFoe,
		})
	}
	b.active.MaxMoves = maxMoves
	return b
}

// CanMegaEvo marks the slot as able to mega evolve
func (b *ActiveBuilder) CanMegaEvo() *ActiveBuilder {
	b.active.CanMegaEvo = true
	return b
}

// CanUltraBurst marks the slot as able to ultra burst
func (b *ActiveBuilder) CanUltraBurst() *ActiveBuilder {
	b.active.CanUltraBurst = true
	return b
}

// CanDynamax marks the slot as able to dynamax
func (b *ActiveBuilder) CanDynamax() *ActiveBuilder {
	b.active.CanDynamax = true
	return b
}

// Trapped marks the slot as unable to switch
func (b *ActiveBuilder) Trapped() *ActiveBuilder {
	b.active.Trapped = true
	return b
}

// Build returns the built slot
func (b *ActiveBuilder) Build() *showdown.ActivePokemon {
	return b.active
}
