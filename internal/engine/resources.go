package engine

import "github.com/KirkDiggler/showdown-player/internal/entities/showdown"

// Resources are the one-shot resources of a batch. A flag turns false once
// any slot of the batch consumes it.
type Resources struct {
	Mega    bool `json:"mega"`
	Ultra   bool `json:"ultra"`
	ZMove   bool `json:"zmove"`
	Dynamax bool `json:"dynamax"`
}

// NewResources returns the state at the start of a batch.
func NewResources() Resources {
	return Resources{
		Mega:    true,
		Ultra:   true,
		ZMove:   true,
		Dynamax: true,
	}
}

// Gate returns the resources usable by a slot: the batch flags ANDed with the
// slot's own eligibility. The batch flags themselves are left untouched.
func (r Resources) Gate(active *showdown.ActivePokemon) Resources {
	return Resources{
		Mega:    r.Mega && active.CanMegaEvo,
		Ultra:   r.Ultra && active.CanUltraBurst,
		ZMove:   r.ZMove && active.HasZMove(),
		Dynamax: r.Dynamax && active.CanDynamax,
	}
}

// CanTransform reports whether any transform is usable.
func (r Resources) CanTransform() bool {
	return r.Mega || r.Ultra || r.Dynamax
}

// PickTransform returns the transform to use from r in precedence order:
// dynamax, then mega, then ultra.
func (r Resources) PickTransform() Transform {
	switch {
	case r.Dynamax:
		return TransformDynamax
	case r.Mega:
		return TransformMega
	case r.Ultra:
		return TransformUltra
	default:
		return TransformNone
	}
}

// ConsumeTransform marks a transform as used for the rest of the batch.
func (r *Resources) ConsumeTransform(t Transform) {
	switch t {
	case TransformDynamax:
		r.Dynamax = false
	case TransformMega:
		r.Mega = false
	case TransformUltra:
		r.Ultra = false
	}
}

// ConsumeZMove marks the z-move as used for the rest of the batch.
func (r *Resources) ConsumeZMove() {
	r.ZMove = false
}
