// Package prng provides the seedable random source used for autonomous choices
// and target disambiguation.
package prng

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Source is the random source the engine and policies draw from.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// streamConstant is the PCG increment seed paired with every user seed.
const streamConstant = 0x9e3779b97f4a7c15

// PRNG is a PCG-backed Source whose state can be persisted between decisions.
type PRNG struct {
	pcg *rand.PCG
	rnd *rand.Rand
}

// New creates a PRNG from a seed. Equal seeds produce equal sequences.
func New(seed uint64) *PRNG {
	pcg := rand.NewPCG(seed, seed^streamConstant)
	return &PRNG{
		pcg: pcg,
		rnd: rand.New(pcg),
	}
}

// Restore rebuilds a PRNG from a state previously returned by State.
func Restore(state []byte) (*PRNG, error) {
	if len(state) == 0 {
		return nil, errors.InvalidArgument("prng state is empty")
	}

	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to restore prng state")
	}

	return &PRNG{
		pcg: pcg,
		rnd: rand.New(pcg),
	}, nil
}

// State returns the serialised generator state.
func (p *PRNG) State() ([]byte, error) {
	state, err := p.pcg.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal prng state")
	}
	return state, nil
}

// Float64 returns a uniform value in [0, 1).
func (p *PRNG) Float64() float64 {
	return p.rnd.Float64()
}

// IntN returns a uniform value in [0, n).
func (p *PRNG) IntN(n int) int {
	return p.rnd.IntN(n)
}

// Roll rolls a single die with the given number of sides.
func (p *PRNG) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return p.rnd.IntN(size) + 1, nil
}

// RollN rolls count dice with the given number of sides.
func (p *PRNG) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}

	results := make([]int, count)
	for i := range results {
		roll, err := p.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

var (
	_ Source      = (*PRNG)(nil)
	_ dice.Roller = (*PRNG)(nil)
)

// SeedFromString derives a stable seed from an identifier such as "battle-gen9randombattle-1/p1".
func SeedFromString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Sample returns a uniformly chosen element of items. items must not be empty.
func Sample[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
