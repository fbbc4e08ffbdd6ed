package prng

import (
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// rollerPrecision is the die size used to derive a float from a roller.
const rollerPrecision = 1 << 30

// RollerSource adapts any dice.Roller into a Source.
// The first roller failure is kept in Err and subsequent draws return zero.
type RollerSource struct {
	roller dice.Roller

	mu  sync.Mutex
	err error
}

// FromRoller wraps a toolkit roller so it can drive autonomous choices.
func FromRoller(roller dice.Roller) *RollerSource {
	return &RollerSource{roller: roller}
}

// Float64 returns a value in [0, 1) built from one roll.
func (s *RollerSource) Float64() float64 {
	v := s.roll(rollerPrecision)
	if v == 0 {
		return 0
	}
	return float64(v-1) / rollerPrecision
}

// IntN returns a value in [0, n).
func (s *RollerSource) IntN(n int) int {
	v := s.roll(n)
	if v == 0 {
		return 0
	}
	return v - 1
}

// Err returns the first roller failure, if any.
func (s *RollerSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *RollerSource) roll(size int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0
	}
	v, err := s.roller.Roll(size)
	if err != nil {
		s.err = err
		return 0
	}
	return v
}

var _ Source = (*RollerSource)(nil)
