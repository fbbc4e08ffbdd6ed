package prng

import "fmt"

// Scripted replays a fixed list of draws. It is meant for tests that need to
// pin every random decision.
type Scripted struct {
	values []float64
	next   int
}

// NewScripted returns a Source that yields values in order.
// IntN(n) maps the next value v to int(v*n).
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

// Float64 returns the next scripted value.
func (s *Scripted) Float64() float64 {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("prng: scripted source exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// IntN maps the next scripted value onto [0, n).
func (s *Scripted) IntN(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Remaining reports how many draws are left.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.next
}

var _ Source = (*Scripted)(nil)
