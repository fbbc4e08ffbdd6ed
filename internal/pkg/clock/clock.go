// Package clock abstracts the current time so session expiry can be tested
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/showdown-player/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time {
	return time.Now()
}

// New returns the system clock
func New() Clock {
	return system{}
}
