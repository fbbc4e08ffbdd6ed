// Package battlesession provides repository interface and types for per-side battle sessions
package battlesession

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesessionmock github.com/KirkDiggler/showdown-player/internal/repositories/battle_session Repository

// BattleSession is the decision state kept for one side of one battle
type BattleSession struct {
	// Battle room id (e.g., "battle-gen9randombattle-123")
	BattleID string `json:"battle_id"`

	// Side being decided for (e.g., "p1")
	Side string `json:"side"`

	// Latest decision request, kept raw so it can be resolved again
	Request json.RawMessage `json:"request"`

	// Request id of the latest request
	RQID int `json:"rqid"`

	// Last choice sent for this side
	LastChoice string `json:"last_choice,omitempty"`

	// Seed the random source was created from
	Seed uint64 `json:"seed"`

	// Serialised random source state after the last decision
	PRNGState []byte `json:"prng_state,omitempty"`

	// Number of batches resolved for this side
	Decisions int `json:"decisions"`

	// When this session was created
	CreatedAt time.Time `json:"created_at"`

	// When this session expires
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session outlived its TTL at now.
// A session that was never stored has no expiry.
func (s *BattleSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// CreateInput contains parameters for creating a battle session
type CreateInput struct {
	Session *BattleSession
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the result of creating a battle session
type CreateOutput struct {
	Session *BattleSession
}

// GetInput contains parameters for retrieving a battle session
type GetInput struct {
	BattleID string
	Side     string
}

// GetOutput contains the result of retrieving a battle session
type GetOutput struct {
	Session *BattleSession
}

// UpdateInput contains parameters for replacing a battle session
type UpdateInput struct {
	Session *BattleSession
	TTL     time.Duration // Expiry is pushed out by this much from now
}

// UpdateOutput contains the result of updating a battle session
type UpdateOutput struct {
	Session *BattleSession
}

// DeleteInput contains parameters for deleting a battle session
type DeleteInput struct {
	BattleID string
	Side     string
}

// DeleteOutput contains the result of deleting a battle session
type DeleteOutput struct {
	Existed bool
}

// Repository defines the interface for battle session storage operations
type Repository interface {
	// Create stores a new battle session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a battle session by battle id and side
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing battle session and extends its expiry
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a battle session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
