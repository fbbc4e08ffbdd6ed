package battlesession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*BattleSession
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*BattleSession),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new battle session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	session := copySession(input.Session)
	session.CreatedAt = now
	session.ExpiresAt = now.Add(ttlOrDefault(input.TTL))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[inMemoryKey(session.BattleID, session.Side)] = session

	return &CreateOutput{Session: copySession(session)}, nil
}

// Get retrieves a battle session
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	key := inMemoryKey(input.BattleID, input.Side)

	r.mu.RLock()
	session, exists := r.store[key]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFound("battle session not found").
			WithBattle(input.BattleID, input.Side)
	}

	if session.Expired(r.clock.Now()) {
		r.mu.Lock()
		delete(r.store, key)
		r.mu.Unlock()
		return nil, errors.NotFound(errSessionExpired)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Session: copySession(session)}, nil
}

// Update replaces a battle session and extends its expiry
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	session := copySession(input.Session)
	session.ExpiresAt = r.clock.Now().Add(ttlOrDefault(input.TTL))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[inMemoryKey(session.BattleID, session.Side)] = session

	return &UpdateOutput{Session: copySession(session)}, nil
}

// Delete removes a battle session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	key := inMemoryKey(input.BattleID, input.Side)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.store[key]
	delete(r.store, key)

	return &DeleteOutput{Existed: existed}, nil
}

func inMemoryKey(battleID, side string) string {
	return battleID + ":" + side
}

func copySession(s *BattleSession) *BattleSession {
	c := *s
	c.Request = append([]byte(nil), s.Request...)
	c.PRNGState = append([]byte(nil), s.PRNGState...)
	return &c
}
