// Package decision implements the per-turn decision orchestrator for battle sides
package decision

//go:generate mockgen -destination=mock/mock_service.go -package=decisionmock github.com/KirkDiggler/showdown-player/internal/orchestrators/decision Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/engine/policy"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/idgen"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
	battlesession "github.com/KirkDiggler/showdown-player/internal/repositories/battle_session"
)

const (
	// DefaultSessionTTL is how long a side's latest request is kept after its last decision
	DefaultSessionTTL = 30 * time.Minute
)

// PolicyFactory builds the policy for one batch on top of the side's random source
type PolicyFactory func(src prng.Source) (engine.Policy, error)

// Service defines the interface for decision operations
type Service interface {
	// Decide resolves a new decision request for a battle side
	Decide(ctx context.Context, input *DecideInput) (*DecideOutput, error)

	// ReportError handles an |error| line; an unavailable choice is resolved
	// again from the latest request, anything else is returned as fatal
	ReportError(ctx context.Context, input *ReportErrorInput) (*ReportErrorOutput, error)

	// GetOptions summarises the legal options of the latest request
	GetOptions(ctx context.Context, input *GetOptionsInput) (*GetOptionsOutput, error)

	// EndBattle abandons any in-flight decision and drops the side's session
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)
}

// Config holds the dependencies for the decision orchestrator
type Config struct {
	SessionRepo battlesession.Repository
	Engine      engine.Engine
	IDGenerator idgen.Generator

	// Policy defaults to the autonomous policy with MoveBias
	Policy   PolicyFactory
	MoveBias float64

	// Seed for every side's random source; zero derives one from the battle id
	Seed       uint64
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Policy == nil {
		errors.ValidateProbability("MoveBias", c.MoveBias, vb)
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo battlesession.Repository
	engine      engine.Engine
	idGen       idgen.Generator
	policy      PolicyFactory
	seed        uint64
	sessionTTL  time.Duration

	mu       sync.Mutex
	inFlight map[string]*batch
}

// batch is one in-flight resolution for a side; done closes once it has
// stopped touching the session
type batch struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewOrchestrator creates a new decision orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	factory := cfg.Policy
	if factory == nil {
		bias := cfg.MoveBias
		factory = func(src prng.Source) (engine.Policy, error) {
			return policy.NewAutonomous(&policy.AutonomousConfig{Source: src, MoveBias: bias})
		}
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		sessionRepo: cfg.SessionRepo,
		engine:      cfg.Engine,
		idGen:       cfg.IDGenerator,
		policy:      factory,
		seed:        cfg.Seed,
		sessionTTL:  ttl,
		inFlight:    make(map[string]*batch),
	}, nil
}

// Decide resolves a new decision request for a battle side
func (o *orchestrator) Decide(ctx context.Context, input *DecideInput) (*DecideOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSide(input.BattleID, input.Side); err != nil {
		return nil, err
	}
	if len(input.Request) == 0 {
		return nil, errors.InvalidArgument("request is required")
	}

	req, err := showdown.ParseRequest(input.Request)
	if err != nil {
		slog.Error("Malformed decision request",
			"battle_id", input.BattleID,
			"side", input.Side,
			"error", err)
		return nil, err
	}

	ctx, release, err := o.acquire(ctx, input.BattleID, input.Side)
	if err != nil {
		return nil, err
	}
	defer release()

	session, isNew, err := o.loadSession(ctx, input.BattleID, input.Side)
	if err != nil {
		return nil, err
	}
	session.Request = append([]byte(nil), input.Request...)
	session.RQID = req.RQID

	return o.resolve(ctx, session, isNew, req)
}

// ReportError handles an |error| line for a battle side
func (o *orchestrator) ReportError(ctx context.Context, input *ReportErrorInput) (*ReportErrorOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSide(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	protocolErr := showdown.ParseProtocolError(input.Message)
	if !engine.IsUnavailableChoice(protocolErr) {
		slog.Error("Server rejected choice",
			"battle_id", input.BattleID,
			"side", input.Side,
			"message", input.Message)
		return nil, protocolErr
	}

	ctx, release, err := o.acquire(ctx, input.BattleID, input.Side)
	if err != nil {
		return nil, err
	}
	defer release()

	getOutput, err := o.sessionRepo.Get(ctx, battlesession.GetInput{BattleID: input.BattleID, Side: input.Side})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.FailedPrecondition("no request to recover from").
				WithBattle(input.BattleID, input.Side)
		}
		return nil, errors.Wrapf(err, "failed to load battle session")
	}
	session := getOutput.Session

	req, err := showdown.ParseRequest(session.Request)
	if err != nil {
		return nil, errors.Wrap(err, "stored request is malformed")
	}

	slog.Info("Recovering from unavailable choice",
		"battle_id", input.BattleID,
		"side", input.Side,
		"rqid", session.RQID,
		"last_choice", session.LastChoice)

	decision, err := o.resolve(ctx, session, false, req)
	if err != nil {
		return nil, err
	}

	return &ReportErrorOutput{
		Recovered: true,
		Decision:  decision,
	}, nil
}

// GetOptions summarises the legal options of the latest request
func (o *orchestrator) GetOptions(ctx context.Context, input *GetOptionsInput) (*GetOptionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSide(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	getOutput, err := o.sessionRepo.Get(ctx, battlesession.GetInput{BattleID: input.BattleID, Side: input.Side})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load battle session")
	}

	req, err := showdown.ParseRequest(getOutput.Session.Request)
	if err != nil {
		return nil, errors.Wrap(err, "stored request is malformed")
	}

	return &GetOptionsOutput{
		Summary:    engine.Summarize(req),
		LastChoice: getOutput.Session.LastChoice,
		Decisions:  getOutput.Session.Decisions,
	}, nil
}

// EndBattle abandons any in-flight decision and drops the side's session
func (o *orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSide(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	key := sideKey(input.BattleID, input.Side)
	o.mu.Lock()
	running, canceled := o.inFlight[key]
	o.mu.Unlock()
	if canceled {
		running.cancel()
		// a batch past its last cancellation check may still save the session
		select {
		case <-running.done:
		case <-ctx.Done():
			return nil, errors.FromContext(ctx.Err(), "failed to end battle")
		}
	}

	deleted, err := o.sessionRepo.Delete(ctx, battlesession.DeleteInput{BattleID: input.BattleID, Side: input.Side})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle session")
	}

	slog.Info("Battle ended",
		"battle_id", input.BattleID,
		"side", input.Side,
		"canceled", canceled)

	return &EndBattleOutput{
		Existed:  deleted.Existed,
		Canceled: canceled,
	}, nil
}

// resolve runs one batch against the session's random source and stores the
// outcome. The request is stored even when resolution fails so it can be
// inspected or retried.
func (o *orchestrator) resolve(
	ctx context.Context,
	session *battlesession.BattleSession,
	isNew bool,
	req *showdown.Request,
) (*DecideOutput, error) {
	rng, err := o.restoreSource(session)
	if err != nil {
		return nil, err
	}

	p, err := o.policy(rng)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build policy")
	}

	result, resolveErr := o.engine.Resolve(ctx, &engine.ResolveInput{
		Request: req,
		Policy:  p,
		Source:  rng,
	})
	if ctx.Err() != nil {
		// the battle ended or the caller went away; nothing to keep
		if resolveErr == nil {
			resolveErr = errors.FromContext(ctx.Err(), "decision abandoned")
		}
		return nil, resolveErr
	}

	if resolveErr == nil {
		session.LastChoice = result.Choice
		session.Decisions++
	}
	state, err := rng.State()
	if err != nil {
		return nil, errors.Wrap(err, "failed to save random source")
	}
	session.PRNGState = state

	if err := o.saveSession(ctx, session, isNew); err != nil {
		return nil, err
	}

	if resolveErr != nil {
		slog.Error("Failed to resolve decision request",
			"battle_id", session.BattleID,
			"side", session.Side,
			"rqid", session.RQID,
			"code", errors.GetCode(resolveErr),
			"error", resolveErr)
		return nil, resolveErr
	}

	decisionID := o.idGen.Generate()
	slog.Info("Decision resolved",
		"decision_id", decisionID,
		"battle_id", session.BattleID,
		"side", session.Side,
		"rqid", session.RQID,
		"kind", result.Kind,
		"choice", result.Choice)

	return &DecideOutput{
		DecisionID: decisionID,
		Kind:       result.Kind,
		Choice:     result.Choice,
		RQID:       session.RQID,
		Actions:    result.Actions,
		Resources:  result.Resources,
	}, nil
}

func (o *orchestrator) loadSession(ctx context.Context, battleID, side string) (*battlesession.BattleSession, bool, error) {
	getOutput, err := o.sessionRepo.Get(ctx, battlesession.GetInput{BattleID: battleID, Side: side})
	if err == nil {
		return getOutput.Session, false, nil
	}
	if !errors.IsNotFound(err) {
		return nil, false, errors.Wrapf(err, "failed to load battle session")
	}

	return &battlesession.BattleSession{
		BattleID: battleID,
		Side:     side,
		Seed:     o.seedFor(battleID, side),
	}, true, nil
}

func (o *orchestrator) saveSession(ctx context.Context, session *battlesession.BattleSession, isNew bool) error {
	if isNew {
		if _, err := o.sessionRepo.Create(ctx, battlesession.CreateInput{Session: session, TTL: o.sessionTTL}); err != nil {
			return errors.Wrapf(err, "failed to create battle session")
		}
		return nil
	}

	if _, err := o.sessionRepo.Update(ctx, battlesession.UpdateInput{Session: session, TTL: o.sessionTTL}); err != nil {
		return errors.Wrapf(err, "failed to update battle session")
	}
	return nil
}

func (o *orchestrator) restoreSource(session *battlesession.BattleSession) (*prng.PRNG, error) {
	if len(session.PRNGState) == 0 {
		return prng.New(session.Seed), nil
	}

	rng, err := prng.Restore(session.PRNGState)
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore random source")
	}
	return rng, nil
}

func (o *orchestrator) seedFor(battleID, side string) uint64 {
	if o.seed != 0 {
		return o.seed
	}
	return prng.SeedFromString(battleID + "/" + side)
}

// acquire marks a side as busy for the length of one batch. The returned
// context is canceled by EndBattle, which then waits for release.
func (o *orchestrator) acquire(ctx context.Context, battleID, side string) (context.Context, func(), error) {
	key := sideKey(battleID, side)

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, busy := o.inFlight[key]; busy {
		return nil, nil, errors.Aborted("a decision is already in flight for this side").
			WithBattle(battleID, side)
	}

	ctx, cancel := context.WithCancel(ctx)
	b := &batch{cancel: cancel, done: make(chan struct{})}
	o.inFlight[key] = b

	release := func() {
		o.mu.Lock()
		delete(o.inFlight, key)
		o.mu.Unlock()
		cancel()
		close(b.done)
	}
	return ctx, release, nil
}

func sideKey(battleID, side string) string {
	return battleID + "/" + side
}

func validateSide(battleID, side string) error {
	vb := errors.NewValidationBuilder()
	if battleID == "" {
		vb.RequiredField("BattleID")
	}
	if side == "" {
		vb.RequiredField("Side")
	}
	return vb.Build()
}
