// Package player drives one side of a live battle over a Showdown connection
package player

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/showdown-player/internal/clients/showdown"
	"github.com/KirkDiggler/showdown-player/internal/engine"
	entities "github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/orchestrators/decision"
)

// Config holds the dependencies for a player
type Config struct {
	Client    showdown.Client
	Decisions decision.Service

	// Username decides whether a |win| line is ours
	Username string

	// Room restricts the player to one battle room; empty takes the first
	// room a request arrives in
	Room string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Decisions == nil {
		vb.RequiredField("Decisions")
	}
	return vb.Build()
}

// Result describes how a battle ended
type Result struct {
	Room      string
	Side      string
	Winner    string
	Won       bool
	Tie       bool
	Decisions int
}

// Player answers requests for one battle until it ends
type Player struct {
	client    showdown.Client
	decisions decision.Service
	username  string

	room string
	side string

	seq      int
	inFlight *resolution

	// submitted is the rqid of the last choice sent; rejected allows one
	// more choice for it after an unavailable-choice error
	submitted int
	rejected  bool

	results  chan outcome
	result   Result
}

type resolution struct {
	seq    int
	cancel context.CancelFunc
	done   chan struct{}
}

type outcome struct {
	seq      int
	decision *decision.DecideOutput
	err      error
}

type received struct {
	frame *showdown.Frame
	err   error
}

// New creates a player
func New(cfg *Config) (*Player, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Player{
		client:    cfg.Client,
		decisions: cfg.Decisions,
		username:  cfg.Username,
		room:      cfg.Room,
		results:   make(chan outcome, 1),
	}, nil
}

// Run reads frames until the battle ends, ctx is done or the connection
// fails. The caller owns the client and closes it afterwards.
func (p *Player) Run(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer p.abandon()

	frames := make(chan received)
	go p.read(ctx, frames)

	for {
		select {
		case <-ctx.Done():
			return nil, errors.FromContext(ctx.Err(), "battle abandoned")

		case in := <-frames:
			if in.err != nil {
				return nil, errors.Wrap(in.err, "connection lost")
			}
			done, err := p.handleFrame(ctx, in.frame)
			if err != nil {
				return nil, err
			}
			if done {
				p.finish(ctx)
				result := p.result
				return &result, nil
			}

		case out := <-p.results:
			if err := p.handleOutcome(out); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Player) read(ctx context.Context, frames chan<- received) {
	for {
		frame, err := p.client.Receive()
		select {
		case frames <- received{frame: frame, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// handleFrame reports true once the battle is over
func (p *Player) handleFrame(ctx context.Context, frame *showdown.Frame) (bool, error) {
	if frame.Room == "" || !strings.HasPrefix(frame.Room, "battle-") {
		return false, nil
	}
	if p.room != "" && frame.Room != p.room {
		return false, nil
	}

	for _, line := range frame.Lines {
		switch line.Type {
		case showdown.MessageRequest:
			p.handleRequest(ctx, frame.Room, line.Arg(0))

		case showdown.MessageError:
			if p.room == "" {
				continue
			}
			if err := p.handleError(line.Arg(0)); err != nil {
				return false, err
			}

		case showdown.MessageWin:
			if p.room == "" {
				continue
			}
			p.result.Winner = line.Arg(0)
			p.result.Won = p.username != "" && showdown.ToID(line.Arg(0)) == showdown.ToID(p.username)
			return true, nil

		case showdown.MessageTie:
			if p.room == "" {
				continue
			}
			p.result.Tie = true
			return true, nil
		}
	}
	return false, nil
}

func (p *Player) handleRequest(ctx context.Context, room, payload string) {
	if strings.TrimSpace(payload) == "" {
		return
	}

	var header entities.Request
	if err := json.Unmarshal([]byte(payload), &header); err == nil && header.Side != nil && header.Side.ID != "" {
		p.side = header.Side.ID
	}
	if p.side == "" {
		p.side = "p1"
	}
	p.room = room

	raw := json.RawMessage(payload)
	battleID, side := p.room, p.side
	p.start(ctx, func(ctx context.Context) (*decision.DecideOutput, error) {
		return p.decisions.Decide(ctx, &decision.DecideInput{
			BattleID: battleID,
			Side:     side,
			Request:  raw,
		})
	})
}

// handleError keeps the battle going after an unavailable choice. The
// simulator follows the rejection with a fresh request for the same rqid,
// and that request is resolved like any other. Any other rejection ends
// the battle.
func (p *Player) handleError(message string) error {
	protocolErr := entities.ParseProtocolError(message)
	if !engine.IsUnavailableChoice(protocolErr) {
		slog.Error("Server rejected choice",
			"battle_id", p.room,
			"side", p.side,
			"message", message)
		return protocolErr
	}

	p.rejected = true
	slog.Warn("Choice unavailable, waiting for follow-up request",
		"battle_id", p.room,
		"side", p.side,
		"message", message)
	return nil
}

// start abandons the resolution in flight, if any, and begins another.
// Only the latest resolution's outcome is acted on.
func (p *Player) start(ctx context.Context, resolve func(context.Context) (*decision.DecideOutput, error)) {
	p.abandon()

	p.seq++
	rctx, cancel := context.WithCancel(ctx)
	r := &resolution{seq: p.seq, cancel: cancel, done: make(chan struct{})}
	p.inFlight = r

	go func() {
		defer close(r.done)
		out, err := resolve(rctx)
		select {
		case p.results <- outcome{seq: r.seq, decision: out, err: err}:
		case <-rctx.Done():
		}
	}()
}

// abandon cancels the resolution in flight and waits for it to stop so
// that a side never has two batches running.
func (p *Player) abandon() {
	if p.inFlight == nil {
		return
	}
	p.inFlight.cancel()
	<-p.inFlight.done
	p.inFlight = nil

	// drop an outcome the abandoned resolution may have delivered
	select {
	case <-p.results:
	default:
	}
}

func (p *Player) handleOutcome(out outcome) error {
	if p.inFlight == nil || out.seq != p.inFlight.seq {
		return nil
	}
	p.inFlight.cancel()
	p.inFlight = nil

	if out.err != nil {
		if errors.IsCanceled(out.err) {
			return nil
		}
		slog.Error("Decision failed",
			"battle_id", p.room,
			"side", p.side,
			"code", errors.GetCode(out.err),
			"error", out.err)
		return out.err
	}

	if out.decision == nil || out.decision.Kind == engine.KindWait || out.decision.Choice == "" {
		return nil
	}

	rqid := out.decision.RQID
	if rqid != 0 && rqid == p.submitted && !p.rejected {
		slog.Warn("Choice already submitted for request",
			"battle_id", p.room,
			"side", p.side,
			"rqid", rqid,
			"choice", out.decision.Choice)
		return nil
	}

	if err := showdown.Choose(p.client, p.room, out.decision.Choice, rqid); err != nil {
		return errors.Wrap(err, "failed to submit choice")
	}
	p.result.Decisions++
	p.submitted = rqid
	p.rejected = false

	slog.Info("Choice submitted",
		"battle_id", p.room,
		"side", p.side,
		"rqid", out.decision.RQID,
		"choice", out.decision.Choice)
	return nil
}

// finish abandons any pending decision and releases the battle side
func (p *Player) finish(ctx context.Context) {
	p.abandon()

	p.result.Room = p.room
	p.result.Side = p.side

	if _, err := p.decisions.EndBattle(ctx, &decision.EndBattleInput{BattleID: p.room, Side: p.side}); err != nil {
		slog.Warn("Failed to end battle", "battle_id", p.room, "side", p.side, "error", err)
	}
	if err := showdown.LeaveRoom(p.client, p.room); err != nil {
		slog.Warn("Failed to leave room", "battle_id", p.room, "error", err)
	}

	slog.Info("Battle finished",
		"battle_id", p.room,
		"side", p.side,
		"winner", p.result.Winner,
		"won", p.result.Won,
		"tie", p.result.Tie,
		"decisions", p.result.Decisions)
}
