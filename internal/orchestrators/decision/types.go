package decision

import (
	"encoding/json"

	"github.com/KirkDiggler/showdown-player/internal/engine"
)

// DecideInput defines the request for resolving a decision request
type DecideInput struct {
	BattleID string
	Side     string
	Request  json.RawMessage // request JSON exactly as the server sent it
}

// DecideOutput defines the response for a resolved decision request
type DecideOutput struct {
	DecisionID string
	Kind       engine.RequestKind
	Choice     string // empty for a wait request
	RQID       int
	Actions    []engine.ChosenAction
	Resources  engine.Resources
}

// ReportErrorInput carries an |error| message the server sent for a side
type ReportErrorInput struct {
	BattleID string
	Side     string
	Message  string
}

// ReportErrorOutput defines the response after a recoverable protocol error
type ReportErrorOutput struct {
	Recovered bool
	Decision  *DecideOutput
}

// GetOptionsInput defines the request for the latest request's options
type GetOptionsInput struct {
	BattleID string
	Side     string
}

// GetOptionsOutput defines the response for GetOptions
type GetOptionsOutput struct {
	Summary    *engine.Summary
	LastChoice string
	Decisions  int
}

// EndBattleInput defines the request for ending a battle side
type EndBattleInput struct {
	BattleID string
	Side     string
}

// EndBattleOutput defines the response for ending a battle side
type EndBattleOutput struct {
	Existed  bool // a session was stored
	Canceled bool // an in-flight decision was abandoned
}
