package testutils

import (
	"encoding/json"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/testutils/builders"
)

// Battle identifiers shared by tests
const (
	TestBattleID = "battle-gen9randomdoublesbattle-1"
	TestSide     = "p1"
)

// SinglesRequest is a singles move request: Pikachu active with two moves,
// Eevee and a fainted Snorlax on the bench
func SinglesRequest() *showdown.Request {
	return builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithFaintedPokemon("Snorlax", false).
		WithActive(builders.NewActiveBuilder().
			WithMove("thunderbolt", showdown.TargetNormal).
			WithMove("protect", showdown.TargetSelf).
			Build()).
		Build()
}

// DoublesRequest is a doubles move request with Pikachu and Eevee active
func DoublesRequest() *showdown.Request {
	return builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithPokemon("Mew", false).
		WithPokemon("Snorlax", false).
		WithActive(builders.NewActiveBuilder().
			WithMove("thunderbolt", showdown.TargetNormal).
			CanMegaEvo().
			Build()).
		WithActive(builders.NewActiveBuilder().
			WithMove("helpinghand", showdown.TargetAdjacentAlly).
			Build()).
		Build()
}

// ForcedSwitchRequest asks slot 1 to replace a fainted Pikachu
func ForcedSwitchRequest() *showdown.Request {
	return builders.NewRequestBuilder().
		WithForceSwitch(true).
		WithFaintedPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithPokemon("Mew", false).
		Build()
}

// WaitRequest is a request with nothing to decide
func WaitRequest() *showdown.Request {
	return builders.NewRequestBuilder().
		WithWait().
		WithPokemon("Pikachu", true).
		Build()
}

// MustJSON encodes a request the way the server sends it
func MustJSON(req *showdown.Request) json.RawMessage {
	data, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	return data
}
