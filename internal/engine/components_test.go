package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
	"github.com/KirkDiggler/showdown-player/internal/testutils/builders"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		req      *showdown.Request
		expected engine.RequestKind
	}{
		{
			name:     "wait wins over everything",
			req:      &showdown.Request{Wait: true, ForceSwitch: []bool{true}, Active: []*showdown.ActivePokemon{{}}},
			expected: engine.KindWait,
		},
		{
			name:     "forced switch before active",
			req:      &showdown.Request{ForceSwitch: []bool{true}, Active: []*showdown.ActivePokemon{{}}},
			expected: engine.KindForcedSwitch,
		},
		{
			name:     "active choice",
			req:      &showdown.Request{Active: []*showdown.ActivePokemon{{}}},
			expected: engine.KindActiveChoice,
		},
		{
			name:     "team preview is the fallback",
			req:      &showdown.Request{},
			expected: engine.KindTeamPreview,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, engine.Classify(tc.req))
		})
	}
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		action   engine.ChosenAction
		expected string
	}{
		{"pass", engine.PassAction(), "pass"},
		{"plain move", engine.ChosenAction{Kind: engine.ActionMove, Move: 3}, "move 3"},
		{"foe target", engine.ChosenAction{Kind: engine.ActionMove, Move: 1, Target: 2}, "move 1 2"},
		{"ally target", engine.ChosenAction{Kind: engine.ActionMove, Move: 2, Target: -1}, "move 2 -1"},
		{"zmove", engine.ChosenAction{Kind: engine.ActionMove, Move: 1, Target: 1, ZMove: true}, "move 1 1 zmove"},
		{"dynamax", engine.ChosenAction{Kind: engine.ActionMove, Move: 4, Transform: engine.TransformDynamax}, "move 4 dynamax"},
		{"mega", engine.ChosenAction{Kind: engine.ActionMove, Move: 1, Target: 2, Transform: engine.TransformMega}, "move 1 2 mega"},
		{"ultra", engine.ChosenAction{Kind: engine.ActionMove, Move: 1, Transform: engine.TransformUltra}, "move 1 ultra"},
		{"switch", engine.SwitchAction(5), "switch 5"},
		{"default", engine.ChosenAction{Kind: engine.ActionDefault}, "default"},
		{"team", engine.ChosenAction{Kind: engine.ActionTeam, TeamOrder: []int{2, 1, 3}}, "team 213"},
		{"long team", engine.ChosenAction{Kind: engine.ActionTeam, TeamOrder: []int{12, 1}}, "team 12,1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first := engine.Encode(tc.action)
			assert.Equal(t, tc.expected, first)
			assert.Equal(t, first, engine.Encode(tc.action))
		})
	}
}

func TestEncodeBatch(t *testing.T) {
	actions := []engine.ChosenAction{
		{Kind: engine.ActionMove, Move: 1, Target: 2},
		engine.SwitchAction(3),
		engine.PassAction(),
	}
	assert.Equal(t, "move 1 2, switch 3, pass", engine.EncodeBatch(actions))
}

func TestResolveTarget(t *testing.T) {
	t.Run("singles never get a suffix", func(t *testing.T) {
		src := prng.NewScripted()
		assert.Equal(t, 0, engine.ResolveTarget(src, showdown.TargetNormal, 0, 1, false))
		assert.Equal(t, 0, engine.ResolveTarget(src, showdown.TargetAdjacentAlly, 0, 1, false))
	})

	t.Run("foe targets are random", func(t *testing.T) {
		for _, target := range []showdown.MoveTarget{showdown.TargetNormal, showdown.TargetAny, showdown.TargetAdjacentFoe} {
			assert.Equal(t, 1, engine.ResolveTarget(prng.NewScripted(0.2), target, 0, 2, true))
			assert.Equal(t, 2, engine.ResolveTarget(prng.NewScripted(0.8), target, 0, 2, true))
		}
	})

	t.Run("adjacent ally is the paired position", func(t *testing.T) {
		src := prng.NewScripted()
		assert.Equal(t, -2, engine.ResolveTarget(src, showdown.TargetAdjacentAlly, 0, 2, true))
		assert.Equal(t, -1, engine.ResolveTarget(src, showdown.TargetAdjacentAlly, 1, 2, true))
		assert.Equal(t, 0, src.Remaining())
	})

	t.Run("ally or self", func(t *testing.T) {
		assert.Equal(t, -1, engine.ResolveTarget(prng.NewScripted(0.2), showdown.TargetAdjacentAllyOrSelf, 0, 2, true))
		assert.Equal(t, -2, engine.ResolveTarget(prng.NewScripted(0.8), showdown.TargetAdjacentAllyOrSelf, 0, 2, true))
		// without an ally it is always self, with no draw
		assert.Equal(t, -2, engine.ResolveTarget(prng.NewScripted(), showdown.TargetAdjacentAllyOrSelf, 1, 2, false))
	})

	t.Run("spread moves need no suffix", func(t *testing.T) {
		src := prng.NewScripted()
		for _, target := range []showdown.MoveTarget{
			showdown.TargetSelf, showdown.TargetAllAdjacentFoes, showdown.TargetAllAdjacent,
			showdown.TargetAll, showdown.TargetAllySide, showdown.TargetFoeSide, showdown.TargetRandomNormal,
		} {
			assert.Equal(t, 0, engine.ResolveTarget(src, target, 0, 2, true))
		}
	})
}

func TestResources(t *testing.T) {
	batch := engine.NewResources()
	active := builders.NewActiveBuilder().CanMegaEvo().CanDynamax().Build()

	effective := batch.Gate(active)
	assert.True(t, effective.Mega)
	assert.True(t, effective.Dynamax)
	assert.False(t, effective.Ultra)
	assert.False(t, effective.ZMove)
	assert.Equal(t, engine.TransformDynamax, effective.PickTransform())

	batch.ConsumeTransform(engine.TransformDynamax)
	assert.Equal(t, engine.TransformMega, batch.Gate(active).PickTransform())

	batch.ConsumeTransform(engine.TransformMega)
	assert.False(t, batch.Gate(active).CanTransform())
	assert.Equal(t, engine.TransformNone, batch.Gate(active).PickTransform())

	ultra := builders.NewActiveBuilder().CanUltraBurst().Build()
	assert.Equal(t, engine.TransformUltra, batch.Gate(ultra).PickTransform())

	batch.ConsumeZMove()
	assert.False(t, batch.ZMove)
}

func TestEnumerateMoves(t *testing.T) {
	zmove := &showdown.ZMove{Move: "Gigavolt Havoc", Target: showdown.TargetNormal}
	active := builders.NewActiveBuilder().
		WithMove("thunderbolt", showdown.TargetNormal).
		WithDisabledMove("surf", showdown.TargetAllAdjacent).
		WithMove("helpinghand", showdown.TargetAdjacentAlly).
		WithZMoves(zmove, nil, nil).
		WithMaxMoves("maxlightning", "maxgeyser", "maxguard").
		CanDynamax().
		Build()

	t.Run("regular moves with ally", func(t *testing.T) {
		moves := engine.EnumerateMoves(active, false, false, true)
		require.Len(t, moves, 2)
		assert.Equal(t, 1, moves[0].Slot)
		assert.Equal(t, 3, moves[1].Slot)
	})

	t.Run("ally moves dropped without ally", func(t *testing.T) {
		moves := engine.EnumerateMoves(active, false, false, false)
		require.Len(t, moves, 1)
		assert.Equal(t, "thunderbolt", moves[0].Name)
	})

	t.Run("zmoves appended", func(t *testing.T) {
		moves := engine.EnumerateMoves(active, false, true, true)
		require.Len(t, moves, 3)
		assert.True(t, moves[2].ZMove)
		assert.Equal(t, 1, moves[2].Slot)
	})

	t.Run("max moves", func(t *testing.T) {
		moves := engine.EnumerateMoves(active, true, false, true)
		require.Len(t, moves, 3)
		for _, m := range moves {
			assert.True(t, m.Max)
		}
	})
}

func TestUsesMaxMoves(t *testing.T) {
	canDynamax := builders.NewActiveBuilder().CanDynamax().WithMaxMoves("maxstrike").Build()
	assert.False(t, engine.UsesMaxMoves(canDynamax, false))
	assert.True(t, engine.UsesMaxMoves(canDynamax, true))

	dynamaxed := builders.NewActiveBuilder().WithMaxMoves("maxstrike").Build()
	assert.True(t, engine.UsesMaxMoves(dynamaxed, false))

	plain := builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()
	assert.False(t, engine.UsesMaxMoves(plain, true))
}

func TestEnumerateSwitches(t *testing.T) {
	roster := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithFaintedPokemon("Snorlax", false).
		WithPokemon("Mew", false).
		WithPokemon("Ditto", false).
		Build().Roster()

	slotsOf := func(options []engine.SwitchOption) []int {
		var slots []int
		for _, o := range options {
			slots = append(slots, o.Slot)
		}
		return slots
	}

	assert.Equal(t, []int{4, 5}, slotsOf(engine.EnumerateSwitches(roster, nil, false)))
	assert.Equal(t, []int{5}, slotsOf(engine.EnumerateSwitches(roster, []int{4}, false)))
	assert.Empty(t, engine.EnumerateSwitches(roster, nil, true))
	assert.Equal(t, []int{5}, slotsOf(engine.EnumerateForcedSwitches(roster, 4, nil)))
}

func TestHasLivingAlly(t *testing.T) {
	roster := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithFaintedPokemon("Eevee", true).
		WithPokemon("Mew", false).
		Build().Roster()

	assert.False(t, engine.HasLivingAlly(roster, 1, 0))
	assert.False(t, engine.HasLivingAlly(roster, 2, 0))
	assert.True(t, engine.HasLivingAlly(roster, 2, 1))
	assert.False(t, engine.HasLivingAlly(roster[:1], 2, 0))
}

func TestDisplayMoveName(t *testing.T) {
	testCases := map[string]string{
		"maxstrike":     "Max Strike",
		"gmaxvoltcrash": "G-Max Voltcrash",
		"thunderbolt":   "Thunderbolt",
		"Thunderbolt":   "Thunderbolt",
		"Max Guard":     "Max Guard",
		"":              "",
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, engine.DisplayMoveName(in), in)
	}
}

func TestSummarize(t *testing.T) {
	req := builders.NewRequestBuilder().
		WithRQID(9).
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithFaintedPokemon("Mew", false).
		WithActive(builders.NewActiveBuilder().
			CanDynamax().
			WithMove("thunderbolt", showdown.TargetNormal).
			WithDisabledMove("surf", showdown.TargetAllAdjacent).
			WithMaxMoves("maxlightning", "maxgeyser").
			Build()).
		Build()

	summary := engine.Summarize(req)
	assert.Equal(t, engine.KindActiveChoice, summary.Kind)
	assert.Equal(t, 9, summary.RQID)
	require.Len(t, summary.Slots, 1)

	slot := summary.Slots[0]
	assert.Equal(t, "Pikachu", slot.Pokemon)
	assert.True(t, slot.CanDynamax)
	require.Len(t, slot.Moves, 2)
	assert.True(t, slot.Moves[1].Disabled)
	assert.Equal(t, "Thunderbolt", slot.Moves[0].DisplayName)
	require.Len(t, slot.MaxMoves, 2)
	assert.Equal(t, "Max Lightning", slot.MaxMoves[0].DisplayName)
	require.Len(t, slot.Switches, 1)
	assert.Equal(t, 2, slot.Switches[0].Slot)
	assert.Equal(t, "Eevee", slot.Switches[0].Name)
}

func TestSummarizeForcedSwitchAndTeam(t *testing.T) {
	forced := builders.NewRequestBuilder().
		WithForceSwitch(true).
		WithFaintedPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		Build()

	summary := engine.Summarize(forced)
	require.Len(t, summary.Slots, 1)
	assert.True(t, summary.Slots[0].MustSwitch)
	assert.True(t, summary.Slots[0].Fainted)
	require.Len(t, summary.Slots[0].Switches, 1)

	team := builders.NewRequestBuilder().
		WithTeamPreview(2).
		WithPokemon("Pikachu", false).
		WithPokemon("Eevee", false).
		WithPokemon("Mew", false).
		Build()

	summary = engine.Summarize(team)
	assert.Equal(t, engine.KindTeamPreview, summary.Kind)
	assert.Len(t, summary.Team, 3)
	assert.Equal(t, 2, summary.MaxTeamSize)
}
