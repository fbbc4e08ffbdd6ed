package engine_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/engine/policy"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
	"github.com/KirkDiggler/showdown-player/internal/testutils/builders"
)

type EngineTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *EngineTestSuite) resolve(
	req *showdown.Request,
	src prng.Source,
	transformProbability, moveBias float64,
) (*engine.ResolveOutput, error) {
	e, err := engine.New(&engine.Config{TransformProbability: transformProbability})
	s.Require().NoError(err)

	p, err := policy.NewAutonomous(&policy.AutonomousConfig{
		Source:   src,
		MoveBias: moveBias,
	})
	s.Require().NoError(err)

	return e.Resolve(s.ctx, &engine.ResolveInput{
		Request: req,
		Policy:  p,
		Source:  src,
	})
}

func trappedSlot(moves ...string) *showdown.ActivePokemon {
	b := builders.NewActiveBuilder().Trapped()
	for _, m := range moves {
		b.WithMove(m, showdown.TargetNormal)
	}
	return b.Build()
}

func (s *EngineTestSuite) TestNewValidatesConfig() {
	_, err := engine.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = engine.New(&engine.Config{TransformProbability: 1.5})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestWaitProducesNoChoice() {
	req := builders.NewRequestBuilder().WithWait().Build()

	out, err := s.resolve(req, prng.NewScripted(), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal(engine.KindWait, out.Kind)
	s.Empty(out.Choice)
	s.Empty(out.Actions)
}

func (s *EngineTestSuite) TestTrappedSinglesAlwaysMoves() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithActive(trappedSlot("thunderbolt", "quickattack", "irontail", "thunderwave")).
		Build()

	pattern := regexp.MustCompile(`^move [1-4]$`)
	for seed := uint64(0); seed < 50; seed++ {
		out, err := s.resolve(req, prng.New(seed), 0, policy.DefaultMoveBias)
		s.Require().NoError(err)
		s.Regexp(pattern, out.Choice)
	}
}

func (s *EngineTestSuite) TestDisabledMovesNeverChosen() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			WithDisabledMove("thunderbolt", showdown.TargetNormal).
			WithMove("quickattack", showdown.TargetNormal).
			WithDisabledMove("irontail", showdown.TargetNormal).
			Build()).
		Build()

	for _, draw := range []float64{0.0, 0.5, 0.99} {
		out, err := s.resolve(req, prng.NewScripted(draw), 0, policy.DefaultMoveBias)
		s.Require().NoError(err)
		s.Equal("move 2", out.Choice)
	}
}

func (s *EngineTestSuite) TestForcedSwitchSkipsFaintedAndActive() {
	req := builders.NewRequestBuilder().
		WithForceSwitch(true, false).
		WithFaintedPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithFaintedPokemon("Snorlax", false).
		WithPokemon("Mew", false).
		Build()

	src := prng.NewScripted(0.5)
	out, err := s.resolve(req, src, 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal(engine.KindForcedSwitch, out.Kind)
	s.Equal("switch 4, pass", out.Choice)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestForcedSwitchPassesWhenNothingLeft() {
	req := builders.NewRequestBuilder().
		WithForceSwitch(true, true).
		WithFaintedPokemon("Pikachu", true).
		WithFaintedPokemon("Eevee", true).
		WithPokemon("Snorlax", false).
		WithFaintedPokemon("Mew", false).
		Build()

	out, err := s.resolve(req, prng.NewScripted(0.0), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("switch 3, pass", out.Choice)
}

func (s *EngineTestSuite) TestForcedSwitchNeverRepeatsTarget() {
	req := builders.NewRequestBuilder().
		WithForceSwitch(true, true).
		WithFaintedPokemon("Pikachu", true).
		WithFaintedPokemon("Eevee", true).
		WithPokemon("Snorlax", false).
		WithPokemon("Mew", false).
		Build()

	out, err := s.resolve(req, prng.NewScripted(0.0, 0.0), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("switch 3, switch 4", out.Choice)
}

func (s *EngineTestSuite) TestAdjacentAllyTargetIsDeterministic() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			WithMove("helpinghand", showdown.TargetAdjacentAlly).
			Build()).
		WithActive(trappedSlot("tackle")).
		Build()

	// slot 1 sample; slot 2 sample, then foe target
	src := prng.NewScripted(0.0, 0.0, 0.7)
	out, err := s.resolve(req, src, 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 1 -2, move 1 2", out.Choice)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestAllyMovesDroppedWithoutLivingAlly() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithFaintedPokemon("Eevee", true).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			WithMove("helpinghand", showdown.TargetAdjacentAlly).
			WithMove("tackle", showdown.TargetNormal).
			Build()).
		WithActive(trappedSlot("tackle")).
		Build()

	out, err := s.resolve(req, prng.NewScripted(0.0, 0.0), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 2 1, pass", out.Choice)
}

func (s *EngineTestSuite) TestAllyMovesKeptWhenNothingElseIsLegal() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithFaintedPokemon("Eevee", true).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			WithMove("helpinghand", showdown.TargetAdjacentAlly).
			Build()).
		WithActive(trappedSlot("tackle")).
		Build()

	out, err := s.resolve(req, prng.NewScripted(0.0), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 1 -2, pass", out.Choice)
}

func (s *EngineTestSuite) TestDynamaxTakesPrecedenceAndLeavesMegaForSibling() {
	req := builders.NewRequestBuilder().
		WithPokemon("Charizard", true).
		WithPokemon("Lopunny", true).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			CanMegaEvo().
			CanDynamax().
			WithMove("flamethrower", showdown.TargetNormal).
			WithMaxMoves("maxflare").
			Build()).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			CanMegaEvo().
			WithMove("highjumpkick", showdown.TargetNormal).
			Build()).
		Build()

	// slot 1: roll, sample, target; slot 2: roll, sample, target
	src := prng.NewScripted(0.0, 0.0, 0.0, 0.0, 0.0, 0.99)
	out, err := s.resolve(req, src, 1.0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 1 1 dynamax, move 1 2 mega", out.Choice)
	s.False(out.Resources.Dynamax)
	s.False(out.Resources.Mega)
	s.True(out.Resources.Ultra)
	s.True(out.Resources.ZMove)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestMegaConsumedOncePerBatch() {
	req := builders.NewRequestBuilder().
		WithPokemon("Gardevoir", true).
		WithPokemon("Gallade", true).
		WithActive(builders.NewActiveBuilder().Trapped().CanMegaEvo().WithMove("psychic", showdown.TargetNormal).Build()).
		WithActive(builders.NewActiveBuilder().Trapped().CanMegaEvo().WithMove("psychocut", showdown.TargetNormal).Build()).
		Build()

	// the second slot has nothing left to roll for
	src := prng.NewScripted(0.0, 0.0, 0.0, 0.0, 0.0)
	out, err := s.resolve(req, src, 1.0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 1 1 mega, move 1 1", out.Choice)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestZMoveConsumedOncePerBatch() {
	zmove := &showdown.ZMove{Move: "Breakneck Blitz", Target: showdown.TargetNormal}
	req := builders.NewRequestBuilder().
		WithPokemon("Snorlax", true).
		WithPokemon("Kangaskhan", true).
		WithActive(builders.NewActiveBuilder().Trapped().WithMove("tackle", showdown.TargetNormal).WithZMoves(zmove).Build()).
		WithActive(builders.NewActiveBuilder().Trapped().WithMove("tackle", showdown.TargetNormal).WithZMoves(zmove).Build()).
		Build()

	src := prng.NewScripted(0.9, 0.0, 0.0, 0.0)
	out, err := s.resolve(req, src, 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("move 1 1 zmove, move 1 1", out.Choice)
	s.False(out.Resources.ZMove)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestFaintedSlotPassesWithoutDraws() {
	req := builders.NewRequestBuilder().
		WithFaintedPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithActive(builders.NewActiveBuilder().Trapped().CanMegaEvo().WithMove("tackle", showdown.TargetNormal).Build()).
		WithActive(trappedSlot("tackle")).
		Build()

	src := prng.NewScripted(0.0, 0.0)
	out, err := s.resolve(req, src, 1.0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("pass, move 1 1", out.Choice)
	s.True(out.Resources.Mega)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestUnsatisfiableSlotIsFatal() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithActive(builders.NewActiveBuilder().
			Trapped().
			WithDisabledMove("thunderbolt", showdown.TargetNormal).
			Build()).
		Build()

	_, err := s.resolve(req, prng.NewScripted(), 0, policy.DefaultMoveBias)
	s.Require().Error(err)
	s.True(engine.IsUnsatisfiable(err))

	meta := errors.GetMeta(err)
	s.Require().NotNil(meta)
	s.Equal(1, meta["slot"])
	s.Equal(string(engine.PhaseEnumerated), meta["phase"])
	s.Equal(false, meta["mega"])
	s.Equal("", meta["chosen"])
	s.Equal(engine.ReasonUnsatisfiable, meta[engine.MetaReason])

	// wrapping keeps the reason
	s.True(engine.IsUnsatisfiable(errors.Wrap(err, "failed to resolve")))
	s.False(engine.IsUnsatisfiable(errors.FailedPrecondition("unable to make choice for slot 1")))
}

func (s *EngineTestSuite) TestSwitchesWhenNoMoveIsLegal() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithActive(builders.NewActiveBuilder().
			WithDisabledMove("thunderbolt", showdown.TargetNormal).
			Build()).
		Build()

	src := prng.NewScripted(0.0)
	out, err := s.resolve(req, src, 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal("switch 2", out.Choice)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestMoveBiasZeroSwitches() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithPokemon("Snorlax", false).
		WithPokemon("Mew", false).
		WithActive(builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()).
		WithActive(builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()).
		Build()

	// each slot: bias draw, then sample
	out, err := s.resolve(req, prng.NewScripted(0.5, 0.0, 0.5, 0.0), 0, 0)
	s.Require().NoError(err)
	s.Equal("switch 3, switch 4", out.Choice)
}

func (s *EngineTestSuite) TestSecondSlotCannotSwitchToChosenTarget() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithPokemon("Snorlax", false).
		WithActive(builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()).
		WithActive(builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()).
		Build()

	// slot 1 switches to 3; slot 2 has no switch left so it moves without a bias draw
	src := prng.NewScripted(0.5, 0.0, 0.0, 0.0)
	out, err := s.resolve(req, src, 0, 0)
	s.Require().NoError(err)
	s.Equal("switch 3, move 1 1", out.Choice)
	s.Equal(0, src.Remaining())
}

func (s *EngineTestSuite) TestTeamPreviewDefaults() {
	req := builders.NewRequestBuilder().
		WithTeamPreview(6).
		WithPokemon("Pikachu", false).
		WithPokemon("Eevee", false).
		Build()

	out, err := s.resolve(req, prng.NewScripted(), 0, policy.DefaultMoveBias)
	s.Require().NoError(err)
	s.Equal(engine.KindTeamPreview, out.Kind)
	s.Equal("default", out.Choice)
}

func (s *EngineTestSuite) TestSameSeedSameChoices() {
	requests := []*showdown.Request{
		builders.NewRequestBuilder().
			WithPokemon("Pikachu", true).
			WithPokemon("Eevee", true).
			WithPokemon("Snorlax", false).
			WithActive(builders.NewActiveBuilder().CanDynamax().
				WithMove("thunderbolt", showdown.TargetNormal).
				WithMove("protect", showdown.TargetSelf).
				WithMaxMoves("maxlightning", "maxguard").
				Build()).
			WithActive(builders.NewActiveBuilder().
				WithMove("helpinghand", showdown.TargetAdjacentAlly).
				WithMove("tackle", showdown.TargetNormal).
				Build()).
			Build(),
		builders.NewRequestBuilder().
			WithForceSwitch(true, false).
			WithFaintedPokemon("Pikachu", true).
			WithPokemon("Eevee", true).
			WithPokemon("Snorlax", false).
			Build(),
	}

	play := func(seed uint64) []string {
		src := prng.New(seed)
		var choices []string
		for i := 0; i < 5; i++ {
			for _, req := range requests {
				out, err := s.resolve(req, src, 0.5, 0.7)
				s.Require().NoError(err)
				choices = append(choices, out.Choice)
			}
		}
		return choices
	}

	s.Equal(play(1234), play(1234))
}

func (s *EngineTestSuite) TestResolvingAgainAfterRejectionIsValid() {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithActive(builders.NewActiveBuilder().
			WithMove("thunderbolt", showdown.TargetNormal).
			WithMove("quickattack", showdown.TargetNormal).
			Build()).
		Build()

	src := prng.New(5)
	pattern := regexp.MustCompile(`^(move [12]|switch 2)$`)
	for i := 0; i < 3; i++ {
		out, err := s.resolve(req, src, 0, 0.5)
		s.Require().NoError(err)
		s.Regexp(pattern, out.Choice)
	}
}

func (s *EngineTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ctx = ctx

	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithActive(trappedSlot("tackle")).
		Build()

	_, err := s.resolve(req, prng.NewScripted(), 0, policy.DefaultMoveBias)
	s.True(errors.IsCanceled(err))
}

func (s *EngineTestSuite) TestMalformedRequest() {
	req := &showdown.Request{
		Active: []*showdown.ActivePokemon{trappedSlot("tackle")},
	}

	_, err := s.resolve(req, prng.NewScripted(), 0, policy.DefaultMoveBias)
	s.True(engine.IsMalformedRequest(err))
}

func (s *EngineTestSuite) TestMissingInputs() {
	e, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	_, err = e.Resolve(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = e.Resolve(s.ctx, &engine.ResolveInput{})
	s.True(errors.IsInvalidArgument(err))
}

type fixedPolicy struct {
	option engine.Option
	team   engine.ChosenAction
}

func (p *fixedPolicy) ChooseAction(
	context.Context, *engine.SlotContext, []engine.MoveOption, []engine.SwitchOption,
) (engine.Option, error) {
	return p.option, nil
}

func (p *fixedPolicy) ChooseSwitch(
	context.Context, *engine.SlotContext, []engine.SwitchOption,
) (engine.SwitchOption, error) {
	return p.option.Switch, nil
}

func (p *fixedPolicy) ChooseTeamPreview(context.Context, *showdown.Side, int) (engine.ChosenAction, error) {
	return p.team, nil
}

func (s *EngineTestSuite) TestIllegalPolicyPickIsRejected() {
	e, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		WithActive(trappedSlot("tackle")).
		Build()

	testCases := []struct {
		name   string
		policy *fixedPolicy
	}{
		{"move out of range", &fixedPolicy{option: engine.MoveChoice(engine.MoveOption{Slot: 9})}},
		{"switch while trapped", &fixedPolicy{option: engine.SwitchChoice(engine.SwitchOption{Slot: 2})}},
		{"empty option", &fixedPolicy{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := e.Resolve(s.ctx, &engine.ResolveInput{
				Request: req,
				Policy:  tc.policy,
				Source:  prng.NewScripted(),
			})
			s.True(errors.IsInternal(err), "got %v", err)
		})
	}
}

func (s *EngineTestSuite) TestTeamOrderFromPolicy() {
	e, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	req := builders.NewRequestBuilder().
		WithTeamPreview(3).
		WithPokemon("Pikachu", false).
		WithPokemon("Eevee", false).
		WithPokemon("Mew", false).
		Build()

	out, err := e.Resolve(s.ctx, &engine.ResolveInput{
		Request: req,
		Policy:  &fixedPolicy{team: engine.ChosenAction{Kind: engine.ActionTeam, TeamOrder: []int{3, 1, 2}}},
		Source:  prng.NewScripted(),
	})
	s.Require().NoError(err)
	s.Equal("team 312", out.Choice)

	_, err = e.Resolve(s.ctx, &engine.ResolveInput{
		Request: req,
		Policy:  &fixedPolicy{team: engine.ChosenAction{Kind: engine.ActionTeam, TeamOrder: []int{3, 3}}},
		Source:  prng.NewScripted(),
	})
	s.True(errors.IsInternal(err))
}
