package policy_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/engine/policy"
	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
	"github.com/KirkDiggler/showdown-player/internal/testutils/builders"
)

type recordingPrompter struct {
	prompts []*policy.Prompt
	rejects []string
}

func (p *recordingPrompter) Prompt(_ context.Context, prompt *policy.Prompt) error {
	p.prompts = append(p.prompts, prompt)
	return nil
}

func (p *recordingPrompter) Reject(_ context.Context, reason string) error {
	p.rejects = append(p.rejects, reason)
	return nil
}

type PolicyTestSuite struct {
	suite.Suite
	ctx      context.Context
	prompter *recordingPrompter
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicyTestSuite))
}

func (s *PolicyTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.prompter = &recordingPrompter{}
}

func (s *PolicyTestSuite) interactive(lines ...string) *policy.Interactive {
	p, err := policy.NewInteractive(&policy.InteractiveConfig{
		Input:    policy.NewLineInput(strings.NewReader(strings.Join(lines, "\n"))),
		Prompter: s.prompter,
	})
	s.Require().NoError(err)
	return p
}

// doublesSlot builds slot 1 of a doubles battle: Pikachu next to Eevee, with
// a fainted Snorlax and a healthy Mew on the bench.
func (s *PolicyTestSuite) doublesSlot() (*engine.SlotContext, []engine.MoveOption, []engine.SwitchOption) {
	req := builders.NewRequestBuilder().
		WithPokemon("Pikachu", true).
		WithPokemon("Eevee", true).
		WithFaintedPokemon("Snorlax", false).
		WithPokemon("Mew", false).
		WithActive(builders.NewActiveBuilder().
			WithMove("thunderbolt", showdown.TargetNormal).
			WithDisabledMove("surf", showdown.TargetAllAdjacent).
			WithMove("protect", showdown.TargetSelf).
			WithZMoves(&showdown.ZMove{Move: "Gigavolt Havoc", Target: showdown.TargetNormal}, nil, nil).
			Build()).
		WithActive(builders.NewActiveBuilder().WithMove("tackle", showdown.TargetNormal).Build()).
		Build()

	slot := &engine.SlotContext{
		Index:       0,
		ActiveCount: 2,
		Active:      req.Active[0],
		Pokemon:     req.Side.Pokemon[0],
		Side:        req.Side,
		Resources:   engine.NewResources().Gate(req.Active[0]),
	}
	moves := engine.EnumerateMoves(req.Active[0], false, true, true)
	switches := engine.EnumerateSwitches(req.Roster(), nil, false)
	return slot, moves, switches
}

func (s *PolicyTestSuite) TestAutonomousValidation() {
	_, err := policy.NewAutonomous(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = policy.NewAutonomous(&policy.AutonomousConfig{MoveBias: 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = policy.NewAutonomous(&policy.AutonomousConfig{Source: prng.NewScripted(), MoveBias: 2})
	s.True(errors.IsInvalidArgument(err))
}

func (s *PolicyTestSuite) TestAutonomousBias() {
	slot, moves, switches := s.doublesSlot()

	p, err := policy.NewAutonomous(&policy.AutonomousConfig{Source: prng.NewScripted(0.6, 0.0), MoveBias: 0.5})
	s.Require().NoError(err)
	picked, err := p.ChooseAction(s.ctx, slot, moves, switches)
	s.Require().NoError(err)
	s.Equal(engine.OptionSwitch, picked.Kind)
	s.Equal(4, picked.Switch.Slot)

	p, err = policy.NewAutonomous(&policy.AutonomousConfig{Source: prng.NewScripted(0.4, 0.0), MoveBias: 0.5})
	s.Require().NoError(err)
	picked, err = p.ChooseAction(s.ctx, slot, moves, switches)
	s.Require().NoError(err)
	s.Equal(engine.OptionMove, picked.Kind)
	s.Equal(1, picked.Move.Slot)
}

func (s *PolicyTestSuite) TestAutonomousRejectsEmptyOptions() {
	slot, _, _ := s.doublesSlot()
	p, err := policy.NewAutonomous(&policy.AutonomousConfig{Source: prng.NewScripted(), MoveBias: 1})
	s.Require().NoError(err)

	_, err = p.ChooseAction(s.ctx, slot, nil, nil)
	s.True(errors.IsInternal(err))

	_, err = p.ChooseSwitch(s.ctx, slot, nil)
	s.True(errors.IsInternal(err))

	team, err := p.ChooseTeamPreview(s.ctx, slot.Side, 6)
	s.Require().NoError(err)
	s.Equal(engine.ActionDefault, team.Kind)
}

func (s *PolicyTestSuite) TestInteractiveValidation() {
	_, err := policy.NewInteractive(&policy.InteractiveConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *PolicyTestSuite) TestInteractiveMove() {
	slot, moves, switches := s.doublesSlot()
	p := s.interactive("3")

	picked, err := p.ChooseAction(s.ctx, slot, moves, switches)
	s.Require().NoError(err)
	s.Equal(engine.OptionMove, picked.Kind)
	s.Equal(3, picked.Move.Slot)
	s.False(picked.Move.ZMove)

	s.Require().Len(s.prompter.prompts, 1)
	prompt := s.prompter.prompts[0]
	s.Equal(policy.PromptAction, prompt.Kind)
	s.Equal("Pikachu", prompt.Slot.Pokemon)
	s.Len(prompt.Slot.Moves, 3)
	s.Len(prompt.Moves, 3)
	s.Len(prompt.Switches, 1)
	s.Empty(s.prompter.rejects)
}

func (s *PolicyTestSuite) TestInteractiveZMove() {
	slot, moves, switches := s.doublesSlot()
	p := s.interactive("1 zmove")

	picked, err := p.ChooseAction(s.ctx, slot, moves, switches)
	s.Require().NoError(err)
	s.True(picked.Move.ZMove)
	s.Equal("Gigavolt Havoc", picked.Move.Name)
}

func (s *PolicyTestSuite) TestInteractiveRepromptsUntilLegal() {
	slot, moves, _ := s.doublesSlot()
	slot.Chosen = []int{4}
	p := s.interactive(
		"7",
		"2",
		"3 zmove",
		"switch 9",
		"switch 1",
		"switch 3",
		"switch 4",
		"flee",
		"switch 2",
		"1",
	)

	picked, err := p.ChooseAction(s.ctx, slot, moves, nil)
	s.Require().NoError(err)
	s.Equal(1, picked.Move.Slot)

	s.Equal([]string{
		"there is no move 7",
		"move 2 is disabled",
		"move 3 has no z-move available",
		"there is no pokemon in slot 9",
		"Pikachu is already in battle",
		"Snorlax has fainted",
		"Mew is already chosen to switch in",
		`unrecognised input "flee"`,
		"Eevee is already in battle",
	}, s.prompter.rejects)
}

func (s *PolicyTestSuite) TestInteractiveTrappedCannotSwitch() {
	slot, moves, _ := s.doublesSlot()
	slot.Active.Trapped = true
	p := s.interactive("switch 4", "1")

	picked, err := p.ChooseAction(s.ctx, slot, moves, nil)
	s.Require().NoError(err)
	s.Equal(1, picked.Move.Slot)
	s.Equal([]string{"you are trapped and cannot switch"}, s.prompter.rejects)
}

func (s *PolicyTestSuite) TestInteractiveForcedSwitch() {
	req := builders.NewRequestBuilder().
		WithForceSwitch(true).
		WithFaintedPokemon("Pikachu", true).
		WithPokemon("Eevee", false).
		Build()
	slot := &engine.SlotContext{
		Index:       0,
		ActiveCount: 1,
		Forced:      true,
		Pokemon:     req.Side.Pokemon[0],
		Side:        req.Side,
	}
	switches := engine.EnumerateForcedSwitches(req.Roster(), 1, nil)
	p := s.interactive("1", "switch 2")

	picked, err := p.ChooseSwitch(s.ctx, slot, switches)
	s.Require().NoError(err)
	s.Equal(2, picked.Slot)
	s.Equal([]string{"Pikachu has fainted"}, s.prompter.rejects)
	s.Equal(policy.PromptSwitch, s.prompter.prompts[0].Kind)
	s.True(s.prompter.prompts[0].Slot.MustSwitch)
}

func (s *PolicyTestSuite) TestInteractiveTeamPreview() {
	side := builders.NewRequestBuilder().
		WithTeamPreview(3).
		WithPokemon("Pikachu", false).
		WithPokemon("Eevee", false).
		WithPokemon("Mew", false).
		Build().Side

	p := s.interactive("team 14", "team 1, 1", "team 3, 1, 2")
	action, err := p.ChooseTeamPreview(s.ctx, side, 3)
	s.Require().NoError(err)
	s.Equal(engine.ActionTeam, action.Kind)
	s.Equal([]int{3, 1, 2}, action.TeamOrder)
	s.Equal([]string{"no pokemon in slot 4", "slot 1 listed twice"}, s.prompter.rejects)
	s.Len(s.prompter.prompts[0].Team, 3)

	s.SetupTest()
	p = s.interactive("default")
	action, err = p.ChooseTeamPreview(s.ctx, side, 3)
	s.Require().NoError(err)
	s.Equal(engine.ActionDefault, action.Kind)
}

func (s *PolicyTestSuite) TestInteractiveInputClosed() {
	slot, moves, switches := s.doublesSlot()
	p := s.interactive()

	_, err := p.ChooseAction(s.ctx, slot, moves, switches)
	s.True(errors.IsCanceled(err))
}

func (s *PolicyTestSuite) TestInteractiveWaitAbandoned() {
	slot, moves, switches := s.doublesSlot()

	// a reader that never yields a line
	blocked, release := newBlockingReader()
	defer release()
	p, err := policy.NewInteractive(&policy.InteractiveConfig{
		Input:    policy.NewLineInput(blocked),
		Prompter: s.prompter,
	})
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()

	_, err = p.ChooseAction(ctx, slot, moves, switches)
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(err))

	ctx, cancel = context.WithCancel(s.ctx)
	cancel()
	_, err = p.ChooseAction(ctx, slot, moves, switches)
	s.True(errors.IsCanceled(err))
}

type blockingReader struct {
	release chan struct{}
}

func newBlockingReader() (*blockingReader, func()) {
	r := &blockingReader{release: make(chan struct{})}
	return r, func() { close(r.release) }
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.release
	return 0, context.Canceled
}
