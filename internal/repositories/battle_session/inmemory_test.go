package battlesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/showdown-player/internal/errors"
	mockclock "github.com/KirkDiggler/showdown-player/internal/pkg/clock/mock"
	battlesession "github.com/KirkDiggler/showdown-player/internal/repositories/battle_session"
)

type InMemoryBattleSessionTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockClock *mockclock.MockClock
	repo      *battlesession.InMemoryRepository
	ctx       context.Context
	now       time.Time
}

func TestInMemoryBattleSessionSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBattleSessionTestSuite))
}

func (s *InMemoryBattleSessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.repo = battlesession.NewInMemory(s.mockClock)
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryBattleSessionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InMemoryBattleSessionTestSuite) TestLifecycle() {
	s.mockClock.EXPECT().Now().Return(s.now).Times(2)

	_, err := s.repo.Create(s.ctx, battlesession.CreateInput{
		Session: &battlesession.BattleSession{
			BattleID:  testBattleID,
			Side:      testSide,
			PRNGState: []byte{7},
		},
		TTL: time.Minute,
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, battlesession.GetInput{BattleID: testBattleID, Side: testSide})
	s.Require().NoError(err)
	s.Equal(s.now.Add(time.Minute), got.Session.ExpiresAt)

	// callers get copies
	got.Session.PRNGState[0] = 9
	got.Session.Decisions = 5

	s.mockClock.EXPECT().Now().Return(s.now)
	again, err := s.repo.Get(s.ctx, battlesession.GetInput{BattleID: testBattleID, Side: testSide})
	s.Require().NoError(err)
	s.Equal([]byte{7}, again.Session.PRNGState)
	s.Zero(again.Session.Decisions)

	out, err := s.repo.Delete(s.ctx, battlesession.DeleteInput{BattleID: testBattleID, Side: testSide})
	s.Require().NoError(err)
	s.True(out.Existed)

	_, err = s.repo.Get(s.ctx, battlesession.GetInput{BattleID: testBattleID, Side: testSide})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryBattleSessionTestSuite) TestExpiry() {
	s.mockClock.EXPECT().Now().Return(s.now)
	_, err := s.repo.Create(s.ctx, battlesession.CreateInput{
		Session: &battlesession.BattleSession{BattleID: testBattleID, Side: testSide},
		TTL:     time.Minute,
	})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.now.Add(30 * time.Second))
	_, err = s.repo.Update(s.ctx, battlesession.UpdateInput{
		Session: &battlesession.BattleSession{BattleID: testBattleID, Side: testSide, RQID: 2},
		TTL:     time.Minute,
	})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.now.Add(80 * time.Second))
	got, err := s.repo.Get(s.ctx, battlesession.GetInput{BattleID: testBattleID, Side: testSide})
	s.Require().NoError(err)
	s.Equal(2, got.Session.RQID)

	s.mockClock.EXPECT().Now().Return(s.now.Add(2 * time.Minute))
	_, err = s.repo.Get(s.ctx, battlesession.GetInput{BattleID: testBattleID, Side: testSide})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.Delete(s.ctx, battlesession.DeleteInput{BattleID: testBattleID, Side: testSide})
	s.Require().NoError(err)
	s.False(out.Existed)
}

func (s *InMemoryBattleSessionTestSuite) TestValidation() {
	_, err := s.repo.Update(s.ctx, battlesession.UpdateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, battlesession.DeleteInput{BattleID: testBattleID})
	s.True(errors.IsInvalidArgument(err))
}
