package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/storage/memory"
	"github.com/mossvale/mossvale/internal/testutil"
)

type FlusherSuite struct {
	suite.Suite
	storage *memory.Storage
	flusher *Flusher
	ctx     context.Context
}

func TestFlusherSuite(t *testing.T) {
	suite.Run(t, new(FlusherSuite))
}

func (s *FlusherSuite) SetupTest() {
	s.storage = memory.New()
	s.flusher = NewFlusher(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *FlusherSuite) TestFlushPersistsSessionState() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:   "p_a",
		Name: "Ari",
	}))

	s.flusher.Flush(model.PlayerSession{
		ConnectionID: "conn-1",
		PlayerID:     "p_a",
		Money:        70,
		Exp:          910,
		Level:        4,
		X:            123,
		Y:            456,
	})
	s.flusher.Wait()

	saved, err := s.storage.GetPlayer(s.ctx, "p_a")
	s.Require().NoError(err)
	s.Equal(70, saved.Money)
	s.Equal(910, saved.Exp)
	s.Equal(4, saved.Level)
	s.Equal(float64(123), saved.PositionX)
	s.Equal(float64(456), saved.PositionY)

	// Fields outside the flush set are untouched
	s.Equal("Ari", saved.Name)
}

func (s *FlusherSuite) TestFlushSkipsUnboundSessions() {
	s.flusher.Flush(model.PlayerSession{ConnectionID: "conn-1"})
	s.flusher.Wait()
}

func (s *FlusherSuite) TestFlushErrorsAreSwallowed() {
	// No such player: the flush fails in storage but nothing blows up
	s.flusher.Flush(model.PlayerSession{
		ConnectionID: "conn-1",
		PlayerID:     "p_missing",
		Money:        10,
	})
	s.flusher.Wait()

	_, err := s.storage.GetPlayer(s.ctx, "p_missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *FlusherSuite) TestConcurrentFlushesCoalesce() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_a"}))

	for i := 1; i <= 10; i++ {
		s.flusher.Flush(model.PlayerSession{
			ConnectionID: "conn-1",
			PlayerID:     "p_a",
			Money:        i,
		})
	}
	s.flusher.Wait()

	saved, err := s.storage.GetPlayer(s.ctx, "p_a")
	s.Require().NoError(err)
	s.GreaterOrEqual(saved.Money, 1)
	s.LessOrEqual(saved.Money, 10)
}
