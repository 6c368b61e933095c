package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chessladder/chessladder/internal/model"
)

// IntegrationSuite exercises a full ladder lifecycle through the wired
// services: register, record, then read back every derived view.
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TestNewDefaultsToMemory() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.NotNil(app.Engine)
	s.NotNil(app.Stats)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "carrier-pigeon"})
	s.Error(err)
}

func (s *IntegrationSuite) TestFullLadderLifecycle() {
	engine := s.app.Engine
	statsSvc := s.app.Stats

	_, err := engine.RegisterPlayer(s.ctx, "Alice", engine.InitialRating())
	s.Require().NoError(err)
	s.app.MockClock.Advance(24 * time.Hour)
	_, err = engine.RegisterPlayer(s.ctx, "Bob", engine.InitialRating())
	s.Require().NoError(err)
	_, err = engine.RegisterPlayer(s.ctx, "Magnus", 2800)
	s.Require().NoError(err)

	// Alice beats Bob, then they draw
	game1, err := engine.RecordGame(s.ctx, "Alice", "Bob", model.ResultPlayer1Wins, model.NewDate(2024, 3, 1))
	s.Require().NoError(err)
	s.InDelta(16.0, game1.RatingChange1, 1e-9)
	s.InDelta(-16.0, game1.RatingChange2, 1e-9)

	game2, err := engine.RecordGame(s.ctx, "Alice", "Bob", model.ResultDraw, model.NewDate(2024, 3, 2))
	s.Require().NoError(err)
	// The earlier winner gives back a little on the draw
	s.Less(game2.RatingChange1, 0.0)
	s.Greater(game2.RatingChange2, 0.0)

	// Leaderboard: Magnus, then Alice, then Bob
	board, err := statsSvc.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(board, 3)
	s.Equal(model.PlayerName("Magnus"), board[0].Name)
	s.Equal(model.PlayerName("Alice"), board[1].Name)
	s.Equal(model.PlayerName("Bob"), board[2].Name)

	// Counters stay consistent with games played
	alice := board[1]
	s.Equal(2, alice.GamesPlayed)
	s.Equal(alice.GamesPlayed, alice.Wins+alice.Losses+alice.Draws)
	s.InDelta(0.5, alice.WinRate(), 1e-9)

	// Trajectory follows the audit trail on the log
	points, err := statsSvc.RatingTrajectory(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Require().Len(points, 2)
	s.Equal(game1.Player1NewRating, points[0].Rating)
	s.Equal(game2.Player1NewRating, points[1].Rating)

	// Aggregates
	agg, err := statsSvc.AggregateStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, agg.TotalGames)
	s.Equal(model.PlayerName("Alice"), agg.MostActivePlayer)
	s.Equal(model.PlayerName("Magnus"), agg.HighestRatedPlayer)
	s.Equal("2024-03-02", agg.LatestGameDate.String())
	s.Equal(1, agg.ResultCounts[model.ResultPlayer1Wins])
	s.Equal(1, agg.ResultCounts[model.ResultDraw])
	s.InDelta((2800.0+2400.0)/3.0, agg.AverageRating, 1e-6)
}

func (s *IntegrationSuite) TestClockDrivesRegistrationDates() {
	p1, err := s.app.Engine.RegisterPlayer(s.ctx, "Alice", s.app.Engine.InitialRating())
	s.Require().NoError(err)
	s.Equal("2024-01-01", p1.DateAdded.String())

	s.app.MockClock.Advance(48 * time.Hour)

	p2, err := s.app.Engine.RegisterPlayer(s.ctx, "Bob", s.app.Engine.InitialRating())
	s.Require().NoError(err)
	s.Equal("2024-01-03", p2.DateAdded.String())
}
