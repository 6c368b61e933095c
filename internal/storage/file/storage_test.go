package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chessladder/chessladder/internal/model"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	storage, err := New(Config{Dir: s.dir})
	s.Require().NoError(err)
	s.storage = storage
	s.ctx = context.Background()
}

// reopen simulates a process restart against the same data directory
func (s *StorageSuite) reopen() {
	storage, err := New(Config{Dir: s.dir})
	s.Require().NoError(err)
	s.storage = storage
}

func (s *StorageSuite) player(name model.PlayerName, rating float64, added model.Date) *model.Player {
	return &model.Player{Name: name, Rating: rating, DateAdded: added}
}

func (s *StorageSuite) TestNewCreatesDataDir() {
	nested := filepath.Join(s.T().TempDir(), "a", "b")
	_, err := New(Config{Dir: nested})
	s.Require().NoError(err)

	info, err := os.Stat(nested)
	s.Require().NoError(err)
	s.True(info.IsDir())
}

func (s *StorageSuite) TestSavePlayerWritesRecord() {
	err := s.storage.SavePlayer(s.ctx, s.player("Alice", 1200, model.NewDate(2024, 1, 1)))
	s.Require().NoError(err)

	data, err := os.ReadFile(filepath.Join(s.dir, "players.json"))
	s.Require().NoError(err)

	var rec map[string]map[string]any
	s.Require().NoError(json.Unmarshal(data, &rec))
	s.Require().Contains(rec, "Alice")
	s.Equal(1200.0, rec["Alice"]["rating"])
	s.Equal("2024-01-01", rec["Alice"]["date_added"])
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayersSurviveReopen() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1450, model.NewDate(2024, 1, 1))))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1320, model.NewDate(2024, 1, 2))))

	s.reopen()

	alice, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(1450.0, alice.Rating)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerName("Alice"), players[0].Name)
	s.Equal(model.PlayerName("Bob"), players[1].Name)
}

func (s *StorageSuite) TestReopenOrdersByDateAddedThenName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Zoe", 1200, model.NewDate(2024, 1, 2))))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Amy", 1200, model.NewDate(2024, 1, 2))))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1200, model.NewDate(2024, 1, 1))))

	s.reopen()

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerName("Bob"), players[0].Name)
	s.Equal(model.PlayerName("Amy"), players[1].Name)
	s.Equal(model.PlayerName("Zoe"), players[2].Name)
}

func (s *StorageSuite) TestRecordResultPersistsBothRecords() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1200, model.NewDate(2024, 1, 1))))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1200, model.NewDate(2024, 1, 1))))

	game := &model.Game{
		Player1:          "Alice",
		Player2:          "Bob",
		Result:           model.ResultPlayer1Wins,
		Date:             model.NewDate(2024, 3, 1),
		Player1OldRating: 1200,
		Player2OldRating: 1200,
		Player1NewRating: 1216,
		Player2NewRating: 1184,
		RatingChange1:    16,
		RatingChange2:    -16,
	}
	p1 := s.player("Alice", 1216, model.NewDate(2024, 1, 1))
	p1.GamesPlayed, p1.Wins = 1, 1
	p2 := s.player("Bob", 1184, model.NewDate(2024, 1, 1))
	p2.GamesPlayed, p2.Losses = 1, 1
	s.Require().NoError(s.storage.RecordResult(s.ctx, p1, p2, game))

	s.reopen()

	alice, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(1216.0, alice.Rating)
	s.Equal(1, alice.Wins)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.ResultPlayer1Wins, games[0].Result)
	s.Equal(16.0, games[0].RatingChange1)
	s.Equal("2024-03-01", games[0].Date.String())
}

func (s *StorageSuite) TestGameLogOrderSurvivesReopen() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1200, model.NewDate(2024, 1, 1))))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1200, model.NewDate(2024, 1, 1))))

	for day := 1; day <= 3; day++ {
		game := &model.Game{Player1: "Alice", Player2: "Bob", Result: model.ResultDraw, Date: model.NewDate(2024, 3, day)}
		p1 := s.player("Alice", 1200, model.NewDate(2024, 1, 1))
		p2 := s.player("Bob", 1200, model.NewDate(2024, 1, 1))
		s.Require().NoError(s.storage.RecordResult(s.ctx, p1, p2, game))
	}

	s.reopen()

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal("2024-03-01", games[0].Date.String())
	s.Equal("2024-03-02", games[1].Date.String())
	s.Equal("2024-03-03", games[2].Date.String())
}

func (s *StorageSuite) TestGamesForPlayerAfterReopen() {
	for _, name := range []model.PlayerName{"Alice", "Bob", "Charlie"} {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player(name, 1200, model.NewDate(2024, 1, 1))))
	}
	record := func(p1, p2 model.PlayerName) {
		game := &model.Game{Player1: p1, Player2: p2, Result: model.ResultDraw, Date: model.NewDate(2024, 3, 1)}
		s.Require().NoError(s.storage.RecordResult(s.ctx,
			s.player(p1, 1200, model.NewDate(2024, 1, 1)),
			s.player(p2, 1200, model.NewDate(2024, 1, 1)),
			game))
	}
	record("Alice", "Bob")
	record("Bob", "Charlie")

	s.reopen()

	games, err := s.storage.GamesForPlayer(s.ctx, "Charlie")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.PlayerName("Bob"), games[0].Player1)
}

func (s *StorageSuite) TestFreshDirIsEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}
