package stats

import (
	"context"
	"sort"

	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

// Service provides read-only views over the player pool and game log.
// Every view is derived on demand from storage snapshots; nothing here
// mutates state.
type Service struct {
	storage storage.Storage
}

// New creates a stats service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// TrajectoryPoint is one step of a player's rating history
type TrajectoryPoint struct {
	Date   model.Date
	Rating float64
}

// Aggregate summarizes the whole ladder
type Aggregate struct {
	AverageRating      float64
	TotalGames         int
	MostActivePlayer   model.PlayerName
	HighestRatedPlayer model.PlayerName
	LatestGameDate     model.Date
	ResultCounts       map[model.Result]int
}

// ListPlayers returns all players in registration order
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// GetPlayer returns a single player by name
func (s *Service) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, name)
}

// AllGames returns the full game log in append order
func (s *Service) AllGames(ctx context.Context) ([]*model.Game, error) {
	return s.storage.ListGames(ctx)
}

// Leaderboard returns players sorted by rating descending, ties broken
// by name so the order is deterministic
func (s *Service) Leaderboard(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// RecentGames returns up to n games sorted by date descending, with the
// most recently appended game first among games sharing a date
func (s *Service) RecentGames(ctx context.Context, n int) ([]*model.Game, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	// Reverse to newest-appended-first, then a stable sort by date keeps
	// that order within each date
	for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
		games[i], games[j] = games[j], games[i]
	}
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.After(games[j].Date)
	})

	if n >= 0 && n < len(games) {
		games = games[:n]
	}
	return games, nil
}

// RatingTrajectory returns the named player's (date, rating) history in
// chronological order, derived entirely from the game log's stored
// new-rating audit fields
func (s *Service) RatingTrajectory(ctx context.Context, name model.PlayerName) ([]TrajectoryPoint, error) {
	if _, err := s.storage.GetPlayer(ctx, name); err != nil {
		return nil, err
	}

	games, err := s.storage.GamesForPlayer(ctx, name)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})

	points := make([]TrajectoryPoint, 0, len(games))
	for _, game := range games {
		rating, ok := game.NewRatingFor(name)
		if !ok {
			continue
		}
		points = append(points, TrajectoryPoint{Date: game.Date, Rating: rating})
	}
	return points, nil
}

// AggregateStats computes ladder-wide summary figures. Ties for the
// most-active and highest-rated players go to whichever player the
// store lists first.
func (s *Service) AggregateStats(ctx context.Context) (*Aggregate, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{
		TotalGames:   len(games),
		ResultCounts: make(map[model.Result]int),
	}

	var ratingSum float64
	var mostActive, highestRated *model.Player
	for _, p := range players {
		ratingSum += p.Rating
		if mostActive == nil || p.GamesPlayed > mostActive.GamesPlayed {
			mostActive = p
		}
		if highestRated == nil || p.Rating > highestRated.Rating {
			highestRated = p
		}
	}
	if len(players) > 0 {
		agg.AverageRating = ratingSum / float64(len(players))
		agg.MostActivePlayer = mostActive.Name
		agg.HighestRatedPlayer = highestRated.Name
	}

	for _, g := range games {
		agg.ResultCounts[g.Result]++
		if g.Date.After(agg.LatestGameDate) {
			agg.LatestGameDate = g.Date
		}
	}

	return agg, nil
}
