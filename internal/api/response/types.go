package response

import (
	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/services/stats"
)

// Player represents a player in API responses
type Player struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	WinRate     float64 `json:"win_rate"`
	DateAdded   string  `json:"date_added"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:        string(p.Name),
		Rating:      p.Rating,
		GamesPlayed: p.GamesPlayed,
		Wins:        p.Wins,
		Losses:      p.Losses,
		Draws:       p.Draws,
		WinRate:     p.WinRate(),
		DateAdded:   p.DateAdded.String(),
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// Game represents a game record in API responses
type Game struct {
	Player1          string  `json:"player1"`
	Player2          string  `json:"player2"`
	Result           string  `json:"result"`
	Date             string  `json:"date"`
	Player1OldRating float64 `json:"player1_old_rating"`
	Player2OldRating float64 `json:"player2_old_rating"`
	Player1NewRating float64 `json:"player1_new_rating"`
	Player2NewRating float64 `json:"player2_new_rating"`
	RatingChange1    float64 `json:"rating_change_1"`
	RatingChange2    float64 `json:"rating_change_2"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		Player1:          string(g.Player1),
		Player2:          string(g.Player2),
		Result:           string(g.Result),
		Date:             g.Date.String(),
		Player1OldRating: g.Player1OldRating,
		Player2OldRating: g.Player2OldRating,
		Player1NewRating: g.Player1NewRating,
		Player2NewRating: g.Player2NewRating,
		RatingChange1:    g.RatingChange1,
		RatingChange2:    g.RatingChange2,
	}
}

// GamesFromModel converts a slice of game records
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, GameFromModel(g))
	}
	return out
}

// TrajectoryPoint is one step of a player's rating history
type TrajectoryPoint struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// Trajectory is a player's rating history in chronological order
type Trajectory struct {
	Player string            `json:"player"`
	Points []TrajectoryPoint `json:"points"`
}

// TrajectoryFromModel converts stats trajectory points
func TrajectoryFromModel(name model.PlayerName, points []stats.TrajectoryPoint) Trajectory {
	out := Trajectory{
		Player: string(name),
		Points: make([]TrajectoryPoint, 0, len(points)),
	}
	for _, p := range points {
		out.Points = append(out.Points, TrajectoryPoint{Date: p.Date.String(), Rating: p.Rating})
	}
	return out
}

// Stats is the ladder-wide summary
type Stats struct {
	AverageRating      float64        `json:"average_rating"`
	TotalGames         int            `json:"total_games"`
	MostActivePlayer   string         `json:"most_active_player,omitempty"`
	HighestRatedPlayer string         `json:"highest_rated_player,omitempty"`
	LatestGameDate     string         `json:"latest_game_date,omitempty"`
	ResultCounts       map[string]int `json:"result_counts"`
}

// StatsFromModel converts the stats aggregate
func StatsFromModel(agg *stats.Aggregate) Stats {
	out := Stats{
		AverageRating:      agg.AverageRating,
		TotalGames:         agg.TotalGames,
		MostActivePlayer:   string(agg.MostActivePlayer),
		HighestRatedPlayer: string(agg.HighestRatedPlayer),
		ResultCounts:       make(map[string]int, len(agg.ResultCounts)),
	}
	if !agg.LatestGameDate.IsZero() {
		out.LatestGameDate = agg.LatestGameDate.String()
	}
	for result, count := range agg.ResultCounts {
		out.ResultCounts[string(result)] = count
	}
	return out
}
