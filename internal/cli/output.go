package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case Trajectory:
		o.printTrajectory(v)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// Game response type
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

// TrajectoryPoint response type
type TrajectoryPoint struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// Trajectory response type
type Trajectory struct {
	Player string            `json:"player"`
	Points []TrajectoryPoint `json:"points"`
}

// Stats response type
type Stats struct {
	AverageRating      float64        `json:"average_rating"`
	TotalGames         int            `json:"total_games"`
	MostActivePlayer   string         `json:"most_active_player"`
	HighestRatedPlayer string         `json:"highest_rated_player"`
	LatestGameDate     string         `json:"latest_game_date"`
	ResultCounts       map[string]int `json:"result_counts"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	fmt.Printf("Rating: %.1f\n", p.Rating)
	fmt.Printf("Games: %d (W %d / L %d / D %d)\n", p.GamesPlayed, p.Wins, p.Losses, p.Draws)
	fmt.Printf("Win Rate: %.1f%%\n", p.WinRate*100)
	fmt.Printf("Added: %s\n", p.DateAdded)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	fmt.Printf("%-20s %8s %6s %5s %5s %5s\n", "NAME", "RATING", "GAMES", "W", "L", "D")
	for _, p := range players {
		fmt.Printf("%-20s %8.1f %6d %5d %5d %5d\n", p.Name, p.Rating, p.GamesPlayed, p.Wins, p.Losses, p.Draws)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("%s vs %s: %s (%s)\n", g.Player1, g.Player2, g.Result, g.Date)
	fmt.Printf("  %s: %.1f -> %.1f (%+.1f)\n", g.Player1, g.Player1OldRating, g.Player1NewRating, g.RatingChange1)
	fmt.Printf("  %s: %.1f -> %.1f (%+.1f)\n", g.Player2, g.Player2OldRating, g.Player2NewRating, g.RatingChange2)
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range games {
		fmt.Printf("%s  %-20s %-20s %-7s %+.1f / %+.1f\n",
			g.Date, g.Player1, g.Player2, g.Result, g.RatingChange1, g.RatingChange2)
	}
}

func (o *Output) printTrajectory(t Trajectory) {
	fmt.Printf("Rating trajectory for %s:\n", t.Player)
	if len(t.Points) == 0 {
		fmt.Println("  no games recorded")
		return
	}
	for _, p := range t.Points {
		fmt.Printf("  %s  %.1f\n", p.Date, p.Rating)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Average Rating: %.1f\n", s.AverageRating)
	fmt.Printf("Total Games: %d\n", s.TotalGames)
	if s.MostActivePlayer != "" {
		fmt.Printf("Most Active Player: %s\n", s.MostActivePlayer)
	}
	if s.HighestRatedPlayer != "" {
		fmt.Printf("Highest Rated Player: %s\n", s.HighestRatedPlayer)
	}
	if s.LatestGameDate != "" {
		fmt.Printf("Latest Game: %s\n", s.LatestGameDate)
	}
	if len(s.ResultCounts) > 0 {
		fmt.Println("Results:")
		for result, count := range s.ResultCounts {
			fmt.Printf("  %s: %d\n", result, count)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
