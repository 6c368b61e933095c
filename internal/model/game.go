package model

// Result is the outcome of a game from player 1's perspective,
// encoded in standard chess score notation
type Result string

const (
	ResultPlayer1Wins Result = "1-0"
	ResultPlayer2Wins Result = "0-1"
	ResultDraw        Result = "1/2-1/2"
)

// ParseResult validates an external result token.
// Anything other than the three known encodings is rejected.
func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultPlayer1Wins, ResultPlayer2Wins, ResultDraw:
		return Result(s), nil
	default:
		return "", ErrInvalidResult
	}
}

// Scores returns the actual scores (a1, a2) for both players
func (r Result) Scores() (float64, float64) {
	switch r {
	case ResultPlayer1Wins:
		return 1, 0
	case ResultPlayer2Wins:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Game is an immutable record of a single played game.
// The old/new ratings are captured at write time as an audit trail;
// they are never recomputed from later state.
type Game struct {
	Player1          PlayerName `json:"player1"`
	Player2          PlayerName `json:"player2"`
	Result           Result     `json:"result"`
	Date             Date       `json:"date"`
	Player1OldRating float64    `json:"player1_old_rating"`
	Player2OldRating float64    `json:"player2_old_rating"`
	Player1NewRating float64    `json:"player1_new_rating"`
	Player2NewRating float64    `json:"player2_new_rating"`
	RatingChange1    float64    `json:"rating_change_1"`
	RatingChange2    float64    `json:"rating_change_2"`
}

// Involves reports whether the named player took part in this game
func (g *Game) Involves(name PlayerName) bool {
	return g.Player1 == name || g.Player2 == name
}

// NewRatingFor returns the post-game rating of the named player.
// The second return is false if the player was not in this game.
func (g *Game) NewRatingFor(name PlayerName) (float64, bool) {
	switch name {
	case g.Player1:
		return g.Player1NewRating, true
	case g.Player2:
		return g.Player2NewRating, true
	default:
		return 0, false
	}
}

// Clone returns an independent copy of the game record
func (g *Game) Clone() *Game {
	cp := *g
	return &cp
}
