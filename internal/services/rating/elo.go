package rating

import "math"

// Elo constants
const (
	// DefaultKFactor controls rating change magnitude per game
	DefaultKFactor = 32.0
	// DefaultInitialRating is the starting rating for new players
	DefaultInitialRating = 1200.0
)

// ExpectedScore returns the expected score for a player rated a against
// an opponent rated b: 1 / (1 + 10^((b-a)/400)).
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1 for all finite a, b.
func ExpectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// Delta returns the rating change for a game: k * (actual - expected).
// actual is 1 for a win, 0.5 for a draw, 0 for a loss.
func Delta(expected, actual, k float64) float64 {
	return k * (actual - expected)
}

// NewRating returns the post-game rating
func NewRating(current, expected, actual, k float64) float64 {
	return current + Delta(expected, actual, k)
}
