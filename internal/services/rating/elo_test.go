package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScoreComplement(t *testing.T) {
	// Expectations for the two sides of any pairing sum to 1
	pairs := [][2]float64{
		{1200, 1200},
		{1400, 1300},
		{1000, 2000},
		{1850.5, 1849.5},
		{0, 3000},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.InDelta(t, 1.0, ExpectedScore(a, b)+ExpectedScore(b, a), 1e-12)
	}
}

func TestExpectedScoreEqualRatings(t *testing.T) {
	for _, r := range []float64{800, 1200, 1600, 2400} {
		assert.InDelta(t, 0.5, ExpectedScore(r, r), 1e-12)
	}
}

func TestExpectedScoreDecreasesWithOpponentRating(t *testing.T) {
	// For a fixed own rating, a stronger opponent means a lower expectation
	prev := ExpectedScore(1500, 1000)
	for opponent := 1100.0; opponent <= 2000; opponent += 100 {
		cur := ExpectedScore(1500, opponent)
		assert.Less(t, cur, prev, "expected score did not decrease at opponent %v", opponent)
		prev = cur
	}
}

func TestDeltaKnownScenario(t *testing.T) {
	// 1400 beats 1300 at K=32: expected ~0.6401, delta ~11.52
	expected := ExpectedScore(1400, 1300)
	assert.InDelta(t, 0.6401, expected, 0.0001)

	delta := Delta(expected, 1.0, DefaultKFactor)
	assert.InDelta(t, 11.52, delta, 0.01)

	assert.InDelta(t, 1411.52, NewRating(1400, expected, 1.0, DefaultKFactor), 0.01)
}

func TestDeltaDrawBetweenEqualsIsZero(t *testing.T) {
	expected := ExpectedScore(1200, 1200)
	assert.InDelta(t, 0.0, Delta(expected, 0.5, DefaultKFactor), 1e-12)
}

func TestDeltaZeroSum(t *testing.T) {
	// With one global K, the two sides' deltas cancel
	cases := []struct {
		a, b, scoreA float64
	}{
		{1400, 1300, 1.0},
		{1400, 1300, 0.0},
		{1400, 1300, 0.5},
		{1000, 2200, 1.0},
	}

	for _, c := range cases {
		ea := ExpectedScore(c.a, c.b)
		eb := ExpectedScore(c.b, c.a)
		da := Delta(ea, c.scoreA, DefaultKFactor)
		db := Delta(eb, 1.0-c.scoreA, DefaultKFactor)
		assert.InDelta(t, 0.0, da+db, 1e-9)
	}
}
