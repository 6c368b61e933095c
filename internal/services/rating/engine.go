package rating

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/chessladder/chessladder/internal/dependencies/clock"
	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

// Config holds engine parameters
type Config struct {
	KFactor       float64
	InitialRating float64
}

// DefaultConfig returns the standard engine parameters
func DefaultConfig() Config {
	return Config{
		KFactor:       DefaultKFactor,
		InitialRating: DefaultInitialRating,
	}
}

// Engine applies game outcomes to the player pool.
//
// Every mutation runs under one exclusive critical section, so a
// RecordGame transaction (read ratings, compute, write both players,
// append the game) can never interleave with another. Games are applied
// strictly in the order callers submit them; Elo is order-dependent, so
// that order is an input, not an implementation detail.
type Engine struct {
	mu sync.Mutex

	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// NewEngine creates a rating engine
func NewEngine(storage storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Engine {
	if cfg.KFactor == 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		storage: storage,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// InitialRating returns the configured rating for new players
func (e *Engine) InitialRating() float64 {
	return e.cfg.InitialRating
}

// RegisterPlayer creates a new player with the given starting rating
// and zeroed counters
func (e *Engine) RegisterPlayer(ctx context.Context, name model.PlayerName, initialRating float64) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrInvalidName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.storage.GetPlayer(ctx, name); err == nil {
		return nil, model.ErrDuplicatePlayer
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		Name:      name,
		Rating:    initialRating,
		DateAdded: model.DateOf(e.clock.Now()),
	}

	if err := e.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	e.logger.Info("player registered",
		slog.String("name", string(name)),
		slog.Float64("rating", initialRating),
	)

	return player, nil
}

// RecordGame applies a single game outcome: it reads both players'
// current ratings, computes their new ratings, updates both records, and
// appends an audit entry to the game log. All of it persists atomically;
// a storage failure leaves prior state untouched.
//
// The returned game record carries both players' old and new ratings and
// the deltas.
func (e *Engine) RecordGame(ctx context.Context, player1, player2 model.PlayerName, result model.Result, date model.Date) (*model.Game, error) {
	if player1 == player2 {
		return nil, model.ErrSamePlayer
	}
	if _, err := model.ParseResult(string(result)); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p1, err := e.storage.GetPlayer(ctx, player1)
	if err != nil {
		return nil, err
	}
	p2, err := e.storage.GetPlayer(ctx, player2)
	if err != nil {
		return nil, err
	}

	e1 := ExpectedScore(p1.Rating, p2.Rating)
	e2 := ExpectedScore(p2.Rating, p1.Rating)
	a1, a2 := result.Scores()

	nr1 := NewRating(p1.Rating, e1, a1, e.cfg.KFactor)
	nr2 := NewRating(p2.Rating, e2, a2, e.cfg.KFactor)

	game := &model.Game{
		Player1:          player1,
		Player2:          player2,
		Result:           result,
		Date:             date,
		Player1OldRating: p1.Rating,
		Player2OldRating: p2.Rating,
		Player1NewRating: nr1,
		Player2NewRating: nr2,
		RatingChange1:    nr1 - p1.Rating,
		RatingChange2:    nr2 - p2.Rating,
	}

	p1.Rating = nr1
	p2.Rating = nr2
	p1.GamesPlayed++
	p2.GamesPlayed++

	switch result {
	case model.ResultPlayer1Wins:
		p1.Wins++
		p2.Losses++
	case model.ResultPlayer2Wins:
		p1.Losses++
		p2.Wins++
	default:
		p1.Draws++
		p2.Draws++
	}

	if err := e.storage.RecordResult(ctx, p1, p2, game); err != nil {
		e.logger.Error("failed to persist game result",
			slog.String("player1", string(player1)),
			slog.String("player2", string(player2)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	e.logger.Info("game recorded",
		slog.String("player1", string(player1)),
		slog.String("player2", string(player2)),
		slog.String("result", string(result)),
		slog.Float64("rating_change_1", game.RatingChange1),
		slog.Float64("rating_change_2", game.RatingChange2),
	)

	return game, nil
}
