package storage

import (
	"context"

	"github.com/chessladder/chessladder/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations own two records: the player mapping and the
// append-only game log. Reads return snapshot copies; callers never
// observe a partially applied write. RecordResult is the one compound
// operation and must be all-or-nothing: either both player updates and
// the appended game are persisted, or neither is.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Game log operations
	ListGames(ctx context.Context) ([]*model.Game, error)
	GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error)

	// RecordResult atomically writes both updated players and appends
	// the game record to the log
	RecordResult(ctx context.Context, p1, p2 *model.Player, game *model.Game) error
}
