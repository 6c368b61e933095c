package memory

import (
	"context"
	"sync"

	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Players are kept in registration order so that ListPlayers and the
// aggregate tiebreaks are deterministic.
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerName]*model.Player
	order   []model.PlayerName
	games   []*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerName]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.order))
	for _, name := range s.order {
		players = append(players, s.players[name].Clone())
	}
	return players, nil
}

// Game log operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game.Clone())
	}
	return games, nil
}

func (s *Storage) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.Involves(name) {
			games = append(games, game.Clone())
		}
	}
	return games, nil
}

func (s *Storage) RecordResult(ctx context.Context, p1, p2 *model.Player, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(p1)
	s.putLocked(p2)
	s.games = append(s.games, game.Clone())
	return nil
}

func (s *Storage) putLocked(player *model.Player) {
	if _, ok := s.players[player.Name]; !ok {
		s.order = append(s.order, player.Name)
	}
	s.players[player.Name] = player.Clone()
}
