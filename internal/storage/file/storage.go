package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

// Storage is a JSON-file-backed implementation of the storage interface.
//
// The durable layout is two independent records in the data directory:
// players.json (a mapping from player name to player fields) and
// games.json (the game log in append order). Both records are rewritten
// on every mutation, each via a temp file renamed into place so that a
// crash mid-write never leaves a truncated record behind.
type Storage struct {
	mu sync.RWMutex

	dir     string
	players map[model.PlayerName]*model.Player
	order   []model.PlayerName
	games   []*model.Game
}

// Config holds file storage settings
type Config struct {
	// Dir is the directory holding players.json and games.json.
	// It is created if it does not exist.
	Dir string
}

// DefaultConfig returns defaults for file storage configuration
func DefaultConfig() Config {
	return Config{Dir: "data"}
}

// New creates a file storage instance, loading any existing records
func New(cfg Config) (*Storage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Storage{
		dir:     cfg.Dir,
		players: make(map[model.PlayerName]*model.Player),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) playersPath() string { return filepath.Join(s.dir, "players.json") }
func (s *Storage) gamesPath() string   { return filepath.Join(s.dir, "games.json") }

func (s *Storage) load() error {
	data, err := os.ReadFile(s.playersPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fresh data dir
	case err != nil:
		return fmt.Errorf("read players record: %w", err)
	default:
		var rec map[model.PlayerName]*model.Player
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("parse players record: %w", err)
		}
		for name, player := range rec {
			player.Name = name
			s.players[name] = player
			s.order = append(s.order, name)
		}
		// The JSON mapping carries no order, so derive a stable one:
		// registration date first, then name
		sort.Slice(s.order, func(i, j int) bool {
			a, b := s.players[s.order[i]], s.players[s.order[j]]
			if !a.DateAdded.Equal(b.DateAdded) {
				return a.DateAdded.Before(b.DateAdded)
			}
			return a.Name < b.Name
		})
	}

	data, err = os.ReadFile(s.gamesPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read games record: %w", err)
	default:
		if err := json.Unmarshal(data, &s.games); err != nil {
			return fmt.Errorf("parse games record: %w", err)
		}
		return nil
	}
}

// persistLocked writes both records durably. The games record is renamed
// into place before the players record; callers must hold the write lock.
func (s *Storage) persistLocked() error {
	playersData, err := json.MarshalIndent(s.players, "", "  ")
	if err != nil {
		return fmt.Errorf("encode players record: %w", err)
	}

	games := s.games
	if games == nil {
		games = []*model.Game{}
	}
	gamesData, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("encode games record: %w", err)
	}

	if err := writeAtomic(s.gamesPath(), gamesData); err != nil {
		return fmt.Errorf("write games record: %w", err)
	}
	if err := writeAtomic(s.playersPath(), playersData); err != nil {
		return fmt.Errorf("write players record: %w", err)
	}
	return nil
}

// writeAtomic writes data to a temp file in the same directory and
// renames it over the target path
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.players[player.Name]
	prev := s.players[player.Name]
	if !existed {
		s.order = append(s.order, player.Name)
	}
	s.players[player.Name] = player.Clone()

	if err := s.persistLocked(); err != nil {
		// Roll back the in-memory record to match durable state
		if existed {
			s.players[player.Name] = prev
		} else {
			delete(s.players, player.Name)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}
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

	prev1 := s.players[p1.Name]
	prev2 := s.players[p2.Name]
	s.players[p1.Name] = p1.Clone()
	s.players[p2.Name] = p2.Clone()
	s.games = append(s.games, game.Clone())

	if err := s.persistLocked(); err != nil {
		s.players[p1.Name] = prev1
		s.players[p2.Name] = prev2
		s.games = s.games[:len(s.games)-1]
		return err
	}
	return nil
}
