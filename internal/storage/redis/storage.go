package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Player records are JSON values keyed by name; registration order and
// the game log are kept in Redis lists so both survive restarts in order.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	existed, err := s.client.Exists(ctx, playerKey(player.Name)).Result()
	if err != nil {
		return err
	}

	// Pipeline the record write with the order index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(player.Name), data, 0)
	if existed == 0 {
		pipe.RPush(ctx, playerOrderKey(), string(player.Name))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	player.Name = name
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	names, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(names))
	for _, name := range names {
		player, err := s.GetPlayer(ctx, model.PlayerName(name))
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// Game log operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	entries, err := s.client.LRange(ctx, gameLogKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(entries))
	for _, entry := range entries {
		var game model.Game
		if err := json.Unmarshal([]byte(entry), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, nil
}

func (s *Storage) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	all, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	for _, game := range all {
		if game.Involves(name) {
			games = append(games, game)
		}
	}
	return games, nil
}

func (s *Storage) RecordResult(ctx context.Context, p1, p2 *model.Player, game *model.Game) error {
	p1Data, err := json.Marshal(p1)
	if err != nil {
		return err
	}
	p2Data, err := json.Marshal(p2)
	if err != nil {
		return err
	}
	gameData, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Both player updates and the log append go through one MULTI/EXEC
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(p1.Name), p1Data, 0)
	pipe.Set(ctx, playerKey(p2.Name), p2Data, 0)
	pipe.RPush(ctx, gameLogKey(), string(gameData))
	_, err = pipe.Exec(ctx)
	return err
}
