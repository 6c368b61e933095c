package postgres

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/storage"
)

//go:embed schema.sql
var schema embed.FS

// Storage is a Postgres-backed implementation of the storage interface.
// Registration order falls out of the serial primary key; the game log
// is a table appended to within the same transaction as the player
// updates.
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a Postgres storage instance and applies the schema
func New(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Storage{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool
func (s *Storage) Close() {
	s.pool.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) migrate(ctx context.Context) error {
	ddl, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, string(ddl))
	return err
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO players(name, rating, games_played, wins, losses, draws, date_added)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (name) DO UPDATE
		  SET rating = EXCLUDED.rating,
		      games_played = EXCLUDED.games_played,
		      wins = EXCLUDED.wins,
		      losses = EXCLUDED.losses,
		      draws = EXCLUDED.draws
	`, player.Name, player.Rating, player.GamesPlayed, player.Wins, player.Losses, player.Draws, player.DateAdded.Time())
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT name, rating, games_played, wins, losses, draws, date_added
		  FROM players WHERE name = $1
	`, name)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, rating, games_played, wins, losses, draws, date_added
		  FROM players ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var p model.Player
	var added time.Time
	err := row.Scan(&p.Name, &p.Rating, &p.GamesPlayed, &p.Wins, &p.Losses, &p.Draws, &added)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	p.DateAdded = model.DateOf(added)
	return &p, nil
}

// Game log operations

const selectGames = `
	SELECT player1, player2, result, played_on,
	       player1_old_rating, player2_old_rating,
	       player1_new_rating, player2_new_rating,
	       rating_change_1, rating_change_2
	  FROM games`

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	rows, err := s.pool.Query(ctx, selectGames+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGames(rows)
}

func (s *Storage) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	rows, err := s.pool.Query(ctx, selectGames+` WHERE player1 = $1 OR player2 = $1 ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGames(rows)
}

func collectGames(rows pgx.Rows) ([]*model.Game, error) {
	var games []*model.Game
	for rows.Next() {
		var g model.Game
		var playedOn time.Time
		err := rows.Scan(&g.Player1, &g.Player2, &g.Result, &playedOn,
			&g.Player1OldRating, &g.Player2OldRating,
			&g.Player1NewRating, &g.Player2NewRating,
			&g.RatingChange1, &g.RatingChange2)
		if err != nil {
			return nil, err
		}
		g.Date = model.DateOf(playedOn)
		games = append(games, &g)
	}
	return games, rows.Err()
}

func (s *Storage) RecordResult(ctx context.Context, p1, p2 *model.Player, game *model.Game) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range []*model.Player{p1, p2} {
		_, err = tx.Exec(ctx, `
			UPDATE players
			   SET rating = $2, games_played = $3, wins = $4, losses = $5, draws = $6
			 WHERE name = $1
		`, p.Name, p.Rating, p.GamesPlayed, p.Wins, p.Losses, p.Draws)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO games(player1, player2, result, played_on,
		                  player1_old_rating, player2_old_rating,
		                  player1_new_rating, player2_new_rating,
		                  rating_change_1, rating_change_2)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, game.Player1, game.Player2, game.Result, game.Date.Time(),
		game.Player1OldRating, game.Player2OldRating,
		game.Player1NewRating, game.Player2NewRating,
		game.RatingChange1, game.RatingChange2)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
