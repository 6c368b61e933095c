package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chessladder/chessladder/internal/api/apierr"
	"github.com/chessladder/chessladder/internal/api/request"
	"github.com/chessladder/chessladder/internal/api/response"
	"github.com/chessladder/chessladder/internal/dependencies/clock"
	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/services/rating"
	"github.com/chessladder/chessladder/internal/services/stats"
)

// defaultRecentGames caps the recent-games view when no limit is given
const defaultRecentGames = 10

// GameHandler handles game-related endpoints
type GameHandler struct {
	engine *rating.Engine
	stats  *stats.Service
	clock  clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine *rating.Engine, stats *stats.Service, clk clock.Clock) *GameHandler {
	return &GameHandler{
		engine: engine,
		stats:  stats,
		clock:  clk,
	}
}

// Record handles POST /api/v1/games
func (h *GameHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.RecordGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Player1 == "" || req.Player2 == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player1 and player2 are required"))
		return
	}

	result, err := model.ParseResult(req.Result)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	date := model.DateOf(h.clock.Now())
	if req.Date != "" {
		date, err = model.ParseDate(req.Date)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	game, err := h.engine.RecordGame(r.Context(),
		model.PlayerName(req.Player1), model.PlayerName(req.Player2), result, date)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.stats.AllGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Recent handles GET /api/v1/games/recent
func (h *GameHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentGames
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	games, err := h.stats.RecentGames(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}
