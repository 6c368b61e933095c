package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chessladder/chessladder/internal/api/apierr"
	"github.com/chessladder/chessladder/internal/api/request"
	"github.com/chessladder/chessladder/internal/api/response"
	"github.com/chessladder/chessladder/internal/model"
	"github.com/chessladder/chessladder/internal/services/rating"
	"github.com/chessladder/chessladder/internal/services/stats"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	engine *rating.Engine
	stats  *stats.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(engine *rating.Engine, stats *stats.Service) *PlayerHandler {
	return &PlayerHandler{
		engine: engine,
		stats:  stats,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	initialRating := h.engine.InitialRating()
	if req.InitialRating != nil {
		initialRating = *req.InitialRating
	}

	player, err := h.engine.RegisterPlayer(r.Context(), model.PlayerName(req.Name), initialRating)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.stats.ListPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/v1/players/{name}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	player, err := h.stats.GetPlayer(r.Context(), model.PlayerName(name))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Trajectory handles GET /api/v1/players/{name}/trajectory
func (h *PlayerHandler) Trajectory(w http.ResponseWriter, r *http.Request) {
	name := model.PlayerName(mux.Vars(r)["name"])

	points, err := h.stats.RatingTrajectory(r.Context(), name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TrajectoryFromModel(name, points))
}
