package handler

import (
	"net/http"

	"github.com/chessladder/chessladder/internal/api/apierr"
	"github.com/chessladder/chessladder/internal/api/response"
	"github.com/chessladder/chessladder/internal/services/stats"
)

// StatsHandler handles leaderboard and aggregate endpoints
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *stats.Service) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := h.stats.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Aggregate handles GET /api/v1/stats
func (h *StatsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := h.stats.AggregateStats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(agg))
}
