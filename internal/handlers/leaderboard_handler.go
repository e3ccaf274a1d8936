package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/models"
)

// LeaderboardService defines the interface for leaderboard operations
type LeaderboardService interface {
	// Method GetLeaderboard retrieves the XP leaderboard with the caller's
	// own rank attached.
	//
	// "userID" parameter identifies the caller for the rank lookup.
	// "weekly" parameter selects the weekly board instead of the all-time one.
	// "limit" parameter caps the number of rows returned.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetLeaderboard(ctx context.Context, userID int, weekly bool, limit int) (*models.LeaderboardResponse, error)
}

// LeaderboardHandler handles leaderboard HTTP requests
type LeaderboardHandler struct {
	BaseHandler
	leaderboardService LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService LeaderboardService, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        BaseHandler{Logger: logger},
		leaderboardService: leaderboardService,
	}
}

// RegisterRoutes registers all leaderboard handler routes
func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/leaderboard", h.GetLeaderboard)
}

// GetLeaderboard handles GET /leaderboard
// @Summary Get XP leaderboard
// @Description Retrieve the weekly or all-time XP leaderboard with the caller's rank
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param period query string false "Board period: weekly or alltime (default alltime)"
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} models.LeaderboardResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	weekly := r.URL.Query().Get("period") == "weekly"
	limit := queryInt(r, "limit", 0)

	board, err := h.leaderboardService.GetLeaderboard(r.Context(), userID, weekly, limit)
	if err != nil {
		h.Logger.Error("failed to get leaderboard", zap.Error(err), zap.Bool("weekly", weekly))
		h.RespondError(w, http.StatusInternalServerError, "failed to get leaderboard")
		return
	}

	h.RespondJSON(w, http.StatusOK, board)
}
