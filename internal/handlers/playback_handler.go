package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/models"
)

// PlaybackService defines the interface for playback progress operations
type PlaybackService interface {
	// Method SaveProgress records a playback position save and applies the
	// XP and streak rules that follow from it.
	//
	// "userID" parameter is the listening user.
	// "podcastID" parameter is the episode being played.
	// "req" parameter carries the position and accumulated listening time.
	//
	// If some error will occur during the save, the error will be returned
	// together with "nil" value.
	SaveProgress(ctx context.Context, userID, podcastID int, req *models.SaveProgressRequest) (*models.SaveProgressResponse, error)
	// Method GetProgress retrieves the saved progress for a single episode.
	// A never-played episode yields zero-valued progress, not an error.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetProgress(ctx context.Context, userID, podcastID int) (*models.UserProgress, error)
	// Method SavePlayerState stores what the user is playing right now so
	// another device can resume it.
	//
	// If some error will occur during the save, the error will be returned.
	SavePlayerState(ctx context.Context, userID int, req *models.SavePlayerStateRequest) error
	// Method GetPlayerState retrieves the user's active player state.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetPlayerState(ctx context.Context, userID int) (*models.PlayerState, error)
	// Method ClearPlayerState removes the user's active player state.
	//
	// If some error will occur during deletion, the error will be returned.
	ClearPlayerState(ctx context.Context, userID int) error
}

// PlaybackHandler handles playback progress HTTP requests
type PlaybackHandler struct {
	BaseHandler
	playbackService PlaybackService
}

// NewPlaybackHandler creates a new playback handler
func NewPlaybackHandler(playbackService PlaybackService, logger *zap.Logger) *PlaybackHandler {
	return &PlaybackHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		playbackService: playbackService,
	}
}

// RegisterRoutes registers all playback handler routes
func (h *PlaybackHandler) RegisterRoutes(r chi.Router) {
	r.Route("/podcasts/{podcastID}/progress", func(r chi.Router) {
		r.Put("/", h.SaveProgress)
		r.Get("/", h.GetProgress)
	})
	r.Route("/player/state", func(r chi.Router) {
		r.Put("/", h.SavePlayerState)
		r.Get("/", h.GetPlayerState)
		r.Delete("/", h.ClearPlayerState)
	})
}

// SaveProgress handles PUT /podcasts/{podcastID}/progress
// @Summary Save playback progress
// @Description Save the playback position for an episode and apply XP rules
// @Tags playback
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Param request body models.SaveProgressRequest true "Position data"
// @Success 200 {object} models.SaveProgressResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /podcasts/{podcastID}/progress [put]
func (h *PlaybackHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	var req models.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.playbackService.SaveProgress(r.Context(), userID, podcastID, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			h.RespondError(w, http.StatusNotFound, "podcast not found")
		case strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "negative"):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to save progress", zap.Error(err),
				zap.Int("userID", userID), zap.Int("podcastID", podcastID))
			h.RespondError(w, http.StatusInternalServerError, "failed to save progress")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetProgress handles GET /podcasts/{podcastID}/progress
// @Summary Get playback progress
// @Description Retrieve the saved playback position for an episode
// @Tags playback
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Success 200 {object} models.UserProgress
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /podcasts/{podcastID}/progress [get]
func (h *PlaybackHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	progress, err := h.playbackService.GetProgress(r.Context(), userID, podcastID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "podcast not found")
			return
		}
		h.Logger.Error("failed to get progress", zap.Error(err),
			zap.Int("userID", userID), zap.Int("podcastID", podcastID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// SavePlayerState handles PUT /player/state
// @Summary Save player state
// @Description Store the active episode, position and volume for cross-device resume
// @Tags playback
// @Accept json
// @Produce json
// @Param request body models.SavePlayerStateRequest true "Player state"
// @Success 204 "State saved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /player/state [put]
func (h *PlaybackHandler) SavePlayerState(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SavePlayerStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.playbackService.SavePlayerState(r.Context(), userID, &req); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "podcast not found")
			return
		}
		h.Logger.Error("failed to save player state", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to save player state")
		return
	}

	h.RespondNoContent(w)
}

// GetPlayerState handles GET /player/state
// @Summary Get player state
// @Description Retrieve the user's active player state
// @Tags playback
// @Accept json
// @Produce json
// @Success 200 {object} models.PlayerState
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "No player state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /player/state [get]
func (h *PlaybackHandler) GetPlayerState(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	state, err := h.playbackService.GetPlayerState(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "no player state")
			return
		}
		h.Logger.Error("failed to get player state", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get player state")
		return
	}

	h.RespondJSON(w, http.StatusOK, state)
}

// ClearPlayerState handles DELETE /player/state
// @Summary Clear player state
// @Description Remove the user's active player state
// @Tags playback
// @Accept json
// @Produce json
// @Success 204 "State cleared"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /player/state [delete]
func (h *PlaybackHandler) ClearPlayerState(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.playbackService.ClearPlayerState(r.Context(), userID); err != nil {
		h.Logger.Error("failed to clear player state", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to clear player state")
		return
	}

	h.RespondNoContent(w)
}
