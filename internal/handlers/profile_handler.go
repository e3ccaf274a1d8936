package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/models"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	// Method GetProfile retrieves the user's profile with XP totals and the
	// current streak.
	//
	// "userID" parameter is the user whose profile to retrieve.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error)
	// Method GetStreakInfo retrieves the user's streak summary.
	//
	// "userID" parameter is the user whose streak to retrieve.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetStreakInfo(ctx context.Context, userID int) (*models.StreakInfo, error)
	// Method GetXPHistory retrieves the user's most recent XP awards.
	//
	// "userID" parameter is the user whose history to retrieve.
	// "limit" parameter bounds how many events are returned; out-of-range
	// values fall back to the default page size.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetXPHistory(ctx context.Context, userID, limit int) ([]models.XPEvent, error)
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Get("/streak", h.GetStreak)
		r.Get("/xp", h.GetXPHistory)
	})
}

// GetProfile handles GET /profile
// @Summary Get user profile
// @Description Retrieve the authenticated user's profile with XP and streak
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to get profile", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// GetStreak handles GET /profile/streak
// @Summary Get streak info
// @Description Retrieve the authenticated user's current and longest streaks
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.StreakInfo
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile/streak [get]
func (h *ProfileHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	info, err := h.profileService.GetStreakInfo(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get streak info", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get streak info")
		return
	}

	h.RespondJSON(w, http.StatusOK, info)
}

// GetXPHistory handles GET /profile/xp
// @Summary Get XP history
// @Description Retrieve the authenticated user's most recent XP awards
// @Tags profile
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of events (default 20)"
// @Success 200 {array} models.XPEvent
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile/xp [get]
func (h *ProfileHandler) GetXPHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	events, err := h.profileService.GetXPHistory(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		h.Logger.Error("failed to get xp history", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get xp history")
		return
	}

	h.RespondJSON(w, http.StatusOK, events)
}
