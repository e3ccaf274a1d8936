package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaintenanceService defines the interface for scheduled maintenance operations
type MaintenanceService interface {
	// Method ResetWeeklyXP zeroes the weekly XP counters of all users.
	//
	// Returns the number of affected rows. If some error will occur during
	// the reset, the error will be returned.
	ResetWeeklyXP(ctx context.Context) (int64, error)
	// Method CleanExpiredTokens removes refresh tokens past their lifetime.
	//
	// Returns the number of deleted rows. If some error will occur during
	// the cleanup, the error will be returned.
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

// MaintenanceHandler handles maintenance HTTP requests, invoked by a scheduler
// with the service API key
type MaintenanceHandler struct {
	BaseHandler
	maintenanceService MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceService MaintenanceService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		BaseHandler:        BaseHandler{Logger: logger},
		maintenanceService: maintenanceService,
	}
}

// RegisterRoutes registers all maintenance handler routes
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/maintenance", func(r chi.Router) {
		r.Post("/reset-weekly-xp", h.ResetWeeklyXP)
		r.Post("/clean-tokens", h.CleanTokens)
	})
}

// ResetWeeklyXP handles POST /maintenance/reset-weekly-xp
// @Summary Reset weekly XP
// @Description Zero the weekly XP counters of all users. Requires API key authentication.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Success 200 {object} map[string]int64 "Affected row count"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /maintenance/reset-weekly-xp [post]
func (h *MaintenanceHandler) ResetWeeklyXP(w http.ResponseWriter, r *http.Request) {
	affected, err := h.maintenanceService.ResetWeeklyXP(r.Context())
	if err != nil {
		h.Logger.Error("failed to reset weekly XP", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to reset weekly XP")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int64{
		"affected": affected,
	})
}

// CleanTokens handles POST /maintenance/clean-tokens
// @Summary Clean expired tokens
// @Description Remove refresh tokens past their lifetime. Requires API key authentication.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Success 200 {object} map[string]int64 "Deleted row count"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /maintenance/clean-tokens [post]
func (h *MaintenanceHandler) CleanTokens(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.maintenanceService.CleanExpiredTokens(r.Context())
	if err != nil {
		h.Logger.Error("failed to clean expired tokens", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to clean expired tokens")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int64{
		"deleted": deleted,
	})
}
