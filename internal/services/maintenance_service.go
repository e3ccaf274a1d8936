package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExperienceResetRepository is the interface that wraps the weekly XP reset
type ExperienceResetRepository interface {
	// Method ResetWeekly zeroes the weekly XP counter for all users.
	//
	// Returns the number of users affected.
	// If some error occurs during reset, the error will be returned together with "0" value.
	ResetWeekly(ctx context.Context) (int64, error)
}

// TokenCleanupRepository is the interface that wraps expired token removal
type TokenCleanupRepository interface {
	// Method DeleteExpiredTokens removes refresh tokens created before the cutoff.
	//
	// Returns the number of tokens removed.
	// If some error occurs during removal, the error will be returned together with "0" value.
	DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// maintenanceService backs the API-key-guarded maintenance endpoints that an
// external scheduler calls: the weekly leaderboard reset and refresh token
// cleanup.
type maintenanceService struct {
	experienceRepo     ExperienceResetRepository
	userTokenRepo      TokenCleanupRepository
	refreshTokenExpiry time.Duration
	logger             *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	experienceRepo ExperienceResetRepository,
	userTokenRepo TokenCleanupRepository,
	refreshTokenExpiry time.Duration,
	logger *zap.Logger,
) *maintenanceService {
	return &maintenanceService{
		experienceRepo:     experienceRepo,
		userTokenRepo:      userTokenRepo,
		refreshTokenExpiry: refreshTokenExpiry,
		logger:             logger,
	}
}

// ResetWeeklyXP zeroes every user's weekly counter. Meant to run at the start
// of each leaderboard week; running it twice in a row is harmless.
func (s *maintenanceService) ResetWeeklyXP(ctx context.Context) (int64, error) {
	affected, err := s.experienceRepo.ResetWeekly(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("weekly xp reset", zap.Int64("usersAffected", affected))
	return affected, nil
}

// CleanExpiredTokens removes refresh tokens old enough to have expired
func (s *maintenanceService) CleanExpiredTokens(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.refreshTokenExpiry)

	removed, err := s.userTokenRepo.DeleteExpiredTokens(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("expired tokens cleaned", zap.Int64("tokensRemoved", removed))
	return removed, nil
}
