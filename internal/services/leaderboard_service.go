package services

import (
	"context"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// LeaderboardRepository is the interface that wraps leaderboard reads
type LeaderboardRepository interface {
	// Method GetLeaderboard retrieves the top users ordered by weekly or total XP.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetLeaderboard(ctx context.Context, weekly bool, limit int) ([]models.LeaderboardEntry, error)
	// Method GetUserRank returns the user's 1-based rank by weekly or total XP.
	//
	// If some error occurs during computation, the error will be returned together with "0" value.
	GetUserRank(ctx context.Context, userID int, weekly bool) (int, error)
	// Method GetByUserID retrieves the user's XP totals.
	GetByUserID(ctx context.Context, userID int) (*models.UserExperience, error)
}

const (
	defaultLeaderboardSize = 50
	maxLeaderboardSize     = 200
)

// leaderboardService serves the weekly and all-time XP rankings
type leaderboardService struct {
	experienceRepo LeaderboardRepository
	logger         *zap.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(experienceRepo LeaderboardRepository, logger *zap.Logger) *leaderboardService {
	return &leaderboardService{
		experienceRepo: experienceRepo,
		logger:         logger,
	}
}

// GetLeaderboard retrieves the ranking together with the caller's own rank.
// A caller who has never earned XP has no rank.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, userID int, weekly bool, limit int) (*models.LeaderboardResponse, error) {
	if limit < 1 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	entries, err := s.experienceRepo.GetLeaderboard(ctx, weekly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	resp := &models.LeaderboardResponse{Entries: entries}

	// The rank subquery reports rank 1 for a user with no XP row,
	// so check the row exists first.
	xp, err := s.experienceRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to get caller xp for rank", zap.Int("userId", userID), zap.Error(err))
		return resp, nil
	}
	if xp.TotalXP == 0 && xp.WeeklyXP == 0 {
		return resp, nil
	}

	rank, err := s.experienceRepo.GetUserRank(ctx, userID, weekly)
	if err != nil {
		s.logger.Warn("failed to get caller rank", zap.Int("userId", userID), zap.Error(err))
		return resp, nil
	}
	resp.MyRank = rank

	return resp, nil
}
