package services

import (
	"context"
	"time"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// ExperienceReadRepository is the interface that wraps XP totals reads
type ExperienceReadRepository interface {
	// Method GetByUserID retrieves the user's XP totals.
	//
	// A user with no XP yet resolves to zero totals, not an error.
	GetByUserID(ctx context.Context, userID int) (*models.UserExperience, error)
}

// StreakReadRepository is the interface that wraps streak day reads
type StreakReadRepository interface {
	// Method GetRecentDays retrieves the user's recorded days, newest first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetRecentDays(ctx context.Context, userID, limit int) ([]time.Time, error)
	// Method LongestStreak returns the length of the user's longest run of consecutive days.
	//
	// If some error occurs during computation, the error will be returned together with "0" value.
	LongestStreak(ctx context.Context, userID int) (int, error)
}

// ProgressReadRepository is the interface that wraps progress reads for the profile
type ProgressReadRepository interface {
	// Method ListByUser retrieves all of the user's progress rows, most recently updated first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID int) ([]models.UserProgress, error)
}

// XPEventReadRepository is the interface that wraps XP event history reads
type XPEventReadRepository interface {
	// Method ListByUser retrieves the user's most recent XP events, newest first.
	//
	// "limit" parameter bounds how many events are returned.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID, limit int) ([]models.XPEvent, error)
}

// recentDaysWindow bounds how far back the current streak is computed.
// A streak longer than a year is reported as its last year.
const recentDaysWindow = 366

// defaultXPHistoryLimit caps the XP history when the caller does not ask for a size
const defaultXPHistoryLimit = 20

// maxXPHistoryLimit caps how many XP events one request may fetch
const maxXPHistoryLimit = 100

// profileService assembles the profile screen data: identity, XP totals and
// the current streak.
type profileService struct {
	userRepo       UserRepository
	experienceRepo ExperienceReadRepository
	streakRepo     StreakReadRepository
	progressRepo   ProgressReadRepository
	xpEventRepo    XPEventReadRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo UserRepository,
	experienceRepo ExperienceReadRepository,
	streakRepo StreakReadRepository,
	progressRepo ProgressReadRepository,
	xpEventRepo XPEventReadRepository,
	logger *zap.Logger,
) *profileService {
	return &profileService{
		userRepo:       userRepo,
		experienceRepo: experienceRepo,
		streakRepo:     streakRepo,
		progressRepo:   progressRepo,
		xpEventRepo:    xpEventRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// GetProfile retrieves the user's profile with XP totals and current streak
func (s *profileService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	xp, err := s.experienceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.currentStreak(ctx, userID)
	if err != nil {
		// The profile is still useful without the streak number
		s.logger.Warn("failed to compute current streak", zap.Int("userId", userID), zap.Error(err))
		streak = 0
	}

	completed := 0
	progress, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to list progress for profile", zap.Int("userId", userID), zap.Error(err))
	} else {
		for _, p := range progress {
			if p.Completed {
				completed++
			}
		}
	}

	return &models.ProfileResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Avatar:            user.Avatar,
		TotalXP:           xp.TotalXP,
		WeeklyXP:          xp.WeeklyXP,
		Streak:            streak,
		EpisodesCompleted: completed,
	}, nil
}

// GetXPHistory retrieves the user's most recent XP awards.
// limit outside (0, maxXPHistoryLimit] falls back to the default page size.
func (s *profileService) GetXPHistory(ctx context.Context, userID, limit int) ([]models.XPEvent, error) {
	if limit <= 0 || limit > maxXPHistoryLimit {
		limit = defaultXPHistoryLimit
	}
	return s.xpEventRepo.ListByUser(ctx, userID, limit)
}

// GetStreakInfo retrieves the user's full streak summary
func (s *profileService) GetStreakInfo(ctx context.Context, userID int) (*models.StreakInfo, error) {
	current, err := s.currentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	longest, err := s.streakRepo.LongestStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current > longest {
		longest = current
	}

	today := s.today()
	days, err := s.streakRepo.GetRecentDays(ctx, userID, 1)
	if err != nil {
		return nil, err
	}

	return &models.StreakInfo{
		CurrentStreak: current,
		LongestStreak: longest,
		TodayRecorded: len(days) > 0 && sameDay(days[0], today),
	}, nil
}

// currentStreak counts consecutive recorded days ending today or yesterday.
// A streak survives until a full calendar day passes with no listening.
func (s *profileService) currentStreak(ctx context.Context, userID int) (int, error) {
	days, err := s.streakRepo.GetRecentDays(ctx, userID, recentDaysWindow)
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := s.today()
	expected := today
	if !sameDay(days[0], today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, day := range days {
		if !sameDay(day, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak, nil
}

func (s *profileService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}
