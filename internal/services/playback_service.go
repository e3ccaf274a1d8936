package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// PodcastSharedRepository is the interface that wraps podcast lookups shared between playback and course services
type PodcastSharedRepository interface {
	// Method GetByID retrieves a podcast by ID.
	//
	// "id" parameter is used to retrieve a podcast by ID.
	//
	// If podcast with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Podcast, error)
}

// ProgressRepository is the interface that wraps methods for UserProgress table data access
type ProgressRepository interface {
	// Method Upsert inserts or updates the progress row for (user, podcast) atomically.
	//
	// "progress" parameter carries the row to write. The completed flag is sticky
	// on the database side: an upsert can set it but never clear it.
	//
	// If some error occurs during upsert, the error will be returned.
	Upsert(ctx context.Context, progress *models.UserProgress) error
	// Method GetByUserAndPodcast retrieves the progress row for (user, podcast).
	//
	// If no row exists, the error will be returned together with "nil" value.
	GetByUserAndPodcast(ctx context.Context, userID, podcastID int) (*models.UserProgress, error)
}

// XPEventRepository is the interface that wraps methods for XPEvent table data access
type XPEventRepository interface {
	// Method Record inserts an XP event if no event with the same
	// (user, type, key) exists yet.
	//
	// Returns true if the event was newly recorded, false for a duplicate.
	// If some error occurs during recording, the error will be returned together with "false" value.
	Record(ctx context.Context, event *models.XPEvent) (bool, error)
}

// ExperienceSharedRepository is the interface that wraps the XP counter update shared by all awarding services
type ExperienceSharedRepository interface {
	// Method AddXP atomically adds the amount to the user's total and weekly counters,
	// creating the row if the user has none yet.
	//
	// If some error occurs during the update, the error will be returned.
	AddXP(ctx context.Context, userID, amount int) error
}

// StreakSharedRepository is the interface that wraps the streak day recording
type StreakSharedRepository interface {
	// Method RecordDay records one qualifying listening day for a user.
	//
	// Returns true if the day was newly recorded, false if it was already present.
	// If some error occurs during recording, the error will be returned together with "false" value.
	RecordDay(ctx context.Context, userID int, day time.Time) (bool, error)
}

// PlayerStateRepository is the interface that wraps methods for PlayerState table data access
type PlayerStateRepository interface {
	// Method Upsert inserts or replaces the user's active player state.
	//
	// If some error occurs during upsert, the error will be returned.
	Upsert(ctx context.Context, state *models.PlayerState) error
	// Method GetByUserID retrieves the user's active player state.
	//
	// If no state exists, the error will be returned together with "nil" value.
	GetByUserID(ctx context.Context, userID int) (*models.PlayerState, error)
	// Method Delete removes the user's active player state.
	//
	// If some error occurs during deletion, the error will be returned.
	Delete(ctx context.Context, userID int) error
}

// playbackService owns the progress-and-XP flow: position saves, completion
// detection, XP awarding and daily streak recording.
type playbackService struct {
	podcastRepo     PodcastSharedRepository
	progressRepo    ProgressRepository
	xpEventRepo     XPEventRepository
	experienceRepo  ExperienceSharedRepository
	streakRepo      StreakSharedRepository
	playerStateRepo PlayerStateRepository
	logger          *zap.Logger
	// now is swappable in tests
	now func() time.Time
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(
	podcastRepo PodcastSharedRepository,
	progressRepo ProgressRepository,
	xpEventRepo XPEventRepository,
	experienceRepo ExperienceSharedRepository,
	streakRepo StreakSharedRepository,
	playerStateRepo PlayerStateRepository,
	logger *zap.Logger,
) *playbackService {
	return &playbackService{
		podcastRepo:     podcastRepo,
		progressRepo:    progressRepo,
		xpEventRepo:     xpEventRepo,
		experienceRepo:  experienceRepo,
		streakRepo:      streakRepo,
		playerStateRepo: playerStateRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// SaveProgress persists a position report from the player and applies every XP
// rule that the report triggers. Completion is decided server-side from the
// stored episode duration, never trusted from the client. Each award is keyed
// so that a retried or duplicated report grants nothing twice.
func (s *playbackService) SaveProgress(ctx context.Context, userID, podcastID int, req *models.SaveProgressRequest) (*models.SaveProgressResponse, error) {
	if req.PositionSeconds < 0 {
		return nil, fmt.Errorf("position cannot be negative")
	}

	podcast, err := s.podcastRepo.GetByID(ctx, podcastID)
	if err != nil {
		return nil, err
	}

	completed := IsPositionCompleted(req.PositionSeconds, podcast.DurationSeconds)

	// A report at position zero that completes nothing never touches the
	// progress row. Writing it would clobber a stored resumable position, and
	// for a player that just mounted and unmounted it would mark the course as
	// started. Listening time in such a report still counts toward XP below.
	persistPosition := req.PositionSeconds > 0 || completed

	if !persistPosition && req.ListenedSeconds < minListeningSeconds {
		return &models.SaveProgressResponse{}, nil
	}

	if persistPosition {
		progress := &models.UserProgress{
			UserID:          userID,
			PodcastID:       podcastID,
			CourseID:        podcast.CourseID,
			PositionSeconds: req.PositionSeconds,
			Completed:       completed,
		}
		if err := s.progressRepo.Upsert(ctx, progress); err != nil {
			return nil, err
		}
	}

	resp := &models.SaveProgressResponse{Completed: completed}

	if completed {
		resp.CompletionXP = s.award(ctx, userID, models.XPEventCompletion, CompletionEventKey(podcastID), XPCompletion)
	}

	if amount := ListeningXP(req.ListenedSeconds); amount > 0 {
		resp.ListeningXP = s.award(ctx, userID, models.XPEventListening, ListeningEventKey(podcastID, req.PositionSeconds), amount)
	}

	// Any qualifying save counts as the day's listening activity
	if req.ListenedSeconds >= minListeningSeconds || completed {
		recorded, streakXP := s.recordStreak(ctx, userID)
		resp.StreakRecorded = recorded
		resp.StreakXP = streakXP
	}

	return resp, nil
}

// GetProgress retrieves the user's saved position for a podcast.
// A podcast never played resolves to zero progress rather than an error.
func (s *playbackService) GetProgress(ctx context.Context, userID, podcastID int) (*models.UserProgress, error) {
	progress, err := s.progressRepo.GetByUserAndPodcast(ctx, userID, podcastID)
	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, err
		}
		if _, podcastErr := s.podcastRepo.GetByID(ctx, podcastID); podcastErr != nil {
			return nil, podcastErr
		}
		return &models.UserProgress{UserID: userID, PodcastID: podcastID}, nil
	}
	return progress, nil
}

// SavePlayerState stores what the user is playing right now so another device
// can resume it. Volume is clamped into the valid range instead of rejected.
func (s *playbackService) SavePlayerState(ctx context.Context, userID int, req *models.SavePlayerStateRequest) error {
	if req.PositionSeconds < 0 {
		return fmt.Errorf("position cannot be negative")
	}

	if _, err := s.podcastRepo.GetByID(ctx, req.PodcastID); err != nil {
		return err
	}

	volume := req.Volume
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	return s.playerStateRepo.Upsert(ctx, &models.PlayerState{
		UserID:          userID,
		PodcastID:       req.PodcastID,
		PositionSeconds: req.PositionSeconds,
		Volume:          volume,
	})
}

// GetPlayerState retrieves the user's active player state
func (s *playbackService) GetPlayerState(ctx context.Context, userID int) (*models.PlayerState, error) {
	return s.playerStateRepo.GetByUserID(ctx, userID)
}

// ClearPlayerState removes the user's active player state
func (s *playbackService) ClearPlayerState(ctx context.Context, userID int) error {
	return s.playerStateRepo.Delete(ctx, userID)
}

// award runs the record-then-increment pair for one XP event and returns the
// amount actually granted. Award failures are logged and swallowed: a missed
// grant must never fail the progress save that triggered it.
func (s *playbackService) award(ctx context.Context, userID int, eventType models.XPEventType, eventKey string, amount int) int {
	recorded, err := s.xpEventRepo.Record(ctx, &models.XPEvent{
		UserID:    userID,
		EventType: eventType,
		EventKey:  eventKey,
		Amount:    amount,
	})
	if err != nil {
		s.logger.Warn("failed to record xp event",
			zap.Int("userId", userID),
			zap.String("eventType", string(eventType)),
			zap.String("eventKey", eventKey),
			zap.Error(err))
		return 0
	}
	if !recorded {
		return 0
	}

	if err := s.experienceRepo.AddXP(ctx, userID, amount); err != nil {
		s.logger.Error("xp event recorded but counter update failed",
			zap.Int("userId", userID),
			zap.String("eventType", string(eventType)),
			zap.String("eventKey", eventKey),
			zap.Error(err))
		return 0
	}

	return amount
}

// recordStreak records today as a listening day and grants the daily bonus the
// first time it is recorded
func (s *playbackService) recordStreak(ctx context.Context, userID int) (bool, int) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	newDay, err := s.streakRepo.RecordDay(ctx, userID, today)
	if err != nil {
		s.logger.Warn("failed to record streak day", zap.Int("userId", userID), zap.Error(err))
		return false, 0
	}
	if !newDay {
		return false, 0
	}

	return true, s.award(ctx, userID, models.XPEventStreak, StreakEventKey(today), XPDailyStreak)
}
