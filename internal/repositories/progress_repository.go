package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Upsert inserts or updates the progress row for (user, podcast) in a single
// atomic statement. The completed flag is sticky: once true in the database it
// can never be flipped back to false by a later save.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	query := `
		INSERT INTO user_progress (user_id, podcast_id, course_id, position_seconds, completed)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			position_seconds = VALUES(position_seconds),
			completed = completed OR VALUES(completed)
	`

	_, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.PodcastID,
		progress.CourseID,
		progress.PositionSeconds,
		progress.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// GetByUserAndPodcast retrieves the progress row for (user, podcast)
func (r *progressRepository) GetByUserAndPodcast(ctx context.Context, userID, podcastID int) (*models.UserProgress, error) {
	query := `
		SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at
		FROM user_progress
		WHERE user_id = ? AND podcast_id = ?
		LIMIT 1
	`

	progress := &models.UserProgress{}
	err := r.db.QueryRowContext(ctx, query, userID, podcastID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.PodcastID,
		&progress.CourseID,
		&progress.PositionSeconds,
		&progress.Completed,
		&progress.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return progress, nil
}

// ListByUser retrieves all progress rows for a user, most recently updated first
func (r *progressRepository) ListByUser(ctx context.Context, userID int) ([]models.UserProgress, error) {
	query := `
		SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at
		FROM user_progress
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var progresses []models.UserProgress
	for rows.Next() {
		var progress models.UserProgress
		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.PodcastID,
			&progress.CourseID,
			&progress.PositionSeconds,
			&progress.Completed,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		progresses = append(progresses, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return progresses, nil
}
