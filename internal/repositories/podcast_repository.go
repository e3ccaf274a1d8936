package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type podcastRepository struct {
	db *sql.DB
}

// NewPodcastRepository creates a new podcast repository
func NewPodcastRepository(db *sql.DB) *podcastRepository {
	return &podcastRepository{
		db: db,
	}
}

// GetByID retrieves a podcast by its ID
func (r *podcastRepository) GetByID(ctx context.Context, id int) (*models.Podcast, error) {
	query := `
		SELECT id, course_id, title, audio_url, image_url, duration_seconds, description
		FROM podcasts
		WHERE id = ?
		LIMIT 1
	`

	var podcast models.Podcast
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&podcast.ID,
		&podcast.CourseID,
		&podcast.Title,
		&podcast.AudioURL,
		&podcast.ImageURL,
		&podcast.DurationSeconds,
		&podcast.Description,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("podcast not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get podcast by id: %w", err)
	}

	return &podcast, nil
}

// GetByCourseIDWithProgress retrieves a course's episodes with the user's progress overlay
func (r *podcastRepository) GetByCourseIDWithProgress(ctx context.Context, courseID, userID int) ([]models.PodcastListItem, error) {
	query := `
		SELECT
			p.id,
			p.title,
			p.audio_url,
			p.image_url,
			p.duration_seconds,
			p.description,
			COALESCE(up.position_seconds, 0) as position_seconds,
			COALESCE(up.completed, 0) as completed
		FROM podcasts p
		LEFT JOIN user_progress up ON up.podcast_id = p.id AND up.user_id = ?
		WHERE p.course_id = ?
		ORDER BY p.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []models.PodcastListItem
	for rows.Next() {
		var podcast models.PodcastListItem
		err := rows.Scan(
			&podcast.ID,
			&podcast.Title,
			&podcast.AudioURL,
			&podcast.ImageURL,
			&podcast.DurationSeconds,
			&podcast.Description,
			&podcast.PositionSeconds,
			&podcast.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan podcast: %w", err)
		}
		podcasts = append(podcasts, podcast)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return podcasts, nil
}

// Create creates a new podcast episode
func (r *podcastRepository) Create(ctx context.Context, podcast *models.Podcast) error {
	query := `
		INSERT INTO podcasts (course_id, title, audio_url, image_url, duration_seconds, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		podcast.CourseID,
		podcast.Title,
		podcast.AudioURL,
		podcast.ImageURL,
		podcast.DurationSeconds,
		podcast.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create podcast: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	podcast.ID = int(id)
	return nil
}

// Update updates a podcast episode (partial update)
func (r *podcastRepository) Update(ctx context.Context, podcast *models.Podcast) error {
	var setParts []string
	var args []any

	if podcast.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, podcast.Title)
	}
	if podcast.AudioURL != "" {
		setParts = append(setParts, "audio_url = ?")
		args = append(args, podcast.AudioURL)
	}
	if podcast.ImageURL != "" {
		setParts = append(setParts, "image_url = ?")
		args = append(args, podcast.ImageURL)
	}
	if podcast.DurationSeconds != 0 {
		setParts = append(setParts, "duration_seconds = ?")
		args = append(args, podcast.DurationSeconds)
	}
	if podcast.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, podcast.Description)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE podcasts
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, podcast.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update podcast: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("podcast not found")
	}

	return nil
}

// Delete deletes a podcast episode by ID
func (r *podcastRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM podcasts WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete podcast: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("podcast not found")
	}

	return nil
}
