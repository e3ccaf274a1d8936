package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type playerStateRepository struct {
	db *sql.DB
}

// NewPlayerStateRepository creates a new player state repository
func NewPlayerStateRepository(db *sql.DB) *playerStateRepository {
	return &playerStateRepository{
		db: db,
	}
}

// Upsert writes the user's active player state. One row per user, last writer wins.
func (r *playerStateRepository) Upsert(ctx context.Context, state *models.PlayerState) error {
	query := `
		INSERT INTO player_states (user_id, podcast_id, position_seconds, volume)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			podcast_id = VALUES(podcast_id),
			position_seconds = VALUES(position_seconds),
			volume = VALUES(volume)
	`

	_, err := r.db.ExecContext(ctx, query,
		state.UserID,
		state.PodcastID,
		state.PositionSeconds,
		state.Volume,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player state: %w", err)
	}

	return nil
}

// GetByUserID retrieves the user's active player state
func (r *playerStateRepository) GetByUserID(ctx context.Context, userID int) (*models.PlayerState, error) {
	query := `
		SELECT user_id, podcast_id, position_seconds, volume, updated_at
		FROM player_states
		WHERE user_id = ?
		LIMIT 1
	`

	state := &models.PlayerState{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID,
		&state.PodcastID,
		&state.PositionSeconds,
		&state.Volume,
		&state.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player state not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player state: %w", err)
	}

	return state, nil
}

// Delete clears the user's active player state
func (r *playerStateRepository) Delete(ctx context.Context, userID int) error {
	query := `DELETE FROM player_states WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete player state: %w", err)
	}

	return nil
}
