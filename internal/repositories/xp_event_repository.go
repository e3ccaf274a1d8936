package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type xpEventRepository struct {
	db *sql.DB
}

// NewXPEventRepository creates a new XP event repository
func NewXPEventRepository(db *sql.DB) *xpEventRepository {
	return &xpEventRepository{
		db: db,
	}
}

// Record inserts an XP event. The unique key on (user_id, event_type, event_key)
// makes the insert idempotent: recording the same logical event twice is a no-op.
// Returns true if the event was newly recorded, false if it already existed.
func (r *xpEventRepository) Record(ctx context.Context, event *models.XPEvent) (bool, error) {
	query := `
		INSERT IGNORE INTO xp_events (user_id, event_type, event_key, amount)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.UserID,
		event.EventType,
		event.EventKey,
		event.Amount,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record xp event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Duplicate event, nothing inserted
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to get last insert id: %w", err)
	}

	event.ID = int(id)
	return true, nil
}

// ListByUser retrieves the most recent XP events for a user
func (r *xpEventRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.XPEvent, error) {
	query := `
		SELECT id, user_id, event_type, event_key, amount, created_at
		FROM xp_events
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query xp events: %w", err)
	}
	defer rows.Close()

	var events []models.XPEvent
	for rows.Next() {
		var event models.XPEvent
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.EventType,
			&event.EventKey,
			&event.Amount,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan xp event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
