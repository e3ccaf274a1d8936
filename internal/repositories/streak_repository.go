package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *sql.DB) *streakRepository {
	return &streakRepository{
		db: db,
	}
}

// RecordDay records a qualifying listening day for a user. The unique key on
// (user_id, day) makes the second record of the same day a no-op.
// Returns true if the day was newly recorded.
func (r *streakRepository) RecordDay(ctx context.Context, userID int, day time.Time) (bool, error) {
	query := `
		INSERT IGNORE INTO streak_days (user_id, day)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, userID, day.Format("2006-01-02"))
	if err != nil {
		return false, fmt.Errorf("failed to record streak day: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetRecentDays retrieves a user's recorded days, newest first
func (r *streakRepository) GetRecentDays(ctx context.Context, userID, limit int) ([]time.Time, error) {
	query := `
		SELECT day
		FROM streak_days
		WHERE user_id = ?
		ORDER BY day DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query streak days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan streak day: %w", err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return days, nil
}

// LongestStreak returns the user's longest run of consecutive recorded days
func (r *streakRepository) LongestStreak(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT day
		FROM streak_days
		WHERE user_id = ?
		ORDER BY day ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to query streak days: %w", err)
	}
	defer rows.Close()

	longest, run := 0, 0
	var prev time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("failed to scan streak day: %w", err)
		}
		if run > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return longest, nil
}
