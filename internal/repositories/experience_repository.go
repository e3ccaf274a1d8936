package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type experienceRepository struct {
	db *sql.DB
}

// NewExperienceRepository creates a new experience repository
func NewExperienceRepository(db *sql.DB) *experienceRepository {
	return &experienceRepository{
		db: db,
	}
}

// AddXP adds the amount to both the total and weekly counters in a single
// atomic statement, creating the row if the user has none yet. Concurrent
// awards cannot lose increments.
func (r *experienceRepository) AddXP(ctx context.Context, userID, amount int) error {
	query := `
		INSERT INTO user_experience (user_id, total_xp, weekly_xp)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			total_xp = total_xp + VALUES(total_xp),
			weekly_xp = weekly_xp + VALUES(weekly_xp)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, amount, amount); err != nil {
		return fmt.Errorf("failed to add xp: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user's XP totals. A user with no row has zero XP.
func (r *experienceRepository) GetByUserID(ctx context.Context, userID int) (*models.UserExperience, error) {
	query := `
		SELECT user_id, total_xp, weekly_xp, updated_at
		FROM user_experience
		WHERE user_id = ?
		LIMIT 1
	`

	xp := &models.UserExperience{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&xp.UserID,
		&xp.TotalXP,
		&xp.WeeklyXP,
		&xp.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return &models.UserExperience{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user experience: %w", err)
	}

	return xp, nil
}

// GetLeaderboard retrieves the top users ordered by weekly or total XP
func (r *experienceRepository) GetLeaderboard(ctx context.Context, weekly bool, limit int) ([]models.LeaderboardEntry, error) {
	orderColumn := "ux.total_xp"
	if weekly {
		orderColumn = "ux.weekly_xp"
	}

	query := fmt.Sprintf(`
		SELECT ux.user_id, u.username, u.avatar, ux.total_xp, ux.weekly_xp
		FROM user_experience ux
		JOIN users u ON u.id = ux.user_id
		ORDER BY %s DESC, ux.user_id
		LIMIT ?
	`, orderColumn)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.Avatar,
			&entry.TotalXP,
			&entry.WeeklyXP,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		rank++
		entry.Rank = rank
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// GetUserRank returns the user's 1-based rank by weekly or total XP.
// The aggregate always yields a row, so a user without an XP row comes back as
// rank 1; callers must check for an XP row before treating the rank as real.
func (r *experienceRepository) GetUserRank(ctx context.Context, userID int, weekly bool) (int, error) {
	column := "total_xp"
	if weekly {
		column = "weekly_xp"
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) + 1
		FROM user_experience
		WHERE %s > (SELECT %s FROM user_experience WHERE user_id = ?)
	`, column, column)

	var rank int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&rank); err != nil {
		return 0, fmt.Errorf("failed to get user rank: %w", err)
	}

	return rank, nil
}

// ResetWeekly zeroes the weekly XP counter for all users
func (r *experienceRepository) ResetWeekly(ctx context.Context) (int64, error) {
	query := `UPDATE user_experience SET weekly_xp = 0 WHERE weekly_xp > 0`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly xp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
