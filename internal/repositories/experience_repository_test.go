package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupExperienceTestRepository creates an experience repository with a mock database
func setupExperienceTestRepository(t *testing.T) (*experienceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewExperienceRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestExperienceRepository_AddXP(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		amount        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "success - first award creates row",
			userID: 1,
			amount: 50,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_experience`).
					WithArgs(1, 50, 50).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name:   "success - existing row incremented",
			userID: 1,
			amount: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_experience`).
					WithArgs(1, 10, 10).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			expectedError: false,
		},
		{
			name:   "database error",
			userID: 1,
			amount: 200,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_experience`).
					WithArgs(1, 200, 200).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupExperienceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.AddXP(context.Background(), tt.userID, tt.amount)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestExperienceRepository_GetByUserID(t *testing.T) {
	updatedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      *models.UserExperience
	}{
		{
			name:   "success",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "total_xp", "weekly_xp", "updated_at"}).
					AddRow(1, 1250, 340, updatedAt)
				mock.ExpectQuery(`SELECT user_id, total_xp, weekly_xp, updated_at FROM user_experience`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: &models.UserExperience{
				UserID:    1,
				TotalXP:   1250,
				WeeklyXP:  340,
				UpdatedAt: updatedAt,
			},
		},
		{
			name:   "no row means zero XP",
			userID: 42,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, total_xp, weekly_xp, updated_at FROM user_experience`).
					WithArgs(42).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_xp", "weekly_xp", "updated_at"}))
			},
			expectedError: false,
			expected:      &models.UserExperience{UserID: 42},
		},
		{
			name:   "database error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, total_xp, weekly_xp, updated_at FROM user_experience`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupExperienceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			xp, err := repo.GetByUserID(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, xp)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestExperienceRepository_GetLeaderboard(t *testing.T) {
	tests := []struct {
		name          string
		weekly        bool
		limit         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      []models.LeaderboardEntry
	}{
		{
			name:   "success - total ranking with ranks assigned in order",
			weekly: false,
			limit:  3,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "username", "avatar", "total_xp", "weekly_xp"}).
					AddRow(3, "alice", "", 900, 120).
					AddRow(1, "bob", "bob.png", 700, 300).
					AddRow(2, "carol", "", 500, 50)
				mock.ExpectQuery(`ORDER BY ux\.total_xp DESC`).
					WithArgs(3).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: []models.LeaderboardEntry{
				{Rank: 1, UserID: 3, Username: "alice", TotalXP: 900, WeeklyXP: 120},
				{Rank: 2, UserID: 1, Username: "bob", Avatar: "bob.png", TotalXP: 700, WeeklyXP: 300},
				{Rank: 3, UserID: 2, Username: "carol", TotalXP: 500, WeeklyXP: 50},
			},
		},
		{
			name:   "success - weekly ranking orders by weekly_xp",
			weekly: true,
			limit:  2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "username", "avatar", "total_xp", "weekly_xp"}).
					AddRow(1, "bob", "", 700, 300).
					AddRow(3, "alice", "", 900, 120)
				mock.ExpectQuery(`ORDER BY ux\.weekly_xp DESC`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: []models.LeaderboardEntry{
				{Rank: 1, UserID: 1, Username: "bob", TotalXP: 700, WeeklyXP: 300},
				{Rank: 2, UserID: 3, Username: "alice", TotalXP: 900, WeeklyXP: 120},
			},
		},
		{
			name:   "database error",
			weekly: false,
			limit:  10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`ORDER BY ux\.total_xp DESC`).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupExperienceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			entries, err := repo.GetLeaderboard(context.Background(), tt.weekly, tt.limit)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, entries)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestExperienceRepository_GetUserRank(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		weekly        bool
		setupMock     func(sqlmock.Sqlmock)
		expectedRank  int
		expectedError bool
	}{
		{
			name:   "rank by total xp",
			userID: 1,
			weekly: false,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) \+ 1`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"rank"}).AddRow(4))
			},
			expectedRank: 4,
		},
		{
			name:   "rank by weekly xp",
			userID: 1,
			weekly: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) \+ 1`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"rank"}).AddRow(2))
			},
			expectedRank: 2,
		},
		{
			name:   "user without xp row still yields a row, rank 1",
			userID: 99,
			weekly: false,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) \+ 1`).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"rank"}).AddRow(1))
			},
			expectedRank: 1,
		},
		{
			name:   "database error",
			userID: 1,
			weekly: false,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) \+ 1`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupExperienceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			rank, err := repo.GetUserRank(context.Background(), tt.userID, tt.weekly)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRank, rank)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestExperienceRepository_ResetWeekly(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedRows  int64
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_experience SET weekly_xp = 0`).
					WillReturnResult(sqlmock.NewResult(0, 17))
			},
			expectedError: false,
			expectedRows:  17,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE user_experience SET weekly_xp = 0`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupExperienceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			affected, err := repo.ResetWeekly(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRows, affected)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
