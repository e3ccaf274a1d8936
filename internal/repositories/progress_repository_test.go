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

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProgressRepository_Upsert(t *testing.T) {
	tests := []struct {
		name          string
		progress      *models.UserProgress
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success - insert new row",
			progress: &models.UserProgress{
				UserID:          1,
				PodcastID:       10,
				CourseID:        5,
				PositionSeconds: 120.5,
				Completed:       false,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress`).
					WithArgs(1, 10, 5, 120.5, false).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
		},
		{
			name: "success - update existing row",
			progress: &models.UserProgress{
				UserID:          1,
				PodcastID:       10,
				CourseID:        5,
				PositionSeconds: 290,
				Completed:       true,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				// MySQL reports 2 affected rows for an ON DUPLICATE KEY update
				mock.ExpectExec(`INSERT INTO user_progress`).
					WithArgs(1, 10, 5, 290.0, true).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			expectedError: false,
		},
		{
			name: "database error",
			progress: &models.UserProgress{
				UserID:          1,
				PodcastID:       10,
				CourseID:        5,
				PositionSeconds: 60,
				Completed:       false,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress`).
					WithArgs(1, 10, 5, 60.0, false).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Upsert(context.Background(), tt.progress)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_GetByUserAndPodcast(t *testing.T) {
	updatedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        int
		podcastID     int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
		expected      *models.UserProgress
	}{
		{
			name:      "success",
			userID:    1,
			podcastID: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "podcast_id", "course_id", "position_seconds", "completed", "updated_at"}).
					AddRow(7, 1, 10, 5, 120.5, true, updatedAt)
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(1, 10).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: &models.UserProgress{
				ID:              7,
				UserID:          1,
				PodcastID:       10,
				CourseID:        5,
				PositionSeconds: 120.5,
				Completed:       true,
				UpdatedAt:       updatedAt,
			},
		},
		{
			name:      "progress not found",
			userID:    1,
			podcastID: 999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(1, 999).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "podcast_id", "course_id", "position_seconds", "completed", "updated_at"}))
			},
			expectedError: true,
			errorContains: "progress not found",
		},
		{
			name:      "database error",
			userID:    1,
			podcastID: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(1, 10).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			progress, err := repo.GetByUserAndPodcast(context.Background(), tt.userID, tt.podcastID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, progress)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_ListByUser(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedLen   int
	}{
		{
			name:   "success",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "podcast_id", "course_id", "position_seconds", "completed", "updated_at"}).
					AddRow(2, 1, 8, 3, 590.0, true, now).
					AddRow(1, 1, 7, 3, 45.5, false, now.Add(-time.Hour))
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedLen:   2,
		},
		{
			name:   "no progress yet",
			userID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "podcast_id", "course_id", "position_seconds", "completed", "updated_at"})
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedLen:   0,
		},
		{
			name:   "database error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, podcast_id, course_id, position_seconds, completed, updated_at FROM user_progress`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			progresses, err := repo.ListByUser(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, progresses, tt.expectedLen)
				if tt.expectedLen > 0 {
					assert.True(t, progresses[0].Completed)
					assert.Equal(t, 8, progresses[0].PodcastID)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
