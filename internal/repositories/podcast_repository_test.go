package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPodcastTestRepository creates a podcast repository with a mock database
func setupPodcastTestRepository(t *testing.T) (*podcastRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPodcastRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestPodcastRepository_GetByID(t *testing.T) {
	columns := []string{"id", "course_id", "title", "audio_url", "image_url", "duration_seconds", "description"}

	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
		expected      *models.Podcast
	}{
		{
			name: "success",
			id:   10,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(10, 5, "Algebra basics", "algebra.mp3", "algebra.png", 300, "Linear equations")
				mock.ExpectQuery(`SELECT id, course_id, title, audio_url, image_url, duration_seconds, description FROM podcasts`).
					WithArgs(10).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: &models.Podcast{
				ID:              10,
				CourseID:        5,
				Title:           "Algebra basics",
				AudioURL:        "algebra.mp3",
				ImageURL:        "algebra.png",
				DurationSeconds: 300,
				Description:     "Linear equations",
			},
		},
		{
			name: "podcast not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, course_id, title, audio_url, image_url, duration_seconds, description FROM podcasts`).
					WithArgs(999).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			expectedError: true,
			errorContains: "podcast not found",
		},
		{
			name: "database error",
			id:   10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, course_id, title, audio_url, image_url, duration_seconds, description FROM podcasts`).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get podcast by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPodcastTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			podcast, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, podcast)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPodcastRepository_GetByCourseIDWithProgress(t *testing.T) {
	columns := []string{"id", "title", "audio_url", "image_url", "duration_seconds", "description", "position_seconds", "completed"}

	tests := []struct {
		name          string
		courseID      int
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      []models.PodcastListItem
	}{
		{
			name:     "success - progress overlay applied",
			courseID: 5,
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(10, "Algebra basics", "algebra.mp3", "algebra.png", 300, "Linear equations", 295.0, true).
					AddRow(11, "Quadratics", "quadratics.mp3", "", 420, "", 0.0, false)
				mock.ExpectQuery(`SELECT(.+)FROM podcasts p`).
					WithArgs(1, 5).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: []models.PodcastListItem{
				{
					ID:              10,
					Title:           "Algebra basics",
					AudioURL:        "algebra.mp3",
					ImageURL:        "algebra.png",
					DurationSeconds: 300,
					Description:     "Linear equations",
					PositionSeconds: 295,
					Completed:       true,
				},
				{
					ID:              11,
					Title:           "Quadratics",
					AudioURL:        "quadratics.mp3",
					DurationSeconds: 420,
				},
			},
		},
		{
			name:     "course with no episodes",
			courseID: 99,
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.+)FROM podcasts p`).
					WithArgs(1, 99).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			expectedError: false,
			expected:      nil,
		},
		{
			name:     "database error",
			courseID: 5,
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.+)FROM podcasts p`).
					WithArgs(1, 5).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPodcastTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			podcasts, err := repo.GetByCourseIDWithProgress(context.Background(), tt.courseID, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, podcasts)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPodcastRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		podcast       *models.Podcast
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			podcast: &models.Podcast{
				CourseID:        5,
				Title:           "Algebra basics",
				AudioURL:        "algebra.mp3",
				ImageURL:        "algebra.png",
				DurationSeconds: 300,
				Description:     "Linear equations",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO podcasts`).
					WithArgs(5, "Algebra basics", "algebra.mp3", "algebra.png", 300, "Linear equations").
					WillReturnResult(sqlmock.NewResult(10, 1))
			},
			expectedError: false,
			expectedID:    10,
		},
		{
			name: "database error",
			podcast: &models.Podcast{
				CourseID: 5,
				Title:    "Algebra basics",
				AudioURL: "algebra.mp3",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO podcasts`).
					WithArgs(5, "Algebra basics", "algebra.mp3", "", 0, "").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPodcastTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.podcast)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.podcast.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPodcastRepository_Update(t *testing.T) {
	tests := []struct {
		name          string
		podcast       *models.Podcast
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success - partial update",
			podcast: &models.Podcast{
				ID:              10,
				Title:           "Algebra basics (revised)",
				DurationSeconds: 320,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE podcasts`).
					WithArgs("Algebra basics (revised)", 320, 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:          "no fields to update",
			podcast:       &models.Podcast{ID: 10},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: true,
			errorContains: "no fields to update",
		},
		{
			name: "podcast not found",
			podcast: &models.Podcast{
				ID:    999,
				Title: "Ghost",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE podcasts`).
					WithArgs("Ghost", 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "podcast not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPodcastTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.podcast)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPodcastRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			id:   10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM podcasts`).
					WithArgs(10).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "podcast not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM podcasts`).
					WithArgs(999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPodcastTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
