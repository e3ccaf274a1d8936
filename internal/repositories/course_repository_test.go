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

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCourseRepository_GetBySlug(t *testing.T) {
	columns := []string{"id", "slug", "title", "subject", "exam_board", "description", "image_url", "total_episodes", "completed_episodes"}

	tests := []struct {
		name          string
		slug          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
		expected      *models.CourseDetailResponse
	}{
		{
			name:   "success",
			slug:   "gcse-maths-aqa",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(5, "gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "AQA", "Full syllabus", "maths.png", 12, 4)
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, "gcse-maths-aqa").
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: &models.CourseDetailResponse{
				ID:                5,
				Slug:              "gcse-maths-aqa",
				Title:             "GCSE Maths",
				Subject:           models.SubjectMath,
				ExamBoard:         "AQA",
				Description:       "Full syllabus",
				ImageURL:          "maths.png",
				TotalEpisodes:     12,
				CompletedEpisodes: 4,
			},
		},
		{
			name:   "course not found",
			slug:   "missing",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, "missing").
					WillReturnRows(sqlmock.NewRows(columns))
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name:   "database error",
			slug:   "gcse-maths-aqa",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, "gcse-maths-aqa").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get course by slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			course, err := repo.GetBySlug(context.Background(), tt.slug, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, course)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetAll(t *testing.T) {
	columns := []string{"slug", "title", "subject", "exam_board", "image_url", "total_episodes", "completed_episodes"}
	subjectMath := models.SubjectMath

	tests := []struct {
		name          string
		userID        int
		subject       *models.Subject
		search        string
		isMine        bool
		page          int
		count         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:   "success - no filters",
			userID: 1,
			page:   1,
			count:  20,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "AQA", "maths.png", 12, 4).
					AddRow("gcse-history-edexcel", "GCSE History", models.SubjectHistory, "Edexcel", "history.png", 8, 0)
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, 20, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:    "success - subject and search filters",
			userID:  1,
			subject: &subjectMath,
			search:  "Maths",
			page:    2,
			count:   10,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "AQA", "maths.png", 12, 4)
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, models.SubjectMath, "%Maths%", 10, 10).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:   "success - only started courses",
			userID: 1,
			isMine: true,
			page:   1,
			count:  20,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "AQA", "maths.png", 12, 4)
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, 1, 20, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:   "database error",
			userID: 1,
			page:   1,
			count:  20,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.+)FROM courses c`).
					WithArgs(1, 20, 0).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			courses, err := repo.GetAll(context.Background(), tt.userID, tt.subject, tt.search, tt.isMine, tt.page, tt.count)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, courses, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		course        *models.Course
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			course: &models.Course{
				Slug:        "gcse-maths-aqa",
				Title:       "GCSE Maths",
				Subject:     models.SubjectMath,
				ExamBoard:   "AQA",
				Description: "Full syllabus",
				ImageURL:    "maths.png",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs("gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "AQA", "Full syllabus", "maths.png").
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedError: false,
			expectedID:    5,
		},
		{
			name: "database error",
			course: &models.Course{
				Slug:    "gcse-maths-aqa",
				Title:   "GCSE Maths",
				Subject: models.SubjectMath,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs("gcse-maths-aqa", "GCSE Maths", models.SubjectMath, "", "", "").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.course)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.course.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Update(t *testing.T) {
	tests := []struct {
		name          string
		course        *models.Course
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success - partial update",
			course: &models.Course{
				ID:    5,
				Title: "GCSE Maths (Higher)",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("GCSE Maths (Higher)", 5).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:          "no fields to update",
			course:        &models.Course{ID: 5},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: true,
			errorContains: "no fields to update",
		},
		{
			name: "course not found",
			course: &models.Course{
				ID:    999,
				Title: "Ghost",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("Ghost", 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.course)

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

func TestCourseRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WithArgs(5).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "course not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WithArgs(999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.id)

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

func TestCourseRepository_ExistsBySlug(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		setupMock      func(sqlmock.Sqlmock)
		expectedError  bool
		expectedExists bool
	}{
		{
			name: "exists",
			slug: "gcse-maths-aqa",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("gcse-maths-aqa").
					WillReturnRows(rows)
			},
			expectedError:  false,
			expectedExists: true,
		},
		{
			name: "does not exist",
			slug: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("missing").
					WillReturnRows(rows)
			},
			expectedError:  false,
			expectedExists: false,
		},
		{
			name: "database error",
			slug: "gcse-maths-aqa",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("gcse-maths-aqa").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsBySlug(context.Background(), tt.slug)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
