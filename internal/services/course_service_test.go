package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course  *models.CourseDetailResponse
	courses []models.CourseDetailResponse
	err     error

	// captured GetAll arguments
	gotSubject *models.Subject
	gotSearch  string
	gotIsMine  bool
	gotPage    int
	gotCount   int
}

func (m *mockCourseRepository) GetBySlug(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, fmt.Errorf("course not found")
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, userID int, subject *models.Subject, search string, isMine bool, page, count int) ([]models.CourseDetailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.gotSubject = subject
	m.gotSearch = search
	m.gotIsMine = isMine
	m.gotPage = page
	m.gotCount = count
	return m.courses, nil
}

// mockPodcastListRepository is a mock implementation of PodcastListRepository
type mockPodcastListRepository struct {
	episodes []models.PodcastListItem
	err      error
}

func (m *mockPodcastListRepository) GetByCourseIDWithProgress(ctx context.Context, courseID, userID int) ([]models.PodcastListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.episodes, nil
}

func TestCourseService_GetCourses(t *testing.T) {
	subjectMath := models.SubjectMath
	badSubject := models.Subject("astrology")

	tests := []struct {
		name          string
		filter        CourseFilter
		courseRepo    *mockCourseRepository
		expectedError bool
		expectedPage  int
		expectedCount int
	}{
		{
			name:          "defaults applied",
			filter:        CourseFilter{},
			courseRepo:    &mockCourseRepository{courses: []models.CourseDetailResponse{{Slug: "gcse-maths-aqa"}}},
			expectedError: false,
			expectedPage:  1,
			expectedCount: defaultPageSize,
		},
		{
			name:          "page size capped",
			filter:        CourseFilter{Page: 2, Count: 500},
			courseRepo:    &mockCourseRepository{},
			expectedError: false,
			expectedPage:  2,
			expectedCount: maxPageSize,
		},
		{
			name:          "subject filter passed through",
			filter:        CourseFilter{Subject: &subjectMath, Search: "alg", IsMine: true, Page: 1, Count: 10},
			courseRepo:    &mockCourseRepository{},
			expectedError: false,
			expectedPage:  1,
			expectedCount: 10,
		},
		{
			name:          "unknown subject rejected",
			filter:        CourseFilter{Subject: &badSubject},
			courseRepo:    &mockCourseRepository{},
			expectedError: true,
		},
		{
			name:          "database error",
			filter:        CourseFilter{},
			courseRepo:    &mockCourseRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCourseService(tt.courseRepo, &mockPodcastListRepository{}, zap.NewNop())

			courses, err := svc.GetCourses(context.Background(), 1, tt.filter)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, courses)
			assert.Equal(t, tt.expectedPage, tt.courseRepo.gotPage)
			assert.Equal(t, tt.expectedCount, tt.courseRepo.gotCount)
			assert.Equal(t, tt.filter.Subject, tt.courseRepo.gotSubject)
			assert.Equal(t, tt.filter.Search, tt.courseRepo.gotSearch)
			assert.Equal(t, tt.filter.IsMine, tt.courseRepo.gotIsMine)
		})
	}
}

func TestCourseService_GetCourseBySlug(t *testing.T) {
	detail := &models.CourseDetailResponse{ID: 5, Slug: "gcse-maths-aqa", Title: "GCSE Maths", TotalEpisodes: 12, CompletedEpisodes: 4}

	t.Run("success", func(t *testing.T) {
		svc := NewCourseService(&mockCourseRepository{course: detail}, &mockPodcastListRepository{}, zap.NewNop())

		course, err := svc.GetCourseBySlug(context.Background(), "gcse-maths-aqa", 1)

		assert.NoError(t, err)
		assert.Equal(t, detail, course)
	})

	t.Run("empty slug", func(t *testing.T) {
		svc := NewCourseService(&mockCourseRepository{course: detail}, &mockPodcastListRepository{}, zap.NewNop())

		_, err := svc.GetCourseBySlug(context.Background(), "", 1)

		assert.Error(t, err)
	})

	t.Run("course not found", func(t *testing.T) {
		svc := NewCourseService(&mockCourseRepository{}, &mockPodcastListRepository{}, zap.NewNop())

		_, err := svc.GetCourseBySlug(context.Background(), "missing", 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "course not found")
	})
}

func TestCourseService_GetCourseEpisodes(t *testing.T) {
	detail := &models.CourseDetailResponse{ID: 5, Slug: "gcse-maths-aqa"}

	t.Run("success", func(t *testing.T) {
		episodes := []models.PodcastListItem{
			{ID: 10, Title: "Algebra basics", PositionSeconds: 120, Completed: false},
			{ID: 11, Title: "Quadratics"},
		}
		svc := NewCourseService(&mockCourseRepository{course: detail}, &mockPodcastListRepository{episodes: episodes}, zap.NewNop())

		got, err := svc.GetCourseEpisodes(context.Background(), "gcse-maths-aqa", 1)

		assert.NoError(t, err)
		assert.Equal(t, episodes, got)
	})

	t.Run("course with no episodes resolves to empty slice", func(t *testing.T) {
		svc := NewCourseService(&mockCourseRepository{course: detail}, &mockPodcastListRepository{}, zap.NewNop())

		got, err := svc.GetCourseEpisodes(context.Background(), "gcse-maths-aqa", 1)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown course", func(t *testing.T) {
		svc := NewCourseService(&mockCourseRepository{}, &mockPodcastListRepository{}, zap.NewNop())

		_, err := svc.GetCourseEpisodes(context.Background(), "missing", 1)

		assert.Error(t, err)
	})
}
