package services

import (
	"context"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// CourseRepository is the interface that wraps methods for Course table data access
type CourseRepository interface {
	// Method GetBySlug retrieves a course by slug together with the user's completion stats.
	//
	// "slug" parameter identifies the course, "userID" selects whose progress is overlaid.
	//
	// If course with such slug does not exist, the error will be returned together with "nil" value.
	GetBySlug(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error)
	// Method GetAll retrieves courses with filtering and pagination.
	//
	// "subject" filters by subject when non-nil, "search" matches against the title,
	// "isMine" restricts to courses the user has progress in.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, userID int, subject *models.Subject, search string, isMine bool, page, count int) ([]models.CourseDetailResponse, error)
}

// PodcastListRepository is the interface that wraps the episode listing with progress overlay
type PodcastListRepository interface {
	// Method GetByCourseIDWithProgress retrieves a course's episodes with the user's
	// saved position and completion flag joined in.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetByCourseIDWithProgress(ctx context.Context, courseID, userID int) ([]models.PodcastListItem, error)
}

// courseService provides the course catalogue: listings, detail pages and
// episode lists with the caller's progress overlaid.
type courseService struct {
	courseRepo  CourseRepository
	podcastRepo PodcastListRepository
	logger      *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository, podcastRepo PodcastListRepository, logger *zap.Logger) *courseService {
	return &courseService{
		courseRepo:  courseRepo,
		podcastRepo: podcastRepo,
		logger:      logger,
	}
}

// CourseFilter carries the listing query parameters
type CourseFilter struct {
	Subject *models.Subject
	Search  string
	IsMine  bool
	Page    int
	Count   int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetCourses retrieves the course listing for a user
func (s *courseService) GetCourses(ctx context.Context, userID int, filter CourseFilter) ([]models.CourseDetailResponse, error) {
	if filter.Subject != nil && !validSubject(*filter.Subject) {
		return nil, fmt.Errorf("invalid subject")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Count < 1 {
		filter.Count = defaultPageSize
	}
	if filter.Count > maxPageSize {
		filter.Count = maxPageSize
	}

	courses, err := s.courseRepo.GetAll(ctx, userID, filter.Subject, filter.Search, filter.IsMine, filter.Page, filter.Count)
	if err != nil {
		return nil, err
	}

	// An empty page is a valid result, not an error
	if courses == nil {
		courses = []models.CourseDetailResponse{}
	}

	return courses, nil
}

// GetCourseBySlug retrieves a course's detail page data
func (s *courseService) GetCourseBySlug(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug cannot be empty")
	}
	return s.courseRepo.GetBySlug(ctx, slug, userID)
}

// GetCourseEpisodes retrieves a course's episodes with the user's progress.
// The course is resolved by slug so the detail page and its episode list
// address content the same way.
func (s *courseService) GetCourseEpisodes(ctx context.Context, slug string, userID int) ([]models.PodcastListItem, error) {
	course, err := s.courseRepo.GetBySlug(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	episodes, err := s.podcastRepo.GetByCourseIDWithProgress(ctx, course.ID, userID)
	if err != nil {
		return nil, err
	}

	if episodes == nil {
		episodes = []models.PodcastListItem{}
	}

	return episodes, nil
}

// validSubject reports whether the subject is a known category
func validSubject(subject models.Subject) bool {
	switch subject {
	case models.SubjectMath, models.SubjectEnglish, models.SubjectScience,
		models.SubjectHistory, models.SubjectGeography, models.SubjectLanguages:
		return true
	}
	return false
}
