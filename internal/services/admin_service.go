package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// AdminCourseRepository is the interface that wraps course writes for the admin service
type AdminCourseRepository interface {
	// Method Create inserts a new course into the database.
	//
	// If some error occurs during creation, the error will be returned.
	Create(ctx context.Context, course *models.Course) error
	// Method Update applies a partial update to a course.
	//
	// If course with such ID does not exist, the error will be returned.
	Update(ctx context.Context, course *models.Course) error
	// Method Delete deletes a course by ID.
	//
	// If course with such ID does not exist, the error will be returned.
	Delete(ctx context.Context, id int) error
	// Method ExistsBySlug checks if a course with such slug exists.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Method GetByID retrieves a course by ID.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// AdminPodcastRepository is the interface that wraps podcast writes for the admin service
type AdminPodcastRepository interface {
	// Method Create inserts a new podcast episode into the database.
	//
	// If some error occurs during creation, the error will be returned.
	Create(ctx context.Context, podcast *models.Podcast) error
	// Method Update applies a partial update to a podcast episode.
	//
	// If podcast with such ID does not exist, the error will be returned.
	Update(ctx context.Context, podcast *models.Podcast) error
	// Method Delete deletes a podcast episode by ID.
	//
	// If podcast with such ID does not exist, the error will be returned.
	Delete(ctx context.Context, id int) error
	// Method GetByID retrieves a podcast by ID.
	GetByID(ctx context.Context, id int) (*models.Podcast, error)
}

// AdminQuizRepository is the interface that wraps quiz question writes
type AdminQuizRepository interface {
	// Method CreateQuestion inserts a new quiz question.
	//
	// If some error occurs during creation, the error will be returned.
	CreateQuestion(ctx context.Context, question *models.QuizQuestion) error
}

// slugRegex validates course slugs: lowercase words joined by single hyphens
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// adminService manages the content catalogue: courses, episodes and quizzes
type adminService struct {
	courseRepo  AdminCourseRepository
	podcastRepo AdminPodcastRepository
	quizRepo    AdminQuizRepository
	logger      *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	courseRepo AdminCourseRepository,
	podcastRepo AdminPodcastRepository,
	quizRepo AdminQuizRepository,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		courseRepo:  courseRepo,
		podcastRepo: podcastRepo,
		quizRepo:    quizRepo,
		logger:      logger,
	}
}

// CreateCourse creates a new course
func (s *adminService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("invalid slug format")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if !validSubject(req.Subject) {
		return nil, fmt.Errorf("invalid subject")
	}

	exists, err := s.courseRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("slug already exists")
	}

	course := &models.Course{
		Slug:        slug,
		Title:       strings.TrimSpace(req.Title),
		Subject:     req.Subject,
		ExamBoard:   strings.TrimSpace(req.ExamBoard),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", zap.Int("courseId", course.ID), zap.String("slug", course.Slug))
	return course, nil
}

// UpdateCourse applies a partial update to a course
func (s *adminService) UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest) (*models.Course, error) {
	if req.Slug != "" {
		slug := strings.TrimSpace(strings.ToLower(req.Slug))
		if !slugRegex.MatchString(slug) {
			return nil, fmt.Errorf("invalid slug format")
		}
		req.Slug = slug
	}
	if req.Subject != "" && !validSubject(req.Subject) {
		return nil, fmt.Errorf("invalid subject")
	}

	course := &models.Course{
		ID:          id,
		Slug:        req.Slug,
		Title:       strings.TrimSpace(req.Title),
		Subject:     req.Subject,
		ExamBoard:   req.ExamBoard,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse deletes a course
func (s *adminService) DeleteCourse(ctx context.Context, id int) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("course deleted", zap.Int("courseId", id))
	return nil
}

// CreatePodcast creates a new podcast episode
func (s *adminService) CreatePodcast(ctx context.Context, req *models.CreatePodcastRequest) (*models.Podcast, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if req.AudioURL == "" {
		return nil, fmt.Errorf("audio url cannot be empty")
	}
	if req.DurationSeconds <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	// The course must exist before an episode can be attached to it
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	podcast := &models.Podcast{
		CourseID:        req.CourseID,
		Title:           strings.TrimSpace(req.Title),
		AudioURL:        req.AudioURL,
		ImageURL:        req.ImageURL,
		DurationSeconds: req.DurationSeconds,
		Description:     req.Description,
	}
	if err := s.podcastRepo.Create(ctx, podcast); err != nil {
		return nil, err
	}

	s.logger.Info("podcast created", zap.Int("podcastId", podcast.ID), zap.Int("courseId", podcast.CourseID))
	return podcast, nil
}

// UpdatePodcast applies a partial update to a podcast episode
func (s *adminService) UpdatePodcast(ctx context.Context, id int, req *models.UpdatePodcastRequest) (*models.Podcast, error) {
	if req.DurationSeconds < 0 {
		return nil, fmt.Errorf("duration cannot be negative")
	}

	podcast := &models.Podcast{
		ID:              id,
		Title:           strings.TrimSpace(req.Title),
		AudioURL:        req.AudioURL,
		ImageURL:        req.ImageURL,
		DurationSeconds: req.DurationSeconds,
		Description:     req.Description,
	}
	if err := s.podcastRepo.Update(ctx, podcast); err != nil {
		return nil, err
	}

	return s.podcastRepo.GetByID(ctx, id)
}

// DeletePodcast deletes a podcast episode
func (s *adminService) DeletePodcast(ctx context.Context, id int) error {
	if err := s.podcastRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("podcast deleted", zap.Int("podcastId", id))
	return nil
}

// CreateQuizQuestion attaches a new quiz question to a podcast
func (s *adminService) CreateQuizQuestion(ctx context.Context, question *models.QuizQuestion) error {
	if strings.TrimSpace(question.Question) == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if len(question.Options) < 2 {
		return fmt.Errorf("question needs at least two options")
	}
	if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
		return fmt.Errorf("correct index out of range")
	}

	if _, err := s.podcastRepo.GetByID(ctx, question.PodcastID); err != nil {
		return err
	}

	return s.quizRepo.CreateQuestion(ctx, question)
}
