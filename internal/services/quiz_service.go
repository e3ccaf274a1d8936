package services

import (
	"context"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
)

// QuizRepository is the interface that wraps methods for quiz data access
type QuizRepository interface {
	// Method GetQuestionsByPodcast retrieves the quiz questions attached to a podcast.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetQuestionsByPodcast(ctx context.Context, podcastID int) ([]models.QuizQuestion, error)
	// Method CreateAttempt records a finished quiz attempt.
	//
	// If some error occurs during creation, the error will be returned.
	CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	// Method ListAttemptsByUser retrieves the user's past attempts, newest first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListAttemptsByUser(ctx context.Context, userID int) ([]models.QuizAttempt, error)
}

// quizService runs podcast quizzes: serving questions without answers,
// scoring submissions and awarding XP once per podcast quiz.
type quizService struct {
	quizRepo       QuizRepository
	podcastRepo    PodcastSharedRepository
	xpEventRepo    XPEventRepository
	experienceRepo ExperienceSharedRepository
	logger         *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	quizRepo QuizRepository,
	podcastRepo PodcastSharedRepository,
	xpEventRepo XPEventRepository,
	experienceRepo ExperienceSharedRepository,
	logger *zap.Logger,
) *quizService {
	return &quizService{
		quizRepo:       quizRepo,
		podcastRepo:    podcastRepo,
		xpEventRepo:    xpEventRepo,
		experienceRepo: experienceRepo,
		logger:         logger,
	}
}

// GetQuestions retrieves a podcast's quiz questions. Correct answers never
// leave the server.
func (s *quizService) GetQuestions(ctx context.Context, podcastID int) ([]models.QuizQuestion, error) {
	if _, err := s.podcastRepo.GetByID(ctx, podcastID); err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.GetQuestionsByPodcast(ctx, podcastID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.QuizQuestion{}
	}

	return questions, nil
}

// Submit scores a quiz submission and awards XP for correct answers.
// XP is granted only for the first attempt per podcast; retries still get a
// score but no award.
func (s *quizService) Submit(ctx context.Context, userID, podcastID int, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	questions, err := s.quizRepo.GetQuestionsByPodcast(ctx, podcastID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz not found")
	}
	if len(req.Answers) != len(questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(questions), len(req.Answers))
	}

	score := 0
	for i, question := range questions {
		if req.Answers[i] == question.CorrectIndex {
			score++
		}
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		PodcastID:      podcastID,
		Score:          score,
		TotalQuestions: len(questions),
	}
	if err := s.quizRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	resp := &models.SubmitQuizResponse{
		Score:          score,
		TotalQuestions: len(questions),
	}

	if score > 0 {
		resp.XPAwarded = s.awardQuizXP(ctx, userID, podcastID, score)
	}

	return resp, nil
}

// GetAttempts retrieves the user's past quiz attempts
func (s *quizService) GetAttempts(ctx context.Context, userID int) ([]models.QuizAttempt, error) {
	attempts, err := s.quizRepo.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}
	return attempts, nil
}

// awardQuizXP grants XP for a quiz result, keyed per podcast so only the first
// scored attempt pays out. Failures are logged and swallowed like every other
// award path.
func (s *quizService) awardQuizXP(ctx context.Context, userID, podcastID, score int) int {
	amount := score * XPPerCorrectAnswer

	recorded, err := s.xpEventRepo.Record(ctx, &models.XPEvent{
		UserID:    userID,
		EventType: models.XPEventQuiz,
		EventKey:  fmt.Sprintf("%d", podcastID),
		Amount:    amount,
	})
	if err != nil {
		s.logger.Warn("failed to record quiz xp event", zap.Int("userId", userID), zap.Int("podcastId", podcastID), zap.Error(err))
		return 0
	}
	if !recorded {
		return 0
	}

	if err := s.experienceRepo.AddXP(ctx, userID, amount); err != nil {
		s.logger.Error("quiz xp event recorded but counter update failed", zap.Int("userId", userID), zap.Int("podcastId", podcastID), zap.Error(err))
		return 0
	}

	return amount
}
