package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *sql.DB) *quizRepository {
	return &quizRepository{
		db: db,
	}
}

// GetQuestionsByPodcast retrieves quiz questions for a podcast.
// Options are stored as a JSON array in a single column.
func (r *quizRepository) GetQuestionsByPodcast(ctx context.Context, podcastID int) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, podcast_id, question, options, correct_index
		FROM quiz_questions
		WHERE podcast_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, podcastID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var question models.QuizQuestion
		var optionsJSON string
		err := rows.Scan(
			&question.ID,
			&question.PodcastID,
			&question.Question,
			&optionsJSON,
			&question.CorrectIndex,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, fmt.Errorf("failed to decode question options: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// CreateQuestion inserts a new quiz question
func (r *quizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	optionsJSON, err := json.Marshal(question.Options)
	if err != nil {
		return fmt.Errorf("failed to encode question options: %w", err)
	}

	query := `
		INSERT INTO quiz_questions (podcast_id, question, options, correct_index)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		question.PodcastID,
		question.Question,
		string(optionsJSON),
		question.CorrectIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	question.ID = int(id)
	return nil
}

// CreateAttempt records a quiz attempt
func (r *quizRepository) CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (user_id, podcast_id, score, total_questions)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		attempt.UserID,
		attempt.PodcastID,
		attempt.Score,
		attempt.TotalQuestions,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	attempt.ID = int(id)
	return nil
}

// ListAttemptsByUser retrieves a user's quiz attempts, newest first
func (r *quizRepository) ListAttemptsByUser(ctx context.Context, userID int) ([]models.QuizAttempt, error) {
	query := `
		SELECT id, user_id, podcast_id, score, total_questions, created_at
		FROM quiz_attempts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var attempt models.QuizAttempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.PodcastID,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return attempts, nil
}
