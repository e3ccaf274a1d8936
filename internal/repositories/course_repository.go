package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/flypacademy/podcast-academy/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetBySlug retrieves a course by its slug with the user's completion stats
func (r *courseRepository) GetBySlug(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error) {
	query := `
		SELECT
			c.id,
			c.slug,
			c.title,
			c.subject,
			c.exam_board,
			c.description,
			c.image_url,
			COUNT(DISTINCT p.id) as total_episodes,
			COUNT(DISTINCT CASE WHEN up.completed = 1 THEN up.podcast_id END) as completed_episodes
		FROM courses c
		LEFT JOIN podcasts p ON p.course_id = c.id
		LEFT JOIN user_progress up ON up.course_id = c.id AND up.user_id = ? AND up.podcast_id = p.id
		WHERE c.slug = ?
		GROUP BY c.id, c.slug, c.title, c.subject, c.exam_board, c.description, c.image_url
		LIMIT 1
	`

	var course models.CourseDetailResponse
	err := r.db.QueryRowContext(ctx, query, userID, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Subject,
		&course.ExamBoard,
		&course.Description,
		&course.ImageURL,
		&course.TotalEpisodes,
		&course.CompletedEpisodes,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return &course, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, slug, title, subject, exam_board, description, image_url
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Subject,
		&course.ExamBoard,
		&course.Description,
		&course.ImageURL,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses with filtering and pagination.
// Completion stats are computed for the given user.
func (r *courseRepository) GetAll(ctx context.Context, userID int, subject *models.Subject, search string, isMine bool, page, count int) ([]models.CourseDetailResponse, error) {
	var whereClauses []string
	args := []any{userID}

	if isMine {
		whereClauses = append(whereClauses, `EXISTS (
			SELECT 1 FROM user_progress
			WHERE user_progress.course_id = c.id
			AND user_progress.user_id = ?
		)`)
		args = append(args, userID)
	}

	if subject != nil {
		whereClauses = append(whereClauses, "c.subject = ?")
		args = append(args, *subject)
	}

	if search != "" {
		whereClauses = append(whereClauses, "c.title LIKE ?")
		args = append(args, "%"+search+"%")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT
			c.slug,
			c.title,
			c.subject,
			c.exam_board,
			c.image_url,
			COUNT(DISTINCT p.id) as total_episodes,
			COUNT(DISTINCT CASE WHEN up.completed = 1 THEN up.podcast_id END) as completed_episodes
		FROM courses c
		LEFT JOIN podcasts p ON p.course_id = c.id
		LEFT JOIN user_progress up ON up.course_id = c.id AND up.user_id = ? AND up.podcast_id = p.id
		%s
		GROUP BY c.id, c.slug, c.title, c.subject, c.exam_board, c.image_url
		ORDER BY c.id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseDetailResponse
	for rows.Next() {
		var course models.CourseDetailResponse
		err := rows.Scan(
			&course.Slug,
			&course.Title,
			&course.Subject,
			&course.ExamBoard,
			&course.ImageURL,
			&course.TotalEpisodes,
			&course.CompletedEpisodes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (slug, title, subject, exam_board, description, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Slug,
		course.Title,
		course.Subject,
		course.ExamBoard,
		course.Description,
		course.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Slug != "" {
		setParts = append(setParts, "slug = ?")
		args = append(args, course.Slug)
	}
	if course.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, course.Title)
	}
	if course.Subject != "" {
		setParts = append(setParts, "subject = ?")
		args = append(args, course.Subject)
	}
	if course.ExamBoard != "" {
		setParts = append(setParts, "exam_board = ?")
		args = append(args, course.ExamBoard)
	}
	if course.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, course.Description)
	}
	if course.ImageURL != "" {
		setParts = append(setParts, "image_url = ?")
		args = append(args, course.ImageURL)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, course.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// ExistsBySlug checks if a course with the given slug exists
func (r *courseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE slug = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}
