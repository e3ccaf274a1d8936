package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flypacademy/podcast-academy/internal/models"
)

// AdminService defines the interface for catalogue management operations
type AdminService interface {
	// Method CreateCourse creates a new course.
	//
	// "req" parameter carries the slug, title, subject and optional fields.
	//
	// If some error will occur during creation, the error will be returned
	// together with "nil" value.
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	// Method UpdateCourse applies a partial update to a course.
	//
	// "id" parameter is the course to update.
	// "req" parameter carries only the fields to change.
	//
	// If some error will occur during update, the error will be returned
	// together with "nil" value.
	UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest) (*models.Course, error)
	// Method DeleteCourse deletes a course.
	//
	// If some error will occur during deletion, the error will be returned.
	DeleteCourse(ctx context.Context, id int) error
	// Method CreatePodcast creates a new episode in a course.
	//
	// If some error will occur during creation, the error will be returned
	// together with "nil" value.
	CreatePodcast(ctx context.Context, req *models.CreatePodcastRequest) (*models.Podcast, error)
	// Method UpdatePodcast applies a partial update to an episode.
	//
	// If some error will occur during update, the error will be returned
	// together with "nil" value.
	UpdatePodcast(ctx context.Context, id int, req *models.UpdatePodcastRequest) (*models.Podcast, error)
	// Method DeletePodcast deletes an episode.
	//
	// If some error will occur during deletion, the error will be returned.
	DeletePodcast(ctx context.Context, id int) error
	// Method CreateQuizQuestion attaches a quiz question to an episode.
	//
	// If some error will occur during creation, the error will be returned.
	CreateQuizQuestion(ctx context.Context, question *models.QuizQuestion) error
}

// AdminHandler handles catalogue management HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/courses", h.CreateCourse)
		r.Patch("/courses/{courseID}", h.UpdateCourse)
		r.Delete("/courses/{courseID}", h.DeleteCourse)
		r.Post("/podcasts", h.CreatePodcast)
		r.Patch("/podcasts/{podcastID}", h.UpdatePodcast)
		r.Delete("/podcasts/{podcastID}", h.DeletePodcast)
		r.Post("/quiz/questions", h.CreateQuizQuestion)
	})
}

// CreateCourse handles POST /admin/courses
// @Summary Create course
// @Description Create a new course. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [post]
func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.adminService.CreateCourse(r.Context(), &req)
	if err != nil {
		h.respondAdminError(w, err, "failed to create course")
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /admin/courses/{courseID}
// @Summary Update course
// @Description Apply a partial update to a course. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param courseID path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{courseID} [patch]
func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.adminService.UpdateCourse(r.Context(), courseID, &req)
	if err != nil {
		h.respondAdminError(w, err, "failed to update course")
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /admin/courses/{courseID}
// @Summary Delete course
// @Description Delete a course and its episodes. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param courseID path int true "Course ID"
// @Success 204 "Course deleted"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{courseID} [delete]
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	if err := h.adminService.DeleteCourse(r.Context(), courseID); err != nil {
		h.respondAdminError(w, err, "failed to delete course")
		return
	}

	h.RespondNoContent(w)
}

// CreatePodcast handles POST /admin/podcasts
// @Summary Create episode
// @Description Create a new podcast episode in a course. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreatePodcastRequest true "Episode data"
// @Success 201 {object} models.Podcast
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/podcasts [post]
func (h *AdminHandler) CreatePodcast(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePodcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	podcast, err := h.adminService.CreatePodcast(r.Context(), &req)
	if err != nil {
		h.respondAdminError(w, err, "failed to create podcast")
		return
	}

	h.RespondJSON(w, http.StatusCreated, podcast)
}

// UpdatePodcast handles PATCH /admin/podcasts/{podcastID}
// @Summary Update episode
// @Description Apply a partial update to a podcast episode. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Param request body models.UpdatePodcastRequest true "Fields to update"
// @Success 200 {object} models.Podcast
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/podcasts/{podcastID} [patch]
func (h *AdminHandler) UpdatePodcast(w http.ResponseWriter, r *http.Request) {
	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	var req models.UpdatePodcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	podcast, err := h.adminService.UpdatePodcast(r.Context(), podcastID, &req)
	if err != nil {
		h.respondAdminError(w, err, "failed to update podcast")
		return
	}

	h.RespondJSON(w, http.StatusOK, podcast)
}

// DeletePodcast handles DELETE /admin/podcasts/{podcastID}
// @Summary Delete episode
// @Description Delete a podcast episode. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Success 204 "Episode deleted"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/podcasts/{podcastID} [delete]
func (h *AdminHandler) DeletePodcast(w http.ResponseWriter, r *http.Request) {
	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	if err := h.adminService.DeletePodcast(r.Context(), podcastID); err != nil {
		h.respondAdminError(w, err, "failed to delete podcast")
		return
	}

	h.RespondNoContent(w)
}

// CreateQuizQuestion handles POST /admin/quiz/questions
// @Summary Create quiz question
// @Description Attach a multiple-choice question to an episode. Requires admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.QuizQuestion true "Question data"
// @Success 201 {object} map[string]string "Question created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/quiz/questions [post]
func (h *AdminHandler) CreateQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var question models.QuizQuestion
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.CreateQuizQuestion(r.Context(), &question); err != nil {
		h.respondAdminError(w, err, "failed to create quiz question")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "question created",
	})
}

// respondAdminError maps service errors onto HTTP statuses
func (h *AdminHandler) respondAdminError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case strings.Contains(err.Error(), "already exists") ||
		strings.Contains(err.Error(), "invalid") ||
		strings.Contains(err.Error(), "required") ||
		strings.Contains(err.Error(), "must"):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error(fallback, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
