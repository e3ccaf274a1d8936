package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/flypacademy/podcast-academy/internal/services"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	// Method GetCourses retrieves the course listing for a user.
	//
	// "userID" parameter is used to report per-user completion counts.
	// "filter" parameter carries the subject, search, ownership and paging options.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetCourses(ctx context.Context, userID int, filter services.CourseFilter) ([]models.CourseDetailResponse, error)
	// Method GetCourseBySlug retrieves a single course by its URL slug.
	//
	// "slug" parameter is the course slug.
	// "userID" parameter is used to report per-user completion counts.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetCourseBySlug(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error)
	// Method GetCourseEpisodes retrieves the episode list of a course with the
	// user's saved progress merged in.
	//
	// "slug" parameter is the course slug.
	// "userID" parameter selects whose progress to merge.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetCourseEpisodes(ctx context.Context, slug string, userID int) ([]models.PodcastListItem, error)
}

// CourseHandler handles course catalog HTTP requests
type CourseHandler struct {
	BaseHandler
	courseService CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		courseService: courseService,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Get("/{slug}", h.GetCourse)
		r.Get("/{slug}/episodes", h.GetEpisodes)
	})
}

// ListCourses handles GET /courses
// @Summary List courses
// @Description List courses filtered by subject, search text and ownership
// @Tags courses
// @Accept json
// @Produce json
// @Param subject query string false "Subject filter"
// @Param search query string false "Title search"
// @Param mine query bool false "Only courses the user started"
// @Param page query int false "Page number (1-based)"
// @Param count query int false "Page size"
// @Success 200 {array} models.CourseDetailResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := services.CourseFilter{
		Search: r.URL.Query().Get("search"),
		IsMine: r.URL.Query().Get("mine") == "true",
		Page:   queryInt(r, "page", 1),
		Count:  queryInt(r, "count", 0),
	}
	if subjectStr := r.URL.Query().Get("subject"); subjectStr != "" {
		subject := models.Subject(subjectStr)
		filter.Subject = &subject
	}

	courses, err := h.courseService.GetCourses(r.Context(), userID, filter)
	if err != nil {
		if strings.Contains(err.Error(), "invalid") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to list courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{slug}
// @Summary Get course details
// @Description Retrieve a single course with the user's completion counts
// @Tags courses
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} models.CourseDetailResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	slug := chi.URLParam(r, "slug")

	course, err := h.courseService.GetCourseBySlug(r.Context(), slug, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to get course", zap.Error(err), zap.String("slug", slug))
		h.RespondError(w, http.StatusInternalServerError, "failed to get course")
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// GetEpisodes handles GET /courses/{slug}/episodes
// @Summary List course episodes
// @Description List the episodes of a course with the user's progress merged in
// @Tags courses
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {array} models.PodcastListItem
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/episodes [get]
func (h *CourseHandler) GetEpisodes(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	slug := chi.URLParam(r, "slug")

	episodes, err := h.courseService.GetCourseEpisodes(r.Context(), slug, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to list episodes", zap.Error(err), zap.String("slug", slug))
		h.RespondError(w, http.StatusInternalServerError, "failed to list episodes")
		return
	}

	h.RespondJSON(w, http.StatusOK, episodes)
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
