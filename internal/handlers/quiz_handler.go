package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/models"
)

// QuizService defines the interface for quiz operations
type QuizService interface {
	// Method GetQuestions retrieves the quiz questions of an episode without
	// the correct answers.
	//
	// "podcastID" parameter is the episode the quiz belongs to.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetQuestions(ctx context.Context, podcastID int) ([]models.QuizQuestion, error)
	// Method Submit grades a quiz attempt, stores it and awards XP on the
	// user's first attempt for the episode.
	//
	// "userID" parameter is the submitting user.
	// "podcastID" parameter is the episode the quiz belongs to.
	// "req" parameter carries one selected option index per question.
	//
	// If some error will occur during grading, the error will be returned
	// together with "nil" value.
	Submit(ctx context.Context, userID, podcastID int, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error)
	// Method GetAttempts retrieves the user's past quiz attempts.
	//
	// If some error will occur during data retrieve, the error will be returned
	// together with "nil" value.
	GetAttempts(ctx context.Context, userID int) ([]models.QuizAttempt, error)
}

// QuizHandler handles quiz HTTP requests
type QuizHandler struct {
	BaseHandler
	quizService QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: BaseHandler{Logger: logger},
		quizService: quizService,
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Route("/podcasts/{podcastID}/quiz", func(r chi.Router) {
		r.Get("/", h.GetQuestions)
		r.Post("/", h.Submit)
	})
	r.Get("/quiz/attempts", h.GetAttempts)
}

// GetQuestions handles GET /podcasts/{podcastID}/quiz
// @Summary Get quiz questions
// @Description Retrieve the quiz questions for an episode, without answers
// @Tags quiz
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Success 200 {array} models.QuizQuestion
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /podcasts/{podcastID}/quiz [get]
func (h *QuizHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	questions, err := h.quizService.GetQuestions(r.Context(), podcastID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "podcast not found")
			return
		}
		h.Logger.Error("failed to get quiz questions", zap.Error(err), zap.Int("podcastID", podcastID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get quiz questions")
		return
	}

	h.RespondJSON(w, http.StatusOK, questions)
}

// Submit handles POST /podcasts/{podcastID}/quiz
// @Summary Submit quiz answers
// @Description Grade a quiz attempt and award XP on the first attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Param podcastID path int true "Podcast ID"
// @Param request body models.SubmitQuizRequest true "Selected answers"
// @Success 200 {object} models.SubmitQuizResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Podcast not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /podcasts/{podcastID}/quiz [post]
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	podcastID, err := strconv.Atoi(chi.URLParam(r, "podcastID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid podcast ID")
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quizService.Submit(r.Context(), userID, podcastID, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			h.RespondError(w, http.StatusNotFound, "podcast not found")
		case strings.Contains(err.Error(), "answers"):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to submit quiz", zap.Error(err),
				zap.Int("userID", userID), zap.Int("podcastID", podcastID))
			h.RespondError(w, http.StatusInternalServerError, "failed to submit quiz")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetAttempts handles GET /quiz/attempts
// @Summary List quiz attempts
// @Description Retrieve the authenticated user's past quiz attempts
// @Tags quiz
// @Accept json
// @Produce json
// @Success 200 {array} models.QuizAttempt
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz/attempts [get]
func (h *QuizHandler) GetAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	attempts, err := h.quizService.GetAttempts(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get quiz attempts", zap.Error(err), zap.Int("userID", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get quiz attempts")
		return
	}

	h.RespondJSON(w, http.StatusOK, attempts)
}
