package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/middleware"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/quiz"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
	"github.com/ecuaforma/simulador-backend/internal/validator"
)

// QuizHandler drives quiz attempts over HTTP. Sessions are addressed by an
// unguessable id returned at start; anonymous attempts are first-class.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Start godoc
// POST /api/v1/quiz/:slug/start
// Opens a fresh session over the simulator's questions.
func (h *QuizHandler) Start(c *gin.Context) {
	var userID *uuid.UUID
	var email *string
	if claims := middleware.GetClaims(c); claims != nil {
		id := claims.UserID
		userID = &id
		em := claims.Email
		email = &em
	}

	view, err := h.quizService.Start(c.Request.Context(), userID, email, c.Param("slug"))
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}

// Get godoc
// GET /api/v1/quiz/sessions/:id
func (h *QuizHandler) Get(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.quizService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Select godoc
// POST /api/v1/quiz/sessions/:id/select
// Records a tentative choice for the current question.
func (h *QuizHandler) Select(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req model.OptionInput
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	opt := model.Option{Kind: model.OptionKind(req.Kind), Value: req.Value}
	view, err := h.quizService.Select(c.Request.Context(), sessionID, opt)
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Verify godoc
// POST /api/v1/quiz/sessions/:id/verify
// Locks the tentative choice and reveals the outcome with feedback.
func (h *QuizHandler) Verify(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	reveal, err := h.quizService.Verify(c.Request.Context(), sessionID)
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, reveal)
}

// Advance godoc
// POST /api/v1/quiz/sessions/:id/advance
// Moves to the next question; after the last one the summary is returned.
func (h *QuizHandler) Advance(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.quizService.Advance(c.Request.Context(), sessionID)
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Restart godoc
// POST /api/v1/quiz/sessions/:id/restart
// Reopens a completed attempt with fresh option shuffles.
func (h *QuizHandler) Restart(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.quizService.Restart(c.Request.Context(), sessionID)
	if err != nil {
		h.failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *QuizHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *QuizHandler) failQuiz(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrSimulatorNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrLoginRequired):
		response.Fail(c, http.StatusUnauthorized, response.ErrLoginRequired)
	case errors.Is(err, service.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, quiz.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, quiz.ErrCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
	case errors.Is(err, quiz.ErrNoSelection):
		response.Fail(c, http.StatusConflict, response.ErrNoSelection)
	case errors.Is(err, quiz.ErrUnknownOption):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownOption)
	case errors.Is(err, quiz.ErrNotVerified):
		response.Fail(c, http.StatusConflict, response.ErrNotVerified)
	case errors.Is(err, quiz.ErrNotCompleted):
		response.Fail(c, http.StatusConflict, response.ErrNotCompleted)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
