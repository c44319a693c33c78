package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
	"github.com/ecuaforma/simulador-backend/internal/validator"
)

// QuestionHandler handles admin question bank management.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/admin/simuladores/:id/preguntas
func (h *QuestionHandler) List(c *gin.Context) {
	simulatorID, ok := h.simulatorID(c)
	if !ok {
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), simulatorID)
	if err != nil {
		h.failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preguntas": questions})
}

// Create godoc
// POST /api/v1/admin/simuladores/:id/preguntas
func (h *QuestionHandler) Create(c *gin.Context) {
	simulatorID, ok := h.simulatorID(c)
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), simulatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateOption) {
			response.Fail(c, http.StatusBadRequest, response.ErrDuplicateOption)
			return
		}
		h.failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pregunta": q})
}

// Delete godoc
// DELETE /api/v1/admin/simuladores/:id/preguntas/:pregunta_id
func (h *QuestionHandler) Delete(c *gin.Context) {
	simulatorID, ok := h.simulatorID(c)
	if !ok {
		return
	}
	questionID, ok := h.questionID(c)
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), simulatorID, questionID); err != nil {
		h.failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Move godoc
// PUT /api/v1/admin/simuladores/:id/preguntas/:pregunta_id/posicion
// Moves a question to a 1-based display position and returns the reloaded
// list, which reflects whatever order was actually persisted.
func (h *QuestionHandler) Move(c *gin.Context) {
	simulatorID, ok := h.simulatorID(c)
	if !ok {
		return
	}
	questionID, ok := h.questionID(c)
	if !ok {
		return
	}

	var req model.MoveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.questionService.Move(c.Request.Context(), simulatorID, questionID, req.Position)
	if err != nil {
		h.failQuestion(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preguntas": questions})
}

func (h *QuestionHandler) simulatorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *QuestionHandler) questionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pregunta_id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func (h *QuestionHandler) failQuestion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSimulatorNotFound), errors.Is(err, service.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
