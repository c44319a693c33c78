package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
	"github.com/ecuaforma/simulador-backend/internal/validator"
)

// SimulatorHandler handles admin simulator management.
type SimulatorHandler struct {
	simulatorService *service.SimulatorService
}

// NewSimulatorHandler creates a new SimulatorHandler.
func NewSimulatorHandler(simulatorService *service.SimulatorService) *SimulatorHandler {
	return &SimulatorHandler{simulatorService: simulatorService}
}

// List godoc
// GET /api/v1/admin/simuladores?q=...
// Lists every simulator with its question count for the dashboard.
func (h *SimulatorHandler) List(c *gin.Context) {
	summaries, err := h.simulatorService.ListSummaries(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	total := 0
	for _, s := range summaries {
		total += s.QuestionCount
	}
	response.Success(c, http.StatusOK, gin.H{
		"simuladores":     summaries,
		"total":           len(summaries),
		"total_preguntas": total,
	})
}

// Create godoc
// POST /api/v1/admin/simuladores
func (h *SimulatorHandler) Create(c *gin.Context) {
	var req model.CreateSimulatorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sim, err := h.simulatorService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugTaken):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		case errors.Is(err, service.ErrSlugEmpty):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"simulador": sim})
}

// Delete godoc
// DELETE /api/v1/admin/simuladores/:id
func (h *SimulatorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.simulatorService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSimulatorNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
