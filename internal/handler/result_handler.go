package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecuaforma/simulador-backend/internal/middleware"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
)

// ResultHandler serves the candidate's attempt history.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// History godoc
// GET /api/v1/me/historial
// Lists the signed-in candidate's past attempts, newest first.
func (h *ResultHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.resultService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resultados": entries})
}
