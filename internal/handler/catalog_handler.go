package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/middleware"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
)

// CatalogHandler serves the public browsing surface: taxonomy drill-down,
// simulator detail and the candidate's granted courses.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// callerID returns the signed-in candidate's id, nil for anonymous requests.
func callerID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

// Institutions godoc
// GET /api/v1/catalogo/instituciones
func (h *CatalogHandler) Institutions(c *gin.Context) {
	values, err := h.catalogService.Institutions(c.Request.Context(), callerID(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if values == nil {
		values = []string{}
	}
	response.Success(c, http.StatusOK, gin.H{"instituciones": values})
}

// Categories godoc
// GET /api/v1/catalogo/instituciones/:institucion/categorias
// An empty result means the institution path does not exist for this caller
// and answers 404.
func (h *CatalogHandler) Categories(c *gin.Context) {
	values, err := h.catalogService.Categories(c.Request.Context(), callerID(c), c.Param("institucion"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(values) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categorias": values})
}

// Subjects godoc
// GET /api/v1/catalogo/instituciones/:institucion/categorias/:categoria/materias
func (h *CatalogHandler) Subjects(c *gin.Context) {
	values, err := h.catalogService.Subjects(c.Request.Context(), callerID(c),
		c.Param("institucion"), c.Param("categoria"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(values) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"materias": values})
}

// Simulators godoc
// GET /api/v1/catalogo/instituciones/:institucion/categorias/:categoria/materias/:materia/simuladores
func (h *CatalogHandler) Simulators(c *gin.Context) {
	sims, err := h.catalogService.Simulators(c.Request.Context(), callerID(c),
		c.Param("institucion"), c.Param("categoria"), c.Param("materia"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(sims) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"simuladores": sims})
}

// GetSimulator godoc
// GET /api/v1/simuladores/:slug
// Resolves one simulator by slug. Private simulators answer 401 for
// anonymous callers and 403 for signed-in callers without a grant.
func (h *CatalogHandler) GetSimulator(c *gin.Context) {
	sim, err := h.catalogService.GetSimulator(c.Request.Context(), callerID(c), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSimulatorNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrLoginRequired):
			response.Fail(c, http.StatusUnauthorized, response.ErrLoginRequired)
		case errors.Is(err, service.ErrAccessDenied):
			response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"simulador": sim})
}

// MyCourses godoc
// GET /api/v1/me/cursos
// Lists the private simulators granted to the signed-in candidate.
func (h *CatalogHandler) MyCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sims, err := h.catalogService.MyCourses(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"simuladores": sims})
}

// Sitemap godoc
// GET /api/v1/sitemap
// Returns slug + creation time of every public simulator for crawler feeds.
func (h *CatalogHandler) Sitemap(c *gin.Context) {
	entries, err := h.catalogService.Sitemap(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entradas": entries})
}
