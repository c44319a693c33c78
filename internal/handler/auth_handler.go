package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecuaforma/simulador-backend/internal/middleware"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
	"github.com/ecuaforma/simulador-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin godoc
// POST /api/v1/auth/admin/login
// Authenticates an admin with email and password.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GoogleLogin godoc
// GET /api/v1/auth/google
// Redirects the candidate to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL, err := h.authService.BeginGoogleLogin(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback godoc
// GET /api/v1/auth/google/callback?state=...&code=...
// Completes the Google sign-in and returns a candidate token.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrOAuthFailed)
		return
	}

	resp, err := h.authService.CompleteGoogleLogin(c.Request.Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOAuthStateInvalid), errors.Is(err, service.ErrOAuthExchange):
			response.Fail(c, http.StatusUnauthorized, response.ErrOAuthFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me godoc
// GET /api/v1/me
// Returns the signed-in candidate's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"usuario": user})
}
