package auth

import (
	"errors"
	"net/http"

	"studiobook/internal/middleware"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/pkg/response"
	"studiobook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, guard ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth", guard...)
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.GET("/me", h.GetMe)
}

// Login exchanges admin credentials for a bearer token.
// @Summary		Admin login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Email and password"
// @Success		200	{object}	map[string]interface{}	"JWT issued"
// @Failure		401	{object}	map[string]interface{}	"Wrong email or password"
// @Failure		429	{object}	map[string]interface{}	"Too many failed attempts"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountLocked):
			response.Error(c, http.StatusTooManyRequests, "ACCOUNT_LOCKED", "Too many failed attempts, try again later")
		case errors.Is(err, ErrLoginDisabled):
			response.Error(c, http.StatusServiceUnavailable, "LOGIN_DISABLED", "Admin login is not configured")
		default:
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Login failed")
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GetMe echoes the identity carried by the token.
func (h *Handler) GetMe(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"email": c.GetString(middleware.ContextSubject),
		"role":  c.GetString(middleware.ContextRole),
	})
}
