package engineer

import (
	"errors"
	"net/http"
	"time"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/pkg/response"
	"studiobook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	engineers := admin.Group("/engineers")
	{
		engineers.GET("", h.ListEngineers)
		engineers.POST("", h.CreateEngineer)
		engineers.DELETE("/:id", h.DeleteEngineer)
	}
	admin.GET("/shifts", h.ShiftTable)
}

// ListEngineers returns the roster.
// @Summary		List engineers
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}	"Roster"
// @Router		/admin/engineers [GET]
func (h *Handler) ListEngineers(c *gin.Context) {
	items, err := h.service.ListEngineers(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"engineers": items})
}

// CreateEngineer adds an engineer to the roster.
// @Summary		Add engineer
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	CreateEngineerRequest	true	"Engineer name"
// @Success		201	{object}	map[string]interface{}	"Engineer created"
// @Failure		400	{object}	map[string]interface{}	"Validation error"
// @Router		/admin/engineers [POST]
func (h *Handler) CreateEngineer(c *gin.Context) {
	var req CreateEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	e, err := h.service.CreateEngineer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.ValidationError(c, map[string]string{"name": "required"})
			return
		}
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"engineer": e})
}

func (h *Handler) DeleteEngineer(c *gin.Context) {
	if err := h.service.DeleteEngineer(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Engineer not found")
			return
		}
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ShiftTable returns per-engineer session counts for a pay period.
// @Summary		Shift table
// @Description	Pay periods run from the 21st to the 20th of the next month.
// @Tags		Admin
// @Security	BearerAuth
// @Param		date	query	string	false	"Any day in the period, YYYY-MM-DD; today by default"
// @Success		200	{object}	map[string]interface{}	"Shift rows in roster order"
// @Router		/admin/shifts [GET]
func (h *Handler) ShiftTable(c *gin.Context) {
	var ref time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			response.ValidationError(c, map[string]string{"date": "civildate"})
			return
		}
		ref = d.Time()
	}

	table, err := h.service.ShiftTable(c.Request.Context(), ref)
	if err != nil {
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, table)
}

func (h *Handler) internal(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error().Err(err).
		Str("path", c.FullPath()).
		Msg("Engineer request failed")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
