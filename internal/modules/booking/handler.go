package booking

import (
	"context"
	"errors"
	"net/http"

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

// RegisterPublicRoutes mounts the customer-facing endpoints. submit runs
// before reservation creation, usually a rate limiter.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, submit ...gin.HandlerFunc) {
	v1.GET("/studios", h.ListStudios)
	v1.GET("/calendar/week", h.WeeklyCalendar)

	create := append(append([]gin.HandlerFunc{}, submit...), h.CreateReservation)

	reservations := v1.Group("/reservations")
	{
		reservations.POST("", create...)
		reservations.POST("/check", h.CheckAvailability)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	reservations := admin.Group("/reservations")
	{
		reservations.GET("", h.ListReservations)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.PATCH("/:id/confirm", h.ConfirmReservation)
		reservations.PATCH("/:id/finalize", h.FinalizeReservation)
		reservations.PATCH("/:id/cancel", h.CancelReservation)
		reservations.PUT("/:id/engineers", h.AssignEngineers)
	}
}

// ListStudios returns the bookable rooms.
// @Summary		List studios
// @Tags		Studios
// @Success		200	{object}	map[string]interface{}	"Studios"
// @Router		/studios [GET]
func (h *Handler) ListStudios(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"studios": domain.Studios()})
}

// CheckAvailability tells the booking form whether a slot is free.
// @Summary		Check a slot
// @Description	Returns the first booking that blocks the slot, without customer details.
// @Tags		Reservations
// @Param		request	body	AvailabilityRequest	true	"Studio, date and time range"
// @Success		200	{object}	map[string]interface{}	"Availability verdict"
// @Failure		400	{object}	map[string]interface{}	"Validation error"
// @Router		/reservations/check [POST]
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	res, err := h.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateReservation submits a booking request.
// @Summary		Submit a reservation
// @Tags		Reservations
// @Param		request	body	ReservationRequest	true	"Booking form"
// @Success		201	{object}	map[string]interface{}	"Reservation stored with status new"
// @Failure		400	{object}	map[string]interface{}	"Validation error"
// @Failure		409	{object}	map[string]interface{}	"Slot already booked"
// @Failure		429	{object}	map[string]interface{}	"Too many submissions"
// @Router		/reservations [POST]
func (h *Handler) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

// WeeklyCalendar returns confirmed and finalized sessions for a week.
// @Summary		Week calendar
// @Tags		Calendar
// @Param		date	query	string	false	"Any day in the week, YYYY-MM-DD; today by default"
// @Success		200	{object}	map[string]interface{}	"Seven days starting Monday"
// @Router		/calendar/week [GET]
func (h *Handler) WeeklyCalendar(c *gin.Context) {
	var date domain.Date
	if raw := c.Query("date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			response.ValidationError(c, map[string]string{"date": "civildate"})
			return
		}
		date = d
	}

	week, err := h.service.WeeklyCalendar(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, week)
}

// ListReservations is the admin inbox.
// @Summary		List reservations
// @Tags		Admin
// @Security	BearerAuth
// @Param		status		query	string	false	"new, read, confirmed, finalized or cancelled"
// @Param		engineer	query	string	false	"Engineer ID"
// @Success		200	{object}	map[string]interface{}	"Reservations, newest first"
// @Router		/admin/reservations [GET]
func (h *Handler) ListReservations(c *gin.Context) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	items, err := h.service.ListReservations(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": items, "total": len(items)})
}

func (h *Handler) GetReservation(c *gin.Context) {
	r, err := h.service.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) UpdateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	r, err := h.service.UpdateReservation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) ConfirmReservation(c *gin.Context) {
	h.transition(c, h.service.ConfirmReservation)
}

func (h *Handler) FinalizeReservation(c *gin.Context) {
	h.transition(c, h.service.FinalizeReservation)
}

func (h *Handler) CancelReservation(c *gin.Context) {
	h.transition(c, h.service.CancelReservation)
}

func (h *Handler) AssignEngineers(c *gin.Context) {
	var req AssignEngineersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	r, err := h.service.AssignEngineers(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

type transitionFunc func(ctx context.Context, id string) (*domain.Reservation, error)

func (h *Handler) transition(c *gin.Context, fn transitionFunc) {
	r, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		verr *ValidationError
		cerr *ConflictError
		terr *TransitionError
	)

	switch {
	case errors.As(err, &verr):
		response.ValidationError(c, verr.Fields)
	case errors.As(err, &cerr):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT", cerr.Message, publicSlot(cerr.Conflict))
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Studio is not available for the selected time")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.As(err, &terr):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", terr.Error())
	case errors.Is(err, ErrUnknownEngineer):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_ENGINEER", err.Error())
	case errors.Is(err, ErrStudioBusy):
		response.Error(c, http.StatusServiceUnavailable, "STUDIO_BUSY", "Studio is busy, please retry")
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("Reservation request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
