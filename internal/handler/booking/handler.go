package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookwell/booking-api/internal/middleware"
	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/service/booking"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
	"github.com/bookwell/booking-api/pkg/httputil"
	"github.com/bookwell/booking-api/pkg/validator"
)

type Handler struct {
	service   *booking.Service
	validator *validator.Validator
}

func NewHandler(service *booking.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	record, err := h.service.CreateBooking(c.Request.Context(), accountID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, record)
}

func (h *Handler) GetBooking(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking id", err))
		return
	}

	record, err := h.service.GetBooking(c.Request.Context(), accountID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, record)
}

func (h *Handler) ListBookings(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err))
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), accountID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, bookings)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking id", err))
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), accountID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}
