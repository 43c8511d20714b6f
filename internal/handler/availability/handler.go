package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookwell/booking-api/internal/middleware"
	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/service/availability"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
	"github.com/bookwell/booking-api/pkg/httputil"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

// GetAvailableSlots handles GET /availability. The account comes from
// the token, the timezone from the boundary-resolved location.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid service id", err))
		return
	}

	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err))
		return
	}

	opts := availability.Options{
		Location: middleware.AccountLocation(c),
	}
	if stepStr := c.Query("step"); stepStr != "" {
		step, err := strconv.Atoi(stepStr)
		if err != nil || step <= 0 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid step", err))
			return
		}
		opts.StepMinutes = step
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), accountID, serviceID, date, opts)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailableSlots)
}
