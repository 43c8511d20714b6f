package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/bookwell/booking-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError maps a domain error onto an HTTP response. The
// taxonomy is transport-independent; only the mapping lives here.
// Unrecognized errors become 500s without leaking internals, while
// conflicts keep their actionable message.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrNotFound:
			status = http.StatusNotFound
		case apperrors.ErrBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrConflict:
			status = http.StatusConflict
		case apperrors.ErrUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrForbidden:
			status = http.StatusForbidden
		default:
			status = http.StatusInternalServerError
		}
		if status != http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
		},
	})
}
