package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the operational endpoints that need no tenant scope.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}
