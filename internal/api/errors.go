package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
)

func respondBindError(c *gin.Context, err error) {
	switch {
	case middleware.IsBodyTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
	case errors.Is(err, io.EOF):
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is required"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	}
}
