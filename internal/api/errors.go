package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeterm/internal/engine"
)

// statusFor maps engine error kinds to HTTP status codes.
func statusFor(err error) int {
	switch engine.KindOf(err) {
	case engine.KindValidation:
		return http.StatusBadRequest
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithComponent("api").WithError(err).Error("Request failed.")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
