package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradeterm/internal/engine"
)

func (s *Server) getPendingOrders(c *gin.Context) {
	rows, err := s.eng.ProcessPendingOrders(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) cancelManualOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := s.manual.CancelOrder(c.Request.Context(), orderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": orderID})
}

func (s *Server) deactivateAutoOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	if err := s.eng.DeactivateAutoOrder(c.Request.Context(), orderID); err != nil {
		if engine.IsKind(err, engine.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "not_found", "order_id": orderID})
			return
		}
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated", "order_id": orderID})
}
