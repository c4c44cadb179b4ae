package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type entryRequest struct {
	Symbol    string  `json:"symbol" binding:"required"`
	StopPrice float64 `json:"stop_price" binding:"required,gt=0"`
}

type addRequest struct {
	Symbol    string  `json:"symbol" binding:"required"`
	TotalRisk float64 `json:"total_risk" binding:"required,gt=0"`
}

type breakevenRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (s *Server) postEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry payload: " + err.Error()})
		return
	}

	result := s.eng.ProcessEntry(c.Request.Context(), req.Symbol, req.StopPrice)
	c.JSON(http.StatusOK, result)
}

func (s *Server) postAdd(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid add payload: " + err.Error()})
		return
	}

	result := s.eng.ProcessAdd(c.Request.Context(), req.Symbol, req.TotalRisk)
	c.JSON(http.StatusOK, result)
}

func (s *Server) postBreakeven(c *gin.Context) {
	var req breakevenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid breakeven payload: " + err.Error()})
		return
	}

	result := s.eng.MoveStopToBreakeven(c.Request.Context(), req.Symbol)
	c.JSON(http.StatusOK, result)
}
