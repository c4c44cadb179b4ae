package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getPositions(c *gin.Context) {
	positions, err := s.gw.GetPositions(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, positions)
}

func (s *Server) getOrders(c *gin.Context) {
	orders, err := s.gw.GetOpenOrders(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getAccountSummary(c *gin.Context) {
	summary, err := s.gw.GetAccountSummary(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) getTrades(c *gin.Context) {
	trades, err := s.gw.GetTrades(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (s *Server) getOpenRisk(c *gin.Context) {
	rows, err := s.eng.BuildRiskTable(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
