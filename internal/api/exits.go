package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type exitRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	Requested *bool  `json:"requested" binding:"required"`
}

func (s *Server) getExits(c *gin.Context) {
	flags, err := s.exits.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

func (s *Server) putExit(c *gin.Context) {
	var req exitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exit payload: " + err.Error()})
		return
	}

	flag, err := s.exits.Upsert(c.Request.Context(), req.Symbol, *req.Requested)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, flag)
}

func (s *Server) deleteExit(c *gin.Context) {
	symbol := c.Param("symbol")

	deleted, err := s.exits.Delete(c.Request.Context(), symbol)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"status": "not_found", "symbol": symbol})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "symbol": symbol})
}
