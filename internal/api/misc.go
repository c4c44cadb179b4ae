package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeterm/internal/script"
	"tradeterm/internal/tickers"
)

type tickerFileRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content"`
}

// tickerStatus maps ticker service failures: bad names are the caller's
// fault, missing files are 404, anything else is an IO failure.
func tickerStatus(err error) int {
	switch {
	case errors.Is(err, tickers.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, tickers.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) getTickers(c *gin.Context) {
	files, err := s.tickers.Get(c.Query("filename"))
	if err != nil {
		c.JSON(tickerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *Server) postTickers(c *gin.Context) {
	var req tickerFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticker payload: " + err.Error()})
		return
	}

	if err := s.tickers.Save(req.Filename, req.Content); err != nil {
		c.JSON(tickerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "filename": req.Filename})
}

func (s *Server) runScript(c *gin.Context) {
	output, err := s.script.Run()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, script.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": output})
}
