package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradeterm/internal/models"
	"tradeterm/internal/stream"
)

type alarmRequest struct {
	Symbol string `json:"Symbol" binding:"required"`
	Time   string `json:"Time" binding:"required"`
	Alarm  string `json:"Alarm" binding:"required"`
	Date   string `json:"Date" binding:"required"`
}

func (s *Server) getAlarms(c *gin.Context) {
	alarms, err := s.alarms.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alarms)
}

// postAlarm stores the alarm, relays it to livestream subscribers and hands it
// to the exit reconciler. The reconciliation outcome rides along in the
// response so the alarm producer can see what, if anything, was done.
func (s *Server) postAlarm(c *gin.Context) {
	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alarm payload: " + err.Error()})
		return
	}

	rec, err := s.alarms.Insert(c.Request.Context(), req.Symbol, req.Time, req.Alarm, req.Date)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.hub.Publish(stream.Row{
		TableName: "alarms",
		Fields: map[string]interface{}{
			"Id":     rec.ID,
			"Symbol": rec.Symbol,
			"Time":   rec.Time,
			"Alarm":  rec.Alarm,
			"Date":   rec.Date,
		},
	})

	exit := s.eng.HandleSignal(c.Request.Context(), models.Signal{
		Symbol:    rec.Symbol,
		AlarmKind: rec.Alarm,
		Timestamp: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"alarm": rec,
		"exit":  exit,
	})
}
