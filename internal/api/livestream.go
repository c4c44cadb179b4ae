package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tradeterm/internal/stream"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) getLatestRows(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Latest())
}

// putLatestRow receives the newest datapoint from the external producer and
// fans it out to connected websocket clients.
func (s *Server) putLatestRow(c *gin.Context) {
	var row stream.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid livestream payload: " + err.Error()})
		return
	}
	if row.TableName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TableName is required"})
		return
	}

	s.hub.Publish(row)
	c.JSON(http.StatusOK, row)
}

// livestreamWS upgrades the connection and pushes every published row until
// the client goes away.
func (s *Server) livestreamWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithComponent("api").WithError(err).Warn("Websocket upgrade failed.")
		return
	}
	defer conn.Close()

	rows, cancel := s.hub.Subscribe()
	defer cancel()

	// Drain client frames so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for _, row := range s.hub.Latest() {
		if err := conn.WriteJSON(row); err != nil {
			return
		}
	}

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case row, ok := <-rows:
			if !ok {
				return
			}
			if err := conn.WriteJSON(row); err != nil {
				return
			}
		}
	}
}
