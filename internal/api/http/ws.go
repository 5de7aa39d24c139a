package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// single-user local app, the UI is served from another port
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamTicker pushes every price tick to the UI over a websocket, replacing
// the polling the browser would otherwise do.
func (s *HTTPServer) streamTicker(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticks, cancel := s.Poller.Subscribe()
	defer cancel()

	// reader goroutine only to detect the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case t, ok := <-ticks:
			if !ok {
				return
			}
			if err := conn.WriteJSON(t); err != nil {
				return
			}
		}
	}
}
