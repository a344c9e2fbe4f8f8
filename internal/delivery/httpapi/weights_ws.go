package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Gate terminals run on the weighbridge LAN; origin checks add nothing
	// behind the perimeter.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type weightFrame struct {
	Weight float64   `json:"weight"`
	At     time.Time `json:"at"`
}

// streamWeights relays live indicator readings to gate terminal UIs. One
// subscription per socket; slow clients miss readings rather than stall the
// broadcast.
func (h *Handler) streamWeights(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	readings, cancel := h.Weights.Subscribe()
	defer cancel()

	// Drain the client side so close frames are processed.
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
		case r, open := <-readings:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(weightFrame{Weight: r.Weight, At: r.At}); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
