package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the live fix feed. GET /ws/:sessionID upgrades to a
// websocket and pushes every fix captured for that recorder session as a JSON
// text frame, from this instance or a peer. Frames a slow client cannot take
// are dropped rather than buffered; inbound frames are drained and ignored.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:sessionID", websocket.New(func(c *websocket.Conn) {
		client := hub.Register(c.Params("sessionID"))

		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			for fix := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, fix); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		// Unregister closes Send, which lets the writer drain and exit.
		hub.Unregister(client)
		<-writerDone
	}))
}
