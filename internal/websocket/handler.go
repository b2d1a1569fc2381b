package websocket

import (
	"strings"

	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// RequireUpgrade rejects plain HTTP requests on websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler subscribes the connection to the topic in the route wildcard and
// keeps it open until the browser goes away. Incoming messages are ignored.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		topic := strings.Trim(c.Params("*"), "/")
		client := &Client{Conn: c, Topic: topic}
		select {
		case h.Register <- client:
		case <-h.quit:
			return
		}
		logger.RequestLogger.Info("Websocket subscribed", zap.String("topic", topic))
		defer func() {
			select {
			case h.Unregister <- client:
			case <-h.quit:
			}
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
