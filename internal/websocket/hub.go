package websocket

import (
	"strings"
	"sync"

	"h2o-bounty/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one browser following a page topic, e.g. "boards/0xb0".
type Client struct {
	Conn  Conn
	Topic string
	Mu    sync.Mutex
}

type Message struct {
	Topic string
	Data  []byte
}

// Hub fans page snapshots out to the clients subscribed to their topic. The
// client map is only touched by Run.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	quit       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan Message, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run loops until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			h.remove(client)
		case message := <-h.Broadcast:
			for client := range h.Clients {
				if !matches(client.Topic, message.Topic) {
					continue
				}
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message.Data)
				client.Mu.Unlock()
				if err != nil {
					logger.ErrorLogger.Error("Error writing to websocket client", zap.String("topic", client.Topic), zap.Error(err))
					h.remove(client)
				}
			}
		case <-h.quit:
			for client := range h.Clients {
				h.remove(client)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.Clients[client]; ok {
		delete(h.Clients, client)
		client.Conn.Close()
	}
}

// Publish queues a page snapshot. When the queue is full the snapshot is
// dropped; the next transition carries the full page again.
func (h *Hub) Publish(topic string, data []byte) {
	select {
	case h.Broadcast <- Message{Topic: topic, Data: data}:
	default:
		logger.SystemLogger.Warn("Websocket broadcast queue full, dropping snapshot", zap.String("topic", topic))
	}
}

// matches lets a board subscriber also follow the board's task pages.
func matches(subscribed, topic string) bool {
	return subscribed == topic || strings.HasPrefix(topic, subscribed+"/")
}
