package websocket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubRoutesByTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	board := &fakeConn{}
	task := &fakeConn{}
	other := &fakeConn{}
	hub.Register <- &Client{Conn: board, Topic: "boards/0xb0"}
	hub.Register <- &Client{Conn: task, Topic: "boards/0xb0/tasks/1"}
	hub.Register <- &Client{Conn: other, Topic: "boards/0xb1"}

	hub.Publish("boards/0xb0", []byte(`{"state":"loading"}`))
	hub.Publish("boards/0xb0/tasks/1", []byte(`{"state":"populated"}`))

	assert.Eventually(t, func() bool { return board.count() == 2 && task.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, other.count())
}

func TestHubDropsBrokenClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	broken := &fakeConn{fail: true}
	hub.Register <- &Client{Conn: broken, Topic: "boards/0xb0"}
	hub.Publish("boards/0xb0", []byte(`{}`))

	assert.Eventually(t, broken.isClosed, time.Second, 10*time.Millisecond)
}

func TestMatches(t *testing.T) {
	assert.True(t, matches("boards/0xb0", "boards/0xb0"))
	assert.True(t, matches("boards/0xb0", "boards/0xb0/tasks/2"))
	assert.False(t, matches("boards/0xb0", "boards/0xb01"))
	assert.False(t, matches("boards/0xb0/tasks/2", "boards/0xb0"))
}
