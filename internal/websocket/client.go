package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

// Client is one websocket connection of a browser page. A page may have
// several, one per open tab.
type Client struct {
	PageID string

	conn *websocket.Conn
	send chan []byte
	mu   sync.RWMutex
}

func newClient(pageID string, conn *websocket.Conn) *Client {
	return &Client{PageID: pageID, conn: conn, send: make(chan []byte, sendBuffer)}
}

// SendMessage queues msg for the write pump. It drops msg when the queue is
// full or the client is closed.
func (c *Client) SendMessage(msg []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.send == nil {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		slog.Warn("Client send channel full, dropping message", "page_id", c.PageID)
		return false
	}
}

// Close closes the send queue, which ends the write pump.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

func (c *Client) queue() chan []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.send
}

// readPump drains the connection until it is closed. The page only listens;
// anything the browser sends is discarded.
func (c *Client) readPump(ctx context.Context) {
	for {
		_, msg, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			switch {
			case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
				slog.Debug("WebSocket closed by client", "page_id", c.PageID)
			case errors.Is(err, io.EOF) || errors.Is(err, context.Canceled):
			default:
				slog.Debug("WebSocket read ended", "page_id", c.PageID, "error", err)
			}
			return
		}
		slog.Debug("Ignoring client message", "page_id", c.PageID, "size", len(msg))
	}
}

// writePump writes queued messages until the queue is closed or a write
// fails.
func (c *Client) writePump(ctx context.Context) {
	defer c.conn.Close(websocket.StatusNormalClosure, "Server-side cleanup")

	send := c.queue()
	if send == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				slog.Error("WebSocket write error", "page_id", c.PageID, "error", err)
				return
			}
		}
	}
}
