// Package websocket delivers page patches from the pub/sub bus to the
// browser tabs showing that page.
package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authpanel/internal/pubsub"
)

// PageResolver returns the page id a websocket request belongs to.
type PageResolver func(c echo.Context) (string, bool)

// Bridge manages websocket connections keyed by page id and forwards
// patches published on pubsub.TopicPagePatch to them.
type Bridge struct {
	subscriber pubsub.Subscriber
	origins    []string

	mu      sync.RWMutex
	clients map[string][]*Client
	base    context.Context
}

// NewBridge creates a bridge. origins are extra host patterns allowed to
// open connections besides the serving host.
func NewBridge(sub pubsub.Subscriber, origins ...string) *Bridge {
	return &Bridge{
		subscriber: sub,
		origins:    origins,
		clients:    make(map[string][]*Client),
		base:       context.Background(),
	}
}

// Start subscribes to page patches. When ctx is done every connection is
// closed.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	b.base = ctx
	b.mu.Unlock()

	err := b.subscriber.Subscribe(ctx, pubsub.TopicPagePatch, func(ctx context.Context, msg pubsub.Message) error {
		n := b.SendDirect(msg.UserID, msg.Payload)
		slog.Debug("Delivered page patch", "page_id", msg.UserID, "kind", msg.Metadata["kind"], "clients", n)
		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		b.closeAll()
	}()
	slog.Info("WebSocket bridge started", "topic", pubsub.TopicPagePatch)
	return nil
}

// Handler upgrades the request and serves the connection until it closes.
func (b *Bridge) Handler(resolve PageResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageID, ok := resolve(c)
		if !ok || pageID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no page session")
		}

		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			OriginPatterns: b.origins,
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "page_id", pageID, "error", err)
			return nil
		}

		b.mu.RLock()
		base := b.base
		b.mu.RUnlock()
		ctx, cancel := context.WithCancel(base)
		defer cancel()

		client := newClient(pageID, conn)
		b.register(client)
		defer b.unregister(client)

		go client.writePump(ctx)
		client.readPump(ctx)
		return nil
	}
}

// SendDirect queues payload for every connection of pageID and returns how
// many accepted it.
func (b *Bridge) SendDirect(pageID string, payload []byte) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sent := 0
	for _, client := range b.clients[pageID] {
		if client.SendMessage(payload) {
			sent++
		}
	}
	return sent
}

// Connections returns the number of open connections for pageID.
func (b *Bridge) Connections(pageID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[pageID])
}

// Clients returns the number of open connections across all pages.
func (b *Bridge) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, clients := range b.clients {
		n += len(clients)
	}
	return n
}

// PageIDs returns the ids of pages with at least one open connection.
func (b *Bridge) PageIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.clients))
	for id := range b.clients {
		ids = append(ids, id)
	}
	return ids
}

func (b *Bridge) register(client *Client) {
	b.mu.Lock()
	b.clients[client.PageID] = append(b.clients[client.PageID], client)
	b.mu.Unlock()
	slog.Info("Client registered", "page_id", client.PageID)
}

func (b *Bridge) unregister(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients := b.clients[client.PageID]
	for i, c := range clients {
		if c == client {
			b.clients[client.PageID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(b.clients[client.PageID]) == 0 {
		delete(b.clients, client.PageID)
	}
	client.Close()
	slog.Info("Client unregistered", "page_id", client.PageID)
}

func (b *Bridge) closeAll() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, clients := range b.clients {
		for _, client := range clients {
			client.Close()
		}
	}
}
