// Package pubsub carries page patches between the components that produce
// them and the websocket bridge that delivers them.
package pubsub

import (
	"context"
)

// TopicPagePatch carries rendered htmx out-of-band fragments for one page.
// UserID holds the page id.
const TopicPagePatch = "authpanel.page.patch"

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to.
	Topic string
	// UserID identifies the browser page the message is addressed to.
	UserID string
	// Payload contains the raw message data.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the Pub/Sub system.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the Pub/Sub system.
type Subscriber interface {
	// Subscribe starts listening to the given topic and returns once the
	// subscription is active. Messages are handled until ctx is canceled.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
