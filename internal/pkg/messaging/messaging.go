package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrDestinationRequired is returned when a topic, subject or
	// subscription name is empty.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrHandlerRequired is returned when Consume gets a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Messaging publishes and consumes messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer blocks in Consume until ctx is done or the broker fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled a nil error
// acks the message and a non-nil error requests redelivery where the broker
// supports it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is the broker-agnostic publish payload.
type OutgoingMessage struct {
	Body []byte
	// Key selects the Kafka partition and the Pub/Sub ordering key.
	Key     []byte
	Headers []Header
}

type Header struct {
	Key   string
	Value []byte
}

// Message is a received message.
type Message interface {
	Body() []byte
	Key() []byte
	Headers() []Header
	ID() string
	Topic() string
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}

// HeaderValue returns the first value stored under key.
func HeaderValue(headers []Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
