package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS is a messaging implementation backed by core NATS subjects.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains subscriptions and the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := n.subs
	n.subs = nil
	n.mu.Unlock()

	var closeErr error
	for _, sub := range subs {
		closeErr = errors.Join(closeErr, sub.Drain())
	}
	closeErr = errors.Join(closeErr, n.conn.Drain())
	n.conn.Close()

	return closeErr
}

func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrDestinationRequired
	}

	nmsg := nats.NewMsg(destination)
	nmsg.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nmsg.Header.Add(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nmsg); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("messaging: nats flush: %w", err)
	}
	return nil
}

func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)

	// msgCh is never closed: the subscription callback may still run after
	// Drain returns, so workers and callback stop on wctx instead.
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	msgCh := make(chan *nats.Msg, co.concurrency)

	sub, err := n.conn.QueueSubscribe(source, co.queueGroup, func(m *nats.Msg) {
		select {
		case msgCh <- m:
		case <-wctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-wctx.Done():
					return
				case m := <-msgCh:
					_ = dispatch(ctx, DriverNATS, handler, wrapNATS(m), co.autoAck)
				}
			}
		})
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		err = io.ErrClosedPipe
	} else {
		n.subs = append(n.subs, sub)
		n.mu.Unlock()
		err = n.conn.FlushWithContext(ctx)
	}

	if err == nil {
		<-ctx.Done()
		err = ctx.Err()
	}

	drainErr := sub.Drain()
	if errors.Is(drainErr, nats.ErrConnectionClosed) || errors.Is(drainErr, nats.ErrBadSubscription) {
		drainErr = nil
	}
	cancel()
	wg.Wait()

	return errors.Join(err, drainErr)
}

func wrapNATS(m *nats.Msg) *message {
	msg := &message{
		body:  m.Data,
		topic: m.Subject,
		ts:    time.Now(),
		ack:   func(context.Context) error { return ignoreNATSAck(m.Ack()) },
		nack:  func(context.Context) error { return ignoreNATSAck(m.Nak()) },
	}
	for k, values := range m.Header {
		for _, v := range values {
			msg.headers = append(msg.headers, Header{Key: k, Value: []byte(v)})
		}
	}
	return msg
}

// ignoreNATSAck drops the error core NATS returns for acks, which only
// JetStream deliveries support.
func ignoreNATSAck(err error) error {
	if errors.Is(err, nats.ErrMsgNoReply) || errors.Is(err, nats.ErrMsgNotBound) {
		return nil
	}
	return err
}
