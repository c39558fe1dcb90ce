package messaging

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Memory is an in-process broker for local runs and tests. Every Consume
// call on a topic receives every message published after it subscribed.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]chan *message
	seq    atomic.Int64
	closed bool
}

func NewMemory() *Memory {
	return &Memory{subs: map[string][]chan *message{}}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Publish never blocks; a subscriber whose buffer is full misses the message.
func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrDestinationRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return io.ErrClosedPipe
	}

	id := strconv.FormatInt(m.seq.Inc(), 10)
	for _, ch := range m.subs[destination] {
		select {
		case ch <- &message{
			body:    msg.Body,
			key:     msg.Key,
			headers: msg.Headers,
			id:      id,
			topic:   destination,
			ts:      time.Now(),
		}:
		default:
		}
	}
	return nil
}

func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
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
	ch := make(chan *message, max(co.maxInFlight, 64))

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return io.ErrClosedPipe
	}
	m.subs[source] = append(m.subs[source], ch)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.subs[source]
		for i, c := range subs {
			if c == ch {
				m.subs[source] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-ch:
					_ = dispatch(ctx, DriverMemory, handler, msg, co.autoAck)
				}
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}
