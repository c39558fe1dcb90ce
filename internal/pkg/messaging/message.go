package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// message adapts a broker delivery. ack and nack run at most once between
// them.
type message struct {
	body    []byte
	key     []byte
	headers []Header
	id      string
	topic   string
	ts      time.Time

	ack  func(context.Context) error
	nack func(context.Context) error

	responded atomic.Bool
}

func (m *message) Body() []byte         { return m.body }
func (m *message) Key() []byte          { return m.key }
func (m *message) Headers() []Header    { return m.headers }
func (m *message) ID() string           { return m.id }
func (m *message) Topic() string        { return m.topic }
func (m *message) Timestamp() time.Time { return m.ts }

func (m *message) Ack(ctx context.Context) error {
	return m.respond(ctx, m.ack)
}

func (m *message) Nack(ctx context.Context) error {
	return m.respond(ctx, m.nack)
}

func (m *message) respond(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) || fn == nil {
		return nil
	}
	return fn(ctx)
}

// dispatch runs handler with panic recovery and applies auto-ack when the
// handler did not respond itself.
func dispatch(ctx context.Context, kind string, handler Handler, msg *message, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, kind, func() error { return handler(ctx, msg) })

	if msg.responded.Load() || !autoAck {
		return herr
	}

	if herr == nil {
		return msg.Ack(ctx)
	}
	return msg.Nack(ctx)
}

func callHandlerWithRecover(ctx context.Context, kind string, fn func() error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", paths)
			} else {
				slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", string(stack))
			}
			err = fmt.Errorf("messaging: panic in %s handler: %v", kind, rvr)
		}
	}()

	return fn()
}
