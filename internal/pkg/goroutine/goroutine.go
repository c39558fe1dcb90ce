// Package goroutine runs application-lifetime background work (the issuer
// loop, broker consumers, event publishes) under one cap with panic recovery
// and a single join point at shutdown. Per-request work such as a dashboard
// stream is owned by its request context instead.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/vocatrack/internal/pkg/stacktrace"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxGoroutine is scaled by NumCPU when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine = 100

// ErrPanic wraps a value recovered from a panicking task.
var ErrPanic = errors.New("goroutine: panic recovered")

type Manager struct {
	group errgroup.Group

	// gate is held for reading while a task is being admitted so Wait can
	// close the manager without racing TryGo.
	gate   sync.RWMutex
	closed bool

	mu   sync.Mutex
	errs []error
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	m := &Manager{}
	m.group.SetLimit(maxGoroutine)
	return m
}

// Go runs f in the background. f is dropped with a warning when every slot is
// busy or Wait has been called, and skipped when ctx is already done.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if m == nil {
		return
	}

	m.gate.RLock()
	defer m.gate.RUnlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	started := m.group.TryGo(func() error {
		m.collect(m.run(ctx, f))
		// errors are joined in Wait instead of cancelling siblings
		return nil
	})
	if !started {
		slog.WarnContext(ctx, "maximum goroutine limit reached, failed to start new goroutine")
	}
}

func (m *Manager) run(ctx context.Context, f func(ctx context.Context) error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("%w: %v", ErrPanic, rvr)
	}()

	if cause := ctx.Err(); cause != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "because", cause)
		return nil
	}
	return f(ctx)
}

func (m *Manager) collect(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	m.errs = append(m.errs, err)
	m.mu.Unlock()
}

// Wait stops admitting work, blocks until running tasks return and joins
// their errors. Recovered panics are reported as ErrPanic.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.gate.Lock()
	m.closed = true
	m.gate.Unlock()

	_ = m.group.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
