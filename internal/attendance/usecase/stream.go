package usecase

import (
	"context"
	"time"
)

// StreamEvent is the payload pushed to dashboard subscribers.
type StreamEvent struct {
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Stream emits the current code right away and then every interval until
// ctx is done, when the channel is closed. Ticks before the first generation
// are skipped. The sender goroutine belongs to ctx, not to the goroutine
// manager, so an open dashboard never holds a manager slot.
func (s *Usecase) Stream(ctx context.Context) <-chan StreamEvent {
	ch := make(chan StreamEvent)
	interval := durationOr(s.cfg.GetSecond, "modules.attendance.stream_interval_seconds", defaultStreamInterval)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if ctx.Err() != nil {
				return
			}
			if cur := s.current.Load(); cur != nil {
				select {
				case ch <- StreamEvent{Code: cur.Code, Timestamp: s.clock.Now()}:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return ch
}
