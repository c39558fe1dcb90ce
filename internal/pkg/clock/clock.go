// Package clock lets the OTP lifecycle read time through an interface so
// expiry and rotation can be driven by hand in tests.
package clock

import (
	"sync"
	"time"
)

type Clocker interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func New() *System { return &System{} }

func (System) Now() time.Time { return time.Now() }

// Manual only moves when told to. It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
