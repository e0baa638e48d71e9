// Package clock provides the injectable time source used by the services.
// Business logic never calls time.Now directly.
package clock

import (
	"sync"
	"time"
)

// System is the wall clock.
type System struct{}

func NewSystem() *System { return &System{} }

func (*System) Now() time.Time { return time.Now() }

// Frozen is a settable clock for tests.
type Frozen struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFrozen(now time.Time) *Frozen {
	return &Frozen{now: now}
}

func (f *Frozen) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set moves the frozen clock to a new instant.
func (f *Frozen) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance shifts the frozen clock forward by d.
func (f *Frozen) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
