package engine

import (
	"sync"

	"github.com/corax26/servoscheduler/internal/schedule"
)

// Comm is the per-actuator "comm record" of §5: the authoritative
// ActiveSlot plus a modified flag, protected by a plain mutex. A buffered
// signal channel stands in for the condition variable — the idiomatic Go
// way to let the worker wait on either a timeout or a mutation (§9).
type Comm struct {
	mu       sync.Mutex
	active   schedule.ActiveSlot
	modified bool
	signal   chan struct{}
}

// NewComm creates a comm record holding the given initial ActiveSlot.
func NewComm(initial schedule.ActiveSlot) *Comm {
	return &Comm{
		active: initial,
		signal: make(chan struct{}, 1),
	}
}

// Signal returns the channel the worker selects on to learn of a mutation
// without holding the mutex.
func (c *Comm) Signal() <-chan struct{} {
	return c.signal
}

// Set installs next as the authoritative ActiveSlot if it differs
// structurally from the current one, and wakes the worker. Mutators call
// this after applying a mutation (§4.4, §4.5); the engine worker's timeout
// path calls it after recomputing. Returns whether it actually changed.
func (c *Comm) Set(next schedule.ActiveSlot) bool {
	c.mu.Lock()
	changed := !c.active.Equal(next)
	if changed {
		c.active = next
		c.modified = true
	}
	c.mu.Unlock()

	if changed {
		select {
		case c.signal <- struct{}{}:
		default:
		}
	}
	return changed
}

// Snapshot returns the current ActiveSlot without clearing the modified
// flag.
func (c *Comm) Snapshot() schedule.ActiveSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// TakeModified returns the current ActiveSlot and clears the modified flag
// if it was set; ok reports whether it was set.
func (c *Comm) TakeModified() (active schedule.ActiveSlot, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.modified {
		return schedule.ActiveSlot{}, false
	}
	c.modified = false
	return c.active, true
}
