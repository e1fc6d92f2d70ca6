// Package engine implements the per-actuator engine worker of §4.6: one
// goroutine that tracks the currently active time slot and pushes its
// state to an output sink, reacting to both timeouts and concurrent
// mutations.
package engine

import (
	"log/slog"
	"time"

	"github.com/corax26/servoscheduler/internal/schedule"
)

// Sink is the abstract output-sink collaborator of §6: the engine worker
// never sees a concrete file or device, only this.
type Sink interface {
	SetState(state schedule.ActuatorState)
}

// ComputeFunc recomputes the authoritative ActiveSlot for an instant,
// reading the actuator's current slot table and default state. The
// server facade supplies this bound to one actuator's read lock (§5):
// the worker never acquires the actuator lock itself.
type ComputeFunc func(now schedule.Instant) schedule.ActiveSlot

// Worker is one actuator's scheduling loop.
type Worker struct {
	name    string
	comm    *Comm
	sink    Sink
	clock   Clock
	compute ComputeFunc
	logger  *slog.Logger

	now schedule.Instant
}

// NewWorker builds a worker for one actuator. now0 is the instant the
// worker should consider "now" when it starts (normally derived from the
// clock), matching the initial ActiveSlot already installed in comm.
func NewWorker(name string, comm *Comm, sink Sink, clock Clock, compute ComputeFunc, logger *slog.Logger, now0 schedule.Instant) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{name: name, comm: comm, sink: sink, clock: clock, compute: compute, logger: logger, now: now0}
}

// Run executes the worker loop until stop is closed. It is meant to run in
// its own goroutine for the lifetime of the actuator.
func (w *Worker) Run(stop <-chan struct{}) {
	for {
		if active, ok := w.comm.TakeModified(); ok {
			w.emit(active)
			continue
		}

		active := w.comm.Snapshot()
		delta := w.sleepDuration(active)
		if delta <= 0 {
			w.onTimeout(active)
			continue
		}

		select {
		case <-stop:
			return
		case <-w.comm.Signal():
			continue
		case <-w.clock.After(delta):
			w.onTimeout(active)
		}
	}
}

// emit pushes the given ActiveSlot's state to the sink without holding any
// lock: per §4.6 step 2, any further mutation will simply re-signal.
func (w *Worker) emit(active schedule.ActiveSlot) {
	w.sink.SetState(active.State)
	w.logger.Debug("engine worker emitted state", "actuator", w.name, "end_time", active.EndTime.String())
}

// sleepDuration computes the real-wall-clock delay until active's
// end_time, under the shifted order (§4.6 step 1). It always reads the
// real clock, unlike the timeout-advance path below which uses the
// worker's internally tracked "now".
func (w *Worker) sleepDuration(active schedule.ActiveSlot) time.Duration {
	realNow := schedule.InstantFromTime(w.clock.Now())
	minutes := realNow.Time.MinutesUntil(active.EndTime)
	return time.Duration(minutes) * time.Minute
}

// onTimeout handles a real or apparent timeout (§4.6 step 3): it first
// re-checks the modified flag (a mutation may have landed between the
// timer firing and this call winning the race) and, if clear, advances the
// worker's internal "now" and recomputes.
//
// Promoting a DefaultActive{next_id} to SlotActive and recomputing after a
// plain timeout are the same operation here: advancing "now" to exactly
// the instant the current situation ends and recomputing always yields the
// slot that was waiting to become active, because that is what made it the
// recorded next_id/end_time in the first place.
func (w *Worker) onTimeout(active schedule.ActiveSlot) {
	if pending, ok := w.comm.TakeModified(); ok {
		w.emit(pending)
		return
	}

	if active.EndTime == schedule.TimeMAX {
		w.now = w.now.NextScheduleDay()
	} else {
		w.now = w.now.At(active.EndTime)
	}

	next := w.compute(w.now)
	w.comm.Set(next)
}
