// Package server implements the Server facade of §2/§6: the registry of
// actuators that routes RPC calls to the right actuator with read or
// write access, and owns each actuator's engine worker goroutine.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/corax26/servoscheduler/internal/engine"
	"github.com/corax26/servoscheduler/internal/observability"
	"github.com/corax26/servoscheduler/internal/schedule"
)

// ActuatorID identifies a registered actuator; ids are assigned in
// insertion order (§6) and never reused or reassigned.
type ActuatorID int

// record bundles one actuator's state machine, its RWMutex (§5 resource 1)
// and its comm record (§5 resource 2) with the sink and stop channel for
// its engine worker.
type record struct {
	mu       sync.RWMutex
	actuator *schedule.Actuator
	comm     *engine.Comm
	sink     engine.Sink
	stop     chan struct{}
}

// Server is the registry of actuators.
type Server struct {
	mu      sync.RWMutex
	order   []ActuatorID
	records map[ActuatorID]*record
	nextID  ActuatorID
	clock   engine.Clock
	logger  *slog.Logger
}

// New builds an empty Server. clock drives every actuator's engine
// worker; pass engine.SystemClock outside of tests.
func New(clock engine.Clock, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		records: make(map[ActuatorID]*record),
		clock:   clock,
		logger:  logger,
	}
}

// RegisterActuator is the fleet bring-up operation of §3/§6: it allocates
// an id in insertion order, constructs the actuator state machine and its
// comm record, and starts its engine worker goroutine writing to sink.
func (s *Server) RegisterActuator(info schedule.ActuatorInfo, defaultState schedule.ActuatorState, sink engine.Sink) (ActuatorID, error) {
	actuator, err := schedule.NewActuator(info, defaultState)
	if err != nil {
		return 0, err
	}

	now := schedule.InstantFromTime(s.clock.Now())
	initial := schedule.Compute(now, actuator.Slots, actuator.DefaultState)
	comm := engine.NewComm(initial)
	rec := &record{actuator: actuator, comm: comm, sink: sink, stop: make(chan struct{})}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.records[id] = rec
	s.order = append(s.order, id)
	s.mu.Unlock()

	worker := engine.NewWorker(
		info.Name,
		comm,
		sink,
		s.clock,
		rec.computeFunc(),
		s.logger,
		now,
	)
	go worker.Run(rec.stop)

	s.logger.Info("actuator registered", "actuator", int(id), "name", info.Name)
	return id, nil
}

// computeFunc binds the engine worker's recompute callback to this
// record's read lock, so the worker never needs to know about locking
// (§5): it calls this closure synchronously and gets back a consistent
// snapshot-derived ActiveSlot.
func (r *record) computeFunc() engine.ComputeFunc {
	return func(now schedule.Instant) schedule.ActiveSlot {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return schedule.Compute(now, r.actuator.Slots, r.actuator.DefaultState)
	}
}

func (s *Server) lookup(aid ActuatorID) (*record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[aid]
	if !ok {
		return nil, &schedule.InvalidArgumentError{Kind: schedule.KindActuatorID}
	}
	return rec, nil
}

// ListActuators returns every registered actuator's static info, in
// registration order (§6).
func (s *Server) ListActuators(ctx context.Context) []schedule.ActuatorInfo {
	s.mu.RLock()
	ids := append([]ActuatorID(nil), s.order...)
	recs := make([]*record, len(ids))
	for i, id := range ids {
		recs[i] = s.records[id]
	}
	s.mu.RUnlock()

	out := make([]schedule.ActuatorInfo, 0, len(recs))
	for _, rec := range recs {
		rec.mu.RLock()
		out = append(out, rec.actuator.Info)
		rec.mu.RUnlock()
	}
	s.log(ctx, "list_actuators", slog.Int("count", len(out)))
	return out
}

// ListTimeSlots returns a snapshot of an actuator's slot table.
func (s *Server) ListTimeSlots(ctx context.Context, aid ActuatorID) (map[schedule.SlotID]schedule.TimeSlot, error) {
	rec, err := s.lookup(aid)
	if err != nil {
		return nil, err
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return rec.actuator.ListTimeSlots(), nil
}

// GetDefaultState returns an actuator's default state.
func (s *Server) GetDefaultState(ctx context.Context, aid ActuatorID) (schedule.ActuatorState, error) {
	rec, err := s.lookup(aid)
	if err != nil {
		return schedule.ActuatorState{}, err
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return rec.actuator.DefaultState, nil
}

// SetDefaultState validates and assigns an actuator's default state,
// updating its ActiveSlot immediately if the default is currently the one
// being emitted.
func (s *Server) SetDefaultState(ctx context.Context, aid ActuatorID, state schedule.ActuatorState) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if err := rec.actuator.SetDefaultState(state); err != nil {
		return err
	}
	current := rec.comm.Snapshot()
	if current.Kind == schedule.DefaultActive {
		current.State = state
		rec.comm.Set(current)
	}
	s.log(ctx, "set_default_state", slog.Int("actuator", int(aid)))
	return nil
}

// AddTimeSlot validates, inserts and applies the "added" ActiveSlot update.
func (s *Server) AddTimeSlot(ctx context.Context, aid ActuatorID, period schedule.TimePeriod, state schedule.ActuatorState, enabled bool) (schedule.SlotID, error) {
	rec, err := s.lookup(aid)
	if err != nil {
		return 0, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	id, slot, err := rec.actuator.AddTimeSlot(period, state, enabled)
	if err != nil {
		return 0, err
	}
	if enabled {
		now := schedule.InstantFromTime(s.clock.Now())
		next := schedule.ApplyAdded(rec.comm.Snapshot(), now, id, slot, rec.actuator.DefaultState)
		rec.comm.Set(next)
	}
	s.log(ctx, "add_time_slot", slog.Int("actuator", int(aid)), slog.Int("slot", int(id)))
	return id, nil
}

// RemoveTimeSlot deletes a slot and applies the "removed" ActiveSlot update.
func (s *Server) RemoveTimeSlot(ctx context.Context, aid ActuatorID, slotID schedule.SlotID) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if _, err := rec.actuator.RemoveTimeSlot(slotID); err != nil {
		return err
	}
	now := schedule.InstantFromTime(s.clock.Now())
	next := schedule.ApplyRemoved(rec.comm.Snapshot(), slotID, now, rec.actuator.Slots, rec.actuator.DefaultState)
	rec.comm.Set(next)
	s.log(ctx, "remove_time_slot", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)))
	return nil
}

// SetTimePeriod applies a patch and the "modified" ActiveSlot update.
func (s *Server) SetTimePeriod(ctx context.Context, aid ActuatorID, slotID schedule.SlotID, patch schedule.TimePeriodPatch) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if err := rec.actuator.SetTimePeriod(slotID, patch); err != nil {
		return err
	}
	s.applyModified(rec, slotID)
	s.log(ctx, "set_time_period", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)))
	return nil
}

// SetEnabled flips a slot's enabled flag, applying the corresponding
// added/removed ActiveSlot update if it actually changed.
func (s *Server) SetEnabled(ctx context.Context, aid ActuatorID, slotID schedule.SlotID, enabled bool) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	changed, slot, err := rec.actuator.SetEnabled(slotID, enabled)
	if err != nil {
		return err
	}
	if changed {
		now := schedule.InstantFromTime(s.clock.Now())
		var next schedule.ActiveSlot
		if enabled {
			next = schedule.ApplyAdded(rec.comm.Snapshot(), now, slotID, slot, rec.actuator.DefaultState)
		} else {
			next = schedule.ApplyRemoved(rec.comm.Snapshot(), slotID, now, rec.actuator.Slots, rec.actuator.DefaultState)
		}
		rec.comm.Set(next)
	}
	s.log(ctx, "set_enabled", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)), slog.Bool("enabled", enabled))
	return nil
}

// SetActuatorState validates and assigns the state a slot applies while
// active, updating the live emission immediately if it is the active slot.
func (s *Server) SetActuatorState(ctx context.Context, aid ActuatorID, slotID schedule.SlotID, state schedule.ActuatorState) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if err := rec.actuator.SetActuatorState(slotID, state); err != nil {
		return err
	}
	current := rec.comm.Snapshot()
	if current.Kind == schedule.SlotActive && current.SlotID == slotID {
		current.State = state
		rec.comm.Set(current)
	}
	s.log(ctx, "set_actuator_state", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)))
	return nil
}

// AddTimeOverride inserts an override and applies the "modified" update.
func (s *Server) AddTimeOverride(ctx context.Context, aid ActuatorID, slotID schedule.SlotID, period schedule.TimePeriod) (schedule.OverrideID, error) {
	rec, err := s.lookup(aid)
	if err != nil {
		return 0, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	id, err := rec.actuator.AddTimeOverride(slotID, period)
	if err != nil {
		return 0, err
	}
	s.applyModified(rec, slotID)
	s.log(ctx, "add_time_override", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)))
	return id, nil
}

// RemoveTimeOverride deletes an override and applies the "modified" update.
func (s *Server) RemoveTimeOverride(ctx context.Context, aid ActuatorID, slotID schedule.SlotID, overrideID schedule.OverrideID) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if err := rec.actuator.RemoveTimeOverride(slotID, overrideID); err != nil {
		return err
	}
	s.applyModified(rec, slotID)
	s.log(ctx, "remove_time_override", slog.Int("actuator", int(aid)), slog.Int("slot", int(slotID)))
	return nil
}

// applyModified recomputes the ActiveSlot update after a slot's period or
// overrides changed; shared by SetTimePeriod/AddTimeOverride/
// RemoveTimeOverride. Must be called with rec.mu already held for writing.
func (s *Server) applyModified(rec *record, slotID schedule.SlotID) {
	slot := rec.actuator.Slots[slotID]
	now := schedule.InstantFromTime(s.clock.Now())
	next := schedule.ApplyModified(rec.comm.Snapshot(), now, slotID, slot, rec.actuator.Slots, rec.actuator.DefaultState)
	rec.comm.Set(next)
}

// SetState bypasses scheduling entirely: a direct, unscheduled write to
// the actuator's output sink (§6). It intentionally does not touch the
// ActiveSlot or the slot table, so the engine worker's next timeout or
// mutation will simply overwrite it again in the ordinary way.
func (s *Server) SetState(ctx context.Context, aid ActuatorID, state schedule.ActuatorState) error {
	rec, err := s.lookup(aid)
	if err != nil {
		return err
	}
	rec.mu.RLock()
	info := rec.actuator.Info
	rec.mu.RUnlock()
	if !state.CompatibleWith(info.Type) {
		return &schedule.InvalidArgumentError{Kind: schedule.KindActuatorState}
	}
	rec.sink.SetState(state)
	s.log(ctx, "set_state", slog.Int("actuator", int(aid)))
	return nil
}

// Enumerate returns the day's timeline for an actuator on date (§4.3),
// realizing the "schedule" RPC of §6. A zero-value (empty) date resolves
// to the current scheduling day.
func (s *Server) Enumerate(ctx context.Context, aid ActuatorID, date schedule.Date) ([]schedule.NextActiveEntry, error) {
	rec, err := s.lookup(aid)
	if err != nil {
		return nil, err
	}
	if date.IsEmpty() {
		date = schedule.InstantFromTime(s.clock.Now()).Date
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return schedule.Enumerate(rec.actuator.Slots, date), nil
}

// Shutdown stops every actuator's engine worker goroutine so the process
// can exit cleanly on SIGINT/SIGTERM.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		close(s.records[id].stop)
	}
	s.logger.Info("server shut down", "actuators", len(s.order))
	return nil
}

func (s *Server) log(ctx context.Context, op string, attrs ...any) {
	id := observability.CorrelationIDFromContext(ctx)
	args := append([]any{"op", op}, attrs...)
	if id != "" {
		args = append(args, "correlation_id", id)
	}
	s.logger.Debug(fmt.Sprintf("server: %s", op), args...)
}
