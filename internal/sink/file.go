// Package sink implements the output-sink collaborator of §6: a
// line-oriented file writer the engine worker pushes actuator states to.
package sink

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/sony/gobreaker/v2"
)

// FileSink implements engine.Sink against a file: "1"/"0" for Toggle, a
// fixed-3-decimal number for Float, always written at offset 0. Writes are
// serialized by mu (§5, "Shared-resource policy on the output sink") and
// protected by a circuit breaker so a actuator whose disk is failing stops
// retrying every tick, following the teacher's executor.go pattern.
type FileSink struct {
	path    string
	mu      sync.Mutex
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewFileSink builds a sink writing to path.
func NewFileSink(path string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        path,
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("output sink circuit breaker state changed",
				"path", name, "from", from.String(), "to", to.String())
		},
	}
	return &FileSink{
		path:    path,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// SetState writes state at offset 0. Per §6/§7, short writes and I/O
// errors (including a tripped breaker) are logged and swallowed: the sink
// never fails the caller and the engine worker never sees an error.
func (s *FileSink) SetState(state schedule.ActuatorState) {
	payload := encode(state)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.write(payload)
	})
	if err != nil {
		s.logger.Warn("output sink write failed", "path", s.path, "error", err)
	}
}

func (s *FileSink) write(payload []byte) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("sink: open %s: %w", s.path, err)
	}
	defer f.Close()

	n, err := f.WriteAt(payload, 0)
	if err != nil {
		return fmt.Errorf("sink: write %s: %w", s.path, err)
	}
	if n != len(payload) {
		return fmt.Errorf("sink: short write to %s: wrote %d of %d bytes", s.path, n, len(payload))
	}
	return f.Truncate(int64(n))
}

// encode renders state in the wire format of §6.
func encode(state schedule.ActuatorState) []byte {
	if state.Kind == schedule.Toggle {
		if state.Bool {
			return []byte("1")
		}
		return []byte("0")
	}
	return []byte(fmt.Sprintf("%.3f", state.Value))
}
