package schedule

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the argument that failed validation in an
// InvalidArgument error.
type ErrorKind string

const (
	KindActuatorID     ErrorKind = "ActuatorId"
	KindTimeSlotID     ErrorKind = "TimeSlotId"
	KindTimeOverrideID ErrorKind = "TimeOverrideId"
	KindTimePeriod     ErrorKind = "TimePeriod"
	KindActuatorState  ErrorKind = "ActuatorState"
)

// ErrInvalidArgument is the sentinel root every InvalidArgumentError wraps,
// so callers can test with errors.Is(err, schedule.ErrInvalidArgument)
// without caring about the specific kind.
var ErrInvalidArgument = errors.New("schedule: invalid argument")

// InvalidArgumentError reports that a request argument failed validation.
// Kind ActuatorState covers both "wrong variant for this actuator's type"
// and "Float value out of [min,max]"; Kind TimePeriod covers any validity
// failure of a period after a patch has been applied.
type InvalidArgumentError struct {
	Kind ErrorKind
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("schedule: invalid argument: %s", e.Kind)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArg(kind ErrorKind) error {
	return &InvalidArgumentError{Kind: kind}
}

// ErrTimeSlotOverlap is the sentinel root of TimeSlotOverlapError.
var ErrTimeSlotOverlap = errors.New("schedule: time slot overlap")

// TimeSlotOverlapError reports that a candidate period collides with an
// existing slot.
type TimeSlotOverlapError struct {
	SlotID SlotID
}

func (e *TimeSlotOverlapError) Error() string {
	return fmt.Sprintf("schedule: candidate period overlaps time slot %d", e.SlotID)
}

func (e *TimeSlotOverlapError) Unwrap() error {
	return ErrTimeSlotOverlap
}

// ErrTimeOverrideOverlap is the sentinel root of TimeOverrideOverlapError.
var ErrTimeOverrideOverlap = errors.New("schedule: time override overlap")

// TimeOverrideOverlapError reports that a candidate override collides on
// dates with another override of the same slot.
type TimeOverrideOverlapError struct {
	OverrideID OverrideID
}

func (e *TimeOverrideOverlapError) Error() string {
	return fmt.Sprintf("schedule: candidate override overlaps on dates with override %d", e.OverrideID)
}

func (e *TimeOverrideOverlapError) Unwrap() error {
	return ErrTimeOverrideOverlap
}
