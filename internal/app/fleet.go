// Package app wires the actuator scheduler's fleet bring-up: reading the
// process config and fleet document, constructing one output sink per
// actuator, and registering each with the server facade.
package app

import (
	"fmt"
	"log/slog"

	"github.com/corax26/servoscheduler/internal/config"
	"github.com/corax26/servoscheduler/internal/engine"
	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/corax26/servoscheduler/internal/server"
	"github.com/corax26/servoscheduler/internal/sink"
)

// Fleet is the assembled set of actuators a process serves, plus the
// facade that routes requests to them.
type Fleet struct {
	Server *server.Server
}

// BringUp constructs a Fleet from a process config and its fleet
// document: one sink and one registered actuator per fleet entry.
func BringUp(cfg *config.ProcessConfig, doc *config.FleetDoc, logger *slog.Logger) (*Fleet, error) {
	facade := server.New(engine.SystemClock, logger)

	for _, entry := range doc.Actuators {
		actuatorType, err := actuatorType(entry.ActuatorType)
		if err != nil {
			return nil, fmt.Errorf("app: actuator %q: %w", entry.Name, err)
		}
		defaultState, err := actuatorState(entry.DefaultState, actuatorType)
		if err != nil {
			return nil, fmt.Errorf("app: actuator %q: %w", entry.Name, err)
		}

		outputSink, err := buildSink(entry.Controller, logger)
		if err != nil {
			return nil, fmt.Errorf("app: actuator %q: %w", entry.Name, err)
		}

		info := schedule.ActuatorInfo{Name: entry.Name, Type: actuatorType}
		if _, err := facade.RegisterActuator(info, defaultState, outputSink); err != nil {
			return nil, fmt.Errorf("app: registering actuator %q: %w", entry.Name, err)
		}
	}

	return &Fleet{Server: facade}, nil
}

func actuatorType(doc config.ActuatorTypeDoc) (schedule.ActuatorType, error) {
	switch doc.Kind {
	case config.ActuatorTypeToggle:
		return schedule.ToggleType, nil
	case config.ActuatorTypeFloatValue:
		if doc.FloatValue == nil {
			return schedule.ActuatorType{}, fmt.Errorf("app: FloatValue actuator_type missing bounds")
		}
		return schedule.FloatType(doc.FloatValue.Min, doc.FloatValue.Max), nil
	default:
		return schedule.ActuatorType{}, fmt.Errorf("app: unknown actuator_type kind %q", doc.Kind)
	}
}

// actuatorState converts the fleet document's loosely-typed default_state
// (go-yaml decodes scalars into bool/float64/int) into a schedule state
// matching t.
func actuatorState(raw interface{}, t schedule.ActuatorType) (schedule.ActuatorState, error) {
	switch t.Kind {
	case schedule.Toggle:
		b, ok := raw.(bool)
		if !ok {
			return schedule.ActuatorState{}, fmt.Errorf("app: default_state must be a boolean for a Toggle actuator")
		}
		return schedule.BoolState(b), nil
	default:
		v, ok := asFloat(raw)
		if !ok {
			return schedule.ActuatorState{}, fmt.Errorf("app: default_state must be a number for a Float actuator")
		}
		return schedule.FloatState(v), nil
	}
}

func asFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func buildSink(doc config.ControllerDoc, logger *slog.Logger) (engine.Sink, error) {
	switch doc.Type {
	case "file", "File":
		return sink.NewFileSink(doc.Path, logger), nil
	default:
		return nil, fmt.Errorf("app: unknown controller type %q", doc.Type)
	}
}
