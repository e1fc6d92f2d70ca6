// Package config loads process-level settings and the actuator fleet
// document the server bootstraps from.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ProcessConfig holds the settings read from the environment: everything
// about how the process itself runs, as opposed to the fleet it serves.
type ProcessConfig struct {
	ListenAddr string
	LogLevel   string
	LogFormat  string
	FleetPath  string
}

// Load reads a .env file if present (ignoring its absence) and builds a
// ProcessConfig from the environment, mirroring the teacher's getEnv-style
// defaulting.
func Load() (*ProcessConfig, error) {
	_ = godotenv.Load()

	return &ProcessConfig{
		ListenAddr: getEnv("SCHEDULER_LISTEN_ADDR", "127.0.0.1:8090"),
		LogLevel:   getEnv("SCHEDULER_LOG_LEVEL", "info"),
		LogFormat:  getEnv("SCHEDULER_LOG_FORMAT", "text"),
		FleetPath:  getEnv("SCHEDULER_FLEET_CONFIG", "fleet.yaml"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ActuatorTypeKind mirrors schedule.ActuatorKind in the YAML document's own
// vocabulary, so this package doesn't need to import internal/schedule's
// parsing concerns into its struct tags.
type ActuatorTypeKind string

const (
	ActuatorTypeToggle     ActuatorTypeKind = "Toggle"
	ActuatorTypeFloatValue ActuatorTypeKind = "FloatValue"
)

// ActuatorTypeDoc is the `actuator_type` entry of a fleet document: either
// the bare string "Toggle" or a `{FloatValue: {min, max}}` mapping.
// go-yaml decodes whichever shape is present into the fields below.
type ActuatorTypeDoc struct {
	Kind       ActuatorTypeKind
	FloatValue *FloatBoundsDoc `yaml:"FloatValue,omitempty"`
}

// FloatBoundsDoc carries a Float actuator's inclusive bounds.
type FloatBoundsDoc struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// UnmarshalYAML accepts either the scalar "Toggle" or a single-key mapping
// `FloatValue: {min: ..., max: ...}`.
func (t *ActuatorTypeDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var scalar string
	if err := unmarshal(&scalar); err == nil {
		if scalar != string(ActuatorTypeToggle) {
			return fmt.Errorf("config: unknown actuator_type %q", scalar)
		}
		t.Kind = ActuatorTypeToggle
		return nil
	}

	var mapping struct {
		FloatValue FloatBoundsDoc `yaml:"FloatValue"`
	}
	if err := unmarshal(&mapping); err != nil {
		return fmt.Errorf("config: invalid actuator_type: %w", err)
	}
	t.Kind = ActuatorTypeFloatValue
	t.FloatValue = &mapping.FloatValue
	return nil
}

// ControllerDoc is the `controller` entry: the output sink descriptor.
type ControllerDoc struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// ActuatorDoc is one entry of the fleet document's `actuators` list.
type ActuatorDoc struct {
	Name         string          `yaml:"name"`
	ActuatorType ActuatorTypeDoc `yaml:"actuator_type"`
	DefaultState interface{}     `yaml:"default_state"`
	Controller   ControllerDoc   `yaml:"controller"`
}

// FleetDoc is the top-level `actuators` fleet document of §6.
type FleetDoc struct {
	Actuators []ActuatorDoc `yaml:"actuators"`
}

// LoadFleet parses the fleet YAML document at path.
func LoadFleet(path string) (*FleetDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading fleet document: %w", err)
	}
	var doc FleetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing fleet document: %w", err)
	}
	return &doc, nil
}

// ShutdownGracePeriod is the timeout of the context that cmd/servoscheduler
// passes to the HTTP server's and the fleet's Shutdown. Server.Shutdown
// itself does not wait for engine workers to exit.
const ShutdownGracePeriod = 5 * time.Second
