// Package scenario maps scenario names to fixed bundles of fault,
// environment, and navigation modes.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/gncsim/internal/gnc"
	"gopkg.in/yaml.v3"
)

// Default is the scenario returned for names that are not in the table.
const Default = "normal"

var ErrNoName = errors.New("scenario: custom scenario has no name")

// Config is the immutable bundle a scenario selects.
type Config struct {
	Name          string        `yaml:"name"`
	SensorFault   gnc.FaultMode `yaml:"sensor_fault"`
	ActuatorFault gnc.FaultMode `yaml:"actuator_fault"`
	Env           gnc.EnvMode   `yaml:"env_mode"`
	Nav           gnc.NavMode   `yaml:"nav_mode"`
}

func (c Config) SensorFaulted() bool   { return c.SensorFault == gnc.FaultCorrupt }
func (c Config) ActuatorFaulted() bool { return c.ActuatorFault == gnc.FaultCorrupt }
func (c Config) NavDegraded() bool     { return c.Nav == gnc.NavDegraded }

// Validate checks every mode in the bundle.
func (c Config) Validate() error {
	if c.Name == "" {
		return ErrNoName
	}
	for _, v := range []interface{ Validate() error }{c.SensorFault, c.ActuatorFault, c.Env, c.Nav} {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", c.Name, err)
		}
	}
	return nil
}

func preset(name string, sensor, actuator gnc.FaultMode, env gnc.EnvMode, nav gnc.NavMode) Config {
	return Config{Name: name, SensorFault: sensor, ActuatorFault: actuator, Env: env, Nav: nav}
}

var presets = map[string]Config{
	"normal":          preset("normal", gnc.FaultClean, gnc.FaultClean, gnc.EnvNormal, gnc.NavNominal),
	"sensor_fault":    preset("sensor_fault", gnc.FaultCorrupt, gnc.FaultClean, gnc.EnvNormal, gnc.NavNominal),
	"actuator_fault":  preset("actuator_fault", gnc.FaultClean, gnc.FaultCorrupt, gnc.EnvNormal, gnc.NavNominal),
	"both_faults":     preset("both_faults", gnc.FaultCorrupt, gnc.FaultCorrupt, gnc.EnvNormal, gnc.NavNominal),
	"high_wind":       preset("high_wind", gnc.FaultClean, gnc.FaultClean, gnc.EnvHighWind, gnc.NavNominal),
	"gravity_anomaly": preset("gravity_anomaly", gnc.FaultClean, gnc.FaultClean, gnc.EnvGravityAnomaly, gnc.NavNominal),
	"gps_outage":      preset("gps_outage", gnc.FaultClean, gnc.FaultClean, gnc.EnvNormal, gnc.NavDegraded),
}

var descriptions = map[string]string{
	"normal":          "no faults, calm environment, nominal navigation",
	"sensor_fault":    "sensor readings corrupted by large gaussian offsets",
	"actuator_fault":  "fin angle commands offset by 999",
	"both_faults":     "sensor and actuator faults together",
	"high_wind":       "strong constant wind with gusts",
	"gravity_anomaly": "gravity raised by 2.0",
	"gps_outage":      "navigation loses its position fix",
}

// Select returns the bundle for name, falling back to the normal bundle when
// the name is unknown.
func Select(name string) Config {
	if cfg, ok := presets[name]; ok {
		return cfg
	}
	return presets[Default]
}

// Lookup is Select without the fallback.
func Lookup(name string) (Config, bool) {
	cfg, ok := presets[name]
	return cfg, ok
}

func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Describe(name string) string {
	return descriptions[name]
}

// LoadFile reads a custom bundle from YAML. Omitted modes take the values of
// the normal bundle.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := presets[Default]
	cfg.Name = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
