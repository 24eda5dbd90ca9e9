package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/gncsim/internal/gnc"
	"github.com/san-kum/gncsim/internal/sim"
	"github.com/san-kum/gncsim/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario  = "normal"
	DefaultSteps     = 20
	DefaultOutputDir = "."
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

const (
	PlotPNG  = "png"
	PlotTerm = "term"
	PlotBoth = "both"
	PlotNone = "none"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario     string  `yaml:"scenario"`
	ScenarioFile string  `yaml:"scenario_file,omitempty"`
	Steps        int     `yaml:"steps"`
	Seed         int64   `yaml:"seed"`
	SensorNoise  float64 `yaml:"sensor_noise"`
	OutputDir    string  `yaml:"output_dir"`
	Plot         string  `yaml:"plot"`
	ImageFormat  string  `yaml:"image_format"`
	LogLevel     string  `yaml:"log_level"`
	LogFormat    string  `yaml:"log_format"`
	MetricsFile  string  `yaml:"metrics_file,omitempty"`
	Trace        bool    `yaml:"trace"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    DefaultScenario,
		Steps:       DefaultSteps,
		SensorNoise: gnc.DefaultSensorNoise,
		OutputDir:   DefaultOutputDir,
		Plot:        PlotPNG,
		ImageFormat: viz.FormatPNG,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps %d", ErrInvalid, c.Steps)
	}
	if c.SensorNoise < 0 {
		return fmt.Errorf("%w: sensor_noise %g", ErrInvalid, c.SensorNoise)
	}
	switch c.Plot {
	case PlotPNG, PlotTerm, PlotBoth, PlotNone:
	default:
		return fmt.Errorf("%w: plot %q", ErrInvalid, c.Plot)
	}
	switch c.ImageFormat {
	case viz.FormatPNG, viz.FormatSVG:
	default:
		return fmt.Errorf("%w: image_format %q", ErrInvalid, c.ImageFormat)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// WantsImage and WantsTerminal report which plot backends the run should
// use. Plot "png" selects image files in ImageFormat, which may be svg.
func (c *Config) WantsImage() bool    { return c.Plot == PlotPNG || c.Plot == PlotBoth }
func (c *Config) WantsTerminal() bool { return c.Plot == PlotTerm || c.Plot == PlotBoth }

func (c *Config) SimConfig() sim.Config {
	sc := sim.DefaultConfig()
	sc.Steps = c.Steps
	sc.Seed = c.Seed
	sc.SensorNoise = c.SensorNoise
	return sc
}
