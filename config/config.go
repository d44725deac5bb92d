// Package config loads the autosplitter's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"s2autosplit/splitter"
	"s2autosplit/timer"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no --config is given
const EnvPath = "AUTOSPLIT_CONFIG"

// Timer backends
const (
	TimerLiveSplit = "livesplit"
	TimerLog       = "log"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// ProcessNames are the executable names to attach to, in preference order
	ProcessNames []string `yaml:"process_names"`

	// ModuleNames name the main module; empty means the process names
	ModuleNames []string `yaml:"module_names"`

	// TickRate is the sampling frequency in Hz
	TickRate float64 `yaml:"tick_rate"`

	RetryInterval time.Duration `yaml:"retry_interval"`

	Timer            string        `yaml:"timer"`
	LiveSplitAddress string        `yaml:"livesplit_address"`
	LiveSplitTimeout time.Duration `yaml:"livesplit_timeout"`

	// Segments ends a run of the log timer after that many splits; 0 never ends
	Segments int `yaml:"segments"`

	Settings splitter.Settings `yaml:"settings"`
}

func Default() Config {
	return Config{
		ProcessNames:     append([]string(nil), splitter.DefaultProcessNames...),
		TickRate:         splitter.DefaultTickRate,
		RetryInterval:    splitter.DefaultRetryInterval,
		Timer:            TimerLiveSplit,
		LiveSplitAddress: timer.DefaultLiveSplitAddress,
		LiveSplitTimeout: time.Second,
		Settings:         splitter.DefaultSettings(),
	}
}

// Path returns flagValue, or the environment variable when it is empty
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, rejecting unknown keys, and validates
// the result
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if len(c.ProcessNames) == 0 {
		return fmt.Errorf("process_names is empty: %w", ErrInvalid)
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("tick_rate %v out of range (0, 1000]: %w", c.TickRate, ErrInvalid)
	}
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be positive: %w", ErrInvalid)
	}
	if c.Segments < 0 {
		return fmt.Errorf("segments must not be negative: %w", ErrInvalid)
	}

	switch c.Timer {
	case TimerLiveSplit:
		if c.LiveSplitAddress == "" {
			return fmt.Errorf("livesplit_address is empty: %w", ErrInvalid)
		}
	case TimerLog:
	default:
		return fmt.Errorf("timer %q is not %s or %s: %w", c.Timer, TimerLiveSplit, TimerLog, ErrInvalid)
	}
	return nil
}

// TickInterval converts TickRate to a period
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// Modules returns the names the main module is looked up by
func (c *Config) Modules() []string {
	if len(c.ModuleNames) > 0 {
		return c.ModuleNames
	}
	return c.ProcessNames
}

// Disable turns the named settings off
func (c *Config) Disable(keys ...string) error {
	for _, key := range keys {
		if err := c.Settings.Set(key, false); err != nil {
			return err
		}
	}
	return nil
}

// NewTimer builds the configured timer backend
func (c *Config) NewTimer() timer.Timer {
	if c.Timer == TimerLog {
		return timer.NewLog(c.Segments)
	}
	return timer.NewLiveSplit(c.LiveSplitAddress, c.LiveSplitTimeout)
}

// RunnerOptions maps the configuration onto the splitter's runner
func (c *Config) RunnerOptions() splitter.RunnerOptions {
	settings := c.Settings
	return splitter.RunnerOptions{
		ProcessNames:  c.ProcessNames,
		ModuleNames:   c.Modules(),
		TickInterval:  c.TickInterval(),
		RetryInterval: c.RetryInterval,
		Settings:      func() splitter.Settings { return settings },
	}
}
