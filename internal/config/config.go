package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/traffic-light/internal/logger"
)

// Config holds the timing and observer settings of a simulation run.
type Config struct {
	// CycleMin is the inclusive lower bound of a phase duration.
	CycleMin time.Duration `yaml:"cycle_min"`
	// CycleMax is the exclusive upper bound of a phase duration.
	CycleMax time.Duration `yaml:"cycle_max"`
	// PollInterval is how long the cycling loop sleeps between clock checks.
	PollInterval time.Duration `yaml:"poll_interval"`
	// WaitInterval is how long a phase waiter sleeps between receives.
	WaitInterval time.Duration `yaml:"wait_interval"`
	// Observers is the number of concurrent tasks waiting for green.
	Observers int `yaml:"observers"`
	// Seed makes phase durations reproducible. Zero seeds from system entropy.
	Seed uint64 `yaml:"seed"`
	// LogLevel is the minimum level of emitted log messages.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultCycleMin is the shortest phase duration.
	DefaultCycleMin = 4 * time.Second

	// DefaultCycleMax bounds phase durations from above.
	DefaultCycleMax = 6 * time.Second

	// DefaultPollInterval is the sleep between two clock checks of the cycling loop.
	DefaultPollInterval = time.Millisecond

	// DefaultWaitInterval is the pause between two receives of a phase waiter.
	DefaultWaitInterval = time.Millisecond

	// DefaultObservers is the number of simulated vehicles.
	DefaultObservers = 5

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrInvalidCycleRange is returned when the phase duration range is empty or negative.
	ErrInvalidCycleRange = errors.New("cycle_max must be greater than cycle_min")
	// ErrNegativeObservers is returned for a negative observer count.
	ErrNegativeObservers = errors.New("observers must not be negative")
	// ErrUnknownLogLevel is returned when log_level cannot be parsed.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		CycleMin:     DefaultCycleMin,
		CycleMax:     DefaultCycleMax,
		PollInterval: DefaultPollInterval,
		WaitInterval: DefaultWaitInterval,
		Observers:    DefaultObservers,
		LogLevel:     DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// Keys missing from the file keep their Default values; an empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills zero durations and an empty log level with defaults and rejects
// inconsistent values. Observers is kept as is: zero means no vehicles.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.CycleMin <= 0 {
		cfg.CycleMin = DefaultCycleMin
	}

	if cfg.CycleMax <= 0 {
		cfg.CycleMax = DefaultCycleMax
	}

	if cfg.CycleMax <= cfg.CycleMin {
		return fmt.Errorf("%w: %s..%s", ErrInvalidCycleRange, cfg.CycleMin, cfg.CycleMax)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.WaitInterval <= 0 {
		cfg.WaitInterval = DefaultWaitInterval
	}

	if cfg.Observers < 0 {
		return ErrNegativeObservers
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}
