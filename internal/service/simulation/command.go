package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/traffic-light/internal/config"
	"github.com/oshokin/traffic-light/internal/domain/phase"
	"github.com/oshokin/traffic-light/internal/logger"
	"github.com/oshokin/traffic-light/internal/service/light"
)

// Options controls a simulation run. Empty strings and zero numbers keep the
// configured settings, except Observers, which keeps them only when negative.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file. Empty means defaults.
	ConfigPath string
	// Observers overrides the number of vehicles when not negative.
	Observers int
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Seed overrides the configured random seed when not zero.
	Seed uint64
	// Duration stops the run after the given time when positive.
	Duration time.Duration
	// Cycles stops the run after the given number of phase changes when positive.
	Cycles int
	// Until delays the stop requested by Cycles until the light shows this phase.
	Until string
}

// Report summarizes a finished run.
type Report struct {
	// PhaseChanges is the number of phase changes read by the monitor.
	PhaseChanges int
	// Crossings is the total number of times vehicles were released by green.
	Crossings int
}

// Run loads settings, applies overrides and runs the simulation until ctx is done.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "simulation")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	report, err := simulate(ctx, cfg, opts)
	if err != nil {
		logger.ErrorKV(ctx, "Simulation failed", "error", err)

		return err
	}

	logger.InfoKV(ctx, "Simulation finished", "phase_changes", report.PhaseChanges, "crossings", report.Crossings)

	return nil
}

// applyOverrides copies set options over cfg and validates the result.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.Observers >= 0 {
		cfg.Observers = opts.Observers
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	return nil
}

// simulate runs the light, the monitor and the vehicles and waits for all of them.
func simulate(ctx context.Context, cfg *config.Config, opts *Options) (*Report, error) {
	stop := stopCondition{cycles: opts.Cycles}

	if opts.Until != "" {
		until, err := phase.Parse(opts.Until)
		if err != nil {
			return nil, fmt.Errorf("parse until: %w", err)
		}

		stop.until = &until
	}

	var cancel context.CancelFunc

	if opts.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	lightOptions := []light.Option{
		light.WithCycleRange(cfg.CycleMin, cfg.CycleMax),
		light.WithPollInterval(cfg.PollInterval),
		light.WithWaitInterval(cfg.WaitInterval),
	}

	if cfg.Seed != 0 {
		lightOptions = append(lightOptions, light.WithSeed(cfg.Seed))
	}

	trafficLight := light.New(lightOptions...)

	logger.InfoKV(
		ctx,
		"Starting simulation",
		"light_id", trafficLight.ID(),
		"observers", cfg.Observers,
		"cycle_min", cfg.CycleMin,
		"cycle_max", cfg.CycleMax,
	)

	if err := trafficLight.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("start light: %w", err)
	}

	var (
		report = new(Report)
		mu     sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		changes, err := monitor(groupCtx, trafficLight, stop)

		mu.Lock()
		report.PhaseChanges = changes
		mu.Unlock()

		if err == nil {
			// Enough cycles observed, stop everybody else.
			cancel()
		}

		return err
	})

	for i := range cfg.Observers {
		group.Go(func() error {
			crossings, err := drive(groupCtx, trafficLight, i+1)

			mu.Lock()
			report.Crossings += crossings
			mu.Unlock()

			return err
		})
	}

	err := group.Wait()

	// The light shares ctx, so it stops once the group is done.
	cancel()
	<-trafficLight.Done()

	if err != nil && !isStop(err) {
		return nil, err
	}

	return report, nil
}

// stopCondition tells the monitor when the run has seen enough.
type stopCondition struct {
	// cycles is the minimum number of phase changes. Zero disables the condition.
	cycles int
	// until, when set, is the phase the light must show to stop.
	until *phase.Phase
}

// reached reports whether the run can stop after changes changes, the last one to current.
func (c stopCondition) reached(changes int, current phase.Phase) bool {
	if c.cycles <= 0 || changes < c.cycles {
		return false
	}

	return c.until == nil || *c.until == current
}

// monitor reads the light queue and logs every phase change.
// It returns nil once stop is reached.
func monitor(ctx context.Context, trafficLight *light.Light, stop stopCondition) (int, error) {
	ctx = logger.WithName(ctx, "monitor")

	var (
		changes  int
		previous = time.Now()
	)

	for {
		current, err := trafficLight.Queue().ReceiveContext(ctx)
		if err != nil {
			return changes, err
		}

		now := time.Now()
		changes++

		logger.InfoKV(ctx, "Light switched", "phase", current, "shown_for", now.Sub(previous).Truncate(time.Millisecond))

		previous = now

		if stop.reached(changes, current) {
			return changes, nil
		}
	}
}

// drive simulates a vehicle that crosses the intersection every time the light turns green.
func drive(ctx context.Context, trafficLight *light.Light, vehicle int) (int, error) {
	ctx = logger.WithKV(logger.WithName(ctx, "vehicle"), "vehicle", vehicle)

	var crossings int

	for {
		logger.Debug(ctx, "Waiting for green")

		if err := trafficLight.WaitForGreen(ctx); err != nil {
			return crossings, err
		}

		crossings++

		logger.InfoKV(ctx, "Crossed on green", "crossings", crossings, "phase", trafficLight.CurrentPhase())
	}
}

// isStop reports whether err only means the run was asked to stop.
func isStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
