package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/traffic-light/internal/service/simulation"
	"github.com/oshokin/traffic-light/internal/version"
)

var (
	// options collects flag values for the simulation run.
	options = simulation.Options{
		Observers: -1,
	}

	// rootCmd represents the base command running the simulation.
	rootCmd = &cobra.Command{
		Use:   "traffic-light",
		Short: "Simulate a traffic light and the vehicles waiting for it.",
		Long: `Runs a traffic light that toggles between red and green after a random
duration (4 to 6 seconds by default) and a number of vehicles that wait
for green and cross the intersection.

Every phase change and every crossing is logged. The run stops on SIGINT or
SIGTERM, after --duration, or after --cycles phase changes (optionally
ending on the --until phase).
Timing settings are read from the YAML file given with --config.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return simulation.Run(ctx, &options)
		},
	}
)

// Execute runs the traffic-light CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&options.ConfigPath, "config", "c", "", "path to configuration file (defaults are used when empty)")
	flags.IntVarP(&options.Observers, "observers", "o", -1, "number of vehicles waiting for green (config value when negative)")
	flags.StringVarP(&options.LogLevel, "log-level", "l", "", "minimum log level: debug, info, warn, error")
	flags.Uint64Var(&options.Seed, "seed", 0, "seed for phase durations (config value or entropy when zero)")
	flags.DurationVarP(&options.Duration, "duration", "d", 0, "stop after this long (run until interrupted when zero)")
	flags.IntVar(&options.Cycles, "cycles", 0, "stop after this many phase changes (unlimited when zero)")
	flags.StringVar(&options.Until, "until", "", "with --cycles, keep running until the light shows this phase (red or green)")
}
