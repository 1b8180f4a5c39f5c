package light

import (
	"math/rand/v2"
	"time"
)

// Option configures a Light.
type Option func(*Light)

// WithID sets the identifier used in log messages.
func WithID(id string) Option {
	return func(l *Light) {
		if id != "" {
			l.id = id
		}
	}
}

// WithCycleRange sets the bounds of the random phase duration: [minimum, maximum).
// Invalid ranges are ignored.
func WithCycleRange(minimum, maximum time.Duration) Option {
	return func(l *Light) {
		if minimum > 0 && maximum > minimum {
			l.cycleMin = minimum
			l.cycleMax = maximum
		}
	}
}

// WithPollInterval sets how long the cycling task sleeps between clock checks.
func WithPollInterval(d time.Duration) Option {
	return func(l *Light) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithWaitInterval sets the pause a waiter takes before each receive.
func WithWaitInterval(d time.Duration) Option {
	return func(l *Light) {
		if d > 0 {
			l.waitInterval = d
		}
	}
}

// WithRand makes the cycling task draw durations from rng instead of a
// generator seeded from system entropy. rng must not be shared with other goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(l *Light) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// WithSeed is a shortcut for WithRand with a PCG generator seeded by seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed))) //nolint:gosec // Timing simulation, not security.
}
