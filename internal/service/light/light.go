package light

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/traffic-light/internal/domain/phase"
	"github.com/oshokin/traffic-light/internal/logger"
	"github.com/oshokin/traffic-light/internal/queue"
)

const (
	// DefaultCycleMin is the shortest time a phase is shown.
	DefaultCycleMin = 4 * time.Second
	// DefaultCycleMax bounds the time a phase is shown from above.
	DefaultCycleMax = 6 * time.Second
	// DefaultPollInterval is the sleep between two clock checks of the cycling task.
	DefaultPollInterval = time.Millisecond
	// DefaultWaitInterval is the pause a waiter takes before each receive.
	DefaultWaitInterval = time.Millisecond
)

// ErrAlreadySimulating is returned by Simulate when the cycling task is already running.
var ErrAlreadySimulating = errors.New("light is already simulating")

// Light is a two-phase traffic light. The zero value is not usable; call New.
type Light struct {
	// id identifies the light in logs.
	id string
	// queue receives every published phase.
	queue *queue.Blocking[phase.Phase]
	// rng draws phase durations. Only the cycling task uses it.
	rng *rand.Rand
	// done is closed when the cycling task returns.
	done chan struct{}

	cycleMin     time.Duration
	cycleMax     time.Duration
	pollInterval time.Duration
	waitInterval time.Duration

	// mu protects current and started.
	mu      sync.RWMutex
	current phase.Phase
	started bool

	// waitersMu protects waiters.
	waitersMu sync.Mutex
	// waiters holds one private queue per pending WaitFor call.
	waiters map[uuid.UUID]*queue.Blocking[phase.Phase]
}

// New creates a red light. Call Simulate to start cycling.
func New(opts ...Option) *Light {
	l := &Light{
		id:           uuid.NewString(),
		queue:        queue.NewBlocking[phase.Phase](),
		done:         make(chan struct{}),
		cycleMin:     DefaultCycleMin,
		cycleMax:     DefaultCycleMax,
		pollInterval: DefaultPollInterval,
		waitInterval: DefaultWaitInterval,
		current:      phase.Red,
		waiters:      make(map[uuid.UUID]*queue.Blocking[phase.Phase]),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ID returns the light identifier.
func (l *Light) ID() string {
	return l.id
}

// CurrentPhase returns the latest published phase without blocking on the cycling task.
func (l *Light) CurrentPhase() phase.Phase {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.current
}

// Queue returns the queue every phase change is sent to.
// Receivers compete for values and get the newest pending one first.
// Values stay queued until received, so a caller that starts the light
// must keep draining it; WaitFor and WaitForGreen do not read it.
func (l *Light) Queue() *queue.Blocking[phase.Phase] {
	return l.queue
}

// Done returns a channel closed once the cycling task has stopped.
// It is never closed if Simulate was not called or ctx never ends.
func (l *Light) Done() <-chan struct{} {
	return l.done
}

// Simulate starts the cycling task in the background and returns immediately.
// The task runs until ctx is done. A light cycles at most once:
// further calls return ErrAlreadySimulating.
func (l *Light) Simulate(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		logger.WarnKV(ctx, "Simulate called on a running light", "light_id", l.id)

		return ErrAlreadySimulating
	}

	l.started = true

	go l.cycleThroughPhases(ctx)

	return nil
}

// WaitForGreen blocks until the light publishes green.
// It only sees phases published after the call, and blocks until ctx is done
// if the light is never simulated.
func (l *Light) WaitForGreen(ctx context.Context) error {
	return l.WaitFor(ctx, phase.Green)
}

// WaitFor blocks until the light publishes want, discarding other phases.
// Every concurrent caller observes the same transition.
func (l *Light) WaitFor(ctx context.Context, want phase.Phase) error {
	key, updates := l.subscribe()
	defer l.unsubscribe(key)

	for {
		if err := sleep(ctx, l.waitInterval); err != nil {
			return err
		}

		got, err := updates.ReceiveContext(ctx)
		if err != nil {
			return err
		}

		if got == want {
			return nil
		}
	}
}

// cycleThroughPhases toggles the phase each time a randomly drawn duration elapses.
func (l *Light) cycleThroughPhases(ctx context.Context) {
	defer close(l.done)

	ctx = logger.WithKV(logger.WithName(ctx, "light"), "light_id", l.id)

	rng := l.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // Timing simulation, not security.
	}

	cycle := l.drawCycleDuration(rng)
	start := time.Now()

	logger.DebugKV(ctx, "Cycling started", "phase", l.CurrentPhase(), "cycle", cycle)

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.DebugKV(ctx, "Cycling stopped", "phase", l.CurrentPhase())
			return
		case <-ticker.C:
		}

		// Millisecond resolution, truncated.
		elapsed := time.Since(start).Truncate(time.Millisecond)
		if elapsed < cycle {
			continue
		}

		next := l.toggle()
		l.publish(next)

		logger.InfoKV(ctx, "Phase changed", "phase", next, "after", elapsed)

		cycle = l.drawCycleDuration(rng)
		start = time.Now()
	}
}

// drawCycleDuration returns a uniformly distributed duration in [cycleMin, cycleMax).
func (l *Light) drawCycleDuration(rng *rand.Rand) time.Duration {
	span := int64(l.cycleMax - l.cycleMin)

	return l.cycleMin + time.Duration(rng.Int64N(span))
}

// toggle flips the current phase and returns the new one.
func (l *Light) toggle() phase.Phase {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = l.current.Toggle()

	return l.current
}

// publish sends p to the light queue and to every pending waiter.
func (l *Light) publish(p phase.Phase) {
	l.queue.Send(p)

	l.waitersMu.Lock()
	defer l.waitersMu.Unlock()

	for _, w := range l.waiters {
		w.Send(p)
	}
}

// subscribe registers a private queue receiving every phase published from now on.
func (l *Light) subscribe() (uuid.UUID, *queue.Blocking[phase.Phase]) {
	key := uuid.New()
	updates := queue.NewBlocking[phase.Phase]()

	l.waitersMu.Lock()
	l.waiters[key] = updates
	l.waitersMu.Unlock()

	return key, updates
}

func (l *Light) unsubscribe(key uuid.UUID) {
	l.waitersMu.Lock()
	delete(l.waiters, key)
	l.waitersMu.Unlock()
}

// waiterCount returns the number of pending WaitFor calls.
func (l *Light) waiterCount() int {
	l.waitersMu.Lock()
	defer l.waitersMu.Unlock()

	return len(l.waiters)
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
