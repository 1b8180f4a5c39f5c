package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestBlocking_BackToBackSendsAreLIFO sends several values without a receiver and
// checks all of them come back newest first.
func TestBlocking_BackToBackSendsAreLIFO(t *testing.T) {
	t.Parallel()

	q := NewBlocking[int]()
	for i := range 10 {
		q.Send(i)
	}

	require.Equal(t, 10, q.Len())

	for want := 9; want >= 0; want-- {
		require.Equal(t, want, q.Receive())
	}

	require.Zero(t, q.Len())
}

// TestBlocking_ReceiveBlocksUntilSend ensures Receive on an empty queue waits for a concurrent Send.
func TestBlocking_ReceiveBlocksUntilSend(t *testing.T) {
	t.Parallel()

	q := NewBlocking[string]()
	got := make(chan string, 1)

	go func() {
		got <- q.Receive()
	}()

	select {
	case v := <-got:
		t.Fatalf("receive returned %q before any send", v)
	case <-time.After(50 * time.Millisecond):
	}

	q.Send("hello")

	select {
	case v := <-got:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("receive did not unblock after send")
	}
}

// TestBlocking_ManyConsumers checks that every value is delivered exactly once
// when several receivers compete.
func TestBlocking_ManyConsumers(t *testing.T) {
	t.Parallel()

	const (
		consumers = 4
		perWorker = 50
	)

	var (
		q    = NewBlocking[int]()
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]int)
	)

	for range consumers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range perWorker {
				v := q.Receive()

				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	for i := range consumers * perWorker {
		q.Send(i)
	}

	wg.Wait()

	require.Len(t, seen, consumers*perWorker)

	for v, n := range seen {
		require.Equalf(t, 1, n, "value %d delivered %d times", v, n)
	}
}

// TestBlocking_ReceiveContextCanceled verifies a blocked ReceiveContext returns when its context ends.
func TestBlocking_ReceiveContextCanceled(t *testing.T) {
	t.Parallel()

	q := NewBlocking[int]()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)

	go func() {
		_, err := q.ReceiveContext(ctx)
		errs <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("ReceiveContext ignored cancellation")
	}

	// The queue stays usable after a canceled receive.
	q.Send(7)
	require.Equal(t, 7, q.Receive())
}

// TestBlocking_ReceiveContextPrefersAvailableValue checks that a pending value
// is returned even with an ended context, which is reported only on an empty queue.
func TestBlocking_ReceiveContextPrefersAvailableValue(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewBlocking[int]()
	q.Send(1)

	v, err := q.ReceiveContext(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = q.ReceiveContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
