package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingLogStore counts Create calls and can fail a specific one.
// stored receives every successfully created log so tests can wait for
// the background listener without sleeping.
type recordingLogStore struct {
	failAt  int
	failErr error
	calls   int
	stored  chan RouteLog
}

func newRecordingLogStore() *recordingLogStore {
	return &recordingLogStore{failAt: -1, stored: make(chan RouteLog, 16)}
}

func (s *recordingLogStore) Create(ctx context.Context, rl *RouteLog) error {
	s.calls++
	if s.calls-1 == s.failAt {
		return s.failErr
	}
	s.stored <- *rl
	return nil
}

func summaryFor(origin, destination string) *RouteSummary {
	return &RouteSummary{
		Origin:            origin,
		Destination:       destination,
		FormattedDistance: "2.0 km",
		FormattedDuration: "4 min",
	}
}

func TestForwardNeverBlocksOnFullQueue(t *testing.T) {
	store := newRecordingLogStore()
	forwarder := NewForwarder(store, 1)
	// No listener running, so the second summary finds the queue full
	// and must be dropped rather than block the caller.
	done := make(chan struct{})
	go func() {
		forwarder.Forward(summaryFor("Colombo", "Galle"))
		forwarder.Forward(summaryFor("Colombo", "Kandy"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward blocked on a full queue")
	}
	assert.Equal(t, 0, store.calls)
}

func TestListenerSwallowsStorageFailures(t *testing.T) {
	store := newRecordingLogStore()
	store.failAt = 0
	store.failErr = errors.New("connection reset")

	forwarder := NewForwarder(store, 4)
	forwarder.StartRouteLogListener()
	defer forwarder.StopRouteLogListener()

	forwarder.Forward(summaryFor("Colombo", "Galle"))
	forwarder.Forward(summaryFor("Colombo", "Kandy"))

	// The first Create fails; the listener must keep draining and store
	// the second summary.
	select {
	case rl := <-store.stored:
		assert.Equal(t, "Kandy", rl.Destination)
	case <-time.After(time.Second):
		t.Fatal("listener stopped after a storage failure")
	}
	assert.Equal(t, 2, store.calls)
}

func TestListenerStoresForwardedSummaries(t *testing.T) {
	store := newRecordingLogStore()
	forwarder := NewForwarder(store, 4)
	forwarder.StartRouteLogListener()
	defer forwarder.StopRouteLogListener()

	forwarder.Forward(summaryFor("Colombo", "Galle"))

	select {
	case rl := <-store.stored:
		assert.Equal(t, "Colombo", rl.Origin)
		assert.Equal(t, "Galle", rl.Destination)
		assert.Equal(t, "2.0 km", rl.Distance)
		assert.Equal(t, "4 min", rl.Duration)
	case <-time.After(time.Second):
		t.Fatal("summary was never stored")
	}
}
