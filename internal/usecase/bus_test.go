package usecase

import (
	"sync"
	"testing"

	"job-portal/internal/events"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
)

// recordingBus is a real bus with a counter on every topic the usecases publish.
type recordingBus struct {
	bus    EventBus.Bus
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingBus(t *testing.T) *recordingBus {
	t.Helper()
	r := &recordingBus{bus: events.New(), counts: map[string]int{}}
	hit := func(topic string) {
		r.mu.Lock()
		r.counts[topic]++
		r.mu.Unlock()
	}
	require.NoError(t, events.Subscribe(r.bus, map[string]any{
		events.JobPublishedTopic:             func(events.JobPublished) { hit(events.JobPublishedTopic) },
		events.JobChangedTopic:               func(events.JobChanged) { hit(events.JobChangedTopic) },
		events.ApplicationCreatedTopic:       func(events.ApplicationCreated) { hit(events.ApplicationCreatedTopic) },
		events.ApplicationStatusChangedTopic: func(events.ApplicationStatusChanged) { hit(events.ApplicationStatusChangedTopic) },
	}))
	return r
}

func (r *recordingBus) count(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[topic]
}
