package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	bus := New()
	var got JobPublished
	var changed int

	err := Subscribe(bus, map[string]any{
		JobPublishedTopic: func(e JobPublished) { got = e },
		JobChangedTopic:   func(JobChanged) { changed++ },
	})
	require.NoError(t, err)

	id := uuid.New()
	bus.Publish(JobPublishedTopic, JobPublished{JobID: id, Title: "Go Dev"})
	bus.Publish(JobChangedTopic, JobChanged{JobID: id, Kind: "updated"})

	assert.Equal(t, id, got.JobID)
	assert.Equal(t, 1, changed)
}

func TestSubscribe_RejectsNonFunc(t *testing.T) {
	err := Subscribe(New(), map[string]any{JobChangedTopic: "not a handler"})
	assert.ErrorContains(t, err, "subscribe job:changed")
}
