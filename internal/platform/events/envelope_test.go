package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	a := NewEnvelope("order.placed", 1, "7", "corr", "payload")
	b := NewEnvelope("order.placed", 1, "7", "corr", "payload")

	_, err := uuid.Parse(a.EventID)
	require.NoError(t, err)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Equal(t, Producer, a.Producer)
	assert.Equal(t, "7", a.PartitionKey)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestNoopPublisher(t *testing.T) {
	var publisher Publisher = NoopPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), "order.placed.v1", "id", struct{}{}))
	assert.NoError(t, publisher.Close())
}
