package mykafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProducerIsNoop(t *testing.T) {
	var nilProducer *Producer
	assert.False(t, nilProducer.Enabled())
	assert.NoError(t, nilProducer.PublishEvent(context.Background(), TopicCartEvents, "k", EventCartCleared, nil))

	p := &Producer{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicCartEvents, "k", EventCartCleared, map[string]any{"a": 1}))
	assert.NoError(t, p.Close())

	assert.False(t, NewProducer(nil, "biblion").Enabled())
}

func TestNewProducerWithBrokers(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "biblion")
	require.True(t, p.Enabled())
	assert.Equal(t, "localhost:9092", p.w.Addr.String())
	assert.NoError(t, p.Close())
}

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	env, err := NewEnvelope("biblion", EventOrderPlaced, map[string]any{"order_number": "BIB-1"}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "BIB-1", payload["order_number"])

	_, err = NewEnvelope("biblion", EventOrderPlaced, make(chan int), now)
	assert.Error(t, err)
}
