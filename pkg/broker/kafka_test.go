package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := newKafkaPublisher(w, "catalog.products", logger.NewNop())

	ev := NewEvent("ProductCreated", map[string]int64{"id": 7})
	require.NoError(t, p.Publish(context.Background(), "7", ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "catalog.products", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "ProductCreated", got["event_type"])
	assert.Equal(t, ev.EventID, got["event_id"])
	assert.Equal(t, map[string]interface{}{"id": float64(7)}, got["payload"])
	assert.NotEmpty(t, got["timestamp"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p := newKafkaPublisher(w, "catalog.products", logger.NewNop())

	err := p.Publish(context.Background(), "1", NewEvent("ProductDeleted", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductDeleted")
}

func TestNewPublisher_NoBrokers(t *testing.T) {
	p := NewPublisher(&KafkaConfig{Topic: "catalog.products"}, logger.NewNop())
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "1", NewEvent("ProductCreated", nil)))
	assert.NoError(t, p.Close())
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a := NewEvent("ProductUpdated", nil)
	b := NewEvent("ProductUpdated", nil)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.Timestamp.IsZero())
}
