package broker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedPublisher blocks every Publish until release is closed.
type gatedPublisher struct {
	release chan struct{}

	mu        sync.Mutex
	published []string
	closed    bool
	closedAt  int
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{release: make(chan struct{})}
}

func (p *gatedPublisher) Publish(ctx context.Context, key string, _ Event) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, key)
	return nil
}

func (p *gatedPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.closedAt = len(p.published)
	return nil
}

func TestAsyncDispatcher_CloseDrainsInFlight(t *testing.T) {
	pub := newGatedPublisher()
	d := NewAsyncDispatcher(pub, time.Second, logger.NewNop())

	d.Dispatch("1", NewEvent("ProductCreated", nil))
	d.Dispatch("2", NewEvent("ProductUpdated", nil))

	time.AfterFunc(20*time.Millisecond, func() { close(pub.release) })
	require.NoError(t, d.Close(context.Background()))

	assert.ElementsMatch(t, []string{"1", "2"}, pub.published)
	assert.True(t, pub.closed)
	assert.Equal(t, 2, pub.closedAt, "publisher closed only after in-flight sends")
}

func TestAsyncDispatcher_DropsAfterClose(t *testing.T) {
	pub := newGatedPublisher()
	close(pub.release)
	d := NewAsyncDispatcher(pub, time.Second, logger.NewNop())

	require.NoError(t, d.Close(context.Background()))
	d.Dispatch("3", NewEvent("ProductDeleted", nil))

	assert.Empty(t, pub.published)
}

func TestAsyncDispatcher_CloseGivesUpOnDeadline(t *testing.T) {
	pub := newGatedPublisher()
	d := NewAsyncDispatcher(pub, time.Minute, logger.NewNop())
	d.Dispatch("4", NewEvent("ProductCreated", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Close(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, pub.closed)
	close(pub.release)
}
