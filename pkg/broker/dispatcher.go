package broker

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

// Dispatcher hands events off for background delivery.
type Dispatcher interface {
	Dispatch(key string, event Event)
}

// AsyncDispatcher publishes each event on its own goroutine with a bounded
// timeout. Failures are logged and never reach the caller. Close waits for
// in-flight sends and then closes the publisher.
type AsyncDispatcher struct {
	pub     Publisher
	timeout time.Duration
	logger  logger.ZapLogger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncDispatcher(pub Publisher, timeout time.Duration, log logger.ZapLogger) *AsyncDispatcher {
	return &AsyncDispatcher{pub: pub, timeout: timeout, logger: log}
}

func (d *AsyncDispatcher) Dispatch(key string, event Event) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("dispatcher closed, event dropped",
			zap.String("event_type", event.EventType),
			zap.String("key", key),
		)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.pub.Publish(ctx, key, event); err != nil {
			d.logger.Error("failed to publish event",
				zap.String("event_type", event.EventType),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}()
}

// Close stops accepting events, waits for in-flight sends until ctx is done
// and closes the underlying publisher.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var waitErr error
	select {
	case <-done:
	case <-ctx.Done():
		waitErr = ctx.Err()
		d.logger.Warn("gave up waiting for in-flight events", zap.Error(waitErr))
	}

	if err := d.pub.Close(); err != nil {
		return err
	}
	return waitErr
}
