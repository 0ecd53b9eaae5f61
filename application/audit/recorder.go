// Package audit runs the best-effort audit pipeline: services hand finished
// operation outcomes to a Recorder, a background worker persists them
// outside any business transaction.
package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daniel-torresc/emerald-backend-sub002/config"
	domainaudit "github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
	"github.com/daniel-torresc/emerald-backend-sub002/pkg/logger"
)

const (
	defaultBufferSize   = 256
	defaultWriteTimeout = 5 * time.Second
)

// AsyncRecorder accepts events on a bounded buffer and persists them on a
// single background worker. Record never blocks the caller and never fails
// the calling operation: when the buffer is full the event is dropped and
// logged. Close stops intake and drains what was already accepted.
type AsyncRecorder struct {
	store        domainaudit.Store
	events       chan domainaudit.Event
	writeTimeout time.Duration

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

func NewAsyncRecorder(store domainaudit.Store, cfg config.AuditConfig) *AsyncRecorder {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	r := &AsyncRecorder{
		store:        store,
		events:       make(chan domainaudit.Event, bufferSize),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues the event. The caller's context is not used for the
// write; persistence happens later on the worker with its own deadline.
// Events arriving after Close are dropped; a handler that outlives the
// shutdown deadline must not crash the process.
func (r *AsyncRecorder) Record(ctx context.Context, e domainaudit.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		logger.Warn("audit recorder closed, event dropped",
			zap.String("action", e.Action),
			zap.String("aggregate_type", e.AggregateType),
			zap.String("aggregate_id", e.AggregateID),
		)
		return
	}

	select {
	case r.events <- e:
	default:
		logger.Warn("audit buffer full, event dropped",
			zap.String("action", e.Action),
			zap.String("aggregate_type", e.AggregateType),
			zap.String("aggregate_id", e.AggregateID),
		)
	}
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for e := range r.events {
		r.persist(e)
	}
}

func (r *AsyncRecorder) persist(e domainaudit.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.store.Save(ctx, e); err != nil {
		logger.Warn("audit event write failed",
			zap.String("action", e.Action),
			zap.String("aggregate_type", e.AggregateType),
			zap.String("aggregate_id", e.AggregateID),
			zap.Error(err),
		)
	}
}

// Close stops accepting events and waits until the buffered ones are
// written or the context expires.
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.events)
	})
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ domainaudit.Recorder = (*AsyncRecorder)(nil)
