package service

import (
	"context"
	"sync"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

// TaskWatcher polls the tasks table version and broadcasts a reload hint
// to every subscribed board when it changes. Hints carry no payload: the
// board refetches the full list (no incremental merge).
type TaskWatcher struct {
	store    port.WorkspaceStore
	interval time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu      sync.Mutex
	subs    map[chan struct{}]struct{}
	version string

	closeOnce sync.Once
	done      chan struct{}
}

// NewTaskWatcher creates the watcher. Start must be called to begin
// polling; Close stops it.
func NewTaskWatcher(store port.WorkspaceStore, interval time.Duration, logger *zap.Logger, metrics *observability.Metrics) *TaskWatcher {
	return &TaskWatcher{
		store:    store,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
		subs:     make(map[chan struct{}]struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine.
func (w *TaskWatcher) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TaskWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *TaskWatcher) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	version, err := w.store.TasksVersion(pollCtx)
	if err != nil {
		// Transient store failures just skip a tick.
		w.logger.Debug("task watcher poll failed", zap.Error(err))
		return
	}

	w.mu.Lock()
	changed := w.version != "" && version != w.version
	w.version = version
	subs := make([]chan struct{}, 0, len(w.subs))
	for ch := range w.subs {
		subs = append(subs, ch)
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	w.metrics.IncrWatchReload()
	w.logger.Debug("task board changed, broadcasting reload hint",
		zap.String("version", version),
		zap.Int("subscribers", len(subs)),
	)
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default: // slow subscriber already has a pending hint
		}
	}
}

// Subscribe registers a board listener. The returned channel gets one
// token per detected change; cancel removes the subscription.
func (w *TaskWatcher) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the polling goroutine. Safe to call more than once.
func (w *TaskWatcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}
