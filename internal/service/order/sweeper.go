package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

// ErrSweeperClosed is returned by Watch after Close.
var ErrSweeperClosed = errors.New("sweeper closed")

type sweepTarget interface {
	ListOrders(ctx context.Context, scope string) ([]domain.Order, error)
	AdvanceStatuses(ctx context.Context, scope string) ([]domain.Order, error)
}

// DefaultWatchIdle is how long a sweep outlives its last Watch when no
// other idle timeout is configured.
const DefaultWatchIdle = 2 * time.Minute

// Sweeper runs the periodic status sweep. It keeps at most one task per
// scope. A task ends by itself once its scope has no orders left or once no
// Watch has renewed it for the idle timeout.
type Sweeper struct {
	target   sweepTarget
	interval time.Duration
	idle     time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	tasks  map[string]*sweepTask
	closed bool
	wg     sync.WaitGroup
}

type sweepTask struct {
	cancel context.CancelFunc
	done   chan struct{}

	// guarded by Sweeper.mu
	lastSeen time.Time
	renewals uint64
	stopping bool
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper)

// WithIdleTimeout sets how long a task keeps sweeping without a Watch.
func WithIdleTimeout(d time.Duration) SweeperOption {
	return func(w *Sweeper) {
		if d > 0 {
			w.idle = d
		}
	}
}

// NewSweeper sweeps target every interval for each watched scope.
func NewSweeper(target sweepTarget, interval time.Duration, logger *zap.Logger, opts ...SweeperOption) *Sweeper {
	w := &Sweeper{
		target:   target,
		interval: interval,
		idle:     DefaultWatchIdle,
		logger:   logger,
		tasks:    make(map[string]*sweepTask),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts the sweep for scope when it has orders and no sweep is
// running, and renews the lease of a running one. It reports whether a sweep
// is running when it returns.
func (w *Sweeper) Watch(ctx context.Context, scope string) (bool, error) {
	orders, err := w.target.ListOrders(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("watch %q: %w", scope, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false, ErrSweeperClosed
	}
	if t, ok := w.tasks[scope]; ok && !t.stopping {
		t.lastSeen = time.Now()
		t.renewals++
		return true, nil
	}
	if len(orders) == 0 {
		return false, nil
	}

	// A stopping task is replaced; its release leaves the new entry alone.
	taskCtx, cancel := context.WithCancel(context.Background())
	t := &sweepTask{cancel: cancel, done: make(chan struct{}), lastSeen: time.Now()}
	w.tasks[scope] = t
	w.wg.Add(1)
	metrics.ActiveSweepers.Inc()
	go w.run(taskCtx, scope, t)

	w.logger.Debug("sweep started", zap.String("scope", scope), zap.Duration("interval", w.interval))
	return true, nil
}

// Unwatch stops the sweep for scope and waits for it to exit.
func (w *Sweeper) Unwatch(scope string) {
	w.mu.Lock()
	t, ok := w.tasks[scope]
	delete(w.tasks, scope)
	w.mu.Unlock()

	if ok {
		t.cancel()
		<-t.done
	}
}

// Running reports whether a sweep task exists for scope.
func (w *Sweeper) Running(scope string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.tasks[scope]
	return ok && !t.stopping
}

// Close stops every sweep and rejects further Watch calls.
func (w *Sweeper) Close() {
	w.mu.Lock()
	w.closed = true
	tasks := w.tasks
	w.tasks = make(map[string]*sweepTask)
	w.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	w.wg.Wait()
}

func (w *Sweeper) run(ctx context.Context, scope string, t *sweepTask) {
	defer w.wg.Done()
	defer close(t.done)
	defer metrics.ActiveSweepers.Dec()
	defer w.release(scope, t)
	defer t.cancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			renewals, expired := w.lease(t)
			if expired {
				w.logger.Debug("sweep stopped, no viewer", zap.String("scope", scope))
				return
			}
			orders, err := w.target.AdvanceStatuses(ctx, scope)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logger.Error("sweep failed", zap.String("scope", scope), zap.Error(err))
				continue
			}
			if len(orders) == 0 && w.stopUnlessRenewed(t, renewals) {
				w.logger.Debug("sweep stopped, no orders", zap.String("scope", scope))
				return
			}
		}
	}
}

// lease reports the renewal count seen before this tick, and marks t as
// stopping when its idle timeout has passed.
func (w *Sweeper) lease(t *sweepTask) (uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if time.Since(t.lastSeen) > w.idle {
		t.stopping = true
	}
	return t.renewals, t.stopping
}

// stopUnlessRenewed marks t as stopping unless a Watch arrived after the
// sweep began, since that Watch may follow a newly placed order.
func (w *Sweeper) stopUnlessRenewed(t *sweepTask, renewals uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t.renewals != renewals {
		return false
	}
	t.stopping = true
	return true
}

func (w *Sweeper) release(scope string, t *sweepTask) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tasks[scope] == t {
		delete(w.tasks, scope)
	}
}
