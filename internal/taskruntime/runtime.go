// Package taskruntime tracks every Manager created during the process's
// lifetime and gives graceful shutdown a single place to wait on them.
// The source's equivalent, CloseAllAsyncTasks, is a platform-global no-op
// (the Unix implementation is "pthread_exit" commented out, returning
// true unconditionally); Go's model has no process-wide thread registry
// to unwind, so this is an explicit, constructed object instead of a
// global function.
package taskruntime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskplatform/internal/taskmanager"
)

// Runtime owns the set of Managers a process has started and coordinates
// their shutdown.
type Runtime struct {
	log *zap.Logger

	mu       sync.Mutex
	managers map[string]*taskmanager.Manager
}

// New creates an empty Runtime. A nil logger is replaced with zap.NewNop.
func New(log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		log:      log,
		managers: make(map[string]*taskmanager.Manager),
	}
}

// Track registers a Manager so Shutdown will wait for it. Track is safe
// to call concurrently with Shutdown; a Manager registered after
// Shutdown has already started is not waited on.
func (r *Runtime) Track(m *taskmanager.Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers[m.Name()] = m
}

// Untrack removes a Manager from the tracked set, for long-lived
// processes that create and discard many short-lived Managers over
// time and don't want the map to grow without bound.
func (r *Runtime) Untrack(m *taskmanager.Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, m.Name())
}

// Shutdown waits for every tracked Manager to finish its cleanup, or for
// ctx to be cancelled, whichever happens first. The model is cooperative:
// Shutdown never forces a worker's run function to return early, it only
// waits for the monitor to observe that all of them already have.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	pending := make([]*taskmanager.Manager, 0, len(r.managers))
	for _, m := range r.managers {
		if m.Running() {
			pending = append(pending, m)
		}
	}
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	r.log.Info("waiting for managers to finish", zap.Int("count", len(pending)))

	for _, m := range pending {
		select {
		case <-m.Done():
		case <-ctx.Done():
			r.log.Warn("shutdown deadline hit before manager finished", zap.String("manager", m.Name()))
			return ctx.Err()
		}
	}

	return nil
}
