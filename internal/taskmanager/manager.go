// Package taskmanager implements the Manager: the component that owns a
// set of worker Tasks plus a monitor CountingTask, and runs a cleanup
// exactly once after the last worker finishes.
package taskmanager

import (
	"errors"
	"sync"
	"sync/atomic"

	"taskplatform/internal/taskevent"
	"taskplatform/internal/tasksync"
	"taskplatform/internal/tasktype"
)

// state is the Manager's lifecycle stage.
type state int32

const (
	stateReady state = iota
	stateRunning
	stateFinishing
	stateFreed
)

// CleanupFunc runs exactly once, on the monitor's goroutine, after every
// worker task has reported completion. It takes the place of the source's
// atm_cleanup_fn hook.
type CleanupFunc func(data any)

// ErrAlreadyPrepared is returned by Prepare if called more than once.
var ErrAlreadyPrepared = errors.New("taskmanager: already prepared")

// ErrNotPrepared is returned by StartWorkers if Prepare has not run yet.
var ErrNotPrepared = errors.New("taskmanager: not prepared")

// Manager owns a slice of worker Tasks, a monitor CountingTask, and a
// SyncData the two sides rendezvous through. Unlike the source's
// AsyncTasksManager, there is nothing to free explicitly: once done is
// closed and nothing references the Manager, the garbage collector
// retires it.
type Manager struct {
	name string

	sync    *tasksync.SyncData
	tasks   []*tasktype.Task
	monitor *tasktype.CountingTask

	cleanupFn   CleanupFunc
	cleanupData any

	mu    sync.Mutex
	st    atomic.Int32
	inUse atomic.Bool
	done  chan struct{}
	once  sync.Once
}

// New allocates a Manager with the given diagnostic name and cleanup
// hook. cleanupFn may be nil, in which case completion is signalled
// through Done alone.
func New(name string, cleanupFn CleanupFunc, cleanupData any) *Manager {
	sd := tasksync.New()

	m := &Manager{
		name:        name,
		sync:        sd,
		cleanupFn:   cleanupFn,
		cleanupData: cleanupData,
		done:        make(chan struct{}),
	}

	m.monitor = tasktype.NewCountingTask(name+".monitor", m, 0)
	m.monitor.SetSyncData(sd)
	m.monitor.SetConsumer(taskevent.Func(func(taskevent.CompletedTask) {
		m.runCleanup()
	}))

	return m
}

// NewWorkerTask allocates a Task bound to this Manager's SyncData and
// registers it, returning the Task so the caller can still set its run
// function and arguments. This mirrors AddAsyncTaskToAsyncTasksManager
// followed by the per-task wiring PrepareAsyncTasksManager does later,
// except the consumer is attached here too since no task can be added
// after Prepare runs.
func (m *Manager) NewWorkerTask(name string) *tasktype.Task {
	t := tasktype.NewTask(name, m)
	t.SetSyncData(m.sync)
	t.SetConsumer(taskevent.Func(func(taskevent.CompletedTask) {
		m.monitor.Increment()
	}))

	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.mu.Unlock()

	return t
}

// Prepare sets the monitor's limit to initialCounterValue plus the number
// of registered workers and spawns the monitor's own executor. Unlike
// PrepareAsyncTasksManager, this always spawns the monitor even with zero
// workers registered: an empty Manager still needs its cleanup to fire
// exactly once, rather than never firing at all.
func (m *Manager) Prepare(initialCounterValue int32) error {
	if !m.st.CompareAndSwap(int32(stateReady), int32(stateRunning)) {
		return ErrAlreadyPrepared
	}

	m.mu.Lock()
	limit := initialCounterValue + int32(len(m.tasks))
	m.mu.Unlock()

	m.monitor.SetLimit(limit)
	m.inUse.Store(true)

	m.monitor.SetRun(func(any) any {
		m.sync.WaitWhile(m.monitor.ShouldContinue)
		return nil
	}, nil)

	return m.monitor.Run()
}

// StartWorkers runs every registered worker Task. It does not roll back
// tasks already started if a later one fails to spawn, matching the
// source's StartAsyncTaskManagerWorkers: a spawn failure is reported, but
// workers already running keep running and will still increment the
// monitor when they finish.
func (m *Manager) StartWorkers() error {
	if state(m.st.Load()) == stateReady {
		return ErrNotPrepared
	}

	m.mu.Lock()
	tasks := append([]*tasktype.Task(nil), m.tasks...)
	m.mu.Unlock()

	for _, t := range tasks {
		if err := t.Run(); err != nil {
			return err
		}
	}
	return nil
}

// RunAll is the convenience path equivalent to RunAsyncTasksManagerTasks:
// Prepare with an initial counter of zero, then StartWorkers.
func (m *Manager) RunAll() error {
	if err := m.Prepare(0); err != nil {
		return err
	}
	return m.StartWorkers()
}

// IncrementCount increments the monitor directly, for callers driving
// completion outside of the normal Task/consumer wiring (for example a
// worker whose RunFunc reports completion asynchronously via a callback
// of its own).
func (m *Manager) IncrementCount() {
	m.monitor.Increment()
}

// Name returns the Manager's diagnostic name.
func (m *Manager) Name() string { return m.name }

// Running reports whether the Manager has been prepared and has not yet
// finished its cleanup.
func (m *Manager) Running() bool { return m.inUse.Load() }

// Done returns a channel closed once cleanup has run and the Manager has
// transitioned to its freed state.
func (m *Manager) Done() <-chan struct{} { return m.done }

// runCleanup fires at most once, regardless of how many times the
// monitor's consumer might be invoked, and transitions the Manager to
// stateFreed before returning.
func (m *Manager) runCleanup() {
	m.once.Do(func() {
		m.st.Store(int32(stateFinishing))

		if m.cleanupFn != nil {
			m.cleanupFn(m.cleanupData)
		}

		m.inUse.Store(false)
		m.st.Store(int32(stateFreed))
		close(m.done)
	})
}
