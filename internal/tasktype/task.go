// Package tasktype implements the Task and CountingTask building blocks:
// one unit of cooperatively-run work, and a counting specialization used
// as the manager's monitor.
package tasktype

import (
	"errors"
	"sync/atomic"

	"taskplatform/internal/taskevent"
	"taskplatform/internal/tasksync"
	"taskplatform/internal/taskrunner"
)

// ErrNoRunFunction is returned by Run when no run function has been set.
var ErrNoRunFunction = errors.New("tasktype: no run function set")

// RunFunc is the user-supplied body of a Task. It must eventually return;
// it must not free or otherwise retire its own Task, and any error it
// encounters is the caller's to surface through its own result value —
// the manager that drives a Task only ever sees that the Task returned.
type RunFunc func(data any) any

// Task is one unit of work executed by a single concurrent executor at a
// time. Unlike the C original, a Task never frees itself or the resources
// it references: Go's garbage collector retires them once nothing holds a
// reference, which is why the owned/borrowed ownership flags from the
// source model have no equivalent here.
type Task struct {
	name        string
	runFn       RunFunc
	runData     any
	sync        *tasksync.SyncData
	consumer    taskevent.EventConsumer
	managerRef  any
	runner      taskrunner.Runner
	running     atomic.Bool
	closed      atomic.Bool
	hasExecutor atomic.Bool
}

// NewTask creates a Task with the given diagnostic name and an opaque
// back-reference to whatever owns it (typically a *taskmanager.Manager).
// It is not registered with anything; registration, where wanted, is the
// owner's job (see taskmanager.Manager.NewWorkerTask).
func NewTask(name string, managerRef any) *Task {
	return &Task{
		name:       name,
		managerRef: managerRef,
		runner:     taskrunner.Default,
	}
}

// Name returns the Task's diagnostic name.
func (t *Task) Name() string { return t.name }

// TaskName satisfies taskevent.CompletedTask.
func (t *Task) TaskName() string { return t.name }

// ManagerRef returns the opaque back-reference supplied at construction.
func (t *Task) ManagerRef() any { return t.managerRef }

// SetSyncData replaces the Task's SyncData reference.
func (t *Task) SetSyncData(sd *tasksync.SyncData) { t.sync = sd }

// SyncData returns the Task's current SyncData, or nil if none is set.
func (t *Task) SyncData() *tasksync.SyncData { return t.sync }

// SetRun stores the user function and its opaque argument. Neither is
// copied.
func (t *Task) SetRun(fn RunFunc, data any) {
	t.runFn = fn
	t.runData = data
}

// SetConsumer stores the completion consumer fired once the run function
// returns.
func (t *Task) SetConsumer(c taskevent.EventConsumer) { t.consumer = c }

// SetRunner overrides the executor the Task spawns on. Tests use this to
// inject a Runner that fails, exercising the ExecutorSpawnError path that
// a real goroutine can't produce on its own.
func (t *Task) SetRunner(r taskrunner.Runner) { t.runner = r }

// IsRunning reports whether the run function is currently executing.
func (t *Task) IsRunning() bool { return t.running.Load() }

// Run spawns an executor that calls the run function with its stored
// data, then — if a consumer is set — fires it. It returns as soon as the
// executor has been spawned, not once the run function has completed.
func (t *Task) Run() error {
	if t.runFn == nil {
		return ErrNoRunFunction
	}

	runner := t.runner
	if runner == nil {
		runner = taskrunner.Default
	}

	err := runner.Run(func() {
		t.running.Store(true)
		t.runFn(t.runData)
		t.running.Store(false)

		if t.consumer != nil {
			t.consumer.OnTaskComplete(t)
		}
	})
	if err != nil {
		return err
	}

	t.hasExecutor.Store(true)
	return nil
}

// Close marks the executor handle invalid. It does not forcibly terminate
// a running executor — the model is cooperative, so the run function must
// return on its own — and is idempotent: calling it twice after the first
// call has no further effect.
func (t *Task) Close() {
	t.hasExecutor.Store(false)
	t.closed.Store(true)
}

// Closed reports whether Close has been called.
func (t *Task) Closed() bool { return t.closed.Load() }
