package tasktype

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskplatform/internal/taskevent"
	"taskplatform/internal/taskrunner"
)

func TestTaskRunFiresConsumerAfterRunFn(t *testing.T) {
	task := NewTask("worker", nil)

	var ranBeforeConsumer atomic.Bool
	var consumerFired atomic.Bool

	task.SetRun(func(data any) any {
		time.Sleep(5 * time.Millisecond)
		ranBeforeConsumer.Store(true)
		return nil
	}, nil)

	done := make(chan struct{})
	task.SetConsumer(taskevent.Func(func(completed taskevent.CompletedTask) {
		if !ranBeforeConsumer.Load() {
			t.Error("consumer fired before run function returned")
		}
		consumerFired.Store(true)
		close(done)
	}))

	if err := task.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer never fired")
	}

	if !consumerFired.Load() {
		t.Fatal("consumer was not recorded as fired")
	}
}

func TestTaskRunWithoutRunFunctionFails(t *testing.T) {
	task := NewTask("empty", nil)
	if err := task.Run(); !errors.Is(err, ErrNoRunFunction) {
		t.Fatalf("expected ErrNoRunFunction, got %v", err)
	}
}

func TestTaskCloseIsIdempotent(t *testing.T) {
	task := NewTask("worker", nil)
	task.Close()
	task.Close()
	if !task.Closed() {
		t.Fatal("expected task to be closed")
	}
}

func TestTaskRunSurfacesSpawnError(t *testing.T) {
	task := NewTask("worker", nil)
	task.SetRun(func(data any) any { return nil }, nil)
	task.SetRunner(failingRunner{})

	if err := task.Run(); !errors.Is(err, taskrunner.ErrSpawnFailed) {
		t.Fatalf("expected ErrSpawnFailed, got %v", err)
	}
}

type failingRunner struct{}

func (failingRunner) Run(trampoline func()) error {
	return taskrunner.ErrSpawnFailed
}
