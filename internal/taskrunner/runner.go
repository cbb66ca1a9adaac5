// Package taskrunner spawns the concurrent executor a Task runs on. The
// original C library picks a unix (pthreads) or Windows implementation at
// compile time; Go needs none of that split because the runtime's own
// goroutine scheduler is the single cross-platform substrate, so one
// implementation serves every target.
package taskrunner

import "errors"

// ErrSpawnFailed is returned by a Runner that could not start an executor.
// A goroutine cannot itself fail to start under normal operation, so this
// is only reachable through a test double that injects the failure — see
// the tasktype test that gives a Task a failing Runner.
var ErrSpawnFailed = errors.New("taskrunner: failed to spawn executor")

// Runner creates the executor a Task's trampoline runs on.
type Runner interface {
	// Run starts trampoline on a new executor and returns immediately,
	// before trampoline has necessarily begun executing.
	Run(trampoline func()) error
}

// Goroutine is the production Runner: every Task gets its own goroutine,
// which is genuine parallelism on a multi-core Go runtime, matching the
// spec's "two workers may execute on different CPUs simultaneously".
type Goroutine struct{}

// Run always succeeds; goroutine creation does not fail in Go the way a
// pthread_create or CreateThread call can.
func (Goroutine) Run(trampoline func()) error {
	go trampoline()
	return nil
}

// Default is the Runner used by tasktype.Task when none is supplied.
var Default Runner = Goroutine{}
