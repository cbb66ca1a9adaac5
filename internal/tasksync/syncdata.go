// Package tasksync provides the mutex/condition-variable rendezvous that
// the task manager uses to coordinate a monitor with its workers.
package tasksync

import "sync"

// SyncData pairs a mutex with a condition variable. The condition variable
// is only ever waited on or signalled while the mutex is held, which is
// enforced here by never exposing the raw *sync.Cond.
type SyncData struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// New allocates a ready-to-use SyncData.
func New() *SyncData {
	sd := &SyncData{}
	sd.cond = sync.NewCond(&sd.mu)
	return sd
}

// Lock acquires the mutex. Callers that need to mutate state shared with a
// WaitWhile predicate must hold this lock while doing so.
func (sd *SyncData) Lock() {
	sd.mu.Lock()
}

// Unlock releases the mutex.
func (sd *SyncData) Unlock() {
	sd.mu.Unlock()
}

// WaitWhile blocks until predicate returns false, re-checking it on every
// wakeup so spurious wakeups and signals that land between the check and
// the wait are never lost. Must be called with the mutex not held.
func (sd *SyncData) WaitWhile(predicate func() bool) {
	sd.mu.Lock()
	for predicate() {
		sd.cond.Wait()
	}
	sd.mu.Unlock()
}

// SignalOne wakes at most one waiter blocked in WaitWhile. Holding the
// mutex around the wake call is what prevents a signal from racing a
// waiter that has evaluated the predicate but not yet entered the wait.
// Signalling with no waiter present is a harmless no-op.
func (sd *SyncData) SignalOne() {
	sd.mu.Lock()
	sd.cond.Signal()
	sd.mu.Unlock()
}
