package tasktype

// CountingTask wraps a Task with a counter and a target limit, guarded by
// the inner Task's SyncData. It signals exactly once per run, the instant
// current reaches limit.
type CountingTask struct {
	*Task
	current int32
	limit   int32
}

// NewCountingTask creates a CountingTask whose inner Task is registered
// the same way a plain Task would be.
func NewCountingTask(name string, managerRef any, limit int32) *CountingTask {
	return &CountingTask{
		Task:  NewTask(name, managerRef),
		limit: limit,
	}
}

// Increment increases current by one. If that brings current to limit it
// signals the SyncData exactly once; the lock is released before
// signalling since SignalOne re-acquires it, and signalling after release
// still happens-before any waiter re-checking the predicate because both
// sides serialize through the same mutex.
func (c *CountingTask) Increment() {
	sd := c.SyncData()
	sd.Lock()
	c.current++
	reachedLimit := c.current == c.limit
	sd.Unlock()

	if reachedLimit {
		sd.SignalOne()
	}
}

// ShouldContinue is the predicate a monitor passes to SyncData.WaitWhile.
// It does not take the SyncData's lock itself: WaitWhile already holds it
// while evaluating the predicate.
func (c *CountingTask) ShouldContinue() bool {
	return c.current < c.limit
}

// SetLimit sets limit and resets current to zero. Only safe to call
// before the first Increment of a given run.
func (c *CountingTask) SetLimit(limit int32) {
	sd := c.SyncData()
	sd.Lock()
	c.limit = limit
	c.current = 0
	sd.Unlock()
}

// Current returns the current count, primarily for diagnostics and tests.
func (c *CountingTask) Current() int32 {
	sd := c.SyncData()
	sd.Lock()
	defer sd.Unlock()
	return c.current
}
