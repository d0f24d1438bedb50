package usecase

import "sync"

// caseLocker serializes mutations per case. Every load-mutate-save cycle
// on a case runs under its mutex so concurrent status changes, assignment
// changes, and unread-counter updates on the same aggregate linearize.
// Cases never share a lock with each other.
type caseLocker struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func newCaseLocker() *caseLocker {
	return &caseLocker{}
}

// Lock acquires the mutex for the given case ID and returns the unlock
// function. Callers must release on all exit paths.
func (l *caseLocker) Lock(caseID int64) func() {
	v, _ := l.locks.LoadOrStore(caseID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
