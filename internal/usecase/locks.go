package usecase

import "sync"

// LeadLocker serializes campaign mutations per lead. The daily tick and an
// inbound reply can race on the same lead; whoever locks first completes its
// transition, the other re-reads and sees the new state. Different leads
// never contend.
type LeadLocker struct {
	locks sync.Map // lead id -> *sync.Mutex
}

func NewLeadLocker() *LeadLocker {
	return &LeadLocker{}
}

// Lock acquires the lead's mutex and returns the unlock func.
func (l *LeadLocker) Lock(leadID string) func() {
	v, _ := l.locks.LoadOrStore(leadID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
