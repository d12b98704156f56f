package httputil

import "sync/atomic"

// Semaphore bounds concurrent fire-and-forget work. Acquire never blocks;
// when the limit is reached the caller drops the work and the drop is
// counted, which is the right trade for best-effort report delivery.
type Semaphore struct {
	slots   chan struct{}
	dropped atomic.Int64
}

// NewSemaphore creates a semaphore allowing up to max concurrent holders.
func NewSemaphore(max int) *Semaphore {
	if max <= 0 {
		max = 1
	}
	return &Semaphore{slots: make(chan struct{}, max)}
}

// TryAcquire attempts to take a slot without blocking. Returns false and
// records a drop if the semaphore is full.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Release returns a slot. Must only be called after a successful TryAcquire.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
	}
}

// DroppedCount reports how many acquisitions were rejected.
func (s *Semaphore) DroppedCount() int64 {
	return s.dropped.Load()
}

// Available reports the number of free slots.
func (s *Semaphore) Available() int {
	return cap(s.slots) - len(s.slots)
}
