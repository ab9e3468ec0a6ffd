package services

import (
	"context"
	"sync"
	"time"
)

// keyedLock serializes work per string key. Acquisition is bounded: a
// caller that cannot take the key within the timeout gets ErrBusy instead
// of blocking forever.
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: make(map[string]chan struct{})}
}

func (l *keyedLock) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// acquire takes the key or fails with ErrBusy after timeout. A canceled
// context fails immediately without taking the key.
func (l *keyedLock) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := l.slot(key)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return nil
	case <-timer.C:
		return domainErrf(KindBusy, "", "capacity ledger busy for key %s, retry later", key)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *keyedLock) release(key string) {
	<-l.slot(key)
}
