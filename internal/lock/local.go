package lock

import (
	"context"
	"sync"
	"time"
)

// Local блокировки внутри одного процесса. Используется, когда Redis не настроен.
type Local struct {
	mu    sync.Mutex
	slots map[string]*localSlot
	wait  time.Duration
}

// localSlot удаляется из карты, когда его не держит и не ждёт ни один вызов
type localSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocal(wait time.Duration) *Local {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Local{
		slots: make(map[string]*localSlot),
		wait:  wait,
	}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s.ch
}

func (l *Local) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		return
	}
	s.refs--
	if s.refs <= 0 {
		delete(l.slots, key)
	}
}

// Acquire ждёт освобождения ключа. ttl не используется: блокировка живёт до release.
func (l *Local) Acquire(ctx context.Context, key string, _ time.Duration) (func(), error) {
	ch := l.slot(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	case <-timer.C:
		l.unref(key)
		return nil, ErrLockBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-ch
			l.unref(key)
		})
	}, nil
}
