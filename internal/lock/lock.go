package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLockBusy возвращается, если блокировку не удалось получить за отведённое время
var ErrLockBusy = errors.New("lock is busy")

// DefaultWait сколько ждать освобождения блокировки
const DefaultWait = 3 * time.Second

// Locker сериализует операции над одним ключом (например, одним окном расписания).
// Release идемпотентен.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
