package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/Freeeeeet/swim_bot/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock реализует Clock через системные часы
type DefaultClock struct{}

// Now возвращает текущее время
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
