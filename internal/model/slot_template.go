package model

import (
	"fmt"
	"time"
)

// ClockTime время суток с точностью до минуты ("09:00")
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime разбирает строку вида "HH:MM"
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockTimeOf возвращает время суток момента t
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes возвращает количество минут от полуночи
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before сообщает, что c раньше other
func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes() < other.Minutes()
}

// On составляет точный момент времени из календарной даты и времени суток
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// SlotTemplate еженедельное окно, в которое тренер принимает клиентов
type SlotTemplate struct {
	ID        int64        `json:"id"`
	Weekday   time.Weekday `json:"weekday"`  // 0 = Sunday, 6 = Saturday
	Start     ClockTime    `json:"start"`    // Начало окна
	End       ClockTime    `json:"end"`      // Конец окна
	Capacity  int          `json:"capacity"` // Сколько клиентов одновременно
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
}

// DurationMinutes возвращает длительность окна в минутах
func (t *SlotTemplate) DurationMinutes() int {
	return t.End.Minutes() - t.Start.Minutes()
}

// Validate проверяет, что окно можно сохранить
func (t *SlotTemplate) Validate() error {
	if t.Weekday < time.Sunday || t.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", t.Weekday)
	}
	if !t.Start.Before(t.End) {
		return fmt.Errorf("start %s must be before end %s", t.Start, t.End)
	}
	if t.Capacity < 1 {
		return fmt.Errorf("capacity must be positive, got %d", t.Capacity)
	}
	return nil
}
