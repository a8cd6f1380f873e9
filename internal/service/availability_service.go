package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"go.uber.org/zap"
)

// Window окно расписания на конкретную дату
type Window struct {
	TemplateID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Capacity   int
	Booked     int // тренировки в статусах scheduled и completed
}

// Bookable сообщает, есть ли в окне свободное место
func (w Window) Bookable() bool {
	return w.Booked < w.Capacity
}

// Free возвращает число свободных мест
func (w Window) Free() int {
	if w.Booked >= w.Capacity {
		return 0
	}
	return w.Capacity - w.Booked
}

// Day окна одной даты
type Day struct {
	Date    time.Time
	Windows []Window
}

type AvailabilityService struct {
	templates   SlotTemplateStore
	sessions    SessionStore
	clock       clock.Clock
	loc         *time.Location
	bookingDays int
	logger      *zap.Logger
}

// AvailabilityConfig параметры AvailabilityService
type AvailabilityConfig struct {
	Templates   SlotTemplateStore
	Sessions    SessionStore
	Clock       clock.Clock
	Location    *time.Location
	BookingDays int
	Logger      *zap.Logger
}

func NewAvailabilityService(cfg AvailabilityConfig) *AvailabilityService {
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.BookingDays < 1 {
		cfg.BookingDays = 7
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AvailabilityService{
		templates:   cfg.Templates,
		sessions:    cfg.Sessions,
		clock:       cfg.Clock,
		loc:         cfg.Location,
		bookingDays: cfg.BookingDays,
		logger:      cfg.Logger,
	}
}

// Location часовой пояс тренера
func (s *AvailabilityService) Location() *time.Location {
	return s.loc
}

// Resolve возвращает окна даты по шаблонам расписания с отметкой занятости.
// Пустой результат означает, что в этот день тренер не принимает.
func (s *AvailabilityService) Resolve(ctx context.Context, date time.Time) ([]Window, error) {
	day := startOfDay(date, s.loc)

	templates, err := s.templates.ListActiveByWeekday(ctx, day.Weekday())
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, nil
	}

	occupancy, err := s.sessions.OccupancyBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load occupancy: %w", err)
	}

	windows := make([]Window, 0, len(templates))
	for _, tmpl := range templates {
		startsAt := tmpl.Start.On(day, s.loc)
		windows = append(windows, Window{
			TemplateID: tmpl.ID,
			StartsAt:   startsAt,
			EndsAt:     tmpl.End.On(day, s.loc),
			Capacity:   tmpl.Capacity,
			Booked:     occupancy[startsAt.UTC()],
		})
	}

	return windows, nil
}

// OpenWindows то же, что Resolve, но без окон, которые уже начались
func (s *AvailabilityService) OpenWindows(ctx context.Context, date time.Time) ([]Window, error) {
	windows, err := s.Resolve(ctx, date)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	open := windows[:0]
	for _, w := range windows {
		if w.StartsAt.After(now) {
			open = append(open, w)
		}
	}
	return open, nil
}

// BookableDates возвращает даты, на которые можно записаться, начиная с сегодняшней
func (s *AvailabilityService) BookableDates() []time.Time {
	today := startOfDay(s.clock.Now(), s.loc)

	dates := make([]time.Time, 0, s.bookingDays)
	for i := 0; i < s.bookingDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// WeekOverview окна на 7 дней начиная с from
func (s *AvailabilityService) WeekOverview(ctx context.Context, from time.Time) ([]Day, error) {
	start := startOfDay(from, s.loc)

	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		windows, err := s.Resolve(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", date.Format("2006-01-02"), err)
		}
		days = append(days, Day{Date: date, Windows: windows})
	}
	return days, nil
}

// startOfDay полночь календарной даты t в часовом поясе loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// startOfWeek понедельник недели, содержащей t
func startOfWeek(t time.Time, loc *time.Location) time.Time {
	day := startOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// startOfMonth первое число месяца, содержащего t
func startOfMonth(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}
