package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
)

// ClientStore хранилище клиентов (repository.ClientRepository)
type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	UpdateProfile(ctx context.Context, client *model.Client) error
	SetNotifications(ctx context.Context, id int64, enabled bool) error
	CountClients(ctx context.Context) (int, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
}

// SlotTemplateStore хранилище окон расписания (repository.SlotTemplateRepository)
type SlotTemplateStore interface {
	Create(ctx context.Context, tmpl *model.SlotTemplate) error
	GetByID(ctx context.Context, id int64) (*model.SlotTemplate, error)
	ListActiveByWeekday(ctx context.Context, weekday time.Weekday) ([]*model.SlotTemplate, error)
	FindActive(ctx context.Context, weekday time.Weekday, start model.ClockTime) (*model.SlotTemplate, error)
	ListAll(ctx context.Context) ([]*model.SlotTemplate, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

//go:generate mockgen -package=mocks -destination=mocks/mock_ports.go github.com/Freeeeeet/swim_bot/internal/service SessionStore,Notifier

// SessionStore хранилище тренировок (repository.SessionRepository)
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetByIDWithClient(ctx context.Context, id int64) (*model.Session, error)
	FindScheduled(ctx context.Context, clientID int64, startsAt time.Time) (*model.Session, error)
	CountOccupying(ctx context.Context, startsAt time.Time) (int, error)
	OccupancyBetween(ctx context.Context, from, to time.Time) (map[time.Time]int, error)
	UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error
	MarkNotified(ctx context.Context, id int64) error
	ListUpcomingByClient(ctx context.Context, clientID int64, from time.Time, limit int) ([]*model.Session, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*model.Session, error)
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.Session, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Session, error)
	CountByStatus(ctx context.Context, status model.SessionStatus, from, to time.Time) (int, error)
	CountScheduledFrom(ctx context.Context, from time.Time) (int, error)
	CountCompletedByClient(ctx context.Context) (map[int64]int, error)
}

// TutorialStore хранилище обучающих материалов
type TutorialStore interface {
	ListByStyle(ctx context.Context, style model.SwimStyle) ([]*model.Tutorial, error)
}

// Notifier канал доставки напоминаний клиенту
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}
