package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/metrics"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ReminderLead за сколько до начала отправляется напоминание
	ReminderLead = time.Hour
	// ReminderSpan ширина окна выборки; совпадает с периодом запуска
	ReminderSpan = 5 * time.Minute
)

// SweepReport итог одного прохода рассылки
type SweepReport struct {
	RunID    string
	Selected int
	Sent     int
	Skipped  int // у клиента выключены напоминания
	Failed   int
}

type ReminderService struct {
	sessions SessionStore
	notifier Notifier
	clock    clock.Clock
	loc      *time.Location
	logger   *zap.Logger
}

// ReminderConfig параметры ReminderService
type ReminderConfig struct {
	Sessions SessionStore
	Notifier Notifier
	Clock    clock.Clock
	Location *time.Location
	Logger   *zap.Logger
}

func NewReminderService(cfg ReminderConfig) *ReminderService {
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &ReminderService{
		sessions: cfg.Sessions,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		loc:      cfg.Location,
		logger:   cfg.Logger,
	}
}

// ReminderWindow границы выборки [now+1h, now+1h+5m], обе включительно
func ReminderWindow(now time.Time) (from, to time.Time) {
	from = now.Add(ReminderLead)
	return from, from.Add(ReminderSpan)
}

// Sweep рассылает напоминания о тренировках, начинающихся примерно через час.
// Флаг notified взводится только после успешной отправки, поэтому неудачные
// отправки повторяются при следующем запуске.
func (s *ReminderService) Sweep(ctx context.Context) (SweepReport, error) {
	started := time.Now()
	defer func() { metrics.ObserveSweep(time.Since(started)) }()

	report := SweepReport{RunID: uuid.NewString()}
	from, to := ReminderWindow(s.clock.Now())

	sessions, err := s.sessions.ListDueForReminder(ctx, from, to)
	if err != nil {
		metrics.RecordError("reminder")
		return report, fmt.Errorf("list due sessions: %w", err)
	}
	report.Selected = len(sessions)

	for _, session := range sessions {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		client := session.Client
		if client == nil || !client.NotificationsEnabled {
			report.Skipped++
			metrics.RecordReminder("skipped")
			continue
		}

		if err := s.notifier.Notify(ctx, client.TelegramID, ReminderText(session, s.loc)); err != nil {
			report.Failed++
			metrics.RecordReminder("failed")
			s.logger.Warn("Failed to send reminder",
				zap.String("run_id", report.RunID),
				zap.Int64("session_id", session.ID),
				zap.Int64("telegram_id", client.TelegramID),
				zap.Error(err),
			)
			continue
		}

		report.Sent++
		metrics.RecordReminder("sent")

		if err := s.sessions.MarkNotified(ctx, session.ID); err != nil {
			// Напоминание уйдёт повторно на следующем проходе
			s.logger.Error("Reminder sent but notified flag not saved",
				zap.String("run_id", report.RunID),
				zap.Int64("session_id", session.ID),
				zap.Error(err),
			)
		}
	}

	if report.Selected > 0 {
		s.logger.Info("Reminder sweep finished",
			zap.String("run_id", report.RunID),
			zap.Time("window_from", from),
			zap.Time("window_to", to),
			zap.Int("selected", report.Selected),
			zap.Int("sent", report.Sent),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
		)
	}

	return report, nil
}

// ReminderText текст напоминания о тренировке
func ReminderText(session *model.Session, loc *time.Location) string {
	start := session.StartsAt.In(loc)
	return fmt.Sprintf(
		"⏰ Напоминание!\n\n"+
			"Через час у вас тренировка по плаванию.\n"+
			"📅 %s\n"+
			"🕐 %s\n\n"+
			"До встречи в бассейне! 🏊",
		formatting.FormatLongDate(start),
		formatting.FormatTimeRange(start, session.EndsAt().In(loc)),
	)
}
