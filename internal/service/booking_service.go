package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"github.com/Freeeeeet/swim_bot/internal/lock"
	"github.com/Freeeeeet/swim_bot/internal/metrics"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository"
	"go.uber.org/zap"
)

const (
	// upcomingLimit сколько тренировок показывать в "Мои тренировки"
	upcomingLimit = 10
	// cancellableLimit сколько тренировок предлагать к отмене
	cancellableLimit = 20
	// slotLockTTL время жизни блокировки окна на случай падения процесса
	slotLockTTL = 10 * time.Second
)

type BookingService struct {
	templates SlotTemplateStore
	sessions  SessionStore
	locker    lock.Locker
	clock     clock.Clock
	loc       *time.Location
	logger    *zap.Logger
}

// BookingConfig параметры BookingService
type BookingConfig struct {
	Templates SlotTemplateStore
	Sessions  SessionStore
	Locker    lock.Locker
	Clock     clock.Clock
	Location  *time.Location
	Logger    *zap.Logger
}

func NewBookingService(cfg BookingConfig) *BookingService {
	if cfg.Locker == nil {
		cfg.Locker = lock.NewLocal(lock.DefaultWait)
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &BookingService{
		templates: cfg.Templates,
		sessions:  cfg.Sessions,
		locker:    cfg.Locker,
		clock:     cfg.Clock,
		loc:       cfg.Location,
		logger:    cfg.Logger,
	}
}

// Book записывает клиента на тренировку в startsAt.
// Проверка занятости и вставка выполняются под блокировкой окна.
func (s *BookingService) Book(ctx context.Context, client *model.Client, startsAt time.Time) (*model.Session, error) {
	session, err := s.book(ctx, client, startsAt)
	metrics.RecordBooking(bookingResult(err))
	return session, err
}

func (s *BookingService) book(ctx context.Context, client *model.Client, startsAt time.Time) (*model.Session, error) {
	if !startsAt.After(s.clock.Now()) {
		return nil, ErrSlotInPast
	}

	local := startsAt.In(s.loc)
	tmpl, err := s.templates.FindActive(ctx, local.Weekday(), model.ClockTimeOf(local))
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	if tmpl == nil {
		return nil, ErrSlotNotOffered
	}

	release, err := s.locker.Acquire(ctx, slotLockKey(startsAt), slotLockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	defer release()

	existing, err := s.sessions.FindScheduled(ctx, client.ID, startsAt)
	if err != nil {
		return nil, fmt.Errorf("check existing session: %w", err)
	}
	if existing != nil {
		return existing, ErrAlreadyBooked
	}

	booked, err := s.sessions.CountOccupying(ctx, startsAt)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if booked >= tmpl.Capacity {
		return nil, ErrSlotFull
	}

	session := &model.Session{
		ClientID:        client.ID,
		StartsAt:        startsAt,
		DurationMinutes: tmpl.DurationMinutes(),
		Status:          model.SessionStatusScheduled,
		Notified:        false,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Session booked",
		zap.Int64("session_id", session.ID),
		zap.Int64("client_id", client.ID),
		zap.Time("starts_at", startsAt),
		zap.Int("booked", booked+1),
		zap.Int("capacity", tmpl.Capacity),
	)

	return session, nil
}

// Cancel отменяет тренировку. Отменить можно только свою тренировку, администратор может отменить любую.
// Повторная отмена уже отменённой тренировки проходит без ошибки.
func (s *BookingService) Cancel(ctx context.Context, requester *model.Client, sessionID int64) (*model.Session, error) {
	session, err := s.cancel(ctx, requester, sessionID)
	metrics.RecordCancellation(cancellationResult(err))
	return session, err
}

func (s *BookingService) cancel(ctx context.Context, requester *model.Client, sessionID int64) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.ClientID != requester.ID && !requester.IsAdmin {
		s.logger.Warn("Cancel attempt on foreign session",
			zap.Int64("session_id", sessionID),
			zap.Int64("requester_id", requester.ID),
			zap.Int64("owner_id", session.ClientID),
		)
		return nil, ErrNotSessionOwner
	}

	switch session.Status {
	case model.SessionStatusCancelled:
		return session, nil
	case model.SessionStatusScheduled:
	default:
		return nil, ErrSessionNotCancellable
	}

	if err := s.sessions.UpdateStatus(ctx, session.ID, model.SessionStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel session: %w", err)
	}
	session.Status = model.SessionStatusCancelled

	s.logger.Info("Session cancelled",
		zap.Int64("session_id", session.ID),
		zap.Int64("client_id", session.ClientID),
		zap.Int64("cancelled_by", requester.ID),
		zap.Time("starts_at", session.StartsAt),
	)

	return session, nil
}

// Upcoming ближайшие запланированные тренировки клиента
func (s *BookingService) Upcoming(ctx context.Context, clientID int64) ([]*model.Session, error) {
	sessions, err := s.sessions.ListUpcomingByClient(ctx, clientID, s.clock.Now(), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}
	return sessions, nil
}

// CancellableSessions тренировки клиента, которые ещё можно отменить
func (s *BookingService) CancellableSessions(ctx context.Context, clientID int64) ([]*model.Session, error) {
	sessions, err := s.sessions.ListUpcomingByClient(ctx, clientID, s.clock.Now(), cancellableLimit)
	if err != nil {
		return nil, fmt.Errorf("list cancellable sessions: %w", err)
	}
	return sessions, nil
}

func slotLockKey(startsAt time.Time) string {
	return "slot:" + startsAt.UTC().Format(time.RFC3339)
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrAlreadyBooked):
		return "already_booked"
	case errors.Is(err, ErrSlotFull):
		return "full"
	case errors.Is(err, ErrSlotNotOffered):
		return "not_offered"
	case errors.Is(err, ErrSlotInPast):
		return "past"
	case errors.Is(err, lock.ErrLockBusy):
		return "busy"
	default:
		return "error"
	}
}

func cancellationResult(err error) string {
	switch {
	case err == nil:
		return "cancelled"
	case errors.Is(err, ErrSessionNotFound):
		return "not_found"
	case errors.Is(err, ErrNotSessionOwner):
		return "forbidden"
	case errors.Is(err, ErrSessionNotCancellable):
		return "not_cancellable"
	default:
		return "error"
	}
}
