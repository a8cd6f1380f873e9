package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/repository"
	"go.uber.org/zap"
)

const (
	// adminUpcomingLimit сколько будущих тренировок показывать тренеру
	adminUpcomingLimit = 20
	// markLookback за какой период предлагать отметить прошедшие тренировки
	markLookback = 7 * 24 * time.Hour
)

// Statistics сводка для тренера
type Statistics struct {
	Clients        int
	Upcoming       int // запланированные с текущего момента
	CompletedWeek  int // проведённые на текущей неделе (с понедельника)
	CompletedMonth int
	CancelledMonth int
}

// ClientSummary клиент с числом проведённых тренировок
type ClientSummary struct {
	Client    *model.Client
	Completed int
}

// MonthReport тренировки за календарный месяц
type MonthReport struct {
	Month    time.Time // первое число месяца
	Sessions []*model.Session
	Counts   map[model.SessionStatus]int
}

type AdminService struct {
	clients   ClientStore
	templates SlotTemplateStore
	sessions  SessionStore
	clock     clock.Clock
	loc       *time.Location
	logger    *zap.Logger
}

// AdminConfig параметры AdminService
type AdminConfig struct {
	Clients   ClientStore
	Templates SlotTemplateStore
	Sessions  SessionStore
	Clock     clock.Clock
	Location  *time.Location
	Logger    *zap.Logger
}

func NewAdminService(cfg AdminConfig) *AdminService {
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AdminService{
		clients:   cfg.Clients,
		templates: cfg.Templates,
		sessions:  cfg.Sessions,
		clock:     cfg.Clock,
		loc:       cfg.Location,
		logger:    cfg.Logger,
	}
}

// Statistics считает сводку по клиентам и тренировкам
func (s *AdminService) Statistics(ctx context.Context) (*Statistics, error) {
	now := s.clock.Now()
	weekStart := startOfWeek(now, s.loc)
	monthStart := startOfMonth(now, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		stats Statistics
		err   error
	)

	if stats.Clients, err = s.clients.CountClients(ctx); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	if stats.Upcoming, err = s.sessions.CountScheduledFrom(ctx, now); err != nil {
		return nil, fmt.Errorf("count upcoming: %w", err)
	}
	if stats.CompletedWeek, err = s.sessions.CountByStatus(ctx, model.SessionStatusCompleted, weekStart, weekStart.AddDate(0, 0, 7)); err != nil {
		return nil, fmt.Errorf("count completed this week: %w", err)
	}
	if stats.CompletedMonth, err = s.sessions.CountByStatus(ctx, model.SessionStatusCompleted, monthStart, monthEnd); err != nil {
		return nil, fmt.Errorf("count completed this month: %w", err)
	}
	if stats.CancelledMonth, err = s.sessions.CountByStatus(ctx, model.SessionStatusCancelled, monthStart, monthEnd); err != nil {
		return nil, fmt.Errorf("count cancelled this month: %w", err)
	}

	return &stats, nil
}

// Clients список клиентов с числом проведённых тренировок
func (s *AdminService) Clients(ctx context.Context) ([]ClientSummary, error) {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	completed, err := s.sessions.CountCompletedByClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("count completed sessions: %w", err)
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, client := range clients {
		summaries = append(summaries, ClientSummary{
			Client:    client,
			Completed: completed[client.ID],
		})
	}
	return summaries, nil
}

// UpcomingSessions ближайшие запланированные тренировки всех клиентов
func (s *AdminService) UpcomingSessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := s.sessions.ListUpcoming(ctx, s.clock.Now(), adminUpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}
	return sessions, nil
}

// PendingMarks прошедшие за неделю тренировки, которые ещё не отмечены
func (s *AdminService) PendingMarks(ctx context.Context) ([]*model.Session, error) {
	now := s.clock.Now()

	sessions, err := s.sessions.ListBetween(ctx, now.Add(-markLookback), now)
	if err != nil {
		return nil, fmt.Errorf("list past sessions: %w", err)
	}

	pending := make([]*model.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.Status == model.SessionStatusScheduled {
			pending = append(pending, session)
		}
	}
	return pending, nil
}

// MarkSession отмечает прошедшую тренировку проведённой или пропущенной
func (s *AdminService) MarkSession(ctx context.Context, sessionID int64, status model.SessionStatus) (*model.Session, error) {
	if status != model.SessionStatusCompleted && status != model.SessionStatusMissed {
		return nil, ErrInvalidStatus
	}

	session, err := s.sessions.GetByIDWithClient(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Status == status {
		return session, nil
	}
	if session.Status != model.SessionStatusScheduled || session.StartsAt.After(s.clock.Now()) {
		return nil, ErrInvalidStatus
	}

	if err := s.sessions.UpdateStatus(ctx, session.ID, status); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	session.Status = status

	s.logger.Info("Session marked",
		zap.Int64("session_id", session.ID),
		zap.String("status", string(status)),
	)

	return session, nil
}

// Templates все окна расписания, включая выключенные
func (s *AdminService) Templates(ctx context.Context) ([]*model.SlotTemplate, error) {
	templates, err := s.templates.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// AddTemplate добавляет окно в недельное расписание
func (s *AdminService) AddTemplate(ctx context.Context, weekday time.Weekday, start, end model.ClockTime, capacity int) (*model.SlotTemplate, error) {
	tmpl := &model.SlotTemplate{
		Weekday:  weekday,
		Start:    start,
		End:      end,
		Capacity: capacity,
		IsActive: true,
	}

	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if err := s.ensureNoActiveTwin(ctx, tmpl); err != nil {
		return nil, err
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, fmt.Errorf("create template: %w", err)
	}

	s.logger.Info("Slot template created",
		zap.Int64("template_id", tmpl.ID),
		zap.String("weekday", weekday.String()),
		zap.String("start", start.String()),
		zap.String("end", end.String()),
		zap.Int("capacity", capacity),
	)

	return tmpl, nil
}

// ToggleTemplate включает или выключает окно
func (s *AdminService) ToggleTemplate(ctx context.Context, id int64) (*model.SlotTemplate, error) {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	if tmpl == nil {
		return nil, ErrTemplateNotFound
	}

	if !tmpl.IsActive {
		if err := s.ensureNoActiveTwin(ctx, tmpl); err != nil {
			return nil, err
		}
	}

	if err := s.templates.SetActive(ctx, id, !tmpl.IsActive); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, fmt.Errorf("toggle template: %w", err)
	}
	tmpl.IsActive = !tmpl.IsActive

	s.logger.Info("Slot template toggled",
		zap.Int64("template_id", id),
		zap.Bool("active", tmpl.IsActive),
	)

	return tmpl, nil
}

// ensureNoActiveTwin на день недели и время начала допускается одно активное окно
func (s *AdminService) ensureNoActiveTwin(ctx context.Context, tmpl *model.SlotTemplate) error {
	existing, err := s.templates.FindActive(ctx, tmpl.Weekday, tmpl.Start)
	if err != nil {
		return fmt.Errorf("find active template: %w", err)
	}
	if existing != nil && existing.ID != tmpl.ID {
		return ErrTemplateExists
	}
	return nil
}

// DeleteTemplate удаляет окно из расписания
func (s *AdminService) DeleteTemplate(ctx context.Context, id int64) error {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get template: %w", err)
	}
	if tmpl == nil {
		return ErrTemplateNotFound
	}

	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	s.logger.Info("Slot template deleted", zap.Int64("template_id", id))
	return nil
}

// MonthReport тренировки месяца, содержащего month
func (s *AdminService) MonthReport(ctx context.Context, month time.Time) (*MonthReport, error) {
	from := startOfMonth(month, s.loc)

	sessions, err := s.sessions.ListBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("list month sessions: %w", err)
	}

	report := &MonthReport{
		Month:    from,
		Sessions: sessions,
		Counts:   make(map[model.SessionStatus]int),
	}
	for _, session := range sessions {
		report.Counts[session.Status]++
	}
	return report, nil
}

// ParseTemplateInput разбирает ввод тренера вида "09:00-10:00" или "09:00-10:00 2"
func ParseTemplateInput(text string) (start, end model.ClockTime, capacity int, err error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return start, end, 0, fmt.Errorf("%w: expected \"HH:MM-HH:MM [capacity]\"", ErrInvalidTemplate)
	}

	bounds := strings.Split(fields[0], "-")
	if len(bounds) != 2 {
		return start, end, 0, fmt.Errorf("%w: expected time range", ErrInvalidTemplate)
	}

	if start, err = model.ParseClockTime(bounds[0]); err != nil {
		return start, end, 0, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if end, err = model.ParseClockTime(bounds[1]); err != nil {
		return start, end, 0, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	capacity = 1
	if len(fields) == 2 {
		capacity, err = strconv.Atoi(fields[1])
		if err != nil || capacity < 1 {
			return start, end, 0, fmt.Errorf("%w: capacity must be a positive number", ErrInvalidTemplate)
		}
	}

	if !start.Before(end) {
		return start, end, 0, fmt.Errorf("%w: start must be before end", ErrInvalidTemplate)
	}

	return start, end, capacity, nil
}
