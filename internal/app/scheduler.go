package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout верхняя граница одного прохода рассылки
const sweepTimeout = 4 * time.Minute

// Sweeper один проход рассылки напоминаний (ReminderService)
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepReport, error)
}

// Scheduler управляет фоновыми задачами по cron расписанию
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler создаёт планировщик, запускающий рассылку напоминаний по cron выражению (например "*/5 * * * *").
// Время в выражении считается в часовом поясе loc.
func NewScheduler(sweeper Sweeper, cronExpr string, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		sweeper: sweeper,
		logger:  logger,
	}
	// SkipIfStillRunning: следующий проход не стартует, пока не закончился предыдущий
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := s.cron.AddFunc(cronExpr, s.runSweep); err != nil {
		return nil, fmt.Errorf("schedule reminder sweep %q: %w", cronExpr, err)
	}

	return s, nil
}

// Start запускает фоновые задачи; они останавливаются при отмене ctx или вызове Stop
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.logger.Info("Starting background scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	done := s.cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}
	<-done.Done()
}

// runSweep выполняет один проход рассылки напоминаний
func (s *Scheduler) runSweep() {
	parent := s.ctx
	if parent == nil {
		parent = context.Background()
	}
	if parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, sweepTimeout)
	defer cancel()

	report, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		return
	}

	if report.Selected > 0 {
		s.logger.Info("Reminder sweep completed",
			zap.String("run_id", report.RunID),
			zap.Int("selected", report.Selected),
			zap.Int("sent", report.Sent),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed))
	}
}
