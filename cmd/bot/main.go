package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/app"
	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"github.com/Freeeeeet/swim_bot/internal/config"
	"github.com/Freeeeeet/swim_bot/internal/controller"
	"github.com/Freeeeeet/swim_bot/internal/controller/handlers"
	"github.com/Freeeeeet/swim_bot/internal/controller/state"
	"github.com/Freeeeeet/swim_bot/internal/lock"
	"github.com/Freeeeeet/swim_bot/internal/notify"
	"github.com/Freeeeeet/swim_bot/internal/repository"
	"github.com/Freeeeeet/swim_bot/internal/repository/base"
	"github.com/Freeeeeet/swim_bot/internal/repository/migrations"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting swim bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Int("admins", len(cfg.AdminIDs)),
		zap.Int("booking_days", cfg.BookingDays))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	err = pool.Ping(pingCtx)
	cancelPing()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	locker, closeLocker := newLocker(cfg, logger)
	defer closeLocker()

	systemClock := &clock.DefaultClock{}

	clientRepo := repository.NewClientRepository(pool)
	templateRepo := repository.NewSlotTemplateRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	tutorialRepo := repository.NewTutorialRepository(pool)

	clientService := service.NewClientService(clientRepo, cfg, logger.Named("clients"))
	availabilityService := service.NewAvailabilityService(service.AvailabilityConfig{
		Templates:   templateRepo,
		Sessions:    sessionRepo,
		Clock:       systemClock,
		Location:    cfg.Location,
		BookingDays: cfg.BookingDays,
		Logger:      logger.Named("availability"),
	})
	bookingService := service.NewBookingService(service.BookingConfig{
		Templates: templateRepo,
		Sessions:  sessionRepo,
		Locker:    locker,
		Clock:     systemClock,
		Location:  cfg.Location,
		Logger:    logger.Named("booking"),
	})
	adminService := service.NewAdminService(service.AdminConfig{
		Clients:   clientRepo,
		Templates: templateRepo,
		Sessions:  sessionRepo,
		Clock:     systemClock,
		Location:  cfg.Location,
		Logger:    logger.Named("admin"),
	})
	tutorialService := service.NewTutorialService(tutorialRepo, logger.Named("tutorials"))

	h := handlers.New(handlers.Config{
		Clients:      clientService,
		Availability: availabilityService,
		Booking:      bookingService,
		Admin:        adminService,
		Tutorials:    tutorialService,
		Admins:       cfg,
		States:       state.NewManager(systemClock),
		Clock:        systemClock,
		Location:     cfg.Location,
		PoolAddress:  cfg.PoolAddress,
		Logger:       logger.Named("handlers"),
	})

	b, err := bot.New(cfg.TelegramToken, controller.Options(h, logger)...)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	reminderService := service.NewReminderService(service.ReminderConfig{
		Sessions: sessionRepo,
		Notifier: notify.NewTelegramNotifier(b),
		Clock:    systemClock,
		Location: cfg.Location,
		Logger:   logger.Named("reminders"),
	})

	scheduler, err := app.NewScheduler(reminderService, cfg.ReminderCron, cfg.Location, logger.Named("scheduler"))
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	metricsServer := app.NewMetricsServer(cfg.MetricsAddr, app.NewHealthChecker(base.NewRepository(pool)))
	app.ServeMetrics(ctx, metricsServer, logger.Named("http"))

	botController := controller.NewBotController(b, h, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands were not set", zap.Error(err))
	}

	botController.Start(ctx)
	logger.Info("Shutting down")
}

// newLocker выбирает блокировки: Redis при нескольких репликах, иначе в памяти процесса
func newLocker(cfg *config.Config, logger *zap.Logger) (lock.Locker, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-process slot locks")
		return lock.NewLocal(lock.DefaultWait), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	locker, err := lock.NewRedis(&lock.Config{
		RedisClient: client,
		Wait:        lock.DefaultWait,
		Logger:      logger.Named("lock"),
	})
	if err != nil {
		logger.Fatal("Failed to create redis locker", zap.Error(err))
	}

	logger.Info("Using redis slot locks", zap.String("addr", cfg.RedisAddr))
	return locker, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
