package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/common/clock"
	"github.com/Freeeeeet/swim_bot/internal/controller/state"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Telegram методы Bot API, которыми пользуются обработчики (*bot.Bot)
type Telegram interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendVoice(ctx context.Context, params *bot.SendVoiceParams) (*models.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
}

type ClientService interface {
	Register(ctx context.Context, p service.Profile) (*model.Client, error)
	ToggleNotifications(ctx context.Context, client *model.Client) (bool, error)
}

type AvailabilityService interface {
	OpenWindows(ctx context.Context, date time.Time) ([]service.Window, error)
	BookableDates() []time.Time
	WeekOverview(ctx context.Context, from time.Time) ([]service.Day, error)
}

type BookingService interface {
	Book(ctx context.Context, client *model.Client, startsAt time.Time) (*model.Session, error)
	Cancel(ctx context.Context, requester *model.Client, sessionID int64) (*model.Session, error)
	Upcoming(ctx context.Context, clientID int64) ([]*model.Session, error)
	CancellableSessions(ctx context.Context, clientID int64) ([]*model.Session, error)
}

type AdminService interface {
	Statistics(ctx context.Context) (*service.Statistics, error)
	Clients(ctx context.Context) ([]service.ClientSummary, error)
	UpcomingSessions(ctx context.Context) ([]*model.Session, error)
	PendingMarks(ctx context.Context) ([]*model.Session, error)
	MarkSession(ctx context.Context, sessionID int64, status model.SessionStatus) (*model.Session, error)
	Templates(ctx context.Context) ([]*model.SlotTemplate, error)
	AddTemplate(ctx context.Context, weekday time.Weekday, start, end model.ClockTime, capacity int) (*model.SlotTemplate, error)
	ToggleTemplate(ctx context.Context, id int64) (*model.SlotTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
	MonthReport(ctx context.Context, month time.Time) (*service.MonthReport, error)
}

type TutorialService interface {
	ByStyle(ctx context.Context, style model.SwimStyle) ([]*model.Tutorial, error)
}

// Config зависимости обработчиков
type Config struct {
	Clients      ClientService
	Availability AvailabilityService
	Booking      BookingService
	Admin        AdminService
	Tutorials    TutorialService
	Admins       service.AdminChecker
	States       *state.Manager
	Clock        clock.Clock
	Location     *time.Location
	PoolAddress  string // попадает в LOCATION событий календаря
	Logger       *zap.Logger
}

// Handlers обработчики сообщений и нажатий на кнопки
type Handlers struct {
	clients      ClientService
	availability AvailabilityService
	booking      BookingService
	admin        AdminService
	tutorials    TutorialService
	admins       service.AdminChecker
	states       *state.Manager
	clock        clock.Clock
	loc          *time.Location
	poolAddress  string
	logger       *zap.Logger

	// пауза между материалами обучения
	mediaPause time.Duration
}

func New(cfg Config) *Handlers {
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.States == nil {
		cfg.States = state.NewManager(cfg.Clock)
	}
	return &Handlers{
		clients:      cfg.Clients,
		availability: cfg.Availability,
		booking:      cfg.Booking,
		admin:        cfg.Admin,
		tutorials:    cfg.Tutorials,
		admins:       cfg.Admins,
		states:       cfg.States,
		clock:        cfg.Clock,
		loc:          cfg.Location,
		poolAddress:  cfg.PoolAddress,
		logger:       cfg.Logger,
		mediaPause:   500 * time.Millisecond,
	}
}

// HandlerFunc обработчик, работающий через интерфейс Telegram
type HandlerFunc func(ctx context.Context, tg Telegram, update *models.Update)

// Adapt превращает HandlerFunc в обработчик go-telegram/bot
func Adapt(fn HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		fn(ctx, b, update)
	}
}
