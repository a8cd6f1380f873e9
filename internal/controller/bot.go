package controller

import (
	"context"

	"github.com/Freeeeeet/swim_bot/internal/controller/handlers"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, h *handlers.Handlers, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: h,
		logger:   logger,
	}
}

// Options опции go-telegram/bot: текст вне команд уходит в диалоги, middleware считают обновления
func Options(h *handlers.Handlers, logger *zap.Logger) []bot.Option {
	return []bot.Option{
		bot.WithDefaultHandler(handlers.Adapt(h.HandleText)),
		bot.WithMiddlewares(Recover(logger), CountUpdates),
	}
}

// RegisterHandlers регистрирует команды, кнопки меню и обработчик inline кнопок
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	h := c.handlers

	commands := map[string]handlers.HandlerFunc{
		"/start":  h.HandleStart,
		"/help":   h.HandleHelp,
		"/cancel": h.HandleCancel,
	}

	// Кнопки reply клавиатуры приходят обычным текстом
	menu := map[string]handlers.HandlerFunc{
		keyboard.BtnBook:          h.HandleBook,
		keyboard.BtnMySessions:    h.HandleMySessions,
		keyboard.BtnSchedule:      h.HandleSchedule,
		keyboard.BtnCancel:        h.HandleCancelBooking,
		keyboard.BtnTutorials:     h.HandleTutorials,
		keyboard.BtnNotifications: h.HandleNotifications,
		keyboard.BtnCalendar:      h.HandleCalendarExport,
		keyboard.BtnAdminPanel:    h.HandleAdminPanel,
		keyboard.BtnStatistics:    h.HandleStatistics,
		keyboard.BtnClients:       h.HandleClients,
		keyboard.BtnManage:        h.HandleManageSchedule,
		keyboard.BtnAllSessions:   h.HandleAllSessions,
		keyboard.BtnMonthReport:   h.HandleMonthReport,
		keyboard.BtnBack:          h.HandleBack,
	}

	for pattern, fn := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, bot.MatchTypeExact, handlers.Adapt(fn))
	}
	for text, fn := range menu {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, text, bot.MatchTypeExact, handlers.Adapt(fn))
	}

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlers.Adapt(h.HandleCallbackQuery))

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏊 Главное меню"},
		{Command: "help", Description: "❓ Справка"},
		{Command: "cancel", Description: "✖️ Прервать текущее действие"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped")
}
