package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/controller/state"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart регистрирует клиента и показывает главное меню
func (h *Handlers) HandleStart(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	client, ok := h.requireClient(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}
	h.states.ClearState(client.TelegramID)

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Добро пожаловать в бот для записи на тренировки по плаванию! 🏊‍♂️\n\n"+
			"Здесь вы можете:\n"+
			"📅 Записаться на тренировку\n"+
			"📋 Посмотреть свои тренировки\n"+
			"🕐 Узнать расписание тренера\n"+
			"❌ Отменить запись\n"+
			"📚 Получить обучающие материалы\n\n"+
			"Вы будете получать напоминания за час до тренировки! ⏰",
		client.FirstName,
	)

	h.sendMessage(ctx, tg, chatID, welcomeText, keyboard.MainMenu(h.isAdmin(client.TelegramID)))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка:\n\n" +
		keyboard.BtnBook + " - выбрать день и время\n" +
		keyboard.BtnMySessions + " - ближайшие записи\n" +
		keyboard.BtnSchedule + " - свободные окна на неделю\n" +
		keyboard.BtnCancel + " - отменить запись\n" +
		keyboard.BtnTutorials + " - материалы по стилям плавания\n" +
		keyboard.BtnNotifications + " - включить или выключить напоминания\n" +
		keyboard.BtnCalendar + " - файл .ics с вашими тренировками\n\n" +
		"/start - главное меню\n" +
		"/cancel - прервать текущее действие"

	h.sendMessage(ctx, tg, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.states.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, tg, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.states.ClearState(telegramID)
	h.sendMessage(ctx, tg, update.Message.Chat.ID, "✅ Операция отменена.", keyboard.MainMenu(h.isAdmin(telegramID)))
}

// HandleBack возвращает в главное меню
func (h *Handlers) HandleBack(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.states.ClearState(telegramID)
	h.sendMessage(ctx, tg, update.Message.Chat.ID, "Главное меню:", keyboard.MainMenu(h.isAdmin(telegramID)))
}

// HandleText обрабатывает текст вне команд и кнопок меню: шаги диалогов
func (h *Handlers) HandleText(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		h.sendMessage(ctx, tg, update.Message.Chat.ID, "Неизвестная команда. Используйте /help", nil)
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.states.GetState(telegramID)

	switch currentState {
	case state.StateAddTemplateTime:
		h.handleAddTemplateTimeStep(ctx, tg, update)
	default:
		h.logger.Debug("No active dialog, ignoring message", zap.Int64("telegram_id", telegramID))
		h.sendMessage(ctx, tg, update.Message.Chat.ID, "Выберите действие в меню 👇", keyboard.MainMenu(h.isAdmin(telegramID)))
	}
}
