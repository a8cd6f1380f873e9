package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const chooseDateText = "📅 Выберите день для тренировки:"

// HandleBook показывает дни, на которые можно записаться
func (h *Handlers) HandleBook(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, tg, update.Message.Chat.ID, chooseDateText, h.datesKeyboard())
}

func (h *Handlers) datesKeyboard() *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, date := range h.availability.BookableDates() {
		label := fmt.Sprintf("%s - %s", formatting.GetWeekdayName(date.Weekday()), formatting.FormatDate(date))
		kb.Row(keyboard.Button(label, action.PickDate(date)))
	}
	return kb.Row(keyboard.Close("❌ Отмена")).Build()
}

// onBackToDates возвращает сообщение к выбору дня
func (h *Handlers) onBackToDates(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	h.answer(ctx, tg, callback.ID, "", false)
	if msg := callbackMessage(callback); msg != nil {
		h.editMessage(ctx, tg, msg, chooseDateText, h.datesKeyboard())
	}
}

// onPickDate показывает окна выбранного дня с отметкой занятости
func (h *Handlers) onPickDate(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg := callbackMessage(callback)
	if msg == nil {
		h.answer(ctx, tg, callback.ID, "", false)
		return
	}

	windows, err := h.availability.OpenWindows(ctx, a.Date)
	if err != nil {
		h.logger.Error("Failed to resolve availability", zap.Time("date", a.Date), zap.Error(err))
		h.answer(ctx, tg, callback.ID, "Произошла ошибка", false)
		return
	}
	h.answer(ctx, tg, callback.ID, "", false)

	back := keyboard.NewBuilder().Row(keyboard.Button("⬅️ Назад", action.BackToDates()))
	if len(windows) == 0 {
		h.editMessage(ctx, tg, msg, "К сожалению, на этот день нет доступных слотов.", back.Build())
		return
	}

	h.editMessage(ctx, tg, msg,
		fmt.Sprintf("Выберите время на %s:", formatting.FormatLongDate(a.Date.In(h.loc))),
		h.windowsKeyboard(windows).Build())
}

func (h *Handlers) windowsKeyboard(windows []service.Window) *keyboard.Builder {
	kb := keyboard.NewBuilder()
	for _, w := range windows {
		start, end := w.StartsAt.In(h.loc), w.EndsAt.In(h.loc)
		timeRange := formatting.FormatTimeRange(start, end)

		if !w.Bookable() {
			kb.Row(keyboard.Button(timeRange+" ❌ Занято", action.Occupied()))
			continue
		}

		label := timeRange + " ✅"
		if w.Capacity > 1 {
			label = fmt.Sprintf("%s ✅ %d %s", timeRange, w.Free(), formatting.PluralizePlaces(w.Free()))
		}
		kb.Row(keyboard.Button(label, action.PickTime(start, model.ClockTimeOf(start))))
	}
	return kb.Row(keyboard.Button("⬅️ Назад", action.BackToDates()))
}

// onPickTime записывает клиента на выбранное окно
func (h *Handlers) onPickTime(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	msg := callbackMessage(callback)
	chatID := callback.From.ID
	if msg != nil {
		chatID = msg.Chat.ID
	}

	client, ok := h.requireClient(ctx, tg, chatID, &callback.From)
	if !ok {
		h.answer(ctx, tg, callback.ID, "", false)
		return
	}

	startsAt := a.StartsAt(h.loc)
	session, err := h.booking.Book(ctx, client, startsAt)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSlotFull):
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		if msg != nil {
			h.refreshWindows(ctx, tg, msg, a)
		}
		return
	case isExpected(err):
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		return
	default:
		h.logger.Error("Failed to book session",
			zap.Int64("client_id", client.ID),
			zap.Time("starts_at", startsAt),
			zap.Error(err))
		h.answer(ctx, tg, callback.ID, "Произошла ошибка", true)
		return
	}

	h.answer(ctx, tg, callback.ID, "✅ Вы успешно записаны!", false)

	start := session.StartsAt.In(h.loc)
	text := fmt.Sprintf(
		"✅ Отлично! Вы записаны на тренировку:\n\n"+
			"📅 %s\n"+
			"🕐 %s\n\n"+
			"⏰ Вы получите напоминание за час до тренировки!",
		formatting.FormatLongDate(start),
		formatting.FormatTimeRange(start, session.EndsAt().In(h.loc)),
	)
	if msg != nil {
		h.editMessage(ctx, tg, msg, text, nil)
	} else {
		h.sendMessage(ctx, tg, chatID, text, nil)
	}
}

// refreshWindows перерисовывает окна дня после отказа из-за занятости
func (h *Handlers) refreshWindows(ctx context.Context, tg Telegram, msg *models.Message, a action.Action) {
	windows, err := h.availability.OpenWindows(ctx, a.Date)
	if err != nil {
		h.logger.Warn("Failed to refresh availability", zap.Error(err))
		return
	}
	h.editMessage(ctx, tg, msg,
		fmt.Sprintf("Выберите время на %s:", formatting.FormatLongDate(a.Date.In(h.loc))),
		h.windowsKeyboard(windows).Build())
}

func (h *Handlers) onOccupied(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	h.answer(ctx, tg, callback.ID, "Это время уже занято", false)
}

// onDismiss закрывает сообщение с кнопками
func (h *Handlers) onDismiss(ctx context.Context, tg Telegram, callback *models.CallbackQuery, _ action.Action) {
	h.answer(ctx, tg, callback.ID, "", false)
	msg := callbackMessage(callback)
	if msg == nil {
		return
	}
	h.states.ClearState(callback.From.ID)
	if _, err := tg.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID}); err != nil {
		h.logger.Warn("Failed to delete message", zap.Error(err))
	}
}
