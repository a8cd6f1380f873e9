package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/swim_bot/internal/calendar"
	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const calendarFileName = "swim_trainings.ics"

// HandleMySessions показывает ближайшие запланированные тренировки клиента
func (h *Handlers) HandleMySessions(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	client, ok := h.requireClient(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	sessions, err := h.booking.Upcoming(ctx, client.ID)
	if err != nil {
		h.logger.Error("Failed to list upcoming sessions", zap.Int64("client_id", client.ID), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if len(sessions) == 0 {
		h.sendMessage(ctx, tg, chatID, "У вас пока нет запланированных тренировок.", nil)
		return
	}

	h.sendMessage(ctx, tg, chatID, h.formatClientSessions(sessions), nil)
}

func (h *Handlers) formatClientSessions(sessions []*model.Session) string {
	var sb strings.Builder
	sb.WriteString("📋 Ваши предстоящие тренировки:\n\n")
	for i, s := range sessions {
		start := s.StartsAt.In(h.loc)
		sb.WriteString(fmt.Sprintf("%d. 📅 %s, %s\n",
			i+1,
			formatting.FormatDateWithWeekday(start),
			formatting.FormatTimeRange(start, s.EndsAt().In(h.loc)),
		))
	}
	return sb.String()
}

// HandleCancelBooking предлагает выбрать тренировку для отмены
func (h *Handlers) HandleCancelBooking(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	client, ok := h.requireClient(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	sessions, err := h.booking.CancellableSessions(ctx, client.ID)
	if err != nil {
		h.logger.Error("Failed to list cancellable sessions", zap.Int64("client_id", client.ID), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if len(sessions) == 0 {
		h.sendMessage(ctx, tg, chatID, "У вас нет запланированных тренировок для отмены.", nil)
		return
	}

	kb := keyboard.NewBuilder()
	for _, s := range sessions {
		start := s.StartsAt.In(h.loc)
		label := fmt.Sprintf("%s %s", formatting.FormatDateWithWeekday(start), formatting.FormatTime(start))
		kb.Row(keyboard.Button(label, action.CancelSession(s.ID)))
	}
	kb.Row(keyboard.Close("❌ Отмена"))

	h.sendMessage(ctx, tg, chatID, "❌ Выберите тренировку для отмены:", kb.Build())
}

// onCancelSession отменяет выбранную тренировку
func (h *Handlers) onCancelSession(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
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

	session, err := h.booking.Cancel(ctx, client, a.ID)
	if err != nil {
		if !isExpected(err) {
			h.logger.Error("Failed to cancel session", zap.Int64("session_id", a.ID), zap.Error(err))
		}
		h.answer(ctx, tg, callback.ID, ErrorMessage(err), true)
		return
	}

	h.answer(ctx, tg, callback.ID, "✅ Тренировка отменена", false)

	start := session.StartsAt.In(h.loc)
	text := fmt.Sprintf("✅ Тренировка на %s %s успешно отменена.",
		formatting.FormatDateWithWeekday(start), formatting.FormatTime(start))
	if msg != nil {
		h.editMessage(ctx, tg, msg, text, nil)
	} else {
		h.sendMessage(ctx, tg, chatID, text, nil)
	}
}

// HandleNotifications включает или выключает напоминания
func (h *Handlers) HandleNotifications(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	client, ok := h.requireClient(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	enabled, err := h.clients.ToggleNotifications(ctx, client)
	if err != nil {
		h.logger.Error("Failed to toggle notifications", zap.Int64("client_id", client.ID), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if enabled {
		h.sendMessage(ctx, tg, chatID, "🔔 Напоминания включены. Мы напомним о тренировке за час до начала.", nil)
	} else {
		h.sendMessage(ctx, tg, chatID, "🔕 Напоминания выключены. Включить снова можно этой же кнопкой.", nil)
	}
}

// HandleCalendarExport отправляет .ics файл с ближайшими тренировками клиента
func (h *Handlers) HandleCalendarExport(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	client, ok := h.requireClient(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	sessions, err := h.booking.Upcoming(ctx, client.ID)
	if err != nil {
		h.logger.Error("Failed to list sessions for calendar", zap.Int64("client_id", client.ID), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}
	if len(sessions) == 0 {
		h.sendMessage(ctx, tg, chatID, "Нет запланированных тренировок для экспорта.", nil)
		return
	}

	events := make([]calendar.Event, 0, len(sessions))
	for _, s := range sessions {
		events = append(events, calendar.SessionEvent(s, h.poolAddress))
	}
	data := calendar.Generate(events, h.clock.Now())

	_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: calendarFileName, Data: bytes.NewReader(data)},
		Caption: fmt.Sprintf("🗓 %d %s. Откройте файл, чтобы добавить их в календарь.",
			len(sessions), formatting.PluralizeTrainings(len(sessions))),
	})
	if err != nil {
		h.logger.Error("Failed to send calendar file", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	h.logger.Info("Calendar exported", zap.Int64("client_id", client.ID), zap.Int("events", len(events)))
}
