package handlers

import (
	"context"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const genericErrorText = "❌ Произошла ошибка. Попробуйте позже."

func profileOf(u *models.User) service.Profile {
	return service.Profile{
		TelegramID: u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

// requireClient регистрирует или обновляет клиента по данным Telegram.
// При ошибке сообщает пользователю и возвращает false.
func (h *Handlers) requireClient(ctx context.Context, tg Telegram, chatID int64, from *models.User) (*model.Client, bool) {
	if from == nil {
		return nil, false
	}

	client, err := h.clients.Register(ctx, profileOf(from))
	if err != nil {
		h.logger.Error("Failed to load client", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return nil, false
	}
	return client, true
}

// isAdmin единственный источник прав: список ADMIN_IDS
func (h *Handlers) isAdmin(telegramID int64) bool {
	return h.admins != nil && h.admins.IsAdmin(telegramID)
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, tg Telegram, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := tg.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// editMessage заменяет текст и клавиатуру сообщения с кнопками
func (h *Handlers) editMessage(ctx context.Context, tg Telegram, msg *models.Message, text string, markup *models.InlineKeyboardMarkup) {
	params := &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := tg.EditMessageText(ctx, params); err != nil {
		h.logger.Warn("Failed to edit message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err),
		)
	}
}

// answer отвечает на callback query; alert показывает всплывающее окно
func (h *Handlers) answer(ctx context.Context, tg Telegram, callbackID, text string, alert bool) {
	_, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

// callbackMessage сообщение, к которому привязана кнопка; nil если оно недоступно
func callbackMessage(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}
