package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// sendTimeout ограничение на одну отправку, чтобы зависший запрос не задерживал рассылку
const sendTimeout = 10 * time.Second

// MessageSender часть API бота, нужная для уведомлений (*bot.Bot)
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier доставляет напоминания личным сообщением
type TelegramNotifier struct {
	sender MessageSender
}

func NewTelegramNotifier(sender MessageSender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender}
}

// Notify отправляет текст в чат клиента
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send notification to %d: %w", chatID, err)
	}
	return nil
}
