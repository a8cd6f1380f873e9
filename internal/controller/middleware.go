package controller

import (
	"context"
	"runtime/debug"

	"github.com/Freeeeeet/swim_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// updateKind тип обновления для метрик
func updateKind(update *models.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && update.Message.Text != "":
		return "message"
	case update.Message != nil:
		return "other_message"
	default:
		return "other"
	}
}

// CountUpdates считает входящие обновления по типам
func CountUpdates(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		metrics.RecordUpdate(updateKind(update))
		next(ctx, b, update)
	}
}

// Recover не даёт панике в обработчике уронить процесс
func Recover(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					metrics.RecordError("handler_panic")
					logger.Error("Handler panicked",
						zap.Int64("update_id", update.ID),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
				}
			}()
			next(ctx, b, update)
		}
	}
}
