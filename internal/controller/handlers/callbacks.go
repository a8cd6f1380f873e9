package handlers

import (
	"context"

	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type callbackFunc func(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action)

func (h *Handlers) callbackRoutes() map[action.Kind]callbackFunc {
	return map[action.Kind]callbackFunc{
		action.KindPickDate:       h.onPickDate,
		action.KindPickTime:       h.onPickTime,
		action.KindBackToDates:    h.onBackToDates,
		action.KindOccupied:       h.onOccupied,
		action.KindCancelSession:  h.onCancelSession,
		action.KindDismiss:        h.onDismiss,
		action.KindTutorialStyle:  h.onTutorialStyle,
		action.KindListTemplates:  h.onListTemplates,
		action.KindAddTemplate:    h.onAddTemplate,
		action.KindAddTemplateDay: h.onAddTemplateDay,
		action.KindToggleTemplate: h.onToggleTemplate,
		action.KindDeleteTemplate: h.onDeleteTemplate,
		action.KindPendingMarks:   h.onPendingMarks,
		action.KindMarkSession:    h.onMarkSession,
	}
}

// HandleCallbackQuery разбирает данные кнопки один раз и передаёт действие обработчику
func (h *Handlers) HandleCallbackQuery(ctx context.Context, tg Telegram, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	a, err := action.Decode(callback.Data, h.loc)
	if err != nil {
		h.logger.Warn("Unknown callback data",
			zap.String("data", callback.Data),
			zap.Int64("user_id", callback.From.ID),
			zap.Error(err))
		h.answer(ctx, tg, callback.ID, "Кнопка устарела. Откройте меню заново.", false)
		return
	}

	h.logger.Debug("Routing callback",
		zap.String("kind", string(a.Kind)),
		zap.Int64("user_id", callback.From.ID))

	route, ok := h.callbackRoutes()[a.Kind]
	if !ok {
		h.answer(ctx, tg, callback.ID, "", false)
		return
	}
	route(ctx, tg, callback, a)
}
