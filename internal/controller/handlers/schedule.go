package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/render"
	"github.com/Freeeeeet/swim_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSchedule показывает окна тренера на ближайшие 7 дней: картинкой и текстом
func (h *Handlers) HandleSchedule(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	now := h.clock.Now()

	days, err := h.availability.WeekOverview(ctx, now)
	if err != nil {
		h.logger.Error("Failed to build week overview", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	text := h.formatWeek(days)
	if text == "" {
		h.sendMessage(ctx, tg, chatID, "Расписание пока не установлено.", nil)
		return
	}

	img, err := render.WeekImage(days, now.In(h.loc))
	if err != nil {
		h.logger.Warn("Failed to render week image, sending text only", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, text, nil)
		return
	}

	_, err = tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "schedule.png", Data: bytes.NewReader(img)},
		Caption: text,
	})
	if err != nil {
		h.logger.Warn("Failed to send week image", zap.Error(err))
		h.sendMessage(ctx, tg, chatID, text, nil)
	}
}

// formatWeek текст расписания; пустая строка если окон нет ни в один день
func (h *Handlers) formatWeek(days []service.Day) string {
	var sb strings.Builder
	for _, day := range days {
		if len(day.Windows) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n📅 %s:\n", formatting.FormatDateWithWeekday(day.Date.In(h.loc))))
		for _, w := range day.Windows {
			status := "✅"
			if !w.Bookable() {
				status = "❌"
			}
			sb.WriteString(fmt.Sprintf("   %s %s\n", status,
				formatting.FormatTimeRange(w.StartsAt.In(h.loc), w.EndsAt.In(h.loc))))
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "🕐 Расписание тренера:\n" + sb.String()
}
