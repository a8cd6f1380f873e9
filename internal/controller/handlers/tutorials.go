package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/Freeeeeet/swim_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/swim_bot/internal/formatting"
	"github.com/Freeeeeet/swim_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTutorials показывает стили плавания
func (h *Handlers) HandleTutorials(ctx context.Context, tg Telegram, update *models.Update) {
	if update.Message == nil {
		return
	}

	kb := keyboard.NewBuilder()
	for _, style := range model.SwimStyles {
		kb.Row(keyboard.Button(formatting.GetSwimStyleLabel(style), action.TutorialStyle(style)))
	}
	kb.Row(keyboard.Close("❌ Закрыть"))

	h.sendMessage(ctx, tg, update.Message.Chat.ID, "📚 Обучающие материалы\n\nВыберите стиль плавания:", kb.Build())
}

// onTutorialStyle отправляет материалы выбранного стиля
func (h *Handlers) onTutorialStyle(ctx context.Context, tg Telegram, callback *models.CallbackQuery, a action.Action) {
	h.answer(ctx, tg, callback.ID, "", false)

	msg := callbackMessage(callback)
	chatID := callback.From.ID
	if msg != nil {
		chatID = msg.Chat.ID
	}
	label := formatting.GetSwimStyleLabel(a.Style)

	tutorials, err := h.tutorials.ByStyle(ctx, a.Style)
	if err != nil {
		h.logger.Error("Failed to list tutorials", zap.String("style", string(a.Style)), zap.Error(err))
		h.sendMessage(ctx, tg, chatID, genericErrorText, nil)
		return
	}

	if len(tutorials) == 0 {
		h.sendMessage(ctx, tg, chatID, fmt.Sprintf("%s\n\nМатериалы по этому стилю скоро появятся!", label), nil)
		return
	}

	if msg != nil {
		h.editMessage(ctx, tg, msg, label+"\n\nОтправляю материалы...", nil)
	}

	for i, t := range tutorials {
		if i > 0 && h.mediaPause > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(h.mediaPause):
			}
		}
		h.sendTutorial(ctx, tg, chatID, t)
	}

	h.sendMessage(ctx, tg, chatID, "✅ Все материалы отправлены!\n\nЕсли есть вопросы - пишите тренеру! 💪", nil)
}

// sendTutorial отправляет фото, голосовое и видео материала; без вложений отправляет текст
func (h *Handlers) sendTutorial(ctx context.Context, tg Telegram, chatID int64, t *model.Tutorial) {
	if !t.HasMedia() {
		h.sendMessage(ctx, tg, chatID, fmt.Sprintf("📝 %s\n\n%s", t.Title, t.Description), nil)
		return
	}

	var failed bool
	if t.PhotoRef != "" {
		file, closeFn := mediaFile(t.PhotoRef)
		_, err := tg.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   file,
			Caption: fmt.Sprintf("%s\n\n%s", t.Title, t.Description),
		})
		closeFn()
		failed = failed || h.logMediaError(err, t, "photo")
	}
	if t.VoiceRef != "" {
		file, closeFn := mediaFile(t.VoiceRef)
		_, err := tg.SendVoice(ctx, &bot.SendVoiceParams{
			ChatID:  chatID,
			Voice:   file,
			Caption: "🎤 Голосовое объяснение: " + t.Title,
		})
		closeFn()
		failed = failed || h.logMediaError(err, t, "voice")
	}
	if t.VideoRef != "" {
		file, closeFn := mediaFile(t.VideoRef)
		_, err := tg.SendVideo(ctx, &bot.SendVideoParams{
			ChatID:  chatID,
			Video:   file,
			Caption: "🎥 Видео: " + t.Title,
		})
		closeFn()
		failed = failed || h.logMediaError(err, t, "video")
	}

	if failed {
		h.sendMessage(ctx, tg, chatID, fmt.Sprintf("❌ Ошибка при отправке материала \"%s\"", t.Title), nil)
	}
}

func (h *Handlers) logMediaError(err error, t *model.Tutorial, kind string) bool {
	if err == nil {
		return false
	}
	h.logger.Error("Failed to send tutorial media",
		zap.Int64("tutorial_id", t.ID),
		zap.String("kind", kind),
		zap.Error(err))
	return true
}

// mediaFile выбирает источник вложения: существующий локальный файл загружается,
// всё остальное (file_id, URL) передаётся Telegram как строка
func mediaFile(ref string) (models.InputFile, func()) {
	if f, err := os.Open(filepath.Clean(ref)); err == nil {
		if info, statErr := f.Stat(); statErr == nil && !info.IsDir() {
			return &models.InputFileUpload{Filename: filepath.Base(ref), Data: f}, func() { f.Close() }
		}
		f.Close()
	}
	return &models.InputFileString{Data: ref}, func() {}
}
