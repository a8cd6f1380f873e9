package formatting

import "github.com/Freeeeeet/swim_bot/internal/model"

// GetSessionStatusLabel возвращает подпись статуса тренировки
func GetSessionStatusLabel(status model.SessionStatus) string {
	switch status {
	case model.SessionStatusScheduled:
		return "✅ Запланирована"
	case model.SessionStatusCompleted:
		return "🏁 Проведена"
	case model.SessionStatusCancelled:
		return "❌ Отменена"
	case model.SessionStatusMissed:
		return "⚠️ Пропущена"
	default:
		return string(status)
	}
}

// GetSwimStyleLabel возвращает название стиля плавания
func GetSwimStyleLabel(style model.SwimStyle) string {
	switch style {
	case model.SwimStyleButterfly:
		return "🦋 Баттерфляй"
	case model.SwimStyleFreestyle:
		return "🏊 Кроль"
	case model.SwimStyleBackstroke:
		return "🔙 На спине"
	case model.SwimStyleBreaststroke:
		return "🐸 Брасс"
	case model.SwimStyleGeneral:
		return "📖 Общие советы"
	default:
		return string(style)
	}
}
