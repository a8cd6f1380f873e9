package handlers

import (
	"errors"

	"github.com/Freeeeeet/swim_bot/internal/lock"
	"github.com/Freeeeeet/swim_bot/internal/service"
)

// ErrorMessage возвращает пользовательское сообщение для ошибки сервиса
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Тренировка не найдена"
	case errors.Is(err, service.ErrTemplateNotFound):
		return "❌ Окно расписания не найдено"
	case errors.Is(err, service.ErrAlreadyBooked):
		return "Вы уже записаны на это время!"
	case errors.Is(err, service.ErrSlotFull):
		return "😔 Это время уже занято"
	case errors.Is(err, service.ErrSlotNotOffered):
		return "❌ Тренер не принимает в это время"
	case errors.Is(err, service.ErrSlotInPast):
		return "⏰ Это время уже прошло"
	case errors.Is(err, service.ErrNotSessionOwner):
		return "❌ Это не ваша тренировка"
	case errors.Is(err, service.ErrSessionNotCancellable):
		return "❌ Эту тренировку уже нельзя отменить"
	case errors.Is(err, service.ErrTemplateExists):
		return "❌ На это время уже есть активный слот"
	case errors.Is(err, service.ErrInvalidTemplate):
		return "❌ Неверный формат. Пример: 09:00-10:00 или 18:00-19:00 2"
	case errors.Is(err, service.ErrInvalidStatus):
		return "❌ Эту тренировку нельзя отметить"
	case errors.Is(err, lock.ErrLockBusy):
		return "⏳ Сейчас на это время записывается кто-то ещё. Попробуйте через пару секунд."
	default:
		return genericErrorText
	}
}

// isExpected ошибки, о которых достаточно сказать пользователю, без записи в лог как сбой
func isExpected(err error) bool {
	return ErrorMessage(err) != genericErrorText
}
