package state

import "time"

// UserState шаг диалога, в котором находится пользователь
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Админ добавляет окно в расписание: день недели уже выбран, ждём "09:00-10:00 [мест]"
	StateAddTemplateTime UserState = "add_template_time"
)

// Ключи данных диалога
const (
	KeyWeekday = "weekday"
)

// DialogTTL сколько живёт незавершённый диалог
const DialogTTL = 30 * time.Minute

// UserData состояние и временные данные диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{}
	UpdatedAt time.Time
}
