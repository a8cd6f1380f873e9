package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled" // Клиент записан
	SessionStatusCompleted SessionStatus = "completed" // Тренировка проведена
	SessionStatusCancelled SessionStatus = "cancelled" // Отменена клиентом
	SessionStatusMissed    SessionStatus = "missed"    // Клиент не пришёл
)

// DefaultSessionMinutes длительность тренировки по умолчанию
const DefaultSessionMinutes = 60

// OccupiesSlot сообщает, занимает ли тренировка с этим статусом место в окне
func (s SessionStatus) OccupiesSlot() bool {
	return s == SessionStatusScheduled || s == SessionStatusCompleted
}

// Valid проверяет, что статус из известного набора
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusMissed:
		return true
	}
	return false
}

// Session конкретная тренировка клиента
type Session struct {
	ID              int64         `json:"id"`
	ClientID        int64         `json:"client_id"`
	StartsAt        time.Time     `json:"starts_at"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	Notified        bool          `json:"notified"` // Напоминание уже отправлено
	CreatedAt       time.Time     `json:"created_at"`

	// Заполняется запросами с JOIN (не колонка сессии)
	Client *Client `json:"client,omitempty"`
}

// EndsAt возвращает время окончания тренировки
func (s *Session) EndsAt() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
