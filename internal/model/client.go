package model

import (
	"strings"
	"time"
)

// Client клиент тренера (и сам тренер, если он в списке администраторов)
type Client struct {
	ID                   int64     `json:"id"`
	TelegramID           int64     `json:"telegram_id"`
	Username             string    `json:"username"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	IsAdmin              bool      `json:"is_admin"`
	NotificationsEnabled bool      `json:"notifications_enabled"` // Получать напоминания о тренировках
	CreatedAt            time.Time `json:"created_at"`
}

// FullName возвращает имя и фамилию через пробел
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
