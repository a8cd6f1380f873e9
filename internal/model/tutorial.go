package model

import "time"

type SwimStyle string

const (
	SwimStyleButterfly    SwimStyle = "butterfly"
	SwimStyleFreestyle    SwimStyle = "freestyle"
	SwimStyleBackstroke   SwimStyle = "backstroke"
	SwimStyleBreaststroke SwimStyle = "breaststroke"
	SwimStyleGeneral      SwimStyle = "general"
)

// SwimStyles стили в порядке показа в меню
var SwimStyles = []SwimStyle{
	SwimStyleButterfly,
	SwimStyleFreestyle,
	SwimStyleBackstroke,
	SwimStyleBreaststroke,
	SwimStyleGeneral,
}

// Valid проверяет, что стиль из известного набора
func (s SwimStyle) Valid() bool {
	for _, known := range SwimStyles {
		if s == known {
			return true
		}
	}
	return false
}

// Tutorial обучающий материал по стилю плавания.
// Ссылка на медиа: Telegram file_id, URL или путь к локальному файлу.
type Tutorial struct {
	ID          int64     `json:"id"`
	Style       SwimStyle `json:"style"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PhotoRef    string    `json:"photo_ref"`
	VoiceRef    string    `json:"voice_ref"`
	VideoRef    string    `json:"video_ref"`
	Position    int       `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasMedia сообщает, есть ли у материала хотя бы одно вложение
func (t *Tutorial) HasMedia() bool {
	return t.PhotoRef != "" || t.VoiceRef != "" || t.VideoRef != ""
}
