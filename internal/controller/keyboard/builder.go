package keyboard

import (
	"github.com/Freeeeeet/swim_bot/internal/controller/action"
	"github.com/go-telegram/bot/models"
)

// Builder собирает inline клавиатуру по рядам
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет ряд кнопок; пустой ряд пропускается
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки рядами по perRow штук
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	for len(buttons) > 0 {
		n := perRow
		if n > len(buttons) {
			n = len(buttons)
		}
		b.Row(buttons[:n]...)
		buttons = buttons[n:]
	}
	return b
}

// Len количество рядов
func (b *Builder) Len() int {
	return len(b.rows)
}

func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Button кнопка с действием
func Button(text string, a action.Action) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: a.Encode(),
	}
}

// Close кнопка, закрывающая сообщение
func Close(text string) models.InlineKeyboardButton {
	return Button(text, action.Dismiss())
}
