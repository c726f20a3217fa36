package telegram

import (
	"fmt"
	"strings"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/go-telegram/bot/models"
)

// Callback data prefixes
const (
	callbackBook   = "book"
	callbackSep    = "|"
	maxCallbackLen = 64
)

// keyboardBuilder assembles inline keyboards row by row
type keyboardBuilder struct {
	rows [][]models.InlineKeyboardButton
}

func newKeyboard() *keyboardBuilder {
	return &keyboardBuilder{rows: make([][]models.InlineKeyboardButton, 0)}
}

func (b *keyboardBuilder) row(buttons ...models.InlineKeyboardButton) *keyboardBuilder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

func (b *keyboardBuilder) build() *models.InlineKeyboardMarkup {
	if len(b.rows) == 0 {
		return nil
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: b.rows}
}

func button(text, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

// bookCallbackData encodes a one-tap booking. ok is false when the result
// would not fit Telegram's callback data limit.
func bookCallbackData(room, date, slot string) (string, bool) {
	data := strings.Join([]string{callbackBook, room, date, slot}, callbackSep)
	return data, len(data) <= maxCallbackLen
}

// parseBookCallback reverses bookCallbackData.
func parseBookCallback(data string) (room, date, slot string, err error) {
	parts := strings.Split(data, callbackSep)
	if len(parts) != 4 || parts[0] != callbackBook {
		return "", "", "", fmt.Errorf("invalid callback data %q", data)
	}
	return parts[1], parts[2], parts[3], nil
}

// scheduleKeyboard offers one button per free slot, two per row.
func scheduleKeyboard(room, date string, schedule []model.SlotOccupancy) *models.InlineKeyboardMarkup {
	kb := newKeyboard()
	var pending []models.InlineKeyboardButton
	for _, s := range schedule {
		if !s.Free {
			continue
		}
		data, ok := bookCallbackData(room, date, s.TimeSlot)
		if !ok {
			continue
		}
		pending = append(pending, button("📌 "+s.TimeSlot, data))
		if len(pending) == 2 {
			kb.row(pending...)
			pending = nil
		}
	}
	kb.row(pending...)
	return kb.build()
}
