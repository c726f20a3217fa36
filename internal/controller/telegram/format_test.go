package telegram

import (
	"testing"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		name string
		args []string
	}{
		{"/rooms", "rooms", []string{}},
		{"/Book A101  2024-05-01 08:00-09:30", "book", []string{"A101", "2024-05-01", "08:00-09:30"}},
		{"/check@UnireservaBot A101", "check", []string{"A101"}},
		{"hello", "", nil},
		{"", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args := parseCommand(tt.text)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestUserIdentity(t *testing.T) {
	assert.Equal(t, "alice", userIdentity(&models.User{ID: 42, Username: "alice"}))
	assert.Equal(t, "42", userIdentity(&models.User{ID: 42}))
	assert.Equal(t, "", userIdentity(nil))
}

func TestFormatRoomsEmpty(t *testing.T) {
	assert.Equal(t, "Nenhuma sala cadastrada.", formatRooms(nil))
}

func TestBookCallbackRoundTrip(t *testing.T) {
	data, ok := bookCallbackData("A101", "2024-05-01", "08:00-09:30")
	require.True(t, ok)
	assert.Equal(t, "book|A101|2024-05-01|08:00-09:30", data)

	room, date, slot, err := parseBookCallback(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"A101", "2024-05-01", "08:00-09:30"}, []string{room, date, slot})

	_, _, _, err = parseBookCallback("cancel|A101")
	assert.Error(t, err)
}

func TestScheduleKeyboardSkipsHeldAndOversized(t *testing.T) {
	schedule := []model.SlotOccupancy{
		{TimeSlot: "08:00-09:30", Free: false, User: "alice"},
		{TimeSlot: "09:45-11:15", Free: true},
		{TimeSlot: "11:30-13:00", Free: true},
		{TimeSlot: "13:15-14:45", Free: true},
	}

	kb := scheduleKeyboard("A101", "2024-05-01", schedule)
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "book|A101|2024-05-01|09:45-11:15", kb.InlineKeyboard[0][0].CallbackData)

	long := string(make([]byte, 60))
	assert.Nil(t, scheduleKeyboard(long, "2024-05-01", schedule))
}
