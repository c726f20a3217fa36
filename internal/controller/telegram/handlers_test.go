package telegram

import (
	"context"
	"testing"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	logger := zaptest.NewLogger(t)
	table := model.RoomTable{"A101": {}, "B202": {}}
	svc := service.NewBookingService(repository.NewReservationStore(table), repository.NewMemorySnapshot(table), nil, logger)
	return NewHandlers(protocol.NewDispatcher(svc, logger), svc, logger)
}

func TestExecuteBookingFlow(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	assert.Equal(t, "🏫 Salas:\n• A101\n• B202", h.Execute(ctx, "alice", "/rooms").Text)

	reply := h.Execute(ctx, "alice", "/book A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "✅ Reserva confirmada: A101 2024-05-01 08:00-09:30", reply.Text)

	reply = h.Execute(ctx, "bob", "/book@UnireservaBot A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "❌ Conflito de horário", reply.Text)

	reply = h.Execute(ctx, "bob", "/check A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "⛔ A101 2024-05-01 08:00-09:30: indisponível", reply.Text)

	reply = h.Execute(ctx, "bob", "/cancel A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "❌ Reserva não encontrada", reply.Text)

	reply = h.Execute(ctx, "alice", "/cancel A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "🗑 Reserva cancelada: A101 2024-05-01 08:00-09:30", reply.Text)

	reply = h.Execute(ctx, "bob", "/check A101 2024-05-01 08:00-09:30")
	assert.Equal(t, "✅ A101 2024-05-01 08:00-09:30: disponível", reply.Text)
}

func TestExecuteSchedule(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()
	h.Execute(ctx, "alice", "/book A101 2024-05-01 08:00-09:30")

	reply := h.Execute(ctx, "bob", "/schedule A101 2024-05-01")
	assert.Contains(t, reply.Text, "⛔ 08:00-09:30 alice")
	assert.Contains(t, reply.Text, "✅ 09:45-11:15 livre")
	require.NotNil(t, reply.Keyboard)

	var buttons int
	for _, row := range reply.Keyboard.InlineKeyboard {
		buttons += len(row)
	}
	assert.Equal(t, len(model.Slots())-1, buttons)

	assert.Equal(t, "❌ Sala inexistente", h.Execute(ctx, "bob", "/schedule ZZZ 2024-05-01").Text)
	assert.Equal(t, "❌ Requisição inválida", h.Execute(ctx, "bob", "/schedule A101 amanhã").Text)
}

func TestExecuteUsage(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	assert.Equal(t, "❌ Uso: /book <sala> <data> <horário>", h.Execute(ctx, "alice", "/book A101").Text)
	assert.Equal(t, "❌ Uso: /schedule <sala> <data>", h.Execute(ctx, "alice", "/schedule").Text)
	assert.Equal(t, helpText, h.Execute(ctx, "alice", "/start").Text)
	assert.Contains(t, h.Execute(ctx, "alice", "/fly").Text, "desconhecido")
	assert.Equal(t, "❌ Horário inválido", h.Execute(ctx, "alice", "/book A101 2024-05-01 07:00-08:00").Text)
}
