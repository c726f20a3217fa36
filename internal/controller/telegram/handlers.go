package telegram

import (
	"context"
	"strings"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ScheduleReader renders one room's day slot by slot.
type ScheduleReader interface {
	RoomSchedule(ctx context.Context, roomID, date string) ([]model.SlotOccupancy, error)
}

// Reply is what the bot sends back for one message.
type Reply struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// Handlers turns chat commands into protocol requests.
type Handlers struct {
	dispatcher *protocol.Dispatcher
	schedules  ScheduleReader
	logger     *zap.Logger
}

func NewHandlers(dispatcher *protocol.Dispatcher, schedules ScheduleReader, logger *zap.Logger) *Handlers {
	return &Handlers{dispatcher: dispatcher, schedules: schedules, logger: logger}
}

// Execute runs one command on behalf of user and returns the reply text.
func (h *Handlers) Execute(ctx context.Context, user, text string) Reply {
	command, args := parseCommand(text)

	switch command {
	case "start", "help":
		return Reply{Text: helpText}

	case "rooms":
		resp, _ := h.dispatcher.Handle(ctx, protocol.Request{Type: protocol.RequestList})
		return Reply{Text: formatResponse(protocol.Request{}, resp)}

	case "schedule":
		if len(args) != 2 {
			return Reply{Text: usage(command, "<sala>", "<data>")}
		}
		return h.schedule(ctx, args[0], args[1])

	case "check", "book", "cancel":
		if len(args) != 3 {
			return Reply{Text: usage(command, "<sala>", "<data>", "<horário>")}
		}
		req := protocol.Request{RoomID: args[0], Date: args[1], TimeSlot: args[2]}
		switch command {
		case "check":
			req.Type = protocol.RequestCheck
		case "book":
			req.Type, req.User = protocol.RequestBook, user
		case "cancel":
			req.Type, req.User = protocol.RequestCancel, user
		}
		resp, _ := h.dispatcher.Handle(ctx, req)
		return Reply{Text: formatResponse(req, resp)}

	default:
		return Reply{Text: "❓ Comando desconhecido. Use /help."}
	}
}

func (h *Handlers) schedule(ctx context.Context, room, date string) Reply {
	if err := protocol.ValidateDate(date); err != nil {
		return Reply{Text: "❌ " + service.ErrorMessage(err)}
	}
	schedule, err := h.schedules.RoomSchedule(ctx, room, date)
	if err != nil {
		return Reply{Text: "❌ " + service.ErrorMessage(err)}
	}
	return Reply{
		Text:     formatSchedule(room, date, schedule),
		Keyboard: scheduleKeyboard(room, date, schedule),
	}
}

// HandleCommand answers every text command
func (h *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	user := userIdentity(update.Message.From)
	reply := h.Execute(ctx, user, update.Message.Text)

	h.logger.Debug("Command handled",
		zap.String("user", user),
		zap.String("text", update.Message.Text))

	h.send(ctx, b, update.Message.Chat.ID, reply)
}

// HandleCallbackQuery books the slot behind a schedule button.
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	room, date, slot, err := parseBookCallback(query.Data)
	if err != nil {
		h.logger.Warn("Unknown callback", zap.String("data", query.Data))
		h.answerCallback(ctx, b, query.ID, "❌ Ação desconhecida")
		return
	}

	req := protocol.Request{
		Type:     protocol.RequestBook,
		RoomID:   room,
		User:     userIdentity(&query.From),
		Date:     date,
		TimeSlot: slot,
	}
	resp, _ := h.dispatcher.Handle(ctx, req)
	text := formatResponse(req, resp)
	h.answerCallback(ctx, b, query.ID, text)

	if query.Message.Message != nil {
		h.send(ctx, b, query.Message.Message.Chat.ID, Reply{Text: text})
	}
}

func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, reply Reply) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Text,
	}
	if reply.Keyboard != nil {
		params.ReplyMarkup = reply.Keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) {
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	}); err != nil {
		h.logger.Error("Failed to answer callback", zap.Error(err))
	}
}
