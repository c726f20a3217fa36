// Package telegram is the chat front-end: commands map onto the same
// protocol requests the HTTP API accepts.
package telegram

import (
	"context"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, dispatcher *protocol.Dispatcher, schedules ScheduleReader, logger *zap.Logger) *BotController {
	logger = logger.Named("telegram")
	return &BotController{
		bot:      botInstance,
		handlers: NewHandlers(dispatcher, schedules, logger),
		logger:   logger,
	}
}

// RegisterHandlers wires commands and inline buttons, then publishes the command menu.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	for _, cmd := range []string{"/start", "/help", "/rooms", "/schedule", "/check", "/book", "/cancel"} {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, cmd, bot.MatchTypePrefix, c.handlers.HandleCommand)
	}

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, callbackBook+callbackSep, bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "rooms", Description: "🏫 Listar salas"},
		{Command: "schedule", Description: "🗓 Horários de uma sala"},
		{Command: "check", Description: "🔎 Verificar disponibilidade"},
		{Command: "book", Description: "📌 Reservar horário"},
		{Command: "cancel", Description: "🗑 Cancelar reserva"},
		{Command: "help", Description: "❓ Ajuda"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start polls for updates until ctx is cancelled.
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped")
}
