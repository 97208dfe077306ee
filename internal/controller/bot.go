package controller

import (
	"context"

	"github.com/Freeeeeet/taskhire_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, cmdHandlers *handlers.Handlers, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды без аргументов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/becomeworker", bot.MatchTypeExact, c.handlers.HandleBecomeWorker)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mytasks", bot.MatchTypeExact, c.handlers.HandleMyTasks)

	// Команды с аргументами. Префиксы не пересекаются, "/extend " с пробелом из-за /extendable.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addslot", bot.MatchTypePrefix, c.handlers.HandleAddSlot)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/removeslot", bot.MatchTypePrefix, c.handlers.HandleRemoveSlot)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newtask", bot.MatchTypePrefix, c.handlers.HandleNewTask)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/hire", bot.MatchTypePrefix, c.handlers.HandleHire)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/accept", bot.MatchTypePrefix, c.handlers.HandleAccept)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reject", bot.MatchTypePrefix, c.handlers.HandleReject)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/complete", bot.MatchTypePrefix, c.handlers.HandleComplete)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/extendable", bot.MatchTypePrefix, c.handlers.HandleExtendable)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/extend", bot.MatchTypeExact, c.handlers.HandleExtend)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/extend ", bot.MatchTypePrefix, c.handlers.HandleExtend)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/agenda", bot.MatchTypePrefix, c.handlers.HandleAgenda)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "newtask", Description: "➕ Создать задачу"},
		{Command: "mytasks", Description: "📋 Мои задачи"},
		{Command: "hire", Description: "🤝 Нанять исполнителя"},
		{Command: "becomeworker", Description: "🛠 Стать исполнителем"},
		{Command: "availability", Description: "📆 Моя доступность (исполнитель)"},
		{Command: "mybookings", Description: "📅 Мои заявки (исполнитель)"},
		{Command: "agenda", Description: "🗓 Расписание на день (исполнитель)"},
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

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
