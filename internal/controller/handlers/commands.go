package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(ctx, user.ID, user.Username, user.FirstName)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это TaskHire Bot - бот для найма исполнителей на задачи по времени.\n"+
			"Ваш ID: %d\n\n"+
			"Заказчикам:\n"+
			"/newtask - Создать задачу\n"+
			"/hire - Нанять исполнителя\n\n"+
			"Исполнителям:\n"+
			"/becomeworker - Стать исполнителем\n"+
			"/agenda - Расписание на день\n\n"+
			"/help - Все команды",
		registeredUser.FirstName,
		registeredUser.ID,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleBecomeWorker обрабатывает команду /becomeworker
func (h *Handlers) HandleBecomeWorker(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	if user.IsWorker {
		h.sendMessage(ctx, b, chatID, "✅ Вы уже исполнитель!\n\nНастройте доступность: /addslot")
		return
	}

	if _, err := h.userService.MakeWorker(ctx, user.TelegramID); err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"🎉 Теперь вы исполнитель!\n\n"+
			"Заказчики могут нанять вас по ID %d.\n"+
			"Добавьте часы доступности: %s",
		user.ID, usageAddSlot,
	))
}
