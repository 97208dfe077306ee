package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNewTask обрабатывает команду /newtask <title>
func (h *Handlers) HandleNewTask(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	title := commandTail(update.Message.Text)
	if title == "" {
		h.replyError(ctx, b, chatID, usage(usageNewTask))
		return
	}

	task, err := h.taskService.Create(ctx, user.ID, title)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Задача #%d создана: %s\n\nНанять исполнителя: /hire <ID исполнителя> %d <YYYY-MM-DD> <HH:MM-HH:MM>",
		task.ID, task.Title, task.ID,
	))
}

// HandleMyTasks обрабатывает команду /mytasks
func (h *Handlers) HandleMyTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByPoster(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, FormatTasks(tasks))
}

// HandleHire обрабатывает команду /hire <worker_id> <task_id> <YYYY-MM-DD> <slot>...
func (h *Handlers) HandleHire(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	args, err := parseHire(commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	booking, err := h.bookingService.CreateRequest(ctx, user.ID, args.workerID, args.taskID, args.date, args.slots)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, "📨 Заявка отправлена исполнителю.\n\n"+FormatBooking(booking))
}
