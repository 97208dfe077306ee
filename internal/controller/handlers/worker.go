package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/taskhire_bot/internal/controller/render"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAvailability обрабатывает команду /availability
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	week, err := h.availabilityService.Weekly(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, FormatWeekly(week))
}

// HandleAddSlot обрабатывает команду /addslot <day> <slot>
func (h *Handlers) HandleAddSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	day, slot, err := parseAddSlot(commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	slots, err := h.availabilityService.AddSlot(ctx, user.ID, day, slot)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Слот добавлен.\n\n%s: %s",
		strings.ToLower(day), strings.Join(timeslot.FormatSlots(slots), ", ")))
}

// HandleRemoveSlot обрабатывает команду /removeslot <day> <n>
func (h *Handlers) HandleRemoveSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	day, index, err := parseRemoveSlot(commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	if _, err := h.availabilityService.RemoveSlot(ctx, user.ID, day, index); err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	week, err := h.availabilityService.Weekly(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, "🗑 Слот удалён.\n\n"+FormatWeekly(week))
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByWorker(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, FormatBookings(bookings))
}

// HandleAccept обрабатывает команду /accept <id>
func (h *Handlers) HandleAccept(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleRespond(ctx, b, update, "/accept", true)
}

// HandleReject обрабатывает команду /reject <id>
func (h *Handlers) HandleReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleRespond(ctx, b, update, "/reject", false)
}

func (h *Handlers) handleRespond(ctx context.Context, b *bot.Bot, update *models.Update, command string, accept bool) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	id, err := parseBookingID(command, commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.respond(ctx, b, chatID, user.ID, id, accept)
}

// respond общий ответ на заявку для команд и inline кнопок
func (h *Handlers) respond(ctx context.Context, b *bot.Bot, chatID, workerID, bookingID int64, accept bool) {
	booking, err := h.bookingService.Respond(ctx, bookingID, workerID, accept)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, FormatBooking(booking))
}

// HandleComplete обрабатывает команду /complete <id>
func (h *Handlers) HandleComplete(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	id, err := parseBookingID("/complete", commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	booking, err := h.bookingService.Complete(ctx, id, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, "🏁 Работа завершена.\n\n"+FormatBooking(booking))
}

// HandleExtendable обрабатывает команду /extendable <id>
func (h *Handlers) HandleExtendable(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	id, err := parseBookingID("/extendable", commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	hours, err := h.bookingService.ExtensionHours(ctx, id, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	if hours == 0 {
		h.sendMessage(ctx, b, chatID, "⛔ Продлить заявку нельзя: дальше закрытие дня или следующая заявка")
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("⏩ Можно продлить на %d ч.\n\n/extend %d <часов>", hours, id))
}

// HandleExtend обрабатывает команду /extend <id> <hours>
func (h *Handlers) HandleExtend(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	id, hours, err := parseExtend(commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	booking, err := h.bookingService.Extend(ctx, id, user.ID, hours)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, "⏩ Работа продлена.\n\n"+FormatBooking(booking))
}

// HandleCancel обрабатывает команду /cancel <id>
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	id, err := parseBookingID("/cancel", commandArgs(update.Message.Text))
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	if err := h.bookingService.Cancel(ctx, id, user.ID); err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🚫 Заявка #%d отменена, задача снова свободна", id))
}

// HandleAgenda обрабатывает команду /agenda [YYYY-MM-DD]: картинка дня с текстом в подписи
func (h *Handlers) HandleAgenda(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireWorker(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	now := h.now()

	date, err := parseAgendaDate(commandArgs(update.Message.Text), now)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	agenda, err := h.scheduleService.Agenda(ctx, user.ID, date)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	text := FormatAgenda(date, agenda)

	imageData, err := render.AgendaImage(date, agenda, h.bounds, now)
	if err != nil {
		h.logger.Error("Failed to render agenda image", zap.Int64("worker_id", user.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, text)
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "agenda.png", Data: bytes.NewReader(imageData)},
		Caption: text,
	})
	if err != nil {
		h.logger.Error("Failed to send agenda image", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, text)
	}
}
