package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/taskhire_bot/internal/notify"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// parseRespondCallback разбирает data кнопки ответа на заявку
func parseRespondCallback(data string) (bookingID int64, accept bool, ok bool) {
	switch {
	case strings.HasPrefix(data, notify.CallbackAcceptPrefix):
		bookingID, ok = parsePositiveID(strings.TrimPrefix(data, notify.CallbackAcceptPrefix))
		return bookingID, true, ok
	case strings.HasPrefix(data, notify.CallbackRejectPrefix):
		bookingID, ok = parsePositiveID(strings.TrimPrefix(data, notify.CallbackRejectPrefix))
		return bookingID, false, ok
	default:
		return 0, false, false
	}
}

// HandleCallbackQuery обрабатывает нажатия на кнопки "принять" и "отклонить"
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	// Убираем "часики" на кнопке
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		h.logger.Warn("Failed to answer callback query", zap.Error(err))
	}

	bookingID, accept, ok := parseRespondCallback(query.Data)
	if !ok {
		h.logger.Warn("Unknown callback data", zap.String("data", query.Data))
		return
	}

	chatID := query.From.ID

	user, err := h.userService.GetByTelegramID(ctx, query.From.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}

	h.respond(ctx, b, chatID, user.ID, bookingID, accept)
}
