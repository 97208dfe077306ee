package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser проверяет что пользователь существует
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			h.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.replyError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}

	return user, true
}

// requireWorker проверяет что пользователь является исполнителем
func (h *Handlers) requireWorker(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !user.IsWorker {
		h.replyError(ctx, b, update.Message.Chat.ID, service.ErrNotWorker)
		return nil, false
	}

	return user, true
}

// replyError отправляет пользователю текст ошибки. Ошибки хранилища логируются.
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	var persistErr *service.PersistenceError
	if errors.As(err, &persistErr) {
		h.logger.Error("Storage failure",
			zap.Int64("chat_id", chatID),
			zap.String("op", persistErr.Op),
			zap.Error(persistErr.Err),
		)
	}

	h.sendError(ctx, b, chatID, ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
