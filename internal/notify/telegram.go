package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Префиксы callback data кнопок ответа на заявку, после префикса идёт ID заявки
const (
	CallbackAcceptPrefix = "booking_accept:"
	CallbackRejectPrefix = "booking_reject:"
)

// MessageSender часть *bot.Bot, нужная для отправки сообщений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// UserLookup поиск пользователя по внутреннему ID
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// TelegramNotifier отправляет второй стороне сообщение в Telegram
type TelegramNotifier struct {
	sender MessageSender
	users  UserLookup
}

func NewTelegramNotifier(sender MessageSender, users UserLookup) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, users: users}
}

func (n *TelegramNotifier) NotifyCounterparty(ctx context.Context, booking *model.Booking, actorID int64, kind EventKind) error {
	recipientID := booking.Counterparty(actorID)

	recipient, err := n.users.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("get recipient: %w", err)
	}
	if recipient == nil {
		return fmt.Errorf("recipient %d not found", recipientID)
	}

	params := &bot.SendMessageParams{
		ChatID: recipient.TelegramID,
		Text:   Message(booking, kind),
	}
	if kind == EventRequested {
		params.ReplyMarkup = RespondKeyboard(booking.ID)
	}

	_, err = n.sender.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

// RespondKeyboard кнопки "принять" и "отклонить" для новой заявки
func RespondKeyboard(bookingID int64) *models.InlineKeyboardMarkup {
	id := strconv.FormatInt(bookingID, 10)
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Принять", CallbackData: CallbackAcceptPrefix + id},
				{Text: "❌ Отклонить", CallbackData: CallbackRejectPrefix + id},
			},
		},
	}
}

// Message текст уведомления о событии
func Message(booking *model.Booking, kind EventKind) string {
	var title string
	switch kind {
	case EventRequested:
		title = "📥 Новая заявка"
	case EventAccepted:
		title = "✅ Заявка принята"
	case EventRejected:
		title = "❌ Заявка отклонена"
	case EventStarted:
		title = "▶️ Работа началась"
	case EventTimedOut:
		title = "⌛ Заявка не получила ответа вовремя"
	case EventCompleted:
		title = "🏁 Работа завершена, ожидается оплата"
	case EventExtended:
		title = "⏩ Работа продлена"
	case EventCancelled:
		title = "🚫 Заявка отменена"
	default:
		title = "ℹ️ Обновление заявки"
	}

	return fmt.Sprintf("%s #%d\n📅 %s\n🕐 %s",
		title,
		booking.ID,
		booking.Date.Format("02.01.2006"),
		strings.Join(timeslot.FormatSlots(booking.Slots), ", "),
	)
}
