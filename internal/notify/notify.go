package notify

import (
	"context"
	"errors"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"go.uber.org/zap"
)

// EventKind тип события по заявке
type EventKind string

const (
	EventRequested EventKind = "booking.requested"
	EventAccepted  EventKind = "booking.accepted"
	EventRejected  EventKind = "booking.rejected"
	EventStarted   EventKind = "booking.started"
	EventTimedOut  EventKind = "booking.timed_out"
	EventCompleted EventKind = "booking.completed"
	EventExtended  EventKind = "booking.extended"
	EventCancelled EventKind = "booking.cancelled"
)

// Notifier уведомляет вторую сторону заявки о событии.
// Ошибка не должна откатывать изменение заявки.
type Notifier interface {
	NotifyCounterparty(ctx context.Context, booking *model.Booking, actorID int64, kind EventKind) error
}

// Multi рассылает событие всем уведомителям и собирает ошибки
type Multi struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewMulti создаёт рассылку по нескольким каналам. nil-каналы пропускаются.
func NewMulti(logger *zap.Logger, notifiers ...Notifier) *Multi {
	m := &Multi{logger: logger}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// NotifyCounterparty вызывает каждый канал, даже если предыдущий упал
func (m *Multi) NotifyCounterparty(ctx context.Context, booking *model.Booking, actorID int64, kind EventKind) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.NotifyCounterparty(ctx, booking, actorID, kind); err != nil {
			m.logger.Warn("Notification channel failed",
				zap.Int64("booking_id", booking.ID),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop ничего не отправляет
type Nop struct{}

func (Nop) NotifyCounterparty(context.Context, *model.Booking, int64, EventKind) error {
	return nil
}
