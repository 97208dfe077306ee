package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/notify"
	"github.com/Freeeeeet/taskhire_bot/internal/repository"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"go.uber.org/zap"
)

// BookingService жизненный цикл заявок: читает актуальные слоты, считает
// новые через движок, записывает с проверкой версии и уведомляет вторую сторону
type BookingService struct {
	tx       Transactor
	bookings BookingStore
	tasks    TaskStore
	engine   *scheduling.Engine
	notifier Notifier
	agenda   AgendaCache
	now      func() time.Time
	logger   *zap.Logger
}

func NewBookingService(
	tx Transactor,
	bookings BookingStore,
	tasks TaskStore,
	engine *scheduling.Engine,
	notifier Notifier,
	agenda AgendaCache,
	logger *zap.Logger,
) *BookingService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &BookingService{
		tx:       tx,
		bookings: bookings,
		tasks:    tasks,
		engine:   engine,
		notifier: notifier,
		agenda:   agenda,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock подменяет источник текущего времени
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateRequest создаёт заявку заказчика к исполнителю на дату.
// Слоты проверяются на границы дня и пересечения с другими заявками исполнителя.
func (s *BookingService) CreateRequest(ctx context.Context, posterID, workerID, taskID int64, date time.Time, rawSlots []string) (*model.Booking, error) {
	requested, err := timeslot.ParseSlots(rawSlots)
	if err != nil {
		return nil, err
	}

	day := model.DateOnly(date)
	now := s.now()
	today := model.DateOnly(now)
	if day.Before(today) {
		return nil, ErrDateInPast
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, persistence("get task", err)
	}

	if task == nil {
		return nil, ErrTaskNotFound
	}

	if task.PosterID != posterID {
		return nil, ErrNotOwner
	}

	existing, err := s.bookings.GetByWorkerAndDate(ctx, workerID, day, model.OccupyingStatuses)
	if err != nil {
		return nil, persistence("get worker bookings", err)
	}

	placed, err := s.engine.PlaceSlots(requested, scheduling.OccupiedSlots(existing, day, 0))
	if err != nil {
		return nil, err
	}

	if day.Equal(today) && placed[0].Start < timeOfDay(now) {
		return nil, ErrDateInPast
	}

	booking := &model.Booking{
		TaskID:   taskID,
		WorkerID: workerID,
		PosterID: posterID,
		Date:     day,
		Slots:    placed,
		Status:   model.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, persistence("create booking", err)
	}

	s.logger.Info("Booking requested",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("poster_id", posterID),
		zap.Int64("worker_id", workerID),
		zap.Strings("slots", timeslot.FormatSlots(placed)),
	)

	s.afterChange(ctx, booking, posterID, notify.EventRequested)

	return booking, nil
}

// Respond принимает или отклоняет заявку. Доступно только исполнителю.
func (s *BookingService) Respond(ctx context.Context, bookingID, workerID int64, accept bool) (*model.Booking, error) {
	booking, err := s.loadOwned(ctx, bookingID, workerID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusPending {
		return nil, ErrInvalidStatus
	}

	status := model.BookingStatusRejected
	kind := notify.EventRejected
	if accept {
		status = model.BookingStatusAccepted
		kind = notify.EventAccepted
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookings.UpdateStatus(ctx, booking.ID, booking.Version, status); err != nil {
			return persistence("update booking status", err)
		}
		if accept {
			if err := s.tasks.Assign(ctx, booking.TaskID, workerID); err != nil {
				if errors.Is(err, repository.ErrTaskTaken) {
					return ErrTaskTaken
				}
				return persistence("assign task", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = status
	booking.Version++

	s.logger.Info("Booking answered",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("worker_id", workerID),
		zap.String("status", string(status)),
	)

	s.afterChange(ctx, booking, workerID, kind)

	return booking, nil
}

// Complete завершает текущую работу: активный слот обрезается до ближайшего часа,
// последующие слоты отбрасываются, заявка переходит в ожидание оплаты
func (s *BookingService) Complete(ctx context.Context, bookingID, workerID int64) (*model.Booking, error) {
	booking, err := s.loadOwned(ctx, bookingID, workerID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusCurrent {
		return nil, ErrInvalidStatus
	}

	updated, err := s.completedSlots(booking)
	if err != nil {
		return nil, err
	}

	status := model.BookingStatusPaymentPending
	if err := s.bookings.PersistSlots(ctx, booking.ID, booking.Version, updated, status); err != nil {
		return nil, persistence("persist completed slots", err)
	}

	s.logger.Info("Booking completed",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("worker_id", workerID),
		zap.Strings("before", timeslot.FormatSlots(booking.Slots)),
		zap.Strings("after", timeslot.FormatSlots(updated)),
	)

	booking.Slots = updated
	booking.Status = status
	booking.Version++

	s.afterChange(ctx, booking, workerID, notify.EventCompleted)

	return booking, nil
}

// ExtensionHours сколько целых часов можно предложить для продления заявки
func (s *BookingService) ExtensionHours(ctx context.Context, bookingID, workerID int64) (int, error) {
	booking, err := s.loadOwned(ctx, bookingID, workerID)
	if err != nil {
		return 0, err
	}

	return s.extensionHours(ctx, booking)
}

func (s *BookingService) extensionHours(ctx context.Context, booking *model.Booking) (int, error) {
	// Продлить можно только работу, которая идёт сегодня
	if !model.DateOnly(booking.Date).Equal(model.DateOnly(s.now())) {
		return 0, nil
	}

	others, err := s.bookings.GetByWorker(ctx, booking.WorkerID, model.ActiveStatuses)
	if err != nil {
		return 0, persistence("get worker bookings", err)
	}

	return s.engine.AvailableExtensionHours(booking, others), nil
}

// Extend добавляет к текущей заявке hours часовых слотов
func (s *BookingService) Extend(ctx context.Context, bookingID, workerID int64, hours int) (*model.Booking, error) {
	booking, err := s.loadOwned(ctx, bookingID, workerID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusCurrent {
		return nil, ErrInvalidStatus
	}

	available, err := s.extensionHours(ctx, booking)
	if err != nil {
		return nil, err
	}

	if hours < 1 || hours > available {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrExtensionUnavailable, hours, available)
	}

	updated := s.engine.GenerateExtendedSlots(booking.Slots, hours)

	if err := s.bookings.PersistSlots(ctx, booking.ID, booking.Version, updated, booking.Status); err != nil {
		return nil, persistence("persist extended slots", err)
	}

	s.logger.Info("Booking extended",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("worker_id", workerID),
		zap.Int("hours", hours),
		zap.Strings("slots", timeslot.FormatSlots(updated)),
	)

	booking.Slots = updated
	booking.Version++

	s.afterChange(ctx, booking, workerID, notify.EventExtended)

	return booking, nil
}

// Cancel удаляет заявку и освобождает задачу для других исполнителей
func (s *BookingService) Cancel(ctx context.Context, bookingID, workerID int64) error {
	booking, err := s.loadOwned(ctx, bookingID, workerID)
	if err != nil {
		return err
	}

	if !booking.Status.Is(model.BookingStatusPending, model.BookingStatusAccepted, model.BookingStatusCurrent) {
		return ErrInvalidStatus
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookings.Delete(ctx, booking.ID, booking.Version); err != nil {
			return persistence("delete booking", err)
		}
		if err := s.tasks.ReleaseAssignment(ctx, booking.TaskID, booking.WorkerID); err != nil {
			return persistence("release task assignment", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("worker_id", workerID),
		zap.Int64("task_id", booking.TaskID),
	)

	booking.Status = model.BookingStatusCancelled
	s.afterChange(ctx, booking, workerID, notify.EventCancelled)

	return nil
}

// GetByID получает заявку по ID
func (s *BookingService) GetByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, persistence("get booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListByWorker заявки исполнителя, которые видны в расписании
func (s *BookingService) ListByWorker(ctx context.Context, workerID int64) ([]*model.Booking, error) {
	bookings, err := s.bookings.GetByWorker(ctx, workerID, model.AgendaStatuses)
	if err != nil {
		return nil, persistence("list worker bookings", err)
	}
	return bookings, nil
}

// AdvanceStatuses переводит принятые заявки, время которых наступило, в current,
// а неотвеченные заявки с прошедшим началом - в timed_out
func (s *BookingService) AdvanceStatuses(ctx context.Context) (started, timedOut int, err error) {
	now := s.now()
	today := model.DateOnly(now)
	nowTod := timeOfDay(now)

	accepted, err := s.bookings.GetByStatusUpTo(ctx, model.BookingStatusAccepted, today)
	if err != nil {
		return 0, 0, persistence("get accepted bookings", err)
	}

	for _, b := range accepted {
		if !hasStarted(b, today, nowTod) {
			continue
		}
		if s.transition(ctx, b, model.BookingStatusCurrent, notify.EventStarted) {
			started++
		}
	}

	pending, err := s.bookings.GetByStatusUpTo(ctx, model.BookingStatusPending, today)
	if err != nil {
		return started, 0, persistence("get pending bookings", err)
	}

	for _, b := range pending {
		if !hasStarted(b, today, nowTod) {
			continue
		}
		if s.transition(ctx, b, model.BookingStatusTimedOut, notify.EventTimedOut) {
			timedOut++
		}
	}

	return started, timedOut, nil
}

func (s *BookingService) transition(ctx context.Context, b *model.Booking, status model.BookingStatus, kind notify.EventKind) bool {
	if err := s.bookings.UpdateStatus(ctx, b.ID, b.Version, status); err != nil {
		s.logger.Warn("Failed to advance booking status",
			zap.Int64("booking_id", b.ID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return false
	}

	b.Status = status
	b.Version++

	s.logger.Info("Booking status advanced",
		zap.Int64("booking_id", b.ID),
		zap.String("status", string(status)),
	)

	s.afterChange(ctx, b, b.WorkerID, kind)
	return true
}

func hasStarted(b *model.Booking, today time.Time, now timeslot.TimeOfDay) bool {
	start, ok := b.FirstStart()
	if !ok {
		return false
	}
	day := model.DateOnly(b.Date)
	return day.Before(today) || (day.Equal(today) && start <= now)
}

// completedSlots слоты заявки после завершения. Сегодняшняя заявка обрезается
// по текущему времени, заявка прошедшего дня остаётся в забронированном виде.
func (s *BookingService) completedSlots(b *model.Booking) ([]timeslot.Slot, error) {
	now := s.now()
	day := model.DateOnly(b.Date)
	today := model.DateOnly(now)

	switch {
	case day.After(today):
		return nil, ErrInvalidStatus
	case day.Before(today):
		if len(b.Slots) == 0 {
			return nil, scheduling.ErrNoActiveSlot
		}
		return append([]timeslot.Slot(nil), b.Slots...), nil
	default:
		return s.engine.CompleteActiveSlot(b.Slots, timeOfDay(now))
	}
}

// loadOwned загружает заявку и проверяет, что она принадлежит исполнителю
func (s *BookingService) loadOwned(ctx context.Context, bookingID, workerID int64) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.WorkerID != workerID {
		return nil, ErrNotOwner
	}

	return booking, nil
}

// afterChange сбрасывает кеш расписания и уведомляет вторую сторону.
// Ошибки только логируются: изменение уже записано.
func (s *BookingService) afterChange(ctx context.Context, booking *model.Booking, actorID int64, kind notify.EventKind) {
	if s.agenda != nil {
		if err := s.agenda.Invalidate(ctx, booking.WorkerID, booking.Date); err != nil {
			s.logger.Warn("Failed to invalidate agenda cache",
				zap.Int64("worker_id", booking.WorkerID),
				zap.Error(err),
			)
		}
	}

	if err := s.notifier.NotifyCounterparty(ctx, booking, actorID, kind); err != nil {
		s.logger.Warn("Failed to notify counterparty",
			zap.Int64("booking_id", booking.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func timeOfDay(t time.Time) timeslot.TimeOfDay {
	return timeslot.FromMinutes(t.Hour()*60 + t.Minute())
}
