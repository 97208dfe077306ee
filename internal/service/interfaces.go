package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/notify"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// BookingStore хранилище заявок (реализуется repository.BookingRepository)
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByWorker(ctx context.Context, workerID int64, statuses []model.BookingStatus) ([]*model.Booking, error)
	GetByWorkerAndDate(ctx context.Context, workerID int64, date time.Time, statuses []model.BookingStatus) ([]*model.Booking, error)
	GetByStatusUpTo(ctx context.Context, status model.BookingStatus, date time.Time) ([]*model.Booking, error)
	PersistSlots(ctx context.Context, id int64, expectedVersion int, slots []timeslot.Slot, status model.BookingStatus) error
	UpdateStatus(ctx context.Context, id int64, expectedVersion int, status model.BookingStatus) error
	Delete(ctx context.Context, id int64, expectedVersion int) error
}

// TaskStore задачи заказчиков и назначение исполнителей
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	ListByPoster(ctx context.Context, posterID int64) ([]*model.Task, error)
	Assign(ctx context.Context, taskID, workerID int64) error
	ReleaseAssignment(ctx context.Context, taskID, workerID int64) error
}

// UserStore пользователи бота
type UserStore interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetWorker(ctx context.Context, userID int64, isWorker bool) error
}

// AvailabilityStore недельный шаблон доступности
type AvailabilityStore interface {
	GetWeekly(ctx context.Context, workerID int64) (scheduling.WeeklyAvailability, error)
	SaveDay(ctx context.Context, workerID int64, weekday string, slots []timeslot.Slot) error
}

// AgendaCache кеш расписания на день. Get возвращает поколение записи,
// Set с поколением, устаревшим после Invalidate, не виден читателям.
type AgendaCache interface {
	Get(ctx context.Context, workerID int64, date time.Time) ([]*model.Booking, int64, bool, error)
	Set(ctx context.Context, workerID int64, date time.Time, gen int64, agenda []*model.Booking) error
	Invalidate(ctx context.Context, workerID int64, date time.Time) error
}

// Transactor выполняет fn атомарно
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомление второй стороны
type Notifier = notify.Notifier
