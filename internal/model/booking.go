package model

import (
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"         // Ожидает ответа исполнителя
	BookingStatusAccepted       BookingStatus = "accepted"        // Принято исполнителем
	BookingStatusRejected       BookingStatus = "rejected"        // Отклонено исполнителем
	BookingStatusCancelled      BookingStatus = "cancelled"       // Отменено
	BookingStatusTimedOut       BookingStatus = "timed_out"       // Исполнитель не ответил вовремя
	BookingStatusCurrent        BookingStatus = "current"         // Работа идёт
	BookingStatusCompleted      BookingStatus = "completed"       // Завершено и оплачено
	BookingStatusPaymentPending BookingStatus = "payment_pending" // Завершено, ждёт оплаты
)

// ActiveStatuses статусы заявок, которые занимают время исполнителя
// при расчёте окна продления
var ActiveStatuses = []BookingStatus{
	BookingStatusCurrent,
	BookingStatusPending,
	BookingStatusPaymentPending,
}

// AgendaStatuses статусы заявок, которые показываются в расписании на день
var AgendaStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusCurrent,
	BookingStatusPaymentPending,
	BookingStatusCompleted,
}

// OccupyingStatuses статусы, слоты которых нельзя перекрывать новой заявкой
var OccupyingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusCurrent,
	BookingStatusPaymentPending,
}

// Is проверяет, входит ли статус в список
func (s BookingStatus) Is(statuses ...BookingStatus) bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Booking заявка на найм исполнителя на конкретную дату
type Booking struct {
	ID        int64           `json:"id"`
	TaskID    int64           `json:"task_id"`
	WorkerID  int64           `json:"worker_id"`
	PosterID  int64           `json:"poster_id"`
	Date      time.Time       `json:"date"`  // только дата, время 00:00
	Slots     []timeslot.Slot `json:"slots"` // упорядочены, не пересекаются
	Status    BookingStatus   `json:"status"`
	Version   int             `json:"version"` // для оптимистичной блокировки
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Task   *Task `json:"task,omitempty"`
	Worker *User `json:"worker,omitempty"`
	Poster *User `json:"poster,omitempty"`
}

// FirstStart начало первого слота; false, если слотов нет
func (b *Booking) FirstStart() (timeslot.TimeOfDay, bool) {
	if len(b.Slots) == 0 {
		return 0, false
	}
	return b.Slots[0].Start, true
}

// LastEnd конец последнего слота; false, если слотов нет
func (b *Booking) LastEnd() (timeslot.TimeOfDay, bool) {
	if len(b.Slots) == 0 {
		return 0, false
	}
	return b.Slots[len(b.Slots)-1].End, true
}

// Counterparty возвращает ID второй стороны заявки
func (b *Booking) Counterparty(actorID int64) int64 {
	if actorID == b.WorkerID {
		return b.PosterID
	}
	return b.WorkerID
}

// DateOnly обрезает время, оставляя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
