package scheduling

import (
	"math"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// NoLimit возвращается NextTaskGap, когда следующей заявки нет
const NoLimit = math.MaxInt

// AvailableExtensionHours сколько целых часов можно добавить к заявке,
// прежде чем упереться в закрытие дня или в следующую заявку исполнителя.
//
// others - все заявки исполнителя; сама заявка и заявки в неактивных статусах
// пропускаются.
func (e *Engine) AvailableExtensionHours(booking *model.Booking, others []*model.Booking) int {
	lastEnd, ok := booking.LastEnd()
	if !ok {
		return 0
	}

	maxByScheduleEnd := (e.bounds.Close.Minutes() - lastEnd.Minutes()) / 60
	if maxByScheduleEnd < 0 {
		maxByScheduleEnd = 0
	}

	gap := NextTaskGap(booking, others)
	if gap == NoLimit {
		return maxByScheduleEnd
	}

	return max(0, min(maxByScheduleEnd, gap/60))
}

// NextTaskGap минуты от конца заявки до начала ближайшей следующей активной
// заявки того же исполнителя (в тот же день или позже). NoLimit, если такой нет.
//
// Для заявок на более поздние даты разрыв считается как точная разница
// между моментами: дни*1440 + начало - конец.
func NextTaskGap(booking *model.Booking, others []*model.Booking) int {
	lastEnd, ok := booking.LastEnd()
	if !ok {
		return NoLimit
	}

	bookingDate := model.DateOnly(booking.Date)
	best := NoLimit

	for _, other := range others {
		if other == nil || other.ID == booking.ID || other.WorkerID != booking.WorkerID {
			continue
		}
		if !other.Status.Is(model.ActiveStatuses...) {
			continue
		}

		start, ok := other.FirstStart()
		if !ok {
			continue
		}

		days := daysBetween(bookingDate, model.DateOnly(other.Date))
		var gap int
		switch {
		case days == 0 && start > lastEnd:
			gap = start.Minutes() - lastEnd.Minutes()
		case days > 0:
			gap = days*timeslot.MinutesPerDay + start.Minutes() - lastEnd.Minutes()
		default:
			continue
		}

		if gap < best {
			best = gap
		}
	}

	return best
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// GenerateExtendedSlots добавляет hours часовых слотов после последнего.
// Если очередной час выходит за закрытие дня, добавляется неполный слот до
// закрытия и генерация останавливается.
func (e *Engine) GenerateExtendedSlots(slots []timeslot.Slot, hours int) []timeslot.Slot {
	out := cloneSlots(slots)
	if hours <= 0 || len(slots) == 0 {
		return out
	}

	lastEnd := slots[len(slots)-1].End
	closeAt := e.bounds.Close

	for i := 0; i < hours; i++ {
		nextEnd := lastEnd + 60
		if nextEnd > closeAt {
			if lastEnd < closeAt {
				out = append(out, timeslot.NewSlot(lastEnd, closeAt))
			}
			break
		}
		out = append(out, timeslot.NewSlot(lastEnd, nextEnd))
		lastEnd = nextEnd
	}

	return out
}
