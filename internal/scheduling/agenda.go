package scheduling

import (
	"sort"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// DailyAgenda заявки исполнителя на дату, отсортированные по началу первого слота
func DailyAgenda(bookings []*model.Booking, workerID int64, date time.Time) []*model.Booking {
	day := model.DateOnly(date)

	var agenda []*model.Booking
	for _, b := range bookings {
		if b == nil || b.WorkerID != workerID || len(b.Slots) == 0 {
			continue
		}
		if !model.DateOnly(b.Date).Equal(day) {
			continue
		}
		if !b.Status.Is(model.AgendaStatuses...) {
			continue
		}
		agenda = append(agenda, b)
	}

	sort.SliceStable(agenda, func(i, j int) bool {
		if agenda[i].Slots[0].Start != agenda[j].Slots[0].Start {
			return agenda[i].Slots[0].Start < agenda[j].Slots[0].Start
		}
		return agenda[i].ID < agenda[j].ID
	})

	return agenda
}

// OccupiedSlots слоты заявок на дату в занимающих время статусах, кроме exceptID.
// Результат отсортирован по началу.
func OccupiedSlots(bookings []*model.Booking, date time.Time, exceptID int64) []timeslot.Slot {
	day := model.DateOnly(date)

	var occupied []timeslot.Slot
	for _, b := range bookings {
		if b == nil || b.ID == exceptID || !model.DateOnly(b.Date).Equal(day) {
			continue
		}
		if !b.Status.Is(model.OccupyingStatuses...) {
			continue
		}
		occupied = append(occupied, b.Slots...)
	}

	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].Start < occupied[j].Start
	})

	return occupied
}
