package scheduling

import "github.com/Freeeeeet/taskhire_bot/internal/timeslot"

// ActiveSlotIndex индекс последнего слота, который уже начался к моменту now.
// Если ни один не начался, возвращается 0.
func ActiveSlotIndex(slots []timeslot.Slot, now timeslot.TimeOfDay) int {
	active := 0
	for i, s := range slots {
		if s.Start <= now {
			active = i
		}
	}
	return active
}

// CompleteActiveSlot завершает заявку в момент now.
//
// Конец активного слота становится равным now, округлённому вверх до часа,
// но не позже закрытия дня и не раньше начала слота (допускается слот нулевой длины).
// Все слоты после активного отбрасываются.
//
// Повторный вызов для уже завершённой заявки не определён: вызывающий
// должен проверить статус.
func (e *Engine) CompleteActiveSlot(slots []timeslot.Slot, now timeslot.TimeOfDay) ([]timeslot.Slot, error) {
	if len(slots) == 0 {
		return nil, ErrNoActiveSlot
	}

	i := ActiveSlotIndex(slots, now)
	active := slots[i]

	end := now.CeilHour()
	if end > e.bounds.Close {
		end = e.bounds.Close
	}
	if end < active.Start {
		end = active.Start
	}

	updated := cloneSlots(slots[:i+1])
	updated[i] = timeslot.NewSlot(active.Start, end)
	return updated, nil
}
