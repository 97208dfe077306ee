package scheduling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// Weekdays дни недели в порядке отображения
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// NormalizeWeekday приводит название дня к нижнему регистру и проверяет его
func NormalizeWeekday(day string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(day))
	for _, w := range Weekdays {
		if w == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, day)
}

// AddSlot проверяет новый слот и вставляет его в список, сохраняя сортировку по началу.
// Исходный список не меняется.
func (e *Engine) AddSlot(proposed timeslot.Slot, existing []timeslot.Slot) ([]timeslot.Slot, error) {
	if err := e.bounds.Validate(proposed); err != nil {
		return nil, err
	}

	for _, s := range existing {
		if timeslot.Overlaps(proposed, s) {
			return nil, fmt.Errorf("%w: %s conflicts with %s", ErrOverlap, proposed, s)
		}
	}

	updated := append(cloneSlots(existing), proposed)
	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Start < updated[j].Start
	})

	return updated, nil
}

// RemoveSlot возвращает список без слота с индексом index
func RemoveSlot(index int, existing []timeslot.Slot) ([]timeslot.Slot, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: %d", ErrSlotIndex, index)
	}

	updated := make([]timeslot.Slot, 0, len(existing)-1)
	updated = append(updated, existing[:index]...)
	updated = append(updated, existing[index+1:]...)
	return updated, nil
}

// WeeklyAvailability шаблон доступности исполнителя: день недели -> слоты
type WeeklyAvailability map[string][]timeslot.Slot

// AddWeeklySlot добавляет слот в указанный день недели
func (e *Engine) AddWeeklySlot(week WeeklyAvailability, day string, proposed timeslot.Slot) (WeeklyAvailability, error) {
	d, err := NormalizeWeekday(day)
	if err != nil {
		return nil, err
	}

	updated, err := e.AddSlot(proposed, week[d])
	if err != nil {
		return nil, err
	}

	out := week.clone()
	out[d] = updated
	return out, nil
}

// RemoveWeeklySlot удаляет слот по индексу из указанного дня недели
func RemoveWeeklySlot(week WeeklyAvailability, day string, index int) (WeeklyAvailability, error) {
	d, err := NormalizeWeekday(day)
	if err != nil {
		return nil, err
	}

	updated, err := RemoveSlot(index, week[d])
	if err != nil {
		return nil, err
	}

	out := week.clone()
	out[d] = updated
	return out, nil
}

func (w WeeklyAvailability) clone() WeeklyAvailability {
	out := make(WeeklyAvailability, len(w))
	for d, slots := range w {
		out[d] = cloneSlots(slots)
	}
	return out
}

// PlaceSlots проверяет слоты новой заявки против уже занятых и друг против друга.
// Возвращает слоты заявки, отсортированные по началу.
func (e *Engine) PlaceSlots(requested, occupied []timeslot.Slot) ([]timeslot.Slot, error) {
	if len(requested) == 0 {
		return nil, ErrNoActiveSlot
	}

	all := cloneSlots(occupied)
	var placed []timeslot.Slot
	for _, s := range requested {
		var err error
		if all, err = e.AddSlot(s, all); err != nil {
			return nil, err
		}
		if placed, err = e.AddSlot(s, placed); err != nil {
			return nil, err
		}
	}

	return placed, nil
}
