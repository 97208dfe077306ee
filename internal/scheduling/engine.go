package scheduling

import "github.com/Freeeeeet/taskhire_bot/internal/timeslot"

// Engine чистые операции над слотами в пределах рабочего дня.
// Не хранит состояния и не делает I/O: принимает слоты и возвращает новые.
type Engine struct {
	bounds timeslot.Bounds
}

// New создаёт движок с заданными границами дня
func New(bounds timeslot.Bounds) *Engine {
	return &Engine{bounds: bounds}
}

// Bounds возвращает границы дня
func (e *Engine) Bounds() timeslot.Bounds {
	return e.bounds
}

func cloneSlots(slots []timeslot.Slot) []timeslot.Slot {
	out := make([]timeslot.Slot, len(slots))
	copy(out, slots)
	return out
}
