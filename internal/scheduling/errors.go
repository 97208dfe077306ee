package scheduling

import (
	"errors"

	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// Ошибки движка расписания. Все проверки выполняются до изменения слотов.
var (
	ErrFormat         = timeslot.ErrFormat
	ErrInvalidRange   = timeslot.ErrInvalidRange
	ErrOutOfBounds    = timeslot.ErrOutOfBounds
	ErrOverlap        = errors.New("slot overlaps an existing slot")
	ErrNoActiveSlot   = errors.New("booking has no slots")
	ErrUnknownWeekday = errors.New("unknown weekday")
	ErrSlotIndex      = errors.New("slot index out of range")
)
