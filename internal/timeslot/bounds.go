package timeslot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange начало слота не раньше конца
	ErrInvalidRange = errors.New("slot start must be before end")
	// ErrOutOfBounds слот выходит за рабочие часы дня
	ErrOutOfBounds = errors.New("slot is outside working hours")
)

// Bounds рабочие часы дня: слоты не могут выходить за [Open, Close]
type Bounds struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// DefaultBounds 08:00-22:00
var DefaultBounds = Bounds{Open: 8 * 60, Close: 22 * 60}

// NewBounds создаёт границы дня из строк "HH:MM"
func NewBounds(open, close string) (Bounds, error) {
	o, err := ParseTime(open)
	if err != nil {
		return Bounds{}, fmt.Errorf("parse day open: %w", err)
	}

	c, err := ParseTime(close)
	if err != nil {
		return Bounds{}, fmt.Errorf("parse day close: %w", err)
	}

	if o >= c {
		return Bounds{}, fmt.Errorf("%w: day opens at %s, closes at %s", ErrInvalidRange, o, c)
	}

	return Bounds{Open: o, Close: c}, nil
}

// Validate проверяет порядок границ слота и попадание в рабочие часы
func (b Bounds) Validate(s Slot) error {
	if s.Start >= s.End {
		return fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
	if s.Start < b.Open || s.End > b.Close {
		return fmt.Errorf("%w: %s not within %s-%s", ErrOutOfBounds, s, b.Open, b.Close)
	}
	return nil
}

// String "HH:MM-HH:MM"
func (b Bounds) String() string {
	return b.Open.String() + "-" + b.Close.String()
}
