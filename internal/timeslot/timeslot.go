package timeslot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat возвращается, если строку нельзя разобрать как "HH:MM" или "HH:MM-HH:MM"
var ErrFormat = errors.New("invalid time format")

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeOfDay время суток в минутах от полуночи
type TimeOfDay int

// ParseTime разбирает строку "HH:MM" (00 ≤ HH ≤ 23, 00 ≤ MM ≤ 59)
func ParseTime(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}

	hours, ok := twoDigits(s[0], s[1])
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}

	minutes, ok := twoDigits(s[3], s[4])
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// MustParseTime как ParseTime, но паникует на ошибке. Для констант и тестов.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FromMinutes создаёт TimeOfDay из количества минут от полуночи
func FromMinutes(m int) TimeOfDay {
	return TimeOfDay(m)
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Hour возвращает час
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуты внутри часа
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// CeilHour округляет вверх до целого часа. Ровный час не меняется.
func (t TimeOfDay) CeilHour() TimeOfDay {
	if t%60 == 0 {
		return t
	}
	return (t/60 + 1) * 60
}

// String форматирует время как "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Slot непрерывный интервал [Start, End) внутри одного дня
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewSlot создаёт слот без валидации
func NewSlot(start, end TimeOfDay) Slot {
	return Slot{Start: start, End: end}
}

// ParseSlot разбирает строку формата "HH:MM-HH:MM".
// Порядок границ не проверяется, это задача Bounds.Validate.
func ParseSlot(s string) (Slot, error) {
	startStr, endStr, found := strings.Cut(s, "-")
	if !found {
		return Slot{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}

	start, err := ParseTime(startStr)
	if err != nil {
		return Slot{}, err
	}

	end, err := ParseTime(endStr)
	if err != nil {
		return Slot{}, err
	}

	return Slot{Start: start, End: end}, nil
}

// ParseSlots разбирает список слотов в формате хранения
func ParseSlots(raw []string) ([]Slot, error) {
	slots := make([]Slot, 0, len(raw))
	for _, s := range raw {
		slot, err := ParseSlot(s)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// FormatSlots переводит слоты в формат хранения "HH:MM-HH:MM"
func FormatSlots(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

// String форматирует слот как "HH:MM-HH:MM"
func (s Slot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Duration длительность слота в минутах
func (s Slot) Duration() int {
	return int(s.End - s.Start)
}

// Overlaps строгое пересечение интервалов. Касание границ пересечением не считается.
func Overlaps(a, b Slot) bool {
	return a.Start < b.End && b.Start < a.End
}

// MarshalText слот в формате "HH:MM-HH:MM"
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText разбирает слот из "HH:MM-HH:MM"
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
