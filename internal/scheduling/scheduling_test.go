package scheduling

import (
	"testing"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slots(t *testing.T, raw ...string) []timeslot.Slot {
	t.Helper()
	out, err := timeslot.ParseSlots(raw)
	require.NoError(t, err)
	return out
}

func tod(s string) timeslot.TimeOfDay {
	return timeslot.MustParseTime(s)
}

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func assertNoOverlap(t *testing.T, list []timeslot.Slot) {
	t.Helper()
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			assert.False(t, timeslot.Overlaps(list[i], list[j]), "%s overlaps %s", list[i], list[j])
		}
	}
}

func TestAddSlot(t *testing.T) {
	e := New(timeslot.DefaultBounds)
	existing := slots(t, "10:00-11:00", "14:00-16:00")

	tests := []struct {
		name    string
		slot    string
		wantErr error
		want    []string
	}{
		{name: "touching after", slot: "11:00-12:00", want: []string{"10:00-11:00", "11:00-12:00", "14:00-16:00"}},
		{name: "touching before", slot: "09:00-10:00", want: []string{"09:00-10:00", "10:00-11:00", "14:00-16:00"}},
		{name: "at day end", slot: "21:00-22:00", want: []string{"10:00-11:00", "14:00-16:00", "21:00-22:00"}},
		{name: "exact duplicate", slot: "10:00-11:00", wantErr: ErrOverlap},
		{name: "contained", slot: "14:30-15:00", wantErr: ErrOverlap},
		{name: "containing", slot: "13:00-17:00", wantErr: ErrOverlap},
		{name: "left edge", slot: "09:30-10:30", wantErr: ErrOverlap},
		{name: "right edge", slot: "15:30-16:30", wantErr: ErrOverlap},
		{name: "reversed", slot: "12:00-11:00", wantErr: ErrInvalidRange},
		{name: "empty", slot: "12:00-12:00", wantErr: ErrInvalidRange},
		{name: "before open", slot: "07:00-09:00", wantErr: ErrOutOfBounds},
		{name: "after close", slot: "21:00-22:30", wantErr: ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposed, err := timeslot.ParseSlot(tt.slot)
			require.NoError(t, err)

			got, err := e.AddSlot(proposed, existing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Equal(t, []string{"10:00-11:00", "14:00-16:00"}, timeslot.FormatSlots(existing))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, timeslot.FormatSlots(got))
			assertNoOverlap(t, got)
		})
	}
}

func TestAddSlotCustomBounds(t *testing.T) {
	b, err := timeslot.NewBounds("09:00", "18:00")
	require.NoError(t, err)
	e := New(b)

	_, err = e.AddSlot(slots(t, "08:00-09:00")[0], nil)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	got, err := e.AddSlot(slots(t, "17:00-18:00")[0], nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"17:00-18:00"}, timeslot.FormatSlots(got))
}

func TestRemoveSlot(t *testing.T) {
	existing := slots(t, "09:00-10:00", "11:00-12:00", "13:00-14:00")

	got, err := RemoveSlot(1, existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00", "13:00-14:00"}, timeslot.FormatSlots(got))
	assert.Len(t, existing, 3)

	_, err = RemoveSlot(3, existing)
	assert.ErrorIs(t, err, ErrSlotIndex)
	_, err = RemoveSlot(-1, existing)
	assert.ErrorIs(t, err, ErrSlotIndex)
}

func TestWeeklyAvailability(t *testing.T) {
	e := New(timeslot.DefaultBounds)
	week := WeeklyAvailability{}

	week, err := e.AddWeeklySlot(week, "Monday", slots(t, "12:00-13:00")[0])
	require.NoError(t, err)
	week, err = e.AddWeeklySlot(week, "monday", slots(t, "09:00-10:00")[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00", "12:00-13:00"}, timeslot.FormatSlots(week["monday"]))

	_, err = e.AddWeeklySlot(week, "monday", slots(t, "09:30-10:30")[0])
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = e.AddWeeklySlot(week, "funday", slots(t, "09:00-10:00")[0])
	assert.ErrorIs(t, err, ErrUnknownWeekday)

	week, err = RemoveWeeklySlot(week, "monday", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00-13:00"}, timeslot.FormatSlots(week["monday"]))
}

func TestPlaceSlots(t *testing.T) {
	e := New(timeslot.DefaultBounds)
	occupied := slots(t, "10:00-12:00")

	got, err := e.PlaceSlots(slots(t, "13:00-14:00", "12:00-13:00"), occupied)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00-13:00", "13:00-14:00"}, timeslot.FormatSlots(got))

	_, err = e.PlaceSlots(slots(t, "11:00-13:00"), occupied)
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = e.PlaceSlots(slots(t, "13:00-15:00", "14:00-16:00"), occupied)
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = e.PlaceSlots(nil, occupied)
	assert.ErrorIs(t, err, ErrNoActiveSlot)
}

func TestCompleteActiveSlot(t *testing.T) {
	e := New(timeslot.DefaultBounds)

	tests := []struct {
		name  string
		slots []string
		now   string
		want  []string
	}{
		{
			name:  "rounding matches original end",
			slots: []string{"09:00-10:00", "10:00-11:00"},
			now:   "10:20",
			want:  []string{"09:00-10:00", "10:00-11:00"},
		},
		{
			name:  "truncates active slot and drops later ones",
			slots: []string{"09:00-12:00", "13:00-15:00", "16:00-18:00"},
			now:   "10:15",
			want:  []string{"09:00-11:00"},
		},
		{
			name:  "drops future slots after active",
			slots: []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"},
			now:   "10:05",
			want:  []string{"09:00-10:00", "10:00-11:00"},
		},
		{
			name:  "exact hour is kept",
			slots: []string{"09:00-12:00"},
			now:   "10:00",
			want:  []string{"09:00-10:00"},
		},
		{
			name:  "can run past original end",
			slots: []string{"09:00-10:00"},
			now:   "10:20",
			want:  []string{"09:00-11:00"},
		},
		{
			name:  "clamped to close",
			slots: []string{"20:00-22:00"},
			now:   "22:30",
			want:  []string{"20:00-22:00"},
		},
		{
			name:  "nothing started falls back to first slot as zero length",
			slots: []string{"14:00-15:00", "16:00-17:00"},
			now:   "09:10",
			want:  []string{"14:00-14:00"},
		},
		{
			name:  "non-hour start rounds to next hour",
			slots: []string{"10:30-12:00"},
			now:   "10:30",
			want:  []string{"10:30-11:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := slots(t, tt.slots...)
			got, err := e.CompleteActiveSlot(original, tod(tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.want, timeslot.FormatSlots(got))
			assert.Equal(t, tt.slots, timeslot.FormatSlots(original))
			assertNoOverlap(t, got)
		})
	}
}

func TestCompleteActiveSlotEmpty(t *testing.T) {
	e := New(timeslot.DefaultBounds)
	_, err := e.CompleteActiveSlot(nil, tod("10:00"))
	assert.ErrorIs(t, err, ErrNoActiveSlot)
}

func booking(t *testing.T, id int64, day int, status model.BookingStatus, raw ...string) *model.Booking {
	return &model.Booking{
		ID:       id,
		WorkerID: 7,
		Date:     date(day),
		Status:   status,
		Slots:    slots(t, raw...),
	}
}

func TestAvailableExtensionHours(t *testing.T) {
	e := New(timeslot.DefaultBounds)

	t.Run("ends at close", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "20:00-22:00")
		assert.Equal(t, 0, e.AvailableExtensionHours(b, nil))
	})

	t.Run("no other bookings", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "13:00-14:00")
		assert.Equal(t, 8, e.AvailableExtensionHours(b, []*model.Booking{b}))
	})

	t.Run("floors partial hours", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "19:00-20:30")
		assert.Equal(t, 1, e.AvailableExtensionHours(b, nil))
	})

	t.Run("same day next booking bounds result", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "12:00-14:00")
		others := []*model.Booking{
			b,
			booking(t, 2, 10, model.BookingStatusPending, "16:00-17:00"),
			booking(t, 3, 10, model.BookingStatusPaymentPending, "19:00-20:00"),
		}
		assert.Equal(t, 2, e.AvailableExtensionHours(b, others))
	})

	t.Run("gap below an hour gives zero", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "12:00-14:00")
		others := []*model.Booking{booking(t, 2, 10, model.BookingStatusCurrent, "14:30-15:00")}
		assert.Equal(t, 0, e.AvailableExtensionHours(b, others))
	})

	t.Run("ignores inactive statuses and earlier bookings", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "12:00-14:00")
		others := []*model.Booking{
			booking(t, 2, 10, model.BookingStatusAccepted, "15:00-16:00"),
			booking(t, 3, 10, model.BookingStatusCancelled, "15:00-16:00"),
			booking(t, 4, 10, model.BookingStatusPending, "09:00-10:00"),
			booking(t, 5, 10, model.BookingStatusPending, "14:00-15:00"),
			booking(t, 6, 9, model.BookingStatusPending, "15:00-16:00"),
		}
		// 14:00 совпадает с концом заявки, поэтому тоже не ограничивает
		assert.Equal(t, 8, e.AvailableExtensionHours(b, others))
	})

	t.Run("ignores other workers", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent, "12:00-14:00")
		other := booking(t, 2, 10, model.BookingStatusPending, "15:00-16:00")
		other.WorkerID = 8
		assert.Equal(t, 8, e.AvailableExtensionHours(b, []*model.Booking{other}))
	})

	t.Run("no slots", func(t *testing.T) {
		b := booking(t, 1, 10, model.BookingStatusCurrent)
		assert.Equal(t, 0, e.AvailableExtensionHours(b, nil))
	})
}

func TestNextTaskGapCrossDayUsesExactDifference(t *testing.T) {
	b := booking(t, 1, 10, model.BookingStatusCurrent, "12:00-14:00")
	next := booking(t, 2, 11, model.BookingStatusPending, "09:30-10:00")
	later := booking(t, 3, 13, model.BookingStatusPending, "08:00-09:00")

	// 10 ч до полуночи + 9.5 ч следующего дня
	assert.Equal(t, 10*60+9*60+30, NextTaskGap(b, []*model.Booking{later, next}))
	assert.Equal(t, 3*24*60-6*60, NextTaskGap(b, []*model.Booking{later}))
	assert.Equal(t, NoLimit, NextTaskGap(b, nil))

	e := New(timeslot.DefaultBounds)
	assert.Equal(t, 8, e.AvailableExtensionHours(b, []*model.Booking{next}))
}

func TestGenerateExtendedSlots(t *testing.T) {
	e := New(timeslot.DefaultBounds)

	tests := []struct {
		name  string
		slots []string
		hours int
		want  []string
	}{
		{
			name:  "three hours",
			slots: []string{"13:00-14:00"},
			hours: 3,
			want:  []string{"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00"},
		},
		{
			name:  "partial slot at close",
			slots: []string{"20:00-21:30"},
			hours: 2,
			want:  []string{"20:00-21:30", "21:30-22:00"},
		},
		{
			name:  "exactly to close",
			slots: []string{"19:00-20:00"},
			hours: 2,
			want:  []string{"19:00-20:00", "20:00-21:00", "21:00-22:00"},
		},
		{
			name:  "more than room is truncated",
			slots: []string{"19:00-20:00"},
			hours: 5,
			want:  []string{"19:00-20:00", "20:00-21:00", "21:00-22:00"},
		},
		{
			name:  "already at close",
			slots: []string{"20:00-22:00"},
			hours: 1,
			want:  []string{"20:00-22:00"},
		},
		{
			name:  "zero hours",
			slots: []string{"13:00-14:00"},
			hours: 0,
			want:  []string{"13:00-14:00"},
		},
		{
			name:  "negative hours",
			slots: []string{"13:00-14:00"},
			hours: -2,
			want:  []string{"13:00-14:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.GenerateExtendedSlots(slots(t, tt.slots...), tt.hours)
			assert.Equal(t, tt.want, timeslot.FormatSlots(got))
			assertNoOverlap(t, got)
			for _, s := range got {
				assert.LessOrEqual(t, s.End, timeslot.DefaultBounds.Close)
			}
		})
	}
}

func TestDailyAgenda(t *testing.T) {
	bookings := []*model.Booking{
		booking(t, 3, 10, model.BookingStatusAccepted, "15:00-16:00"),
		booking(t, 1, 10, model.BookingStatusCurrent, "09:00-10:00"),
		booking(t, 2, 11, model.BookingStatusAccepted, "08:00-09:00"),
		booking(t, 4, 10, model.BookingStatusRejected, "11:00-12:00"),
		booking(t, 5, 10, model.BookingStatusCompleted, "12:00-13:00"),
		booking(t, 6, 10, model.BookingStatusPending, "09:00-09:30"),
	}

	agenda := DailyAgenda(bookings, 7, date(10))
	var ids []int64
	for _, b := range agenda {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int64{1, 6, 5, 3}, ids)

	assert.Empty(t, DailyAgenda(bookings, 8, date(10)))
}

func TestOccupiedSlots(t *testing.T) {
	bookings := []*model.Booking{
		booking(t, 1, 10, model.BookingStatusAccepted, "15:00-16:00"),
		booking(t, 2, 10, model.BookingStatusCurrent, "09:00-10:00", "10:00-11:00"),
		booking(t, 3, 10, model.BookingStatusRejected, "11:00-12:00"),
		booking(t, 4, 11, model.BookingStatusPending, "12:00-13:00"),
	}

	got := OccupiedSlots(bookings, date(10), 1)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00"}, timeslot.FormatSlots(got))
}
