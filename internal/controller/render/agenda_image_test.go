package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaImage(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	slot := timeslot.NewSlot(timeslot.MustParseTime("10:00"), timeslot.MustParseTime("12:00"))
	agenda := []*model.Booking{
		{ID: 1, Date: date, Status: model.BookingStatusCurrent, Slots: []timeslot.Slot{slot}, Task: &model.Task{Title: "Покрасить забор"}},
		{ID: 2, Date: date, Status: model.BookingStatusPending, Slots: []timeslot.Slot{
			timeslot.NewSlot(timeslot.MustParseTime("15:00"), timeslot.MustParseTime("15:30")),
		}},
	}

	data, err := AgendaImage(date, agenda, timeslot.DefaultBounds, date.Add(11*time.Hour))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())

	l := newLayout(timeslot.DefaultBounds)
	x, y, w, h := l.slotRect(slot)
	r, g, b, _ := img.At(int(x+w*0.75), int(y+h*0.25)).RGBA()
	dr, dg, db, _ := dayColor.RGBA()
	assert.NotEqual(t, [3]uint32{dr, dg, db}, [3]uint32{r, g, b})
}

func TestAgendaImageEmptyDay(t *testing.T) {
	bounds, err := timeslot.NewBounds("09:30", "18:00")
	require.NoError(t, err)

	data, err := AgendaImage(time.Now(), nil, bounds, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLayoutCoversWorkingDay(t *testing.T) {
	l := newLayout(timeslot.DefaultBounds)
	assert.InDelta(t, l.top, l.y(timeslot.DefaultBounds.Open), 0.001)
	assert.InDelta(t, l.top+l.height, l.y(timeslot.DefaultBounds.Close), 0.001)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "абв", truncate("абв", 5))
	assert.Equal(t, "абвг…", truncate("абвгдежз", 5))
}
