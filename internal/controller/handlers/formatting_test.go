package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBooking(t *testing.T) {
	slots, err := timeslot.ParseSlots([]string{"09:00-10:00", "10:00-11:00"})
	require.NoError(t, err)

	text := FormatBooking(&model.Booking{
		ID:     42,
		TaskID: 3,
		Date:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Slots:  slots,
		Status: model.BookingStatusCurrent,
	})

	assert.Contains(t, text, "#42")
	assert.Contains(t, text, "15.10.2026")
	assert.Contains(t, text, "09:00-10:00, 10:00-11:00")
	assert.Contains(t, text, "Идёт работа")
}

func TestGetStatusDisplayCoversAllStatuses(t *testing.T) {
	statuses := []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusAccepted,
		model.BookingStatusRejected,
		model.BookingStatusCancelled,
		model.BookingStatusTimedOut,
		model.BookingStatusCurrent,
		model.BookingStatusPaymentPending,
		model.BookingStatusCompleted,
	}
	for _, s := range statuses {
		assert.NotEqual(t, "Неизвестно", GetStatusDisplay(s).Text, s)
	}
	assert.Equal(t, "Неизвестно", GetStatusDisplay("bogus").Text)
}

func TestFormatWeekly(t *testing.T) {
	slot, err := timeslot.ParseSlot("09:00-12:00")
	require.NoError(t, err)

	text := FormatWeekly(scheduling.WeeklyAvailability{"tuesday": {slot}})
	assert.Contains(t, text, "tuesday: 1) 09:00-12:00")
	assert.Contains(t, text, "monday: -")
}

func TestFormatAgendaAndTasks(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, FormatAgenda(date, nil), "Свободный день")

	worker := int64(9)
	text := FormatTasks([]*model.Task{
		{ID: 1, Title: "Собрать шкаф"},
		{ID: 2, Title: "Вынести мусор", WorkerID: &worker},
	})
	assert.Contains(t, text, "#1 Собрать шкаф (свободна)")
	assert.Contains(t, text, "#2 Вынести мусор (исполнитель #9)")
}
