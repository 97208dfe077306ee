package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

// StatusDisplay содержит emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetStatusDisplay возвращает emoji и текст для статуса заявки
func GetStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusPending:        {"⏳", "Ожидает ответа"},
		model.BookingStatusAccepted:       {"✅", "Принята"},
		model.BookingStatusRejected:       {"🚫", "Отклонена"},
		model.BookingStatusCancelled:      {"❌", "Отменена"},
		model.BookingStatusTimedOut:       {"⌛", "Нет ответа"},
		model.BookingStatusCurrent:        {"▶️", "Идёт работа"},
		model.BookingStatusPaymentPending: {"💳", "Ждёт оплаты"},
		model.BookingStatusCompleted:      {"✔️", "Оплачена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// FormatBooking форматирует заявку для отображения
func FormatBooking(booking *model.Booking) string {
	display := GetStatusDisplay(booking.Status)

	return fmt.Sprintf(
		"%s Заявка #%d (задача #%d)\n"+
			"📊 Статус: %s\n"+
			"📅 %s\n"+
			"🕐 %s",
		display.Emoji,
		booking.ID,
		booking.TaskID,
		display.Text,
		booking.Date.Format("02.01.2006"),
		strings.Join(timeslot.FormatSlots(booking.Slots), ", "),
	)
}

// FormatBookings форматирует список заявок
func FormatBookings(bookings []*model.Booking) string {
	if len(bookings) == 0 {
		return "📭 Заявок нет"
	}

	parts := make([]string, 0, len(bookings))
	for _, b := range bookings {
		parts = append(parts, FormatBooking(b))
	}
	return strings.Join(parts, "\n\n")
}

// FormatAgenda расписание на день текстом
func FormatAgenda(date time.Time, agenda []*model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Расписание на %s\n", date.Format("02.01.2006"))

	if len(agenda) == 0 {
		sb.WriteString("\nСвободный день")
		return sb.String()
	}

	for _, b := range agenda {
		display := GetStatusDisplay(b.Status)
		fmt.Fprintf(&sb, "\n%s #%d %s", display.Emoji, b.ID, strings.Join(timeslot.FormatSlots(b.Slots), ", "))
	}
	return sb.String()
}

// FormatWeekly недельный шаблон доступности, слоты пронумерованы с единицы
func FormatWeekly(week scheduling.WeeklyAvailability) string {
	var sb strings.Builder
	sb.WriteString("📆 Доступность по дням недели:\n")

	for _, day := range scheduling.Weekdays {
		slots := week[day]
		fmt.Fprintf(&sb, "\n%s:", day)
		if len(slots) == 0 {
			sb.WriteString(" -")
			continue
		}
		for i, s := range slots {
			fmt.Fprintf(&sb, " %d) %s", i+1, s)
		}
	}
	return sb.String()
}

// FormatTasks список задач заказчика
func FormatTasks(tasks []*model.Task) string {
	if len(tasks) == 0 {
		return "📭 Задач нет. Создать: /newtask <название>"
	}

	var sb strings.Builder
	sb.WriteString("📋 Ваши задачи:\n")
	for _, t := range tasks {
		state := "свободна"
		if t.WorkerID != nil {
			state = fmt.Sprintf("исполнитель #%d", *t.WorkerID)
		}
		fmt.Fprintf(&sb, "\n#%d %s (%s)", t.ID, t.Title, state)
	}
	return sb.String()
}
