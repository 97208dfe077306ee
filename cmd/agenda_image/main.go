package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/controller/render"
	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
)

func main() {
	out := flag.String("out", "agenda.png", "путь к PNG")
	flag.Parse()

	now := time.Now()
	date := model.DateOnly(now)

	// Тестовые заявки на сегодня во всех статусах расписания
	agenda := []*model.Booking{
		sample(1, model.BookingStatusPaymentPending, "Собрать шкаф", "08:00-09:00", "09:00-10:00"),
		sample(2, model.BookingStatusCurrent, "Покрасить забор", "10:30-12:00"),
		sample(3, model.BookingStatusAccepted, "Починить кран", "13:00-14:00", "14:00-15:00"),
		sample(4, model.BookingStatusPending, "Выгулять собаку", "16:00-16:30"),
		sample(5, model.BookingStatusCompleted, "Вынести мусор", "19:00-20:00"),
	}
	for _, b := range agenda {
		b.Date = date
	}

	imageData, err := render.AgendaImage(date, agenda, timeslot.DefaultBounds, now)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Изображение сохранено в %s\n", *out)
	fmt.Printf("Дата: %s, заявок: %d\n", date.Format("02.01.2006"), len(agenda))
}

func sample(id int64, status model.BookingStatus, title string, rawSlots ...string) *model.Booking {
	slots, err := timeslot.ParseSlots(rawSlots)
	if err != nil {
		panic(err)
	}
	return &model.Booking{
		ID:     id,
		Status: status,
		Slots:  slots,
		Task:   &model.Task{ID: id, Title: title},
	}
}
