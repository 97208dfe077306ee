package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter часть *kafka.Writer, нужная для публикации
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// BookingEvent событие заявки в топике
type BookingEvent struct {
	EventID     string    `json:"event_id"`
	Kind        EventKind `json:"kind"`
	BookingID   int64     `json:"booking_id"`
	TaskID      int64     `json:"task_id"`
	WorkerID    int64     `json:"worker_id"`
	PosterID    int64     `json:"poster_id"`
	ActorID     int64     `json:"actor_id"`
	RecipientID int64     `json:"recipient_id"`
	Date        string    `json:"date"`
	Slots       []string  `json:"slots"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// KafkaPublisher публикует события заявок, ключ сообщения - ID заявки
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

func NewKafkaPublisher(writer MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic, now: time.Now}
}

// kafkaBatchTimeout сколько writer ждёт наполнения пачки.
// Публикация синхронная, ответ на команду ждёт её завершения.
const kafkaBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter создаёт writer с хешированием по ключу: события одной заявки попадают в одну партицию
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: kafkaBatchTimeout,
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *KafkaPublisher) NotifyCounterparty(ctx context.Context, booking *model.Booking, actorID int64, kind EventKind) error {
	event := BookingEvent{
		EventID:     uuid.NewString(),
		Kind:        kind,
		BookingID:   booking.ID,
		TaskID:      booking.TaskID,
		WorkerID:    booking.WorkerID,
		PosterID:    booking.PosterID,
		ActorID:     actorID,
		RecipientID: booking.Counterparty(actorID),
		Date:        booking.Date.Format(time.DateOnly),
		Slots:       timeslot.FormatSlots(booking.Slots),
		Status:      string(booking.Status),
		OccurredAt:  p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}

	return nil
}
