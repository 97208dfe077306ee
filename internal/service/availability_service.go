package service

import (
	"context"

	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"go.uber.org/zap"
)

// AvailabilityService управляет недельным шаблоном доступности исполнителя
type AvailabilityService struct {
	store  AvailabilityStore
	engine *scheduling.Engine
	logger *zap.Logger
}

func NewAvailabilityService(store AvailabilityStore, engine *scheduling.Engine, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{store: store, engine: engine, logger: logger}
}

// Weekly возвращает шаблон доступности исполнителя
func (s *AvailabilityService) Weekly(ctx context.Context, workerID int64) (scheduling.WeeklyAvailability, error) {
	week, err := s.store.GetWeekly(ctx, workerID)
	if err != nil {
		return nil, persistence("get availability", err)
	}
	return week, nil
}

// AddSlot добавляет слот "HH:MM-HH:MM" в день недели
func (s *AvailabilityService) AddSlot(ctx context.Context, workerID int64, day, rawSlot string) ([]timeslot.Slot, error) {
	proposed, err := timeslot.ParseSlot(rawSlot)
	if err != nil {
		return nil, err
	}

	week, err := s.Weekly(ctx, workerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.engine.AddWeeklySlot(week, day, proposed)
	if err != nil {
		return nil, err
	}

	return s.saveDay(ctx, workerID, day, updated)
}

// RemoveSlot удаляет слот дня недели по индексу (с нуля)
func (s *AvailabilityService) RemoveSlot(ctx context.Context, workerID int64, day string, index int) ([]timeslot.Slot, error) {
	week, err := s.Weekly(ctx, workerID)
	if err != nil {
		return nil, err
	}

	updated, err := scheduling.RemoveWeeklySlot(week, day, index)
	if err != nil {
		return nil, err
	}

	return s.saveDay(ctx, workerID, day, updated)
}

func (s *AvailabilityService) saveDay(ctx context.Context, workerID int64, day string, week scheduling.WeeklyAvailability) ([]timeslot.Slot, error) {
	d, err := scheduling.NormalizeWeekday(day)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveDay(ctx, workerID, d, week[d]); err != nil {
		return nil, persistence("save availability", err)
	}

	s.logger.Info("Availability updated",
		zap.Int64("worker_id", workerID),
		zap.String("weekday", d),
		zap.Strings("slots", timeslot.FormatSlots(week[d])),
	)

	return week[d], nil
}
