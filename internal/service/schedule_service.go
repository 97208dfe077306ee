package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"go.uber.org/zap"
)

// ScheduleService расписание исполнителя на день
type ScheduleService struct {
	bookings BookingStore
	cache    AgendaCache
	logger   *zap.Logger
}

// NewScheduleService создаёт сервис; cache может быть nil
func NewScheduleService(bookings BookingStore, cache AgendaCache, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{bookings: bookings, cache: cache, logger: logger}
}

// Agenda заявки исполнителя на дату в порядке начала
func (s *ScheduleService) Agenda(ctx context.Context, workerID int64, date time.Time) ([]*model.Booking, error) {
	day := model.DateOnly(date)

	// Поколение читается до запроса в БД: изменение между чтением и Set
	// переводит кеш в новое поколение, и устаревшая запись не будет прочитана
	var gen int64
	store := false
	if s.cache != nil {
		agenda, g, found, err := s.cache.Get(ctx, workerID, day)
		switch {
		case err != nil:
			s.logger.Warn("Agenda cache read failed", zap.Int64("worker_id", workerID), zap.Error(err))
		case found:
			return agenda, nil
		default:
			gen, store = g, true
		}
	}

	bookings, err := s.bookings.GetByWorkerAndDate(ctx, workerID, day, model.AgendaStatuses)
	if err != nil {
		return nil, persistence("get agenda", err)
	}

	agenda := scheduling.DailyAgenda(bookings, workerID, day)

	if store {
		if err := s.cache.Set(ctx, workerID, day, gen, agenda); err != nil {
			s.logger.Warn("Agenda cache write failed", zap.Int64("worker_id", workerID), zap.Error(err))
		}
	}

	return agenda, nil
}
