package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatusAdvancer переводит заявки по времени (реализуется service.BookingService)
type StatusAdvancer interface {
	AdvanceStatuses(ctx context.Context) (started, timedOut int, err error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookings StatusAdvancer
	tick     time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookings StatusAdvancer, tick time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		tick:     tick,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("tick", s.tick))

	go s.runStatusTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

// runStatusTask периодически переводит заявки в current и timed_out
func (s *Scheduler) runStatusTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.advance(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.advance(ctx)
		case <-s.stopChan:
			s.logger.Info("Status task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Status task cancelled")
			return
		}
	}
}

func (s *Scheduler) advance(ctx context.Context) {
	started, timedOut, err := s.bookings.AdvanceStatuses(ctx)
	if err != nil {
		s.logger.Error("Failed to advance booking statuses", zap.Error(err))
		return
	}

	if started > 0 || timedOut > 0 {
		s.logger.Info("Booking statuses advanced",
			zap.Int("started", started),
			zap.Int("timed_out", timedOut),
		)
	}
}
