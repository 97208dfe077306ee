package handlers

import (
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/service"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	taskService         *service.TaskService
	bookingService      *service.BookingService
	availabilityService *service.AvailabilityService
	scheduleService     *service.ScheduleService
	bounds              timeslot.Bounds
	now                 func() time.Time
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	taskService *service.TaskService,
	bookingService *service.BookingService,
	availabilityService *service.AvailabilityService,
	scheduleService *service.ScheduleService,
	bounds timeslot.Bounds,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:         userService,
		taskService:         taskService,
		bookingService:      bookingService,
		availabilityService: availabilityService,
		scheduleService:     scheduleService,
		bounds:              bounds,
		now:                 time.Now,
		logger:              logger,
	}
}
