package handlers

import (
	"errors"

	"github.com/Freeeeeet/taskhire_bot/internal/repository"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/service"
)

// ErrBadDate дата не в формате YYYY-MM-DD
var ErrBadDate = errors.New("invalid date format")

// UsageError неверные аргументы команды
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

func usage(u string) error {
	return &UsageError{Usage: u}
}

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var usageErr *UsageError
	var persistErr *service.PersistenceError

	switch {
	case errors.As(err, &usageErr):
		return "❌ Неверные аргументы.\n\nИспользование: " + usageErr.Usage
	case errors.Is(err, ErrBadDate):
		return "❌ Дата должна быть в формате YYYY-MM-DD"
	case errors.Is(err, scheduling.ErrFormat):
		return "❌ Время должно быть в формате HH:MM-HH:MM"
	case errors.Is(err, scheduling.ErrInvalidRange):
		return "❌ Начало слота должно быть раньше конца"
	case errors.Is(err, scheduling.ErrOutOfBounds):
		return "❌ Слот выходит за рабочие часы"
	case errors.Is(err, scheduling.ErrOverlap):
		return "❌ Слот пересекается с уже занятым временем"
	case errors.Is(err, scheduling.ErrNoActiveSlot):
		return "❌ В заявке нет ни одного слота"
	case errors.Is(err, scheduling.ErrUnknownWeekday):
		return "❌ Неизвестный день недели. Используйте monday … sunday"
	case errors.Is(err, scheduling.ErrSlotIndex):
		return "❌ Слота с таким номером нет"
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrNotWorker):
		return "❌ Эта команда доступна только исполнителям.\n\nСтать исполнителем: /becomeworker"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Заявка не найдена"
	case errors.Is(err, service.ErrTaskNotFound):
		return "❌ Задача не найдена"
	case errors.Is(err, service.ErrNotOwner):
		return "❌ У вас нет доступа к этой заявке"
	case errors.Is(err, service.ErrInvalidStatus):
		return "❌ В текущем статусе заявки это действие недоступно"
	case errors.Is(err, service.ErrExtensionUnavailable):
		return "❌ Нельзя продлить на столько часов. Проверьте /extendable"
	case errors.Is(err, service.ErrDateInPast):
		return "❌ Нельзя записаться на прошедшее время"
	case errors.Is(err, service.ErrTaskTaken):
		return "❌ Эту задачу уже выполняет другой исполнитель"
	case errors.Is(err, service.ErrInvalidTitle):
		return "❌ Название задачи должно быть от 1 до 200 символов"
	case errors.Is(err, repository.ErrVersionConflict):
		return "⚠️ Заявка только что изменилась. Попробуйте ещё раз"
	case errors.As(err, &persistErr):
		return "❌ Ошибка хранилища. Попробуйте позже"
	default:
		return "❌ Произошла ошибка"
	}
}
