package repository

import "errors"

var (
	// ErrVersionConflict запись изменена параллельным запросом
	ErrVersionConflict = errors.New("booking was modified concurrently")
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrTaskTaken задача уже назначена другому исполнителю
	ErrTaskTaken = errors.New("task is assigned to another worker")
)
