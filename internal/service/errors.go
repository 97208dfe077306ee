package service

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotWorker            = errors.New("user is not a worker")
	ErrNotOwner             = errors.New("no permission for this booking")
	ErrInvalidStatus        = errors.New("operation not allowed in current booking status")
	ErrExtensionUnavailable = errors.New("requested extension exceeds available hours")
	ErrDateInPast           = errors.New("booking date is in the past")
	ErrInvalidTitle         = errors.New("task title must be 1-200 characters")
	ErrTaskTaken            = errors.New("task is already assigned to another worker")
)

// PersistenceError ошибка хранилища, возвращается вызывающему без изменений
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
