package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"go.uber.org/zap"
)

// MaxTaskTitleLength максимальная длина названия задачи в символах
const MaxTaskTitleLength = 200

// TaskService задачи заказчиков
type TaskService struct {
	tasks  TaskStore
	logger *zap.Logger
}

func NewTaskService(tasks TaskStore, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// Create создаёт задачу
func (s *TaskService) Create(ctx context.Context, posterID int64, title string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return nil, ErrInvalidTitle
	}

	task := &model.Task{PosterID: posterID, Title: title}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, persistence("create task", err)
	}

	s.logger.Info("Task created",
		zap.Int64("task_id", task.ID),
		zap.Int64("poster_id", posterID),
	)

	return task, nil
}

// ListByPoster задачи заказчика
func (s *TaskService) ListByPoster(ctx context.Context, posterID int64) ([]*model.Task, error) {
	tasks, err := s.tasks.ListByPoster(ctx, posterID)
	if err != nil {
		return nil, persistence("list tasks", err)
	}
	return tasks, nil
}
