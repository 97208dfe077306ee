package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	*base.Repository
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `
		SELECT id, poster_id, worker_id, title, created_at
		FROM tasks
		WHERE id = $1
	`

	var task model.Task
	err := r.DB(ctx).QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.PosterID,
		&task.WorkerID,
		&task.Title,
		&task.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// Assign назначает исполнителя на свободную задачу
func (r *TaskRepository) Assign(ctx context.Context, taskID, workerID int64) error {
	query := `
		UPDATE tasks
		SET worker_id = $1
		WHERE id = $2 AND (worker_id IS NULL OR worker_id = $1)
	`

	affected, err := r.ExecAffected(ctx, query, workerID, taskID)
	if err != nil {
		return fmt.Errorf("assign task: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrTaskTaken)
	}

	return nil
}

// ReleaseAssignment снимает исполнителя с задачи, если она назначена именно ему.
// Задача другого исполнителя или свободная задача не меняется.
func (r *TaskRepository) ReleaseAssignment(ctx context.Context, taskID, workerID int64) error {
	query := `
		UPDATE tasks
		SET worker_id = NULL
		WHERE id = $1 AND worker_id = $2
	`

	if _, err := r.ExecAffected(ctx, query, taskID, workerID); err != nil {
		return fmt.Errorf("release task assignment: %w", err)
	}

	return nil
}

// Create создаёт задачу заказчика
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (poster_id, title)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.DB(ctx).QueryRow(ctx, query, task.PosterID, task.Title).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// ListByPoster задачи заказчика, новые сверху
func (r *TaskRepository) ListByPoster(ctx context.Context, posterID int64) ([]*model.Task, error) {
	query := `
		SELECT id, poster_id, worker_id, title, created_at
		FROM tasks
		WHERE poster_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query, posterID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by poster: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(&task.ID, &task.PosterID, &task.WorkerID, &task.Title, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}
