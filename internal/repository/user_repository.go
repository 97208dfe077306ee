package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт пользователя или обновляет его имя по Telegram ID
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username, first_name = EXCLUDED.first_name
		RETURNING id, is_worker, created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
	).Scan(&user.ID, &user.IsWorker, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_worker, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.DB(ctx).QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.IsWorker,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_worker, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.DB(ctx).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.IsWorker,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// SetWorker отмечает пользователя исполнителем
func (r *UserRepository) SetWorker(ctx context.Context, userID int64, isWorker bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET is_worker = $1 WHERE id = $2`, isWorker, userID)
	if err != nil {
		return fmt.Errorf("update worker flag: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
