package service

import (
	"context"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	user := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, persistence("register user", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, persistence("get user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// MakeWorker делает пользователя исполнителем
func (s *UserService) MakeWorker(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if user.IsWorker {
		return user, nil
	}

	if err := s.userRepo.SetWorker(ctx, user.ID, true); err != nil {
		return nil, persistence("set worker", err)
	}
	user.IsWorker = true

	s.logger.Info("User became worker",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}
