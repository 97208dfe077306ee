package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/taskhire_bot/internal/cache"
	"github.com/Freeeeeet/taskhire_bot/internal/config"
	"github.com/Freeeeeet/taskhire_bot/internal/controller"
	"github.com/Freeeeeet/taskhire_bot/internal/controller/handlers"
	"github.com/Freeeeeet/taskhire_bot/internal/notify"
	"github.com/Freeeeeet/taskhire_bot/internal/repository"
	"github.com/Freeeeeet/taskhire_bot/internal/repository/base"
	"github.com/Freeeeeet/taskhire_bot/internal/scheduling"
	"github.com/Freeeeeet/taskhire_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App собранное приложение: пул БД, внешние клиенты, сервисы и бот
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	pool       *pgxpool.Pool
	redis      *redis.Client
	kafka      *kafka.Writer
	controller *controller.BotController
	scheduler  *Scheduler
}

// New подключается к БД, применяет миграции и связывает все компоненты
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	a.pool = pool

	if err := pool.Ping(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := a.migrate(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) migrate(ctx context.Context) error {
	migrator, err := NewMigrator(a.pool, a.cfg.MigrationsPath, a.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

func (a *App) wire(ctx context.Context) error {
	userRepo := repository.NewUserRepository(a.pool)
	taskRepo := repository.NewTaskRepository(a.pool)
	bookingRepo := repository.NewBookingRepository(a.pool)
	availabilityRepo := repository.NewAvailabilityRepository(a.pool)

	engine := scheduling.New(a.cfg.DayBounds)

	// Кеш расписания опционален: без REDIS_ADDR сервисы работают напрямую с БД
	var agendaCache service.AgendaCache
	if a.cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, a.cfg.RedisAddr)
		if err != nil {
			return err
		}
		a.redis = rdb
		agendaCache = cache.NewAgendaCache(rdb, a.cfg.AgendaCacheTTL)
		a.logger.Info("Agenda cache enabled", zap.String("redis_addr", a.cfg.RedisAddr))
	}

	b, err := bot.New(a.cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	notifiers := []notify.Notifier{notify.NewTelegramNotifier(b, userRepo)}
	if len(a.cfg.KafkaBrokers) > 0 {
		a.kafka = notify.NewKafkaWriter(a.cfg.KafkaBrokers)
		notifiers = append(notifiers, notify.NewKafkaPublisher(a.kafka, a.cfg.KafkaTopic))
		a.logger.Info("Booking events publishing enabled",
			zap.Strings("brokers", a.cfg.KafkaBrokers),
			zap.String("topic", a.cfg.KafkaTopic),
		)
	}
	notifier := notify.NewMulti(a.logger, notifiers...)

	userService := service.NewUserService(userRepo, a.logger)
	taskService := service.NewTaskService(taskRepo, a.logger)
	bookingService := service.NewBookingService(
		base.NewRepository(a.pool),
		bookingRepo,
		taskRepo,
		engine,
		notifier,
		agendaCache,
		a.logger,
	)
	availabilityService := service.NewAvailabilityService(availabilityRepo, engine, a.logger)
	scheduleService := service.NewScheduleService(bookingRepo, agendaCache, a.logger)

	cmdHandlers := handlers.NewHandlers(
		userService,
		taskService,
		bookingService,
		availabilityService,
		scheduleService,
		a.cfg.DayBounds,
		a.logger,
	)

	a.controller = controller.NewBotController(b, cmdHandlers, a.logger)
	a.scheduler = NewScheduler(bookingService, a.cfg.StatusTick, a.logger)

	return nil
}

// Run запускает фоновый планировщик и бота, блокируется до отмены ctx
func (a *App) Run(ctx context.Context) error {
	if err := a.controller.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы бота
		a.logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()

	return a.controller.Start(ctx)
}

// Close освобождает внешние ресурсы
func (a *App) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.logger.Warn("Failed to close kafka writer", zap.Error(err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}
}
