package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	MigrationsPath string

	// Пустой адрес отключает кеш расписания
	RedisAddr      string
	AgendaCacheTTL time.Duration

	// Пустой список брокеров отключает публикацию событий
	KafkaBrokers []string
	KafkaTopic   string

	DayBounds  timeslot.Bounds
	StatusTick time.Duration
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции чтения переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		DBDSN:          getenv("DB_DSN"),
		Environment:    withDefault(getenv("ENV"), "development"),
		MigrationsPath: withDefault(getenv("MIGRATIONS_PATH"), "migrations"),
		RedisAddr:      getenv("REDIS_ADDR"),
		KafkaBrokers:   splitList(getenv("KAFKA_BROKERS")),
		KafkaTopic:     withDefault(getenv("KAFKA_TOPIC"), "booking-events"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	bounds, err := timeslot.NewBounds(
		withDefault(getenv("DAY_OPEN"), timeslot.DefaultBounds.Open.String()),
		withDefault(getenv("DAY_CLOSE"), timeslot.DefaultBounds.Close.String()),
	)
	if err != nil {
		return nil, fmt.Errorf("parse day bounds: %w", err)
	}
	cfg.DayBounds = bounds

	if cfg.StatusTick, err = parseDuration(getenv("STATUS_TICK"), time.Minute); err != nil {
		return nil, fmt.Errorf("parse STATUS_TICK: %w", err)
	}

	if cfg.AgendaCacheTTL, err = parseDuration(getenv("AGENDA_CACHE_TTL"), 10*time.Minute); err != nil {
		return nil, fmt.Errorf("parse AGENDA_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", v)
	}

	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
