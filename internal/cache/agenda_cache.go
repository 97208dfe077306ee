package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/redis/go-redis/v9"
)

// KV часть redis.Cmdable, которой достаточно кешу
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// AgendaCache кеширует расписание исполнителя на день.
//
// Запись хранится под ключом с номером поколения. Invalidate увеличивает
// поколение, поэтому Set с поколением, прочитанным до изменения заявки,
// пишет в ключ, который больше никто не читает.
type AgendaCache struct {
	kv     KV
	ttl    time.Duration
	prefix string
}

func NewAgendaCache(kv KV, ttl time.Duration) *AgendaCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AgendaCache{kv: kv, ttl: ttl, prefix: "agenda"}
}

// NewRedisClient создаёт клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *AgendaCache) genKey(workerID int64, date time.Time) string {
	return fmt.Sprintf("%s-gen:%d:%s", c.prefix, workerID, date.Format(time.DateOnly))
}

func (c *AgendaCache) key(workerID int64, date time.Time, gen int64) string {
	return fmt.Sprintf("%s:%d:%s:%d", c.prefix, workerID, date.Format(time.DateOnly), gen)
}

func (c *AgendaCache) generation(ctx context.Context, workerID int64, date time.Time) (int64, error) {
	gen, err := c.kv.Get(ctx, c.genKey(workerID, date)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get agenda generation: %w", err)
	}
	return gen, nil
}

// Get возвращает расписание из кеша и текущее поколение.
// При промахе found = false, поколение нужно передать в Set.
func (c *AgendaCache) Get(ctx context.Context, workerID int64, date time.Time) ([]*model.Booking, int64, bool, error) {
	gen, err := c.generation(ctx, workerID, date)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.kv.Get(ctx, c.key(workerID, date, gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		return nil, 0, false, fmt.Errorf("get agenda from cache: %w", err)
	}

	var agenda []*model.Booking
	if err := json.Unmarshal(data, &agenda); err != nil {
		return nil, 0, false, fmt.Errorf("decode cached agenda: %w", err)
	}

	return agenda, gen, true, nil
}

// Set сохраняет расписание на день под поколением gen
func (c *AgendaCache) Set(ctx context.Context, workerID int64, date time.Time, gen int64, agenda []*model.Booking) error {
	data, err := json.Marshal(agenda)
	if err != nil {
		return fmt.Errorf("encode agenda: %w", err)
	}

	if err := c.kv.Set(ctx, c.key(workerID, date, gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("store agenda in cache: %w", err)
	}

	return nil
}

// Invalidate переводит расписание исполнителя на день в новое поколение.
// Счётчик живёт дольше записей, чтобы старое поколение не вернулось.
func (c *AgendaCache) Invalidate(ctx context.Context, workerID int64, date time.Time) error {
	key := c.genKey(workerID, date)

	if err := c.kv.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate agenda cache: %w", err)
	}

	if err := c.kv.Expire(ctx, key, 2*c.ttl).Err(); err != nil {
		return fmt.Errorf("set agenda generation ttl: %w", err)
	}

	return nil
}
