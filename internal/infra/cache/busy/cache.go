package busy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

const defaultPrefix = "busy"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("busy.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("busy.cache: failed to write")
)

// Cache кэш агрегированной занятости пользователей в Redis.
//
// Ключ данных включает версию пользователя: Invalidate увеличивает версию,
// и все ранее закэшированные диапазоны перестают находиться, истекая по TTL
type Cache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// New создает кэш. ttl <= 0 заменяется на минуту
func New(rdb redis.UniversalClient, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

// Get читает занятость пользователя для диапазона
func (c *Cache) Get(ctx context.Context, tenantID, userID string, rng interval.Interval) (*scheduling.BusySet, bool, error) {
	version, err := c.version(ctx, tenantID, userID)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.rdb.Get(ctx, c.dataKey(tenantID, userID, version, rng)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var set scheduling.BusySet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}
	return &set, true, nil
}

// Set сохраняет занятость пользователя для диапазона
func (c *Cache) Set(ctx context.Context, tenantID, userID string, rng interval.Interval, set *scheduling.BusySet) error {
	version, err := c.version(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	if err := c.rdb.Set(ctx, c.dataKey(tenantID, userID, version, rng), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate сбрасывает все закэшированные диапазоны пользователей
func (c *Cache) Invalidate(ctx context.Context, tenantID string, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}

	pipe := c.rdb.TxPipeline()
	for _, userID := range userIDs {
		key := c.versionKey(tenantID, userID)
		pipe.Incr(ctx, key)
		// Версия живет дольше данных, чтобы старые ключи не ожили после ее истечения
		pipe.Expire(ctx, key, 24*time.Hour+c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, tenantID, userID string) (int64, error) {
	raw, err := c.rdb.Get(ctx, c.versionKey(tenantID, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrCacheRead, err)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: version %q: %v", ErrCacheRead, raw, err)
	}
	return v, nil
}

func (c *Cache) versionKey(tenantID, userID string) string {
	return fmt.Sprintf("%s:ver:%s:%s", c.prefix, tenantID, userID)
}

func (c *Cache) dataKey(tenantID, userID string, version int64, rng interval.Interval) string {
	return fmt.Sprintf("%s:%s:%s:v%d:%d:%d", c.prefix, tenantID, userID, version, rng.Start.Unix(), rng.End.Unix())
}

// NopInvalidator используется, когда кэш отключен
type NopInvalidator struct{}

// Invalidate ничего не делает
func (NopInvalidator) Invalidate(context.Context, string, ...string) error {
	return nil
}
