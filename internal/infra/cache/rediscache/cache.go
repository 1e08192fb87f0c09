package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// tagPrefix префикс ключей redis-множеств, хранящих ключи по тегам
const tagPrefix = "tag:"

// Options параметры записи значения в кеш
type Options struct {
	// TTL срок жизни значения
	TTL time.Duration
	// Tags теги для групповой инвалидации
	Tags []string
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кеш значений в redis с тегами для групповой инвалидации
//
// Любая ошибка redis (недоступный сервер, битое значение) деградирует до прямого
// вызова producer - кеш никогда не превращает вычислимый ответ в ошибку
type Cache struct {
	rdb     *redis.Client
	metrics *metrics.Metrics
	logger  Logger
}

// New создает новый кеш поверх клиента redis
// metrics может быть nil, если сбор метрик отключен
func New(rdb *redis.Client, m *metrics.Metrics, log Logger) *Cache {
	return &Cache{rdb: rdb, metrics: m, logger: log}
}

// Load возвращает значение по ключу, при промахе вычисляет его через produce и кеширует
//
// Значение сериализуется в JSON; dest должен быть указателем на тип,
// совместимый с результатом produce. Повторные вызовы безопасны.
func (c *Cache) Load(
	ctx context.Context,
	key string,
	opts Options,
	dest any,
	produce func(ctx context.Context) (any, error),
) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if unmarshalErr := json.Unmarshal(data, dest); unmarshalErr == nil {
			c.metrics.IncCacheHit()
			return nil
		}
		// битое значение - считаем промахом и перезаписываем
		c.logger.Warn("rediscache: corrupted value for key=%s, recomputing", key)
		c.metrics.IncCacheError()
	case err == redis.Nil:
		c.metrics.IncCacheMiss()
	default:
		c.logger.Warn("rediscache: get key=%s failed: %v, falling back to direct computation", key, err)
		c.metrics.IncCacheError()
	}

	value, err := produce(ctx)
	if err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrProducer, key, err)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		// значение вычислено - отдаем его без кеширования
		c.logger.Warn("rediscache: marshal key=%s failed: %v, serving uncached", key, err)
		return copyValue(value, dest)
	}

	if err := c.store(ctx, key, encoded, opts); err != nil {
		c.logger.Warn("rediscache: store key=%s failed: %v, serving uncached", key, err)
		c.metrics.IncCacheError()
	}

	return copyValue(value, dest)
}

// InvalidateTags удаляет все значения, помеченные любым из тегов
// Точка входа для write-path (создание/отмена брони, правка часов работы)
func (c *Cache) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		setKey := tagPrefix + tag

		keys, err := c.rdb.SMembers(ctx, setKey).Result()
		if err != nil {
			return fmt.Errorf("rediscache: read tag set %s: %w", tag, err)
		}

		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("rediscache: delete keys for tag %s: %w", tag, err)
			}
		}

		if err := c.rdb.Del(ctx, setKey).Err(); err != nil {
			return fmt.Errorf("rediscache: delete tag set %s: %w", tag, err)
		}
	}
	return nil
}

// store записывает значение и регистрирует его ключ во множествах тегов
func (c *Cache) store(ctx context.Context, key string, encoded []byte, opts Options) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, encoded, opts.TTL)
	for _, tag := range opts.Tags {
		setKey := tagPrefix + tag
		pipe.SAdd(ctx, setKey, key)
		// теговое множество живёт не меньше самого долгоживущего значения
		pipe.ExpireGT(ctx, setKey, opts.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// copyValue копирует значение producer в dest через JSON round-trip
// Работает для любых сериализуемых типов без рефлексии по месту
func copyValue(value, dest any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return nil
}
