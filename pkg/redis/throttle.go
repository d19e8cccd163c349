package redis

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Throttle не даёт повторять одну операцию чаще, чем раз в ttl.
// Acquire возвращает false, если ключ уже занят.
type Throttle interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// keyValueStore: часть go-redis клиента, нужная троттлингу
type keyValueStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// RedisThrottle хранит ключи в Redis (SET NX EX), поэтому ограничение общее для всех реплик
type RedisThrottle struct {
	client keyValueStore
	prefix string
}

func NewRedisThrottle(client keyValueStore, prefix string) *RedisThrottle {
	return &RedisThrottle{client: client, prefix: prefix}
}

func (t *RedisThrottle) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return t.client.SetNX(ctx, t.prefix+key, time.Now().Unix(), ttl).Result()
}

func (t *RedisThrottle) Release(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.prefix+key).Err()
}

// MemoryThrottle: замена Redis для одного процесса
type MemoryThrottle struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryThrottle() *MemoryThrottle {
	return &MemoryThrottle{until: make(map[string]time.Time), now: time.Now}
}

func (t *MemoryThrottle) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if deadline, ok := t.until[key]; ok && now.Before(deadline) {
		return false, nil
	}
	t.until[key] = now.Add(ttl)
	return true, nil
}

func (t *MemoryThrottle) Release(_ context.Context, key string) error {
	t.mu.Lock()
	delete(t.until, key)
	t.mu.Unlock()
	return nil
}
