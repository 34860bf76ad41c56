package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/anikasharma/greenbasket/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Process-local backend, enabled by UseMemory. While active it is
// authoritative: Redis is not consulted.
var (
	memMu sync.Mutex
	mem   map[string]memEntry
)

type memEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// UseMemory swaps the backend for an empty process-local map and returns a
// restore func. Tests use it to exercise cache-backed paths without a Redis
// server.
func UseMemory() func() {
	memMu.Lock()
	mem = map[string]memEntry{}
	memMu.Unlock()
	return func() {
		memMu.Lock()
		mem = nil
		memMu.Unlock()
	}
}

func memActive() bool {
	memMu.Lock()
	defer memMu.Unlock()
	return mem != nil
}

func memGet(key string) ([]byte, bool) {
	memMu.Lock()
	defer memMu.Unlock()
	e, ok := mem[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(mem, key)
		return nil, false
	}
	return e.data, true
}

func memSet(key string, data []byte, ttl time.Duration) {
	memMu.Lock()
	defer memMu.Unlock()
	e := memEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	mem[key] = e
}

func memDel(keys ...string) {
	memMu.Lock()
	defer memMu.Unlock()
	for _, key := range keys {
		delete(mem, key)
	}
}

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if memActive() {
		data, ok := memGet(key)
		if !ok {
			return false
		}
		return json.Unmarshal(data, dest) == nil
	}
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if !memActive() && RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if memActive() {
		memSet(key, data, ttl)
		return nil
	}
	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(keys ...string) error {
	if memActive() {
		memDel(keys...)
		return nil
	}
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget is an alias for Del (Laravel-style).
func Forget(key string) error {
	return Del(key)
}
