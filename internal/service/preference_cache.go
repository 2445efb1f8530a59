package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tone-preview/internal/domain"
)

// PreferencesCache guarda por usuario las preferencias leídas del backend.
type PreferencesCache interface {
	Get(userID string) (domain.StylePreferences, bool, error)
	Set(userID string, prefs domain.StylePreferences, ttl time.Duration) error
	Invalidate(userID string) error
}

type cachedPreferences struct {
	prefs     domain.StylePreferences
	expiresAt time.Time
}

type memoryPreferencesCache struct {
	mu    sync.Mutex
	items map[string]cachedPreferences
}

func NewMemoryPreferencesCache() PreferencesCache {
	return &memoryPreferencesCache{
		items: make(map[string]cachedPreferences),
	}
}

func (s *memoryPreferencesCache) Get(userID string) (domain.StylePreferences, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[userID]
	if !ok {
		return domain.StylePreferences{}, false, nil
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(s.items, userID)
		return domain.StylePreferences{}, false, nil
	}
	return item.prefs, true, nil
}

func (s *memoryPreferencesCache) Set(userID string, prefs domain.StylePreferences, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(userID) == "" || ttl <= 0 {
		return nil
	}
	now := time.Now().UTC()
	s.sweepExpired(now)
	s.items[userID] = cachedPreferences{prefs: prefs, expiresAt: now.Add(ttl)}
	return nil
}

// sweepExpired borra las entradas vencidas; se llama con el lock tomado.
func (s *memoryPreferencesCache) sweepExpired(now time.Time) {
	for id, item := range s.items {
		if now.After(item.expiresAt) {
			delete(s.items, id)
		}
	}
}

func (s *memoryPreferencesCache) Invalidate(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}

// redisKV es el subconjunto de *redis.Client que usa el cache.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisPreferencesCache struct {
	client  redisKV
	prefix  string
	timeout time.Duration
}

func NewRedisPreferencesCache(client *redis.Client) PreferencesCache {
	if client == nil {
		return nil
	}
	return &redisPreferencesCache{
		client:  client,
		prefix:  "style:prefs:",
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisPreferencesCache) Get(userID string) (domain.StylePreferences, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.StylePreferences{}, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.StylePreferences{}, false, nil
	}
	if err != nil {
		return domain.StylePreferences{}, false, err
	}
	var prefs domain.StylePreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.StylePreferences{}, false, err
	}
	return prefs, true, nil
}

func (s *redisPreferencesCache) Set(userID string, prefs domain.StylePreferences, ttl time.Duration) error {
	if strings.TrimSpace(userID) == "" || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+userID, raw, ttl).Err()
}

func (s *redisPreferencesCache) Invalidate(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+userID).Err()
}
