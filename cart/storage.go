package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tfboppong-code/joeythebrand/models"
)

// Storage is the durable key-value home of a cart, keyed by identity scope.
// Load returns an empty sequence (nil error) when no cart is stored.
type Storage interface {
	Load(ctx context.Context, scope string) ([]models.CartLine, error)
	Save(ctx context.Context, scope string, lines []models.CartLine) error
	Delete(ctx context.Context, scope string) error
}

func storageKey(scope string) string {
	return "cart_" + scope
}

// RedisStorage persists each cart as a JSON line sequence under cart_<scope>.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func (s *RedisStorage) Load(ctx context.Context, scope string) ([]models.CartLine, error) {
	raw, err := s.rdb.Get(ctx, storageKey(scope)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisStorage) Save(ctx context.Context, scope string, lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, storageKey(scope), raw, 0).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, scope string) error {
	return s.rdb.Del(ctx, storageKey(scope)).Err()
}

// MemoryStorage keeps carts in-process. Used in tests and as the fallback
// when no Redis address is configured.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]models.CartLine
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]models.CartLine{}}
}

func (s *MemoryStorage) Load(_ context.Context, scope string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLines(s.carts[scope]), nil
}

func (s *MemoryStorage) Save(_ context.Context, scope string, lines []models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[scope] = models.CloneLines(lines)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, scope)
	return nil
}

// Stored reports whether a persisted cart exists for the scope.
func (s *MemoryStorage) Stored(scope string) ([]models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, ok := s.carts[scope]
	return models.CloneLines(lines), ok
}
