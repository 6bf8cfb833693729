package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
)

// storageKeyPrefix namespaces every persisted cart.
const storageKeyPrefix = "streakCart"

// Store persists the full cart collection of one owner. Load must treat a
// missing or unreadable blob as an empty cart.
type Store interface {
	Load(ctx context.Context, owner string) ([]model.CartItem, error)
	Save(ctx context.Context, owner string, items []model.CartItem) error
	Clear(ctx context.Context, owner string) error
}

type redisStore struct {
	redis xredis.Client
}

func NewRedisStore(redis xredis.Client) *redisStore {
	return &redisStore{redis: redis}
}

func storageKey(owner string) string {
	return fmt.Sprintf("%s:%s", storageKeyPrefix, owner)
}

func (s *redisStore) Load(ctx context.Context, owner string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.redis.GetObj(ctx, storageKey(owner), &items)
	if err != nil {
		if xredis.IsNil(err) {
			return nil, nil
		}

		// A cart that cannot be read starts over empty.
		xcontext.Logger(ctx).Warnf("Cannot restore cart of %s: %v", owner, err)
		return nil, nil
	}

	return items, nil
}

func (s *redisStore) Save(ctx context.Context, owner string, items []model.CartItem) error {
	return s.redis.SetObj(ctx, storageKey(owner), items, 0)
}

func (s *redisStore) Clear(ctx context.Context, owner string) error {
	return s.redis.Del(ctx, storageKey(owner))
}

type memoryStore struct {
	mutex sync.Mutex
	carts map[string][]model.CartItem
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string][]model.CartItem)}
}

func (s *memoryStore) Load(ctx context.Context, owner string) ([]model.CartItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	items := make([]model.CartItem, len(s.carts[owner]))
	copy(items, s.carts[owner])
	return items, nil
}

func (s *memoryStore) Save(ctx context.Context, owner string, items []model.CartItem) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	saved := make([]model.CartItem, len(items))
	copy(saved, items)
	s.carts[owner] = saved
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, owner string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.carts, owner)
	return nil
}
