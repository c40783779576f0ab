package draft

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore keeps drafts in process memory, evicting the least recently
// used ones beyond its capacity.
type MemoryStore struct {
	cache *lru.Cache[string, []byte]
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c}, nil
}

func (s *MemoryStore) Load(_ context.Context, userID string) ([]byte, error) {
	data, ok := s.cache.Get(Key(userID))
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, data []byte) error {
	s.cache.Add(Key(userID), append([]byte(nil), data...))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.cache.Remove(Key(userID))
	return nil
}
