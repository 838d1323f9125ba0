package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const memoryCacheSize = 1024

// MemoryStore is the in-process fallback used when no Redis address is
// configured. The expirable LRU carries one TTL for the whole cache, so the
// per-call ttl argument is ignored; every entry expires after DefaultTTL.
// It deliberately does not implement PrefixDeleter, so list-view
// invalidation degrades to a logged warning on this backend.
type MemoryStore struct {
	lru *expirable.LRU[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, string](memoryCacheSize, nil, DefaultTTL),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, ok := s.lru.Get(key)
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}
