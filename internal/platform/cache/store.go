package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a process-local TTL cache. A zero TTL means entries never expire.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	loading map[string]chan struct{}
	ttl     time.Duration
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		loading: make(map[string]chan struct{}),
		ttl:     ttl,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(time.Now()) {
		delete(s.entries, key)
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader once for the key while
// concurrent callers wait, so a cold cache does not stampede the dependency.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if key == "" {
		return loader(ctx)
	}

	for {
		if value, ok := s.Get(ctx, key); ok {
			return value, nil
		}

		s.mu.Lock()
		if wait, inFlight := s.loading[key]; inFlight {
			s.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
		done := make(chan struct{})
		s.loading[key] = done
		s.mu.Unlock()

		value, err := loader(ctx)

		s.mu.Lock()
		delete(s.loading, key)
		close(done)
		s.mu.Unlock()

		if err != nil {
			return zero, err
		}
		s.Set(ctx, key, value)
		return value, nil
	}
}
