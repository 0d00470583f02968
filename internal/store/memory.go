package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps records in a map. Nothing survives Close.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBytes(s.data[key]), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = cloneBytes(value)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		out[k] = cloneBytes(v)
	}
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	return nil
}

// Update stages writes in an overlay and applies them only when fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ov := &overlay{base: s.data, writes: make(map[string][]byte), deleted: make(map[string]bool)}
	if err := fn(ctx, ov); err != nil {
		return err
	}

	for k := range ov.deleted {
		delete(s.data, k)
	}
	maps.Copy(s.data, ov.writes)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

type overlay struct {
	base    map[string][]byte
	writes  map[string][]byte
	deleted map[string]bool
}

func (o *overlay) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := o.writes[key]; ok {
		return cloneBytes(v), nil
	}
	if o.deleted[key] {
		return nil, nil
	}
	return cloneBytes(o.base[key]), nil
}

func (o *overlay) Set(_ context.Context, key string, value []byte) error {
	delete(o.deleted, key)
	o.writes[key] = cloneBytes(value)
	return nil
}

func (o *overlay) Delete(_ context.Context, key string) error {
	delete(o.writes, key)
	o.deleted[key] = true
	return nil
}
