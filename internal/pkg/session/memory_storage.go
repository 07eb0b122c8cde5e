// internal/pkg/session/memory_storage.go
package session

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process Storage used in tests and single-node
// development runs where Redis is not available.
type MemoryStorage struct {
	mu    sync.Mutex
	pairs map[string][2]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{pairs: make(map[string][2]string)}
}

func (s *MemoryStorage) SetPair(_ context.Context, sid, token, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[sid] = [2]string{token, role}
	return nil
}

func (s *MemoryStorage) GetPair(_ context.Context, sid string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, ok := s.pairs[sid]
	if !ok {
		return "", "", nil
	}
	return pair[0], pair[1], nil
}

func (s *MemoryStorage) DeletePair(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs, sid)
	return nil
}
