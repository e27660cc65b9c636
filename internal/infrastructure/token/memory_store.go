package token

import (
	"context"
	"sync"
	"time"
)

// MemoryRefreshTokenStore is a process-local RefreshTokenStore for tests and
// single-node development. Expired records are dropped lazily on access.
type MemoryRefreshTokenStore struct {
	mu   sync.Mutex
	recs map[string]memRecord
}

type memRecord struct {
	rec       RefreshRecord
	expiresAt time.Time
}

func NewMemoryRefreshTokenStore() *MemoryRefreshTokenStore {
	return &MemoryRefreshTokenStore{recs: make(map[string]memRecord)}
}

func (s *MemoryRefreshTokenStore) Save(_ context.Context, key string, rec RefreshRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[key] = memRecord{rec: rec, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryRefreshTokenStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key), nil
}

func (s *MemoryRefreshTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, key)
	return nil
}

func (s *MemoryRefreshTokenStore) Consume(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.live(key)
	delete(s.recs, key)
	return ok, nil
}

// live reports whether key holds an unexpired record. Caller must hold mu.
func (s *MemoryRefreshTokenStore) live(key string) bool {
	r, ok := s.recs[key]
	if !ok {
		return false
	}
	if time.Now().After(r.expiresAt) {
		delete(s.recs, key)
		return false
	}
	return true
}

var _ RefreshTokenStore = (*MemoryRefreshTokenStore)(nil)
