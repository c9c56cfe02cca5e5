package authclient_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTokenEndpoint implements authclient.TokenEndpoint
type MockTokenEndpoint struct {
	mock.Mock
}

func (m *MockTokenEndpoint) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockTokenEndpoint) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// memStore is an in-memory CredentialStore that records the max-age of each
// write so TTL behavior is observable.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
	}
}

func (s *memStore) Get(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

func (s *memStore) Set(name, value string, maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	s.ttls[name] = maxAge
}

func (s *memStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	delete(s.ttls, name)
}

func (s *memStore) ttl(name string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttls[name]
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
