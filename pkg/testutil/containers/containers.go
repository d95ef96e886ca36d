//go:build integration

// Package containers starts the backing services integration tests run
// against. Each service is started once per test binary and shared.
package containers

import (
	"sync"
	"testing"
)

// shared starts a container on first use. A start that fails the test leaves
// the slot empty so the next suite tries again.
type shared[T any] struct {
	mu sync.Mutex
	c  *T
}

func (s *shared[T]) get(t *testing.T, start func(*testing.T) *T) *T {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = start(t)
	}
	return s.c
}

// Manager hands out the process-wide containers.
type Manager struct {
	postgres shared[PostgresContainer]
	kafka    shared[KafkaContainer]
	redis    shared[RedisContainer]
}

var manager = &Manager{}

func GetManager() *Manager { return manager }

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	return m.postgres.get(t, NewPostgresContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	t.Helper()
	return m.kafka.get(t, NewKafkaContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	return m.redis.get(t, NewRedisContainer)
}
