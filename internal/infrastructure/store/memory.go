package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

// Memory is an in-process session store. It backs tests and gateways that do
// not need the session to survive a restart.
type Memory struct {
	log zerolog.Logger

	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		log:    log,
		values: make(map[string]string),
	}
}

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.values[keyToken]
	return token, ok && token != ""
}

func (m *Memory) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyToken] = token
}

func (m *Memory) ClearToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, keyToken)
}

func (m *Memory) User() (*domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[keyUser]
	if !ok {
		return nil, false
	}
	user, err := decodeUser(raw)
	if err != nil {
		// Self-heal: a corrupted record must not keep failing on every read.
		m.log.Warn().Err(err).Msg("corrupted stored user, removing entry")
		delete(m.values, keyUser)
		return nil, false
	}
	return user, true
}

func (m *Memory) SetUser(user *domain.User) {
	raw, err := encodeUser(user)
	if err != nil {
		m.log.Warn().Err(err).Msg("cannot serialize user, skipping persist")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyUser] = raw
}

func (m *Memory) ClearUser() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, keyUser)
}

func (m *Memory) RememberMe() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[keyRememberMe] == "true"
}

func (m *Memory) SetRememberMe(remember bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if remember {
		m.values[keyRememberMe] = "true"
		return
	}
	delete(m.values, keyRememberMe)
}

func (m *Memory) LastRoute() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.values[keyLastRoute]
	return route, ok && route != ""
}

func (m *Memory) SetLastRoute(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyLastRoute] = route
}

func (m *Memory) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, keyToken)
	delete(m.values, keyUser)
}
