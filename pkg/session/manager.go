package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/google/uuid"
)

// Manager holds the live sessions of a process. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     options
}

// NewManager creates an empty manager. opts apply to every session it creates.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     buildOptions(opts),
	}
}

// Create starts a session over an alphabet of size symbols.
func (m *Manager) Create(size int) (*Session, error) {
	id := uuid.Must(uuid.NewV7()).String()
	s, err := newSession(id, size, m.opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.opts.logger.Info("session created", "session_id", id, "alphabet_size", size)
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete drops a session. Callers still holding it may keep using it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	m.opts.logger.Info("session deleted", "session_id", id)
	return nil
}

// List returns the ids of live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// With runs fn on the session with the given id.
func (m *Manager) With(id string, fn func(*Session) error) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	return fn(s)
}
