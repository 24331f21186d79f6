package storage

import (
	"fmt"
	"sync"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
)

// MemoryRepository implements Repository using in-memory storage for tests
type MemoryRepository struct {
	conns []*domain.ConnectionSettings
	mu    sync.RWMutex
}

// NewMemoryRepository creates a new in-memory storage repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		conns: []*domain.ConnectionSettings{},
	}
}

// SaveConnection stores a copy of conn in memory
func (m *MemoryRepository) SaveConnection(conn *domain.ConnectionSettings) error {
	if conn.ID == "" {
		return apperrors.ValidationError{Field: "ID", Message: "must not be empty"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := indexOf(m.conns, conn.ID); i >= 0 {
		m.conns[i] = conn.Clone()
	} else {
		m.conns = append(m.conns, conn.Clone())
	}
	return nil
}

// GetConnection retrieves a copy of a connection from memory
func (m *MemoryRepository) GetConnection(id string) (*domain.ConnectionSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := indexOf(m.conns, id)
	if i < 0 {
		return nil, fmt.Errorf("connection %q: %w", id, apperrors.ErrNotFound)
	}
	return m.conns[i].Clone(), nil
}

// ListConnections returns copies of all stored connections
func (m *MemoryRepository) ListConnections() ([]*domain.ConnectionSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return copies to prevent external modification
	conns := make([]*domain.ConnectionSettings, len(m.conns))
	for i, c := range m.conns {
		conns[i] = c.Clone()
	}
	return conns, nil
}

// DeleteConnection removes a connection from memory
func (m *MemoryRepository) DeleteConnection(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.conns, id)
	if i < 0 {
		return fmt.Errorf("connection %q: %w", id, apperrors.ErrNotFound)
	}
	m.conns = append(m.conns[:i], m.conns[i+1:]...)
	return nil
}
