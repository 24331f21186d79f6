package storage

import "github.com/shhac/cavern/internal/domain"

// Repository defines persistence operations for saved connections
type Repository interface {
	// SaveConnection inserts conn, or replaces the stored connection with the same ID.
	SaveConnection(conn *domain.ConnectionSettings) error
	// GetConnection returns the connection with the given ID or an error
	// wrapping errors.ErrNotFound.
	GetConnection(id string) (*domain.ConnectionSettings, error)
	// ListConnections returns all connections in the order they were first saved.
	ListConnections() ([]*domain.ConnectionSettings, error)
	DeleteConnection(id string) error
}
