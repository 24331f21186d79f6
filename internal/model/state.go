package model

import (
	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/cavern/internal/domain"
)

// ApplicationState represents the centralized application state with Fyne data bindings.
// All UI components bind to these values for reactive updates.
type ApplicationState struct {
	// Saved connections, in storage order
	Connections binding.UntypedList // []*domain.ConnectionSettings

	// ID of the connection selected in the list, empty when none
	SelectedID binding.String

	// Connection state
	CurrentConnection binding.String // name of the active connection
	Connected         binding.Bool
}

// NewApplicationState creates a new ApplicationState with initialized bindings.
func NewApplicationState() *ApplicationState {
	return &ApplicationState{
		Connections:       binding.NewUntypedList(),
		SelectedID:        binding.NewString(),
		CurrentConnection: binding.NewString(),
		Connected:         binding.NewBool(),
	}
}

// SetConnections replaces the saved connection list.
func (s *ApplicationState) SetConnections(conns []*domain.ConnectionSettings) {
	items := make([]any, len(conns))
	for i, c := range conns {
		items[i] = c
	}
	_ = s.Connections.Set(items)
}

// ConnectionAt returns the connection at index i of the list, or nil.
func (s *ApplicationState) ConnectionAt(i int) *domain.ConnectionSettings {
	item, err := s.Connections.GetValue(i)
	if err != nil {
		return nil
	}
	conn, _ := item.(*domain.ConnectionSettings)
	return conn
}

// SelectedConnection returns the selected connection, or nil when nothing is selected.
func (s *ApplicationState) SelectedConnection() *domain.ConnectionSettings {
	id, _ := s.SelectedID.Get()
	if id == "" {
		return nil
	}
	for i := 0; i < s.Connections.Length(); i++ {
		if conn := s.ConnectionAt(i); conn != nil && conn.ID == id {
			return conn
		}
	}
	return nil
}

// ConnectionUIState represents the UI state for connection status display.
// States: "disconnected", "connecting", "connected", "error"
type ConnectionUIState struct {
	State    binding.String // Connection state
	Message  binding.String // Status message
	Security binding.String // SSL summary of the active connection, empty when not connected
}

// NewConnectionUIState creates a new ConnectionUIState with initialized bindings.
func NewConnectionUIState() *ConnectionUIState {
	state := binding.NewString()
	_ = state.Set("disconnected") // Default to disconnected

	return &ConnectionUIState{
		State:    state,
		Message:  binding.NewString(),
		Security: binding.NewString(),
	}
}
