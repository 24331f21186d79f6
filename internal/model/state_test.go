package model

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cavern/internal/domain"
)

func TestApplicationState_Connections(t *testing.T) {
	test.NewTempApp(t)

	s := NewApplicationState()
	assert.Nil(t, s.SelectedConnection())

	a := domain.NewConnectionSettings()
	b := domain.NewConnectionSettings()
	s.SetConnections([]*domain.ConnectionSettings{a, b})

	assert.Equal(t, 2, s.Connections.Length())
	assert.Same(t, b, s.ConnectionAt(1))
	assert.Nil(t, s.ConnectionAt(5))

	require.NoError(t, s.SelectedID.Set(b.ID))
	assert.Same(t, b, s.SelectedConnection())

	s.SetConnections([]*domain.ConnectionSettings{a})
	assert.Nil(t, s.SelectedConnection(), "selection of a removed connection resolves to nil")
}

func TestNewConnectionUIState(t *testing.T) {
	test.NewTempApp(t)

	s := NewConnectionUIState()
	state, err := s.State.Get()
	require.NoError(t, err)
	assert.Equal(t, "disconnected", state)
}
