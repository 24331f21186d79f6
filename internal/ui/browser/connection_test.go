package browser

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestBar(t *testing.T) (*ConnectionBar, *model.ApplicationState, *model.ConnectionUIState) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	appState := model.NewApplicationState()
	connState := model.NewConnectionUIState()
	return NewConnectionBar(appState, connState), appState, connState
}

func TestConnectionBar_RequiresSelection(t *testing.T) {
	bar, appState, _ := newTestBar(t)
	bar.updateButton()

	assert.True(t, bar.connectBtn.Disabled())
	assert.True(t, bar.testBtn.Disabled())
	assert.Equal(t, "No connection selected", bar.selectedLabel.Text)

	conn := domain.NewConnectionSettings()
	appState.SetConnections([]*domain.ConnectionSettings{conn})
	_ = appState.SelectedID.Set(conn.ID)
	bar.updateButton()

	assert.False(t, bar.connectBtn.Disabled())
	assert.True(t, bar.testBtn.Disabled(), "testing needs a live connection")
	assert.Equal(t, "New Connection (localhost:27017)", bar.selectedLabel.Text)
}

func TestConnectionBar_States(t *testing.T) {
	bar, _, connState := newTestBar(t)

	tests := []struct {
		state    string
		text     string
		testable bool
	}{
		{"connecting", "Connecting...", false},
		{"connected", "Disconnect", true},
		{"error", "Retry", false},
		{"disconnected", "Connect", false},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			_ = connState.State.Set(tt.state)
			bar.updateButton()
			assert.Equal(t, tt.text, bar.connectBtn.Text)
			assert.Equal(t, !tt.testable, bar.testBtn.Disabled())
		})
	}
}

func TestConnectionBar_ButtonCallbacks(t *testing.T) {
	bar, _, connState := newTestBar(t)

	var connected, disconnected, tested int
	bar.SetOnConnect(func() { connected++ })
	bar.SetOnDisconnect(func() { disconnected++ })
	bar.SetOnTest(func() { tested++ })

	bar.handleButtonClick()
	_ = connState.State.Set("connected")
	bar.handleButtonClick()
	_ = connState.State.Set("connecting")
	bar.handleButtonClick()
	bar.testBtn.OnTapped()

	assert.Equal(t, 1, connected)
	assert.Equal(t, 1, disconnected)
	assert.Equal(t, 1, tested)
}
