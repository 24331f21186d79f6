package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/shhac/cavern/internal/model"
)

// statusLook is the icon and fallback text shown for a connection state.
// Each state uses a distinct icon shape so the bar does not rely on color alone.
type statusLook struct {
	icon func() fyne.Resource
	text string
}

var statusLooks = map[string]statusLook{
	"disconnected": {theme.RadioButtonIcon, "Disconnected"},
	"connecting":   {theme.ViewRefreshIcon, "Connecting..."},
	"connected":    {theme.ConfirmIcon, "Connected"},
	"error":        {theme.ErrorIcon, "Connection Error"},
}

// StatusBar displays the current connection status with a shape-changing
// icon indicator and, while connected, how the connection is secured.
type StatusBar struct {
	widget.BaseWidget

	state         *model.ConnectionUIState
	statusLabel   *widget.Label
	securityLabel *widget.Label
	indicator     *widget.Icon
}

// NewStatusBar creates a new status bar bound to the given connection state.
func NewStatusBar(state *model.ConnectionUIState) *StatusBar {
	label := widget.NewLabel("Disconnected")
	label.Truncation = fyne.TextTruncateEllipsis

	security := widget.NewLabel("")
	security.Importance = widget.LowImportance

	s := &StatusBar{
		state:         state,
		statusLabel:   label,
		securityLabel: security,
		indicator:     widget.NewIcon(theme.RadioButtonIcon()),
	}
	s.ExtendBaseWidget(s)

	listener := binding.NewDataListener(s.updateStatus)
	state.State.AddListener(listener)
	state.Message.AddListener(listener)
	state.Security.AddListener(listener)

	s.updateStatus()

	return s
}

// updateStatus refreshes the status bar based on current state.
func (s *StatusBar) updateStatus() {
	stateStr, _ := s.state.State.Get()
	message, _ := s.state.Message.Get()
	security, _ := s.state.Security.Get()

	look, ok := statusLooks[stateStr]
	if !ok {
		s.indicator.SetResource(theme.RadioButtonIcon())
		s.statusLabel.SetText("Unknown state")
		s.securityLabel.SetText("")
		return
	}

	s.indicator.SetResource(look.icon())
	if message == "" {
		message = look.text
	}
	s.statusLabel.SetText(message)

	if stateStr == "connected" && security != "" {
		s.securityLabel.SetText("[" + security + "]")
	} else {
		s.securityLabel.SetText("")
	}
}

// CreateRenderer implements fyne.Widget.
func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, s.indicator, s.securityLabel, s.statusLabel))
}

// SetState is a convenience method to update the connection state.
// State should be one of: "disconnected", "connecting", "connected", "error"
func (s *StatusBar) SetState(state string, message string) {
	_ = s.state.State.Set(state)
	_ = s.state.Message.Set(message)
}
