package browser

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/model"
)

// ConnectionBar holds the connect and test controls for the selected connection
type ConnectionBar struct {
	widget.BaseWidget

	selectedLabel *widget.Label
	connectBtn    *widget.Button
	testBtn       *widget.Button
	state         *model.ConnectionUIState
	app           *model.ApplicationState

	onConnect    func()
	onDisconnect func()
	onTest       func()

	container *fyne.Container
}

// NewConnectionBar creates a new connection bar widget
func NewConnectionBar(app *model.ApplicationState, state *model.ConnectionUIState) *ConnectionBar {
	c := &ConnectionBar{
		state: state,
		app:   app,
	}

	c.selectedLabel = widget.NewLabel("No connection selected")
	c.selectedLabel.Truncation = fyne.TextTruncateEllipsis

	c.connectBtn = widget.NewButton("Connect", func() {
		c.handleButtonClick()
	})
	c.testBtn = widget.NewButton("Test", func() {
		if c.onTest != nil {
			c.onTest()
		}
	})

	c.container = container.NewBorder(nil, nil, nil, container.NewHBox(c.testBtn, c.connectBtn), c.selectedLabel)

	// Listen to state changes to update the buttons
	state.State.AddListener(binding.NewDataListener(c.updateButton))
	app.SelectedID.AddListener(binding.NewDataListener(c.updateButton))

	c.ExtendBaseWidget(c)
	return c
}

// SetOnConnect sets the callback for when the connect button is clicked while disconnected
func (c *ConnectionBar) SetOnConnect(fn func()) {
	c.onConnect = fn
}

// SetOnDisconnect sets the callback for when the connect button is clicked while connected
func (c *ConnectionBar) SetOnDisconnect(fn func()) {
	c.onDisconnect = fn
}

// SetOnTest sets the callback for the test button
func (c *ConnectionBar) SetOnTest(fn func()) {
	c.onTest = fn
}

// CreateRenderer creates the renderer for this widget
func (c *ConnectionBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.container)
}

// handleButtonClick handles clicks on the connect/disconnect button
func (c *ConnectionBar) handleButtonClick() {
	state, err := c.state.State.Get()
	if err != nil {
		return
	}

	switch state {
	case "disconnected", "error":
		if c.onConnect != nil {
			c.onConnect()
		}
	case "connected":
		if c.onDisconnect != nil {
			c.onDisconnect()
		}
	case "connecting":
		// Do nothing while connecting
	}
}

// updateButton updates the label and buttons from the connection state and selection
func (c *ConnectionBar) updateButton() {
	state, err := c.state.State.Get()
	if err != nil {
		return
	}

	selected := c.app.SelectedConnection()
	if selected != nil {
		c.selectedLabel.SetText(selected.Name + " (" + selected.Address + ")")
	} else {
		c.selectedLabel.SetText("No connection selected")
	}

	switch state {
	case "connecting":
		c.connectBtn.SetText("Connecting...")
		c.connectBtn.Disable()
		c.testBtn.Disable()
		return
	case "connected":
		c.connectBtn.SetText("Disconnect")
		c.connectBtn.Enable()
		c.testBtn.Enable()
		return
	case "error":
		c.connectBtn.SetText("Retry")
	default:
		c.connectBtn.SetText("Connect")
	}

	// Connecting needs a selection; testing needs a live connection
	if selected != nil {
		c.connectBtn.Enable()
	} else {
		c.connectBtn.Disable()
	}
	c.testBtn.Disable()
}
