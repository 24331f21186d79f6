package browser

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/model"
	"github.com/shhac/cavern/internal/ui/components"
)

// ConnectionList displays the saved connections. Each row shows a lock icon
// for SSL connections, the connection name and a short SSL hint.
type ConnectionList struct {
	widget.BaseWidget

	state *model.ApplicationState
	list  *widget.List

	onSelect func(conn *domain.ConnectionSettings)
}

// NewConnectionList creates a list bound to state.Connections. Selecting a row
// updates state.SelectedID.
func NewConnectionList(state *model.ApplicationState) *ConnectionList {
	l := &ConnectionList{state: state}

	l.list = widget.NewListWithData(state.Connections, l.createRow, l.updateRow)
	l.list.OnSelected = l.onListSelected
	l.list.OnUnselected = func(widget.ListItemID) {
		_ = state.SelectedID.Set("")
	}

	l.ExtendBaseWidget(l)
	return l
}

// SetOnSelect sets the callback for when a connection is selected
func (l *ConnectionList) SetOnSelect(fn func(conn *domain.ConnectionSettings)) {
	l.onSelect = fn
}

// Select selects the connection with the given ID, if present.
func (l *ConnectionList) Select(id string) {
	for i := 0; i < l.state.Connections.Length(); i++ {
		if conn := l.state.ConnectionAt(i); conn != nil && conn.ID == id {
			l.list.Select(i)
			return
		}
	}
}

// UnselectAll clears the selection.
func (l *ConnectionList) UnselectAll() {
	l.list.UnselectAll()
}

// CreateRenderer creates the renderer for this widget
func (l *ConnectionList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.list)
}

func (l *ConnectionList) createRow() fyne.CanvasObject {
	icon := widget.NewIcon(lockUnlockedIcon)
	name := widget.NewLabel("Connection name")
	name.Truncation = fyne.TextTruncateEllipsis
	hint := components.NewHintLabel("")
	return container.NewBorder(nil, nil, icon, hint, name)
}

func (l *ConnectionList) updateRow(item binding.DataItem, obj fyne.CanvasObject) {
	v, err := item.(binding.Untyped).Get()
	if err != nil {
		return
	}
	conn, ok := v.(*domain.ConnectionSettings)
	if !ok {
		return
	}

	row := obj.(*fyne.Container)
	// Border layout stores the center object first, then the edges
	name := row.Objects[0].(*widget.Label)
	icon := row.Objects[1].(*widget.Icon)
	hint := row.Objects[2].(*components.HintLabel)

	name.SetText(conn.Name)
	ssl := conn.SSLSettings()
	if ssl.Enabled {
		icon.SetResource(lockLockedIcon)
	} else {
		icon.SetResource(lockUnlockedIcon)
	}
	hint.SetText(ssl.Summary())
}

func (l *ConnectionList) onListSelected(id widget.ListItemID) {
	conn := l.state.ConnectionAt(id)
	if conn == nil {
		return
	}

	_ = l.state.SelectedID.Set(conn.ID)
	if l.onSelect != nil {
		l.onSelect(conn)
	}
}
