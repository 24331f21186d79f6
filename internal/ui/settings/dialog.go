package settings

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
	uierrors "github.com/shhac/cavern/internal/ui/errors"
)

// ConnectionDialogCallbacks are invoked with the edited copy of the connection.
type ConnectionDialogCallbacks struct {
	OnSave func(*domain.ConnectionSettings)
	OnTest func(*domain.ConnectionSettings) // optional
}

// ConnectionTab edits the name, address and timeout of a connection.
type ConnectionTab struct {
	name    *widget.Entry
	address *widget.Entry
	timeout *widget.Entry
	form    *widget.Form
}

// NewConnectionTab creates the general page initialised from conn.
func NewConnectionTab(conn *domain.ConnectionSettings) *ConnectionTab {
	t := &ConnectionTab{
		name:    widget.NewEntry(),
		address: widget.NewEntry(),
		timeout: widget.NewEntry(),
	}
	t.name.SetText(conn.Name)
	t.address.SetText(conn.Address)
	t.address.SetPlaceHolder("localhost:27017")
	t.timeout.SetText(strconv.FormatFloat(conn.Timeout.Seconds(), 'f', -1, 64))

	t.form = widget.NewForm(
		widget.NewFormItem("Name", t.name),
		widget.NewFormItem("Address", t.address),
		widget.NewFormItem("Timeout (seconds)", t.timeout),
	)
	return t
}

// Accept writes the page into conn and validates the connection.
func (t *ConnectionTab) Accept(conn *domain.ConnectionSettings) error {
	seconds, err := strconv.ParseFloat(t.timeout.Text, 64)
	if err != nil {
		return apperrors.ValidationError{Field: "Timeout", Message: "must be a number of seconds"}
	}
	conn.Name = t.name.Text
	conn.Address = t.address.Text
	conn.Timeout = time.Duration(seconds * float64(time.Second))
	return conn.Validate()
}

// ShowConnectionDialog displays the connection settings dialog with a
// Connection and an SSL tab. It edits a copy of conn; conn itself is never
// modified. The dialog stays open while either tab rejects its input.
func ShowConnectionDialog(window fyne.Window, conn *domain.ConnectionSettings, callbacks ConnectionDialogCallbacks) {
	edited := conn.Clone()

	connTab := NewConnectionTab(edited)
	sslTab := NewSSLTab(edited.SSLSettings(), window)

	tabs := container.NewAppTabs(
		container.NewTabItem("Connection", connTab.form),
		container.NewTabItem("SSL", container.NewVScroll(sslTab)),
	)

	var dlg dialog.Dialog

	// accept runs both tabs and reports whether edited is ready to use
	accept := func() bool {
		if err := connTab.Accept(edited); err != nil {
			tabs.SelectIndex(0)
			uierrors.ShowError(err, window)
			return false
		}
		if !sslTab.Accept(edited.SSLSettings()) {
			tabs.SelectIndex(1)
			return false
		}
		return true
	}

	saveBtn := widget.NewButton("Save", func() {
		if !accept() {
			return
		}
		callbacks.OnSave(edited.Clone())
		dlg.Hide()
	})
	saveBtn.Importance = widget.HighImportance

	cancelBtn := widget.NewButton("Cancel", func() {
		dlg.Hide()
	})

	buttons := container.NewHBox(saveBtn, cancelBtn)
	if callbacks.OnTest != nil {
		testBtn := widget.NewButton("Test", func() {
			if accept() {
				callbacks.OnTest(edited.Clone())
			}
		})
		buttons.Objects = append([]fyne.CanvasObject{testBtn}, buttons.Objects...)
	}

	content := container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), buttons), nil, nil, tabs)

	dlg = dialog.NewCustomWithoutButtons("Connection Settings", content, window)
	dlg.Resize(fyne.NewSize(640, 560))
	dlg.Show()
}
