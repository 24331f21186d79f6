package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/domain"
)

// ConnectionDetails shows a read-only summary of one connection
type ConnectionDetails struct {
	widget.BaseWidget

	placeholder *widget.Label
	form        *widget.Form
	values      map[string]*widget.Label

	container *fyne.Container
}

// detail rows in display order
var detailRows = []string{
	"Name", "Address", "Timeout", "SSL",
	domain.LabelCAFile, domain.LabelPEMFile, domain.LabelCRLFile,
	"Invalid Hostnames", "Invalid Certificates",
}

// NewConnectionDetails creates an empty details panel
func NewConnectionDetails() *ConnectionDetails {
	d := &ConnectionDetails{
		placeholder: widget.NewLabel("Select a connection to see its settings."),
		form:        widget.NewForm(),
		values:      make(map[string]*widget.Label, len(detailRows)),
	}

	for _, row := range detailRows {
		value := widget.NewLabel("")
		value.Truncation = fyne.TextTruncateEllipsis
		d.values[row] = value
		d.form.Append(row, value)
	}

	d.container = container.NewVBox(d.placeholder, d.form)
	d.SetConnection(nil)

	d.ExtendBaseWidget(d)
	return d
}

// SetConnection displays conn, or the placeholder when conn is nil.
func (d *ConnectionDetails) SetConnection(conn *domain.ConnectionSettings) {
	if conn == nil {
		d.placeholder.Show()
		d.form.Hide()
		return
	}
	d.placeholder.Hide()
	d.form.Show()

	ssl := conn.SSLSettings()
	d.values["Name"].SetText(conn.Name)
	d.values["Address"].SetText(conn.Address)
	d.values["Timeout"].SetText(conn.Timeout.String())
	d.values["SSL"].SetText(ssl.Summary())
	d.values[domain.LabelCAFile].SetText(orDash(ssl.CAFile))
	d.values[domain.LabelPEMFile].SetText(orDash(ssl.PEMKeyFile))
	d.values[domain.LabelCRLFile].SetText(orDash(ssl.CRLFile))
	d.values["Invalid Hostnames"].SetText(allowed(ssl.Enabled && ssl.AllowInvalidHostnames))
	d.values["Invalid Certificates"].SetText(allowed(ssl.Enabled && ssl.AllowInvalidCertificates))
}

// CreateRenderer implements fyne.Widget
func (d *ConnectionDetails) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func allowed(b bool) string {
	if b {
		return "Allowed"
	}
	return "Rejected"
}
