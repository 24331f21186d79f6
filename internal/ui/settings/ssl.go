package settings

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/model"
	uierrors "github.com/shhac/cavern/internal/ui/errors"
)

// Hints naming the equivalent mongo shell options
const (
	caFileHint          = "( mongo --sslCAFile )"
	pemKeyFileHint      = "( mongo --sslPEMKeyFile )"
	pemPassHint         = "( mongo --sslPEMKeyPassword )"
	invalidHostnameHint = "( mongo --sslAllowInvalidHostnames )"
	crlFileHint         = "( mongo --sslCRLFile )"
)

const minTabWidth float32 = 540

var yesNo = []string{"No", "Yes"}

// SSLTab is the SSL page of the connection dialog. Widget state lives in a
// model.SSLForm; the widget only mirrors it.
type SSLTab struct {
	widget.BaseWidget

	form   *model.SSLForm
	window fyne.Window // For file and error dialogs

	useSSL *widget.Check

	authMethod     *widget.Select
	selfSignedInfo *widget.Label
	caRow          *fyne.Container
	caFile         *widget.Entry
	caFileBtn      *widget.Button

	usePEM       *widget.Check
	pemInfo      *widget.Label
	pemRow       *fyne.Container
	pemFile      *widget.Entry
	pemFileBtn   *widget.Button
	passRow      *fyne.Container
	pemPass      *widget.Entry
	pemEncrypted *widget.Check
	useAdvanced  *widget.Check
	advancedRows *fyne.Container
	crlFile      *widget.Entry
	crlFileBtn   *widget.Button
	invalidHosts *widget.Select

	container *fyne.Container
}

// NewSSLTab creates the SSL page initialised from s. s is not modified until Accept.
func NewSSLTab(s *domain.SSLSettings, window fyne.Window) *SSLTab {
	t := &SSLTab{
		form:   model.NewSSLForm(s),
		window: window,
	}

	t.useSSL = widget.NewCheck("Use SSL protocol", func(checked bool) {
		t.form.UseSSL = checked
		t.updateFieldStates()
	})

	// Server certificate
	t.authMethod = widget.NewSelect(model.AuthMethodLabels, func(selected string) {
		if selected == model.AuthSelfSigned.String() {
			t.form.AuthMethod = model.AuthSelfSigned
		} else {
			t.form.AuthMethod = model.AuthCASigned
		}
		t.updateFieldStates()
	})
	t.selfSignedInfo = widget.NewLabel("In general, avoid using self-signed certificates unless the network is trusted.")
	t.selfSignedInfo.Wrapping = fyne.TextWrapWord
	t.caFile = widget.NewEntry()
	t.caFile.SetPlaceHolder("Path to CA certificate " + caFileHint)
	t.caFile.OnChanged = func(s string) { t.form.CAFile = s }
	t.caFileBtn = widget.NewButton("...", func() {
		t.showFileDialog(t.caFile)
	})

	// Client certificate
	t.usePEM = widget.NewCheck("Use PEM Certificate/Key", func(checked bool) {
		t.form.UsePEMFile = checked
		t.updateFieldStates()
	})
	t.pemInfo = widget.NewLabel("Enable this option to connect to a server that requires CA-signed client certificates/key file.")
	t.pemInfo.Wrapping = fyne.TextWrapWord
	t.pemFile = widget.NewEntry()
	t.pemFile.SetPlaceHolder("Path to certificate and key " + pemKeyFileHint)
	t.pemFile.OnChanged = func(s string) { t.form.PEMKeyFile = s }
	t.pemFileBtn = widget.NewButton("...", func() {
		t.showFileDialog(t.pemFile)
	})
	t.pemPass = widget.NewPasswordEntry()
	t.pemPass.SetPlaceHolder("Passphrase " + pemPassHint)
	t.pemPass.OnChanged = func(s string) { t.form.PEMPassPhrase = s }
	t.pemEncrypted = widget.NewCheck("PEM key is encrypted with passphrase", func(checked bool) {
		t.form.PEMKeyEncrypted = checked
		t.updateFieldStates()
	})

	// Advanced
	t.useAdvanced = widget.NewCheck("Use Advanced Options", func(checked bool) {
		t.form.UseAdvanced = checked
		t.updateFieldStates()
	})
	t.crlFile = widget.NewEntry()
	t.crlFile.SetPlaceHolder("Path to revocation list " + crlFileHint)
	t.crlFile.OnChanged = func(s string) { t.form.CRLFile = s }
	t.crlFileBtn = widget.NewButton("...", func() {
		t.showFileDialog(t.crlFile)
	})
	t.invalidHosts = widget.NewSelect(yesNo, func(selected string) {
		t.form.AllowInvalidHostnames = selected == "Yes"
	})

	t.buildLayout()
	t.loadForm()

	t.ExtendBaseWidget(t)
	return t
}

// buildLayout constructs the widget's UI layout
func (t *SSLTab) buildLayout() {
	t.caRow = container.NewBorder(nil, nil, widget.NewLabel("CA-signed Certificate:"), t.caFileBtn, t.caFile)
	t.pemRow = container.NewBorder(nil, nil, widget.NewLabel("PEM Certificate/Key:"), t.pemFileBtn, t.pemFile)
	t.passRow = container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Passphrase:"), nil, t.pemPass),
		t.pemEncrypted,
	)

	hostnameLabel := widget.NewLabel("Allow Invalid Hostnames:")
	hostnameHint := widget.NewLabel(invalidHostnameHint)
	hostnameHint.Importance = widget.LowImportance
	t.advancedRows = container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("CRL (Revocation List):"), t.crlFileBtn, t.crlFile),
		container.NewHBox(hostnameLabel, t.invalidHosts, hostnameHint),
	)

	t.container = container.NewVBox(
		t.useSSL,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Authentication Method:"), nil, t.authMethod),
		t.selfSignedInfo,
		t.caRow,
		widget.NewSeparator(),
		t.usePEM,
		t.pemInfo,
		t.pemRow,
		t.passRow,
		widget.NewSeparator(),
		t.useAdvanced,
		t.advancedRows,
	)
}

// loadForm copies the form state into the widgets. Widget callbacks write the
// same values back, so the form is unchanged afterwards.
func (t *SSLTab) loadForm() {
	f := *t.form

	t.useSSL.SetChecked(f.UseSSL)
	t.authMethod.SetSelected(f.AuthMethod.String())
	t.caFile.SetText(f.CAFile)
	t.usePEM.SetChecked(f.UsePEMFile)
	t.pemFile.SetText(f.PEMKeyFile)
	t.pemPass.SetText(f.PEMPassPhrase)
	t.pemEncrypted.SetChecked(f.PEMKeyEncrypted)
	t.useAdvanced.SetChecked(f.UseAdvanced)
	t.crlFile.SetText(f.CRLFile)
	if f.AllowInvalidHostnames {
		t.invalidHosts.SetSelected("Yes")
	} else {
		t.invalidHosts.SetSelected("No")
	}

	*t.form = f
	t.updateFieldStates()
}

// updateFieldStates shows, hides, enables and disables widgets to match the form
func (t *SSLTab) updateFieldStates() {
	setVisible(t.selfSignedInfo, t.form.IsVisible(model.SectionSelfSignedInfo))
	setVisible(t.caRow, t.form.IsVisible(model.SectionCAFile))
	setVisible(t.pemInfo, t.form.IsVisible(model.SectionPEMInfo))
	setVisible(t.pemRow, t.form.IsVisible(model.SectionPEMFile))
	setVisible(t.passRow, t.form.IsVisible(model.SectionPEMPassphrase))
	setVisible(t.advancedRows, t.form.IsVisible(model.SectionAdvanced))

	setEnabled(t.form.IsEnabled(model.SectionAuthMethod), t.authMethod)
	setEnabled(t.form.IsEnabled(model.SectionCAFile), t.caFile, t.caFileBtn)
	setEnabled(t.form.IsEnabled(model.SectionPEMToggle), t.usePEM)
	setEnabled(t.form.IsEnabled(model.SectionPEMFile), t.pemFile, t.pemFileBtn, t.pemEncrypted)
	setEnabled(t.form.IsEnabled(model.SectionPEMPassphrase), t.pemPass)
	setEnabled(t.form.IsEnabled(model.SectionAdvancedToggle), t.useAdvanced)
	setEnabled(t.form.IsEnabled(model.SectionAdvanced), t.crlFile, t.crlFileBtn, t.invalidHosts)

	t.Refresh()
}

// showFileDialog opens a file picker seeded from the entry's current path and
// writes the chosen path back to the entry.
func (t *SSLTab) showFileDialog(entry *widget.Entry) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			uierrors.ShowError(err, t.window)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		entry.SetText(reader.URI().Path())
	}, t.window)

	if start := model.BrowseStart(entry.Text); start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// Form returns the state backing the tab.
func (t *SSLTab) Form() *model.SSLForm {
	return t.form
}

// Accept writes the tab into s and validates the referenced files. On failure
// an error dialog is shown and false is returned; s has been updated anyway.
func (t *SSLTab) Accept(s *domain.SSLSettings) bool {
	if err := t.form.Accept(s); err != nil {
		uierrors.ShowError(err, t.window)
		return false
	}
	return true
}

// MinSize grows with the open sections.
func (t *SSLTab) MinSize() fyne.Size {
	size := t.BaseWidget.MinSize()
	if size.Width < minTabWidth {
		size.Width = minTabWidth
	}
	if h := t.form.MinHeight(); size.Height < h {
		size.Height = h
	}
	return size
}

// CreateRenderer implements the fyne.Widget interface
func (t *SSLTab) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.container)
}

func setVisible(obj fyne.CanvasObject, visible bool) {
	if visible {
		obj.Show()
	} else {
		obj.Hide()
	}
}

func setEnabled(enabled bool, widgets ...fyne.Disableable) {
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}
