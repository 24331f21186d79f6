package settings

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Preference keys
const (
	PrefDefaultTimeout = "defaultTimeout"
	PrefTheme          = "appTheme"
)

// DefaultTimeoutPreference returns the timeout for new connections chosen in
// the preferences dialog, or 0 when none was chosen.
func DefaultTimeoutPreference(a fyne.App) time.Duration {
	seconds := a.Preferences().FloatWithFallback(PrefDefaultTimeout, 0)
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// PreferencesCallbacks provides hooks for the preferences dialog to apply changes.
type PreferencesCallbacks struct {
	OnThemeChange func(mode string) // Called with "system", "dark", or "light"
}

// ShowPreferencesDialog displays the unified preferences dialog with General and Appearance tabs.
func ShowPreferencesDialog(a fyne.App, window fyne.Window, callbacks PreferencesCallbacks) {
	prefs := a.Preferences()

	// --- General tab ---

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetPlaceHolder("application default")
	if current := prefs.FloatWithFallback(PrefDefaultTimeout, 0); current > 0 {
		timeoutEntry.SetText(strconv.FormatFloat(current, 'f', -1, 64))
	}

	generalTab := container.NewTabItem("General", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Connection Timeout (seconds)", timeoutEntry),
		),
		widget.NewLabel("Used for new connections. Existing connections keep their own timeout."),
	))

	// --- Appearance tab ---

	themeSelector := widget.NewSelect(
		[]string{"System Default", "Light", "Dark"},
		nil,
	)

	savedTheme := prefs.StringWithFallback(PrefTheme, "system")
	switch savedTheme {
	case "dark":
		themeSelector.SetSelected("Dark")
	case "light":
		themeSelector.SetSelected("Light")
	default:
		themeSelector.SetSelected("System Default")
	}

	appearanceTab := container.NewTabItem("Appearance", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Theme", themeSelector),
		),
	))

	// --- Build dialog ---

	tabs := container.NewAppTabs(generalTab, appearanceTab)

	dlg := dialog.NewCustomConfirm("Preferences", "Save", "Cancel", tabs, func(save bool) {
		if !save {
			return
		}

		// An empty entry restores the application default
		if timeoutEntry.Text == "" {
			prefs.RemoveValue(PrefDefaultTimeout)
		} else if val, err := strconv.ParseFloat(timeoutEntry.Text, 64); err == nil && val > 0 {
			prefs.SetFloat(PrefDefaultTimeout, val)
		}

		// Save and apply theme
		var mode string
		switch themeSelector.Selected {
		case "Dark":
			mode = "dark"
		case "Light":
			mode = "light"
		default:
			mode = "system"
		}
		prefs.SetString(PrefTheme, mode)
		if callbacks.OnThemeChange != nil {
			callbacks.OnThemeChange(mode)
		}
	}, window)

	dlg.Resize(fyne.NewSize(500, 350))
	dlg.Show()
}
