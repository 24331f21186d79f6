package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/shhac/cavern/internal/ui/settings"
)

// setupKeyboardShortcuts configures all keyboard shortcuts for the main window
func (w *MainWindow) setupKeyboardShortcuts() {
	canvas := w.window.Canvas()

	// Cmd+N: New connection
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyN,
		Modifier: fyne.KeyModifierSuper, // Cmd on macOS, Win on Windows
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: new connection")
		w.handleNew()
	})

	// Cmd+E: Edit selected connection
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyE,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: edit connection")
		w.handleEdit()
	})

	// Cmd+T: Test active connection
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyT,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		if connected, _ := w.state.Connected.Get(); !connected {
			return
		}
		w.logger.Debug("keyboard shortcut: test connection")
		w.handleTestActive()
	})

	// Cmd+Shift+C: Connect / Disconnect
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyC,
		Modifier: fyne.KeyModifierSuper | fyne.KeyModifierShift,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: toggle connection")
		switch state, _ := w.connState.State.Get(); state {
		case "connected":
			w.handleDisconnect()
		case "connecting":
		default:
			w.handleConnect()
		}
	})

	// Cmd+,: Preferences
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyComma,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: preferences")
		settings.ShowPreferencesDialog(w.fyneApp, w.window, settings.PreferencesCallbacks{
			OnThemeChange: func(mode string) { ApplyTheme(w.fyneApp, mode) },
		})
	})

	w.logger.Info("keyboard shortcuts configured")
}
