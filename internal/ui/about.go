package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/shhac/cavern/internal/ui.Version=1.2.3"
var Version = "dev"

// shortcutHelp lists the keyboard shortcuts registered by setupKeyboardShortcuts
var shortcutHelp = []struct{ action, key string }{
	{"New Connection", "⌘ N"},
	{"Edit Connection", "⌘ E"},
	{"Test Connection", "⌘ T"},
	{"Connect / Disconnect", "⌘ ⇧ C"},
	{"Preferences", "⌘ ,"},
}

// ShowAboutDialog displays information about the Cavern application.
func ShowAboutDialog(parent fyne.Window) {
	content := container.NewVBox(
		widget.NewLabelWithStyle("Cavern", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Manage database connections and their SSL settings"),
		widget.NewLabel("Version "+Version),
		widget.NewSeparator(),
		widget.NewLabel("Built with Fyne and Go"),
	)
	dialog.ShowCustom("About Cavern", "Close", content, parent)
}

// ShowShortcutDialog displays a reference of all keyboard shortcuts.
func ShowShortcutDialog(parent fyne.Window) {
	grid := container.NewGridWithColumns(2)
	for _, s := range shortcutHelp {
		grid.Add(widget.NewLabel(s.action))
		grid.Add(widget.NewLabelWithStyle(s.key, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}))
	}

	dialog.ShowCustom("Keyboard Shortcuts", "Close", container.NewVScroll(grid), parent)
}
