package ui

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/grpc"
	"github.com/shhac/cavern/internal/model"
	"github.com/shhac/cavern/internal/ui/browser"
	uierrors "github.com/shhac/cavern/internal/ui/errors"
	"github.com/shhac/cavern/internal/ui/settings"
)

// probeTimeout bounds the health or reflection call of a connection test
const probeTimeout = 10 * time.Second

// AppController defines the interface for app-level operations needed by the UI
type AppController interface {
	State() *model.ApplicationState
	ConnState() *model.ConnectionUIState
	Logger() *slog.Logger
	ConnManager() *grpc.ConnectionManager
	NewConnection() *domain.ConnectionSettings
	SaveConnection(conn *domain.ConnectionSettings) error
	DeleteConnection(id string) error
	Connect(ctx context.Context, conn *domain.ConnectionSettings) error
	TestSettings(ctx context.Context, conn *domain.ConnectionSettings) (grpc.ProbeResult, error)
}

// MainWindow manages the main application window and its layout.
type MainWindow struct {
	fyneApp fyne.App
	window  fyne.Window
	state   *model.ApplicationState
	logger  *slog.Logger
	app     AppController

	// Connection state for UI
	connState *model.ConnectionUIState

	// Panel widgets
	toolbar        *widget.Toolbar
	connectionList *browser.ConnectionList
	connectionBar  *browser.ConnectionBar
	details        *ConnectionDetails
	statusBar      *uierrors.StatusBar
}

// NewMainWindow creates a new main window with the application layout.
// The window is split horizontally with:
//   - Left side: toolbar and saved connection list
//   - Right side: connection bar (top), details of the selection, status bar (bottom)
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Cavern")

	mw := &MainWindow{
		fyneApp:   fyneApp,
		window:    window,
		state:     app.State(),
		logger:    app.Logger(),
		app:       app,
		connState: app.ConnState(),
	}

	mw.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), mw.handleNew),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), mw.handleEdit),
		widget.NewToolbarAction(theme.DeleteIcon(), mw.handleDelete),
	)
	mw.connectionList = browser.NewConnectionList(mw.state)
	mw.connectionBar = browser.NewConnectionBar(mw.state, mw.connState)
	mw.details = NewConnectionDetails()
	mw.statusBar = uierrors.NewStatusBar(mw.connState)

	mw.wireCallbacks()
	mw.setupMainMenu()
	mw.setupKeyboardShortcuts()
	mw.SetContent()

	window.Resize(fyne.NewSize(900, 600))

	return mw
}

// wireCallbacks sets up all the event handlers and connects components
func (w *MainWindow) wireCallbacks() {
	w.connectionList.SetOnSelect(func(conn *domain.ConnectionSettings) {
		w.details.SetConnection(conn)
	})

	w.connectionBar.SetOnConnect(w.handleConnect)
	w.connectionBar.SetOnDisconnect(w.handleDisconnect)
	w.connectionBar.SetOnTest(w.handleTestActive)
}

// setupMainMenu installs the application menus
func (w *MainWindow) setupMainMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Connection...", w.handleNew),
		fyne.NewMenuItem("Edit Connection...", w.handleEdit),
		fyne.NewMenuItem("Delete Connection", w.handleDelete),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			settings.ShowPreferencesDialog(w.fyneApp, w.window, settings.PreferencesCallbacks{
				OnThemeChange: func(mode string) { ApplyTheme(w.fyneApp, mode) },
			})
		}),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", func() { ShowShortcutDialog(w.window) }),
		fyne.NewMenuItem("About Cavern", func() { ShowAboutDialog(w.window) }),
	)
	w.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// handleNew opens the connection dialog for a new connection
func (w *MainWindow) handleNew() {
	conn := w.app.NewConnection()
	if timeout := settings.DefaultTimeoutPreference(w.fyneApp); timeout > 0 {
		conn.Timeout = timeout
	}
	w.showConnectionDialog(conn)
}

// handleEdit opens the connection dialog for the selected connection
func (w *MainWindow) handleEdit() {
	conn := w.state.SelectedConnection()
	if conn == nil {
		return
	}
	w.showConnectionDialog(conn)
}

func (w *MainWindow) showConnectionDialog(conn *domain.ConnectionSettings) {
	settings.ShowConnectionDialog(w.window, conn, settings.ConnectionDialogCallbacks{
		OnSave: func(edited *domain.ConnectionSettings) {
			if err := w.app.SaveConnection(edited); err != nil {
				w.logger.Error("failed to save connection", slog.Any("error", err))
				uierrors.ShowError(err, w.window)
				return
			}
			w.connectionList.Select(edited.ID)
			w.details.SetConnection(edited)
		},
		OnTest: w.handleTestSettings,
	})
}

// handleDelete asks for confirmation and deletes the selected connection
func (w *MainWindow) handleDelete() {
	conn := w.state.SelectedConnection()
	if conn == nil {
		return
	}

	dialog.ShowConfirm("Delete Connection",
		"Delete \""+conn.Name+"\"? This cannot be undone.",
		func(ok bool) {
			if !ok {
				return
			}
			if err := w.app.DeleteConnection(conn.ID); err != nil {
				w.logger.Error("failed to delete connection", slog.Any("error", err))
				uierrors.ShowError(err, w.window)
				return
			}
			w.connectionList.UnselectAll()
			w.details.SetConnection(nil)
		}, w.window)
}

// handleConnect connects to the selected connection
func (w *MainWindow) handleConnect() {
	conn := w.state.SelectedConnection()
	if conn == nil {
		return
	}
	conn = conn.Clone()

	go func() {
		if err := w.app.Connect(context.Background(), conn); err != nil {
			w.logger.Error("connection failed",
				slog.String("connection", conn.Name),
				slog.Any("error", err),
			)
			fyne.Do(func() {
				uierrors.ShowConnectionError(err, w.window, uierrors.ErrorHandlers{
					OnRetry: w.handleConnect,
					OnEdit:  w.handleEdit,
				})
			})
			return
		}
		w.logger.Info("connected", slog.String("connection", conn.Name))
	}()
}

// handleDisconnect closes the connection
func (w *MainWindow) handleDisconnect() {
	go func() {
		if err := w.app.ConnManager().Disconnect(); err != nil {
			w.logger.Error("disconnect failed", slog.Any("error", err))
			fyne.Do(func() {
				uierrors.ShowError(err, w.window)
			})
		}
	}()
}

// handleTestActive probes the active connection
func (w *MainWindow) handleTestActive() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		result, err := w.app.ConnManager().Probe(ctx)
		fyne.Do(func() {
			w.showProbeResult(result, err, uierrors.ErrorHandlers{
				OnRetry: w.handleTestActive,
				OnEdit:  w.handleEdit,
			})
		})
	}()
}

// handleTestSettings tests unsaved settings from the connection dialog
func (w *MainWindow) handleTestSettings(conn *domain.ConnectionSettings) {
	progress := dialog.NewCustomWithoutButtons("Testing Connection",
		widget.NewProgressBarInfinite(), w.window)
	progress.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), conn.Timeout+probeTimeout)
		defer cancel()

		result, err := w.app.TestSettings(ctx, conn)
		fyne.Do(func() {
			progress.Hide()
			// The connection dialog is still open behind this one
			w.showProbeResult(result, err, uierrors.ErrorHandlers{
				OnRetry: func() { w.handleTestSettings(conn) },
			})
		})
	}()
}

func (w *MainWindow) showProbeResult(result grpc.ProbeResult, err error, handlers uierrors.ErrorHandlers) {
	if err != nil {
		w.logger.Warn("connection test failed", slog.Any("error", err))
		uierrors.ShowConnectionError(err, w.window, handlers)
		return
	}
	w.logger.Info("connection test succeeded",
		slog.String("method", result.Method),
		slog.Int("services", len(result.Services)),
	)
	dialog.ShowInformation("Connection Test", result.Summary(), w.window)
}

// SetContent builds and sets the main window layout.
// Layout structure:
//
//	┌─────────────────┬──────────────────────────────┐
//	│  Toolbar        │      Connection Bar          │
//	├─────────────────┼──────────────────────────────┤
//	│                 │                              │
//	│  Connections    │      Details                 │
//	│                 ├──────────────────────────────┤
//	│                 │      Status Bar              │
//	└─────────────────┴──────────────────────────────┘
func (w *MainWindow) SetContent() {
	leftPanel := container.NewBorder(
		w.toolbar,        // top
		nil,              // bottom
		nil,              // left
		nil,              // right
		w.connectionList, // center
	)

	rightPanel := container.NewBorder(
		w.connectionBar, // top
		w.statusBar,     // bottom
		nil,             // left
		nil,             // right
		container.NewVScroll(w.details),
	)

	mainSplit := container.NewHSplit(leftPanel, rightPanel)
	mainSplit.SetOffset(0.3)

	w.window.SetContent(mainSplit)
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}
