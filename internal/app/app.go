package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/shhac/cavern/internal/domain"
	"github.com/shhac/cavern/internal/grpc"
	"github.com/shhac/cavern/internal/logging"
	"github.com/shhac/cavern/internal/model"
	"github.com/shhac/cavern/internal/storage"
)

// App is the main application coordinator, responsible for wiring
// together all components and managing their lifecycle.
type App struct {
	fyneApp     fyne.App
	window      fyne.Window
	config      *Config
	logger      *slog.Logger
	logCloser   io.Closer
	connManager *grpc.ConnectionManager
	storage     storage.Repository
	state       *model.ApplicationState
	connState   *model.ConnectionUIState
}

// New creates a new App instance with the given configuration.
// This performs all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config) (*App, error) {
	logger, logCloser, err := logging.InitLogger("cavern", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("initializing Cavern application",
		slog.Bool("debug", cfg.Debug),
		slog.String("storage_path", cfg.StoragePath),
	)

	storagePath := cfg.StoragePath
	if storagePath == "" {
		storagePath, err = storage.DefaultStoragePath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine storage path: %w", err)
		}
	}

	a := NewWithDeps(fyneApp, cfg, logger, storage.NewJSONRepository(storagePath, logger))
	a.logCloser = logCloser

	if err := a.ReloadConnections(); err != nil {
		// A broken store must not keep the app from starting
		logger.Error("failed to load saved connections", slog.Any("error", err))
	}

	logger.Info("application initialized successfully")
	return a, nil
}

// NewWithDeps wires an App from already constructed dependencies.
func NewWithDeps(fyneApp fyne.App, cfg *Config, logger *slog.Logger, repo storage.Repository) *App {
	connManager := grpc.NewConnectionManager(logger)
	state := model.NewApplicationState()
	connState := model.NewConnectionUIState()

	// Wire connection manager state changes to UI state
	connManager.SetStateCallback(func(s grpc.ConnectionState, message string) {
		var uiState string
		switch s {
		case grpc.StateConnecting:
			uiState = "connecting"
		case grpc.StateConnected:
			uiState = "connected"
		case grpc.StateError:
			uiState = "error"
		default:
			uiState = "disconnected"
		}

		security := ""
		if active := connManager.Settings(); s == grpc.StateConnected && active != nil {
			security = active.SSLSettings().Summary()
		}

		_ = connState.State.Set(uiState)
		_ = connState.Message.Set(message)
		_ = connState.Security.Set(security)
		_ = state.Connected.Set(s == grpc.StateConnected)
		if s != grpc.StateConnected {
			_ = state.CurrentConnection.Set("")
		}
	})

	return &App{
		fyneApp:     fyneApp,
		config:      cfg,
		logger:      logger,
		connManager: connManager,
		storage:     repo,
		state:       state,
		connState:   connState,
	}
}

// Run starts the application and displays the main window.
// This is a blocking call that runs the Fyne event loop.
func (a *App) Run(window fyne.Window) {
	a.window = window
	a.logger.Info("starting application")
	a.window.ShowAndRun()
}

// Shutdown closes the active connection and the log file.
func (a *App) Shutdown() {
	if a.connManager.Conn() != nil {
		_ = a.connManager.Disconnect()
	}
	a.logger.Info("application shutdown complete")
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// ReloadConnections refreshes the connection list from storage.
func (a *App) ReloadConnections() error {
	conns, err := a.storage.ListConnections()
	if err != nil {
		return err
	}
	a.state.SetConnections(conns)
	return nil
}

// SaveConnection validates and stores conn, then refreshes the connection list.
func (a *App) SaveConnection(conn *domain.ConnectionSettings) error {
	if err := conn.Validate(); err != nil {
		return err
	}
	if err := a.storage.SaveConnection(conn); err != nil {
		return fmt.Errorf("save connection: %w", err)
	}
	a.logger.Info("connection saved",
		slog.String("id", conn.ID),
		slog.String("name", conn.Name),
		slog.Bool("ssl", conn.SSLSettings().Enabled),
	)
	return a.ReloadConnections()
}

// DeleteConnection removes a saved connection and refreshes the list.
func (a *App) DeleteConnection(id string) error {
	if err := a.storage.DeleteConnection(id); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	if selected, _ := a.state.SelectedID.Get(); selected == id {
		_ = a.state.SelectedID.Set("")
	}
	a.logger.Info("connection deleted", slog.String("id", id))
	return a.ReloadConnections()
}

// Connect makes conn the active connection.
func (a *App) Connect(ctx context.Context, conn *domain.ConnectionSettings) error {
	if err := a.connManager.Connect(ctx, conn); err != nil {
		return err
	}
	_ = a.state.CurrentConnection.Set(conn.Name)
	return nil
}

// TestSettings dials conn on a throwaway connection and probes the server.
// The active connection is left untouched.
func (a *App) TestSettings(ctx context.Context, conn *domain.ConnectionSettings) (grpc.ProbeResult, error) {
	m := grpc.NewConnectionManager(a.logger)
	if err := m.Connect(ctx, conn); err != nil {
		return grpc.ProbeResult{}, err
	}
	defer m.Disconnect()

	return m.Probe(ctx)
}

// NewConnection returns a fresh connection using the configured default timeout.
func (a *App) NewConnection() *domain.ConnectionSettings {
	conn := domain.NewConnectionSettings()
	conn.Timeout = a.config.DefaultTimeout
	return conn
}

// ConnManager returns the connection manager for use by UI components.
func (a *App) ConnManager() *grpc.ConnectionManager {
	return a.connManager
}

// State returns the application state for use by UI components.
func (a *App) State() *model.ApplicationState {
	return a.state
}

// ConnState returns the connection status shown in the status bar.
func (a *App) ConnState() *model.ConnectionUIState {
	return a.connState
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Storage returns the storage repository.
func (a *App) Storage() storage.Repository {
	return a.storage
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App {
	return a.fyneApp
}
