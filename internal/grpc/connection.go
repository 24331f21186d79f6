package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/shhac/cavern/internal/domain"
	apperrors "github.com/shhac/cavern/internal/errors"
	"github.com/shhac/cavern/internal/tlsconf"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// ConnectionState represents the current state of the connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateError
)

// String returns a human-readable representation of the connection state
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ConnectionManager manages the lifecycle of the client connection to a
// saved database connection.
type ConnectionManager struct {
	conn     *grpc.ClientConn
	state    ConnectionState
	settings *domain.ConnectionSettings
	logger   *slog.Logger
	mu       sync.RWMutex

	// Callbacks for state changes
	onStateChange func(state ConnectionState, message string)
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(logger *slog.Logger) *ConnectionManager {
	return &ConnectionManager{
		state:  StateDisconnected,
		logger: logger,
	}
}

// DialOptions returns the dial options for cfg, including transport
// credentials built from its SSL settings.
func DialOptions(cfg *domain.ConnectionSettings) ([]grpc.DialOption, error) {
	kaParams := keepalive.ClientParameters{
		Time:                10 * time.Second,
		Timeout:             3 * time.Second,
		PermitWithoutStream: true,
	}
	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(kaParams),
	}

	ssl := cfg.SSLSettings()
	if !ssl.Enabled {
		return append(opts, grpc.WithTransportCredentials(insecure.NewCredentials())), nil
	}

	host, _, err := net.SplitHostPort(cfg.Address)
	if err != nil {
		host = cfg.Address
	}
	tlsCfg, err := tlsconf.Build(*ssl, host)
	if err != nil {
		return nil, err
	}
	return append(opts, grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg))), nil
}

// Connect creates a client connection for cfg and waits until it is ready or
// cfg.Timeout elapses.
func (m *ConnectionManager) Connect(ctx context.Context, cfg *domain.ConnectionSettings) error {
	m.updateState(StateConnecting, "Connecting to "+cfg.Address)

	opts, err := DialOptions(cfg)
	if err != nil {
		m.logger.Error("invalid SSL settings",
			slog.String("connection", cfg.Name),
			slog.Any("error", err),
		)
		m.dropActive()
		m.updateState(StateError, "Invalid SSL settings: "+err.Error())
		return err
	}

	ssl := cfg.SSLSettings()
	if ssl.Enabled && (ssl.AllowInvalidCertificates || ssl.AllowInvalidHostnames) {
		m.logger.Warn("using lenient SSL verification",
			slog.String("address", cfg.Address),
			slog.Bool("allow_invalid_certificates", ssl.AllowInvalidCertificates),
			slog.Bool("allow_invalid_hostnames", ssl.AllowInvalidHostnames),
		)
	} else if !ssl.Enabled {
		m.logger.Warn("using insecure plaintext connection", slog.String("address", cfg.Address))
	}

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		m.logger.Error("failed to create client",
			slog.String("address", cfg.Address),
			slog.Any("error", err),
		)
		m.dropActive()
		m.updateState(StateError, "Failed to connect: "+err.Error())
		return fmt.Errorf("%w: %w", apperrors.ErrConnectionFailed, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := waitForReady(readyCtx, conn); err != nil {
		conn.Close()
		m.logger.Error("connection did not become ready",
			slog.String("address", cfg.Address),
			slog.Any("error", err),
		)
		m.dropActive()
		m.updateState(StateError, "Failed to connect: "+err.Error())
		return err
	}

	m.mu.Lock()
	if m.conn != nil {
		oldConn := m.conn
		go func() {
			if err := oldConn.Close(); err != nil {
				m.logger.Warn("failed to close old connection", slog.Any("error", err))
			}
		}()
	}
	m.conn = conn
	m.settings = cfg.Clone()
	m.mu.Unlock()

	m.logger.Info("connection established",
		slog.String("name", cfg.Name),
		slog.String("address", cfg.Address),
		slog.Bool("ssl", ssl.Enabled),
	)
	m.updateState(StateConnected, "Connected to "+cfg.Address)

	return nil
}

// dropActive closes and forgets the previous connection after a failed
// attempt, so the manager never reports an error while holding a live one.
func (m *ConnectionManager) dropActive() {
	m.mu.Lock()
	old := m.conn
	m.conn = nil
	m.settings = nil
	m.mu.Unlock()

	if old == nil {
		return
	}
	if err := old.Close(); err != nil {
		m.logger.Warn("failed to close previous connection", slog.Any("error", err))
	}
}

// Disconnect closes the connection
func (m *ConnectionManager) Disconnect() error {
	m.mu.Lock()
	if m.conn == nil {
		m.mu.Unlock()
		m.updateState(StateDisconnected, "Already disconnected")
		return nil
	}

	addr := m.settings.Address
	err := m.conn.Close()
	m.conn = nil
	m.settings = nil
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("failed to close connection",
			slog.String("address", addr),
			slog.Any("error", err),
		)
		m.updateState(StateError, "Failed to disconnect: "+err.Error())
		return err
	}

	m.logger.Info("connection closed", slog.String("address", addr))
	m.updateState(StateDisconnected, "Disconnected")
	return nil
}

// Conn returns the current client connection, or nil if not connected.
func (m *ConnectionManager) Conn() *grpc.ClientConn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conn
}

// State returns the current connection state
func (m *ConnectionManager) State() ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Settings returns a copy of the settings of the active connection, or nil.
func (m *ConnectionManager) Settings() *domain.ConnectionSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil
	}
	return m.settings.Clone()
}

// SetStateCallback registers a callback function to be called on state changes
func (m *ConnectionManager) SetStateCallback(fn func(state ConnectionState, message string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// updateState updates the connection state and invokes the callback if set
func (m *ConnectionManager) updateState(state ConnectionState, message string) {
	m.mu.Lock()
	m.state = state
	callback := m.onStateChange
	m.mu.Unlock()

	m.logger.Debug("connection state changed",
		slog.String("state", state.String()),
		slog.String("message", message),
	)

	if callback != nil {
		callback(state, message)
	}
}
