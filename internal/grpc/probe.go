package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jhump/protoreflect/grpcreflect"
	apperrors "github.com/shhac/cavern/internal/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ProbeResult describes what a connection test learned about the server.
type ProbeResult struct {
	Method   string   // "health" or "reflection"
	Status   string   // health serving status, when Method is "health"
	Services []string // services listed through reflection
}

// Summary returns a one-line description for status bars and dialogs.
func (r ProbeResult) Summary() string {
	if r.Method == "health" {
		return "Server health: " + r.Status
	}
	return fmt.Sprintf("Server reachable, %d services", len(r.Services))
}

// waitForReady blocks until conn is READY, fails on TRANSIENT_FAILURE or
// returns ctx's error when it expires.
func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	conn.Connect()
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure:
			return fmt.Errorf("%w: %w", apperrors.ErrConnectionFailed, lastConnError(ctx, conn))
		case connectivity.Shutdown:
			return fmt.Errorf("%w: connection closed", apperrors.ErrConnectionFailed)
		}
		if !conn.WaitForStateChange(ctx, state) {
			return fmt.Errorf("%w: %w", apperrors.ErrTimeout, ctx.Err())
		}
	}
}

// lastConnError returns the reason of a failed connection attempt. An RPC
// issued while the channel is in TRANSIENT_FAILURE fails immediately with the
// transport error, e.g. a TLS handshake failure.
func lastConnError(ctx context.Context, conn *grpc.ClientConn) error {
	_, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err == nil || status.Code(err) != codes.Unavailable {
		return errors.New(connectivity.TransientFailure.String())
	}
	return err
}

// Probe tests the active connection. It asks the standard health service
// first and lists services through server reflection when health checks are
// not implemented.
func (m *ConnectionManager) Probe(ctx context.Context) (ProbeResult, error) {
	conn := m.Conn()
	if conn == nil {
		return ProbeResult{}, fmt.Errorf("%w: not connected", apperrors.ErrConnectionFailed)
	}
	return probe(ctx, conn, m.logger)
}

func probe(ctx context.Context, conn *grpc.ClientConn, logger *slog.Logger) (ProbeResult, error) {
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err == nil {
		logger.Debug("health check succeeded", slog.String("status", resp.GetStatus().String()))
		return ProbeResult{Method: "health", Status: resp.GetStatus().String()}, nil
	}
	if status.Code(err) != codes.Unimplemented {
		return ProbeResult{}, err
	}

	logger.Debug("health service unimplemented, trying reflection")
	client := grpcreflect.NewClientAuto(ctx, conn)
	defer client.Reset()

	services, err := client.ListServices()
	if err != nil {
		if status.Code(err) == codes.Unimplemented {
			return ProbeResult{}, apperrors.ErrProbeUnsupported
		}
		return ProbeResult{}, err
	}
	sort.Strings(services)
	return ProbeResult{Method: "reflection", Services: services}, nil
}
