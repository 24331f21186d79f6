package grpc

import (
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// testLogger discards everything.
var testLogger = slog.New(slog.NewTextHandler(
	io.Discard,
	&slog.HandlerOptions{Level: slog.LevelError + 1},
))

type serverOptions struct {
	health     bool
	reflection bool
}

// startServer starts a plaintext server on an ephemeral port and returns its
// address. The server is stopped when the test ends.
func startServer(t *testing.T, opts serverOptions) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	if opts.health {
		hs := health.NewServer()
		hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(srv, hs)
	}
	if opts.reflection {
		reflection.Register(srv)
	}

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}
