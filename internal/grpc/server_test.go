package grpcserver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"tourismBooking/internal/db"
	"tourismBooking/internal/testutil"
	"tourismBooking/pkg/logger"
)

// dial serves the health service over an in-memory listener.
func dial(t *testing.T, probe Prober) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(probe, logger.Discard())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestHealth_ServingWhenDatastoreReachable(t *testing.T) {
	testutil.OpenInMemoryDB(t, "grpc_health")
	creds := testutil.SQLiteRouter(t, "grpc_health")
	connector := db.NewConnector(db.DriverSQLite)
	var opened *db.Conn
	probe := func(ctx context.Context) error {
		conn, err := connector.Open(ctx, creds.Resolve(""))
		if err != nil {
			return err
		}
		opened = conn
		return conn.Close()
	}

	resp, err := dial(t, probe).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	require.NotNil(t, opened)
	assert.True(t, opened.Released())
}

func TestHealth_NotServingWhenProbeFails(t *testing.T) {
	client := dial(t, func(context.Context) error { return errors.New("connection refused") })
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealth_UnknownService(t *testing.T) {
	client := dial(t, func(context.Context) error { return nil })
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "drones"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
