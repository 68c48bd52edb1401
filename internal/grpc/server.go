package grpcserver

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"tourismBooking/pkg/logger"
)

const probeTimeout = 2 * time.Second

// Prober checks that the datastore can be reached with a fresh connection.
type Prober func(ctx context.Context) error

// HealthServer answers grpc.health.v1.Health/Check by probing the datastore
// on every call. Watch is not supported.
type HealthServer struct {
	healthpb.UnimplementedHealthServer

	probe Prober
	log   logger.Log
}

func NewHealthServer(probe Prober, log logger.Log) *HealthServer {
	return &HealthServer{probe: probe, log: log}
}

// Check reports SERVING for the overall service ("") and NOT_SERVING when the
// probe fails. Named services are unknown.
func (s *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req.GetService() != "" {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := s.probe(ctx); err != nil {
		s.log.ErrorErr("health probe failed", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// logInterceptor logs every unary call with its status code.
func logInterceptor(log logger.Log) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug(info.FullMethod, "code", status.Code(err).String(), "latency", time.Since(start))
		return resp, err
	}
}

// NewServer builds a gRPC server with the health service registered.
func NewServer(probe Prober, log logger.Log) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(logInterceptor(log)))
	healthpb.RegisterHealthServer(srv, NewHealthServer(probe, log))
	return srv
}

// StartGRPC serves the health service on addr and returns a shutdown function.
func StartGRPC(addr string, probe Prober, log logger.Log) (func(context.Context) error, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := NewServer(probe, log)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.ErrorErr("grpc server stopped", err)
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
