// Package grpcutil mounts a standard gRPC health-checking service
// (grpc_health_v1) on a server, so orchestrators that prefer gRPC health
// probes over an HTTP /healthz endpoint have something to poll. It carries
// no domain-specific RPCs of its own — feedgateway and bookworker both use
// it purely for liveness/readiness.
package grpcutil

import (
	"github.com/marketpulse-systems/itchbook/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// NewHealthServer builds a *grpc.Server with grpc_health_v1 registered and
// its status set to SERVING, wrapped with the same request-logging
// interceptor the teacher's afe service installs.
func NewHealthServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.UnaryInterceptor(common.LoggingInterceptor))
	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return srv, healthSrv
}
