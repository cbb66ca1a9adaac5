// Package healthsrv reports the task platform's readiness over gRPC
// health checking, using the health service shipped inside grpc-go
// itself rather than hand-authored protobuf stubs. The platform reports
// SERVING once startup completes and NOT_SERVING as soon as shutdown
// begins; nothing switches it back to SERVING after that.
package healthsrv

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health-checking service name the task
// platform registers itself under.
const ServiceName = "taskplatform.TaskManager"

// Server wraps grpc-go's health.Server with the two states the task
// platform actually uses.
type Server struct {
	*health.Server
}

// New builds a Server starting in the NOT_SERVING state; callers call
// MarkServing once the platform's Manager pool is ready to accept work.
func New() *Server {
	s := &Server{Server: health.NewServer()}
	s.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// MarkServing reports the task platform as healthy.
func (s *Server) MarkServing() {
	s.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// MarkNotServing reports the task platform as unhealthy, for use during
// shutdown or when the worker pool has become unusable.
func (s *Server) MarkNotServing() {
	s.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}
