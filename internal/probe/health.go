// Package probe serves the gRPC health protocol, reporting SERVING while the
// database answers pings.
package probe

import (
	"context"
	"log"
	"net"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name reported next to the overall ("") status.
const Service = "pastosano"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	db       Pinger
	interval time.Duration
	grpc     *grpc.Server
	health   *health.Server
	healthy  atomic.Bool
}

func New(db Pinger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := &Server{
		db:       db,
		interval: interval,
		grpc:     grpc.NewServer(),
		health:   health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.set(false)
	return s
}

// Check pings the database once and publishes the result.
func (s *Server) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := s.db.Ping(ctx)
	ok := err == nil
	if ok != s.healthy.Load() {
		log.Printf("[probe] database healthy=%t err=%v", ok, err)
	}
	s.set(ok)
	return ok
}

// Healthy returns the last published status.
func (s *Server) Healthy() bool { return s.healthy.Load() }

// Run checks periodically until ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.Check(ctx)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Check(ctx)
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	log.Printf("[probe] grpc health listening on %s", lis.Addr())
	return s.grpc.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *Server) set(ok bool) {
	s.healthy.Store(ok)
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(Service, st)
}
