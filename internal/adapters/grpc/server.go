package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall ("")
// status.
const ServiceName = "viralforge.marketplace.campaignroster.v1.CampaignRosterService"

// ReadinessProbe reports whether the backing stores can serve requests.
type ReadinessProbe func(ctx context.Context) error

// HealthReporter keeps the gRPC health status in step with a readiness probe.
type HealthReporter struct {
	server   *health.Server
	probe    ReadinessProbe
	interval time.Duration
	logger   *slog.Logger
}

func NewHealthReporter(logger *slog.Logger, probe ReadinessProbe, interval time.Duration) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthReporter{server: health.NewServer(), probe: probe, interval: interval, logger: logger}
}

func Register(server grpc.ServiceRegistrar, reporter *HealthReporter) {
	healthpb.RegisterHealthServer(server, reporter.server)
}

// Check runs the probe once and publishes the outcome.
func (h *HealthReporter) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.probe != nil {
		if err := h.probe(ctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			h.logger.WarnContext(ctx, "readiness probe failed",
				"module", "grpc.health",
				"layer", "adapter",
				"operation", "check",
				"outcome", "failure",
				"error", err,
			)
		}
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run probes on every tick until ctx is done, then marks the service as
// shutting down.
func (h *HealthReporter) Run(ctx context.Context) error {
	h.Check(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return ctx.Err()
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
