package application

import (
	"log/slog"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Service struct {
	cfg         Config
	campaigns   ports.CampaignRepository
	roster      ports.RosterRepository
	influencers ports.InfluencerRepository
	users       ports.UserRepository
	inbox       ports.InboxRepository
	outbox      ports.OutboxRepository
	eventDedup  ports.EventDedupRepository
	cache       ports.Cache
	logger      *slog.Logger
	tracer      trace.Tracer
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Campaigns   ports.CampaignRepository
	Roster      ports.RosterRepository
	Influencers ports.InfluencerRepository
	Users       ports.UserRepository
	Inbox       ports.InboxRepository
	Outbox      ports.OutboxRepository
	EventDedup  ports.EventDedupRepository
	Cache       ports.Cache
	Logger      *slog.Logger
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "M24-Campaign-Roster-Service"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.EventDedupTTL <= 0 {
		cfg.EventDedupTTL = 7 * 24 * time.Hour
	}
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = 2000
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:         cfg,
		campaigns:   deps.Campaigns,
		roster:      deps.Roster,
		influencers: deps.Influencers,
		users:       deps.Users,
		inbox:       deps.Inbox,
		outbox:      deps.Outbox,
		eventDedup:  deps.EventDedup,
		cache:       deps.Cache,
		logger:      logger,
		tracer:      otel.Tracer("campaign-roster-service/application"),
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}
