package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/events"
	grpcadapter "github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/grpc"
	httpadapter "github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/http"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/postgres"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/application"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/platform/tracing"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	service    *application.Service
	httpServer *http.Server
	grpcServer *grpc.Server
	health     *grpcadapter.HealthReporter
	outbox     *eventadapter.OutboxWorker
	consumer   *eventadapter.ConsumerWorker
	// inProcessStore is set when repositories live in this process, so the
	// API must drain its own outbox.
	inProcessStore bool
	cleanupFn      func(context.Context)
}

type stores struct {
	campaigns   ports.CampaignRepository
	roster      ports.RosterRepository
	influencers ports.InfluencerRepository
	users       ports.UserRepository
	inbox       ports.InboxRepository
	outbox      ports.OutboxRepository
	eventDedup  ports.EventDedupRepository
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var closers []func(context.Context)
	cleanup := func(ctx context.Context) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i](ctx)
		}
	}
	fail := func(err error) (*Runtime, error) {
		cleanup(context.Background())
		return nil, err
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.ServiceID, cfg.OTLPEndpoint)
	if err != nil {
		logger.WarnContext(ctx, "tracing disabled", "error", err)
	}
	closers = append(closers, func(ctx context.Context) { _ = shutdownTracing(ctx) })

	var (
		repos  stores
		probes []grpcadapter.ReadinessProbe
	)
	inProcessStore := cfg.DatabaseURL == ""
	if inProcessStore {
		logger.WarnContext(ctx, "DB_URL not set, using in-memory store")
		mem := memory.NewRepositories()
		repos = stores{
			campaigns:   mem.Campaigns,
			roster:      mem.Roster,
			influencers: mem.Influencers,
			users:       mem.Users,
			inbox:       mem.Inbox,
			outbox:      mem.Outbox,
			eventDedup:  mem.EventDedup,
		}
	} else {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return fail(err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func(context.Context) { _ = sqlDB.Close() })
		if err := postgres.RunMigrations(ctx, db); err != nil {
			return fail(err)
		}
		pg := postgres.NewRepositories(db)
		repos = stores{
			campaigns:   pg.Campaigns,
			roster:      pg.Roster,
			influencers: pg.Influencers,
			users:       pg.Users,
			inbox:       pg.Inbox,
			outbox:      pg.Outbox,
			eventDedup:  pg.EventDedup,
		}
		probes = append(probes, func(ctx context.Context) error { return sqlDB.PingContext(ctx) })
	}

	var cacheStore ports.Cache
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func(context.Context) { _ = redisClient.Close() })
		cacheStore = cache.NewRedisCache(redisClient, "m24:")
		probes = append(probes, func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	} else {
		logger.WarnContext(ctx, "REDIS_URL not set, sessions are kept in process memory")
		cacheStore = cache.NewLocalCache()
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:      cfg.ServiceID,
			SessionTTL:       cfg.SessionTTL,
			EventDedupTTL:    cfg.EventDedupTTL,
			MaxMessageLength: cfg.MaxMessageLength,
		},
		Campaigns:   repos.campaigns,
		Roster:      repos.roster,
		Influencers: repos.influencers,
		Users:       repos.users,
		Inbox:       repos.inbox,
		Outbox:      repos.outbox,
		EventDedup:  repos.eventDedup,
		Cache:       cacheStore,
		Logger:      logger,
	})
	if cfg.SeedDemoData {
		if err := SeedDemoData(ctx, service, logger); err != nil {
			return fail(err)
		}
	}

	ready := func(ctx context.Context) error {
		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
			}
		}
		return nil
	}

	handler := httpadapter.NewHandler(service, logger)
	router := httpadapter.NewRouter(handler, httpadapter.RouterOptions{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Ready:          func(r *http.Request) error { return ready(r.Context()) },
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthReporter := grpcadapter.NewHealthReporter(logger, ready, cfg.HealthProbeInterval)
	grpcadapter.Register(grpcServer, healthReporter)
	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	consumerAdapter := eventadapter.Consumer(eventadapter.NewNoopConsumer())
	if len(cfg.KafkaBrokers) > 0 {
		topics := map[string]string{}
		for _, eventType := range []string{
			domain.EventCampaignCreated,
			domain.EventCampaignStatusChanged,
			domain.EventCampaignApplicationSubmitted,
			domain.EventCampaignInfluencerInvited,
			domain.EventCampaignApplicationDecided,
		} {
			topics[eventType] = cfg.KafkaTopicCampaignEvents
		}
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, topics)
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, closeWith(kafkaPublisher))
		}

		kafkaConsumer, conErr := eventadapter.NewKafkaConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaConsumerGroup,
			[]string{cfg.KafkaTopicInfluencerProfiles},
		)
		if conErr != nil {
			logger.WarnContext(ctx, "kafka consumer disabled, using noop consumer", "error", conErr)
		} else {
			consumerAdapter = kafkaConsumer
			closers = append(closers, closeWith(kafkaConsumer))
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, repos.outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	consumer := eventadapter.NewConsumerWorker(logger, consumerAdapter, service, cfg.ConsumerPollInterval)

	return &Runtime{
		cfg:            cfg,
		logger:         logger,
		service:        service,
		httpServer:     httpServer,
		grpcServer:     grpcServer,
		health:         healthReporter,
		outbox:         outbox,
		consumer:       consumer,
		inProcessStore: inProcessStore,
		cleanupFn:      cleanup,
	}, nil
}

func closeWith(c io.Closer) func(context.Context) {
	return func(context.Context) { _ = c.Close() }
}

// RunAPI serves HTTP and gRPC until a signal arrives. With an in-process
// store the event workers run here too, since no other process can see it.
func (r *Runtime) RunAPI(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		r.cleanupFn(context.Background())
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 4)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	go func() { _ = r.health.Run(ctx) }()
	if r.inProcessStore {
		r.startWorkers(ctx, errCh)
	}
	r.logger.InfoContext(ctx, "api listening", "http_port", r.cfg.HTTPPort, "grpc_port", r.cfg.GRPCPort)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	if r.inProcessStore {
		r.cleanupFn(context.Background())
		return fmt.Errorf("worker needs a shared store: set DB_URL")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)
	r.startWorkers(ctx, errCh)

	select {
	case <-ctx.Done():
		r.cleanupFn(context.Background())
		return nil
	case err := <-errCh:
		r.cleanupFn(context.Background())
		return err
	}
}

func (r *Runtime) startWorkers(ctx context.Context, errCh chan<- error) {
	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
}
