package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: built-in defaults, the YAML file, then
// environment variables. Empty DatabaseURL, RedisURL or KafkaBrokers select
// the in-process adapters.
type Config struct {
	ServiceID string `env:"SERVICE_ID"`
	LogLevel  string `env:"LOG_LEVEL"`

	HTTPPort int `env:"HTTP_PORT"`
	GRPCPort int `env:"GRPC_PORT"`

	DatabaseURL  string   `env:"DB_URL"`
	RedisURL     string   `env:"REDIS_URL"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	OTLPEndpoint string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	MaxDBConns                   int32  `env:"DB_MAX_CONNS"`
	KafkaConsumerGroup           string `env:"KAFKA_CONSUMER_GROUP"`
	KafkaTopicCampaignEvents     string `env:"KAFKA_TOPIC_CAMPAIGN_EVENTS"`
	KafkaTopicInfluencerProfiles string `env:"KAFKA_TOPIC_INFLUENCER_PROFILES"`

	OutboxPollInterval   time.Duration `env:"OUTBOX_POLL_INTERVAL"`
	OutboxBatchSize      int           `env:"OUTBOX_BATCH_SIZE"`
	ConsumerPollInterval time.Duration `env:"CONSUMER_POLL_INTERVAL"`
	HealthProbeInterval  time.Duration `env:"HEALTH_PROBE_INTERVAL"`

	SessionTTL       time.Duration `env:"SESSION_TTL"`
	EventDedupTTL    time.Duration `env:"EVENT_DEDUP_TTL"`
	MaxMessageLength int           `env:"MAX_MESSAGE_LENGTH"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	SeedDemoData bool `env:"SEED_DEMO_DATA"`
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL                  string   `yaml:"postgres_url"`
		RedisURL                     string   `yaml:"redis_url"`
		KafkaBrokers                 []string `yaml:"kafka_brokers"`
		KafkaConsumerGroup           string   `yaml:"kafka_consumer_group"`
		KafkaTopicCampaignEvents     string   `yaml:"kafka_topic_campaign_events"`
		KafkaTopicInfluencerProfiles string   `yaml:"kafka_topic_influencer_profiles"`
		OTLPEndpoint                 string   `yaml:"otlp_endpoint"`
	} `yaml:"dependencies"`
	Sessions struct {
		TTL string `yaml:"ttl"`
	} `yaml:"sessions"`
	Inbox struct {
		MaxMessageLength int `yaml:"max_message_length"`
	} `yaml:"inbox"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	SeedDemoData *bool `yaml:"seed_demo_data"`
}

func defaultConfig() Config {
	return Config{
		ServiceID:                    "M24-Campaign-Roster-Service",
		LogLevel:                     "info",
		HTTPPort:                     8080,
		GRPCPort:                     9090,
		MaxDBConns:                   20,
		KafkaConsumerGroup:           "m24-campaign-roster-service",
		KafkaTopicCampaignEvents:     "marketplace.campaign-events",
		KafkaTopicInfluencerProfiles: "influencer.profile_updated",
		OutboxPollInterval:           2 * time.Second,
		OutboxBatchSize:              100,
		ConsumerPollInterval:         2 * time.Second,
		HealthProbeInterval:          10 * time.Second,
		SessionTTL:                   24 * time.Hour,
		EventDedupTTL:                7 * 24 * time.Hour,
		MaxMessageLength:             2000,
		RateLimitRPS:                 20,
		RateLimitBurst:               40,
		CORSAllowedOrigins:           []string{"http://localhost:3000"},
	}
}

// LoadConfig reads path when it exists; a missing file leaves the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyConfigFile(&cfg, raw); err != nil {
			return Config{}, err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.KafkaBrokers = trimNonEmpty(cfg.KafkaBrokers)
	cfg.CORSAllowedOrigins = trimNonEmpty(cfg.CORSAllowedOrigins)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyConfigFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Service.LogLevel != "" {
		cfg.LogLevel = f.Service.LogLevel
	}
	if f.Dependencies.PostgresURL != "" {
		cfg.DatabaseURL = f.Dependencies.PostgresURL
	}
	if f.Dependencies.RedisURL != "" {
		cfg.RedisURL = f.Dependencies.RedisURL
	}
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
	}
	if f.Dependencies.KafkaConsumerGroup != "" {
		cfg.KafkaConsumerGroup = f.Dependencies.KafkaConsumerGroup
	}
	if f.Dependencies.KafkaTopicCampaignEvents != "" {
		cfg.KafkaTopicCampaignEvents = f.Dependencies.KafkaTopicCampaignEvents
	}
	if f.Dependencies.KafkaTopicInfluencerProfiles != "" {
		cfg.KafkaTopicInfluencerProfiles = f.Dependencies.KafkaTopicInfluencerProfiles
	}
	if f.Dependencies.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = f.Dependencies.OTLPEndpoint
	}
	if f.Sessions.TTL != "" {
		ttl, err := time.ParseDuration(f.Sessions.TTL)
		if err != nil {
			return fmt.Errorf("parse config file: sessions.ttl: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if f.Inbox.MaxMessageLength > 0 {
		cfg.MaxMessageLength = f.Inbox.MaxMessageLength
	}
	if f.RateLimit.RPS > 0 {
		cfg.RateLimitRPS = f.RateLimit.RPS
	}
	if f.RateLimit.Burst > 0 {
		cfg.RateLimitBurst = f.RateLimit.Burst
	}
	if f.CORS.AllowedOrigins != nil {
		cfg.CORSAllowedOrigins = trimNonEmpty(f.CORS.AllowedOrigins)
	}
	if f.SeedDemoData != nil {
		cfg.SeedDemoData = *f.SeedDemoData
	}
	return nil
}

func (c Config) validate() error {
	switch {
	case c.HTTPPort <= 0 || c.HTTPPort > 65535:
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	case c.GRPCPort <= 0 || c.GRPCPort > 65535:
		return fmt.Errorf("invalid GRPC_PORT %d", c.GRPCPort)
	case c.SessionTTL <= 0:
		return fmt.Errorf("SESSION_TTL must be positive")
	case c.RateLimitRPS < 0:
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
