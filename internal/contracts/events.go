package contracts

import (
	"encoding/json"
	"time"
)

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    string          `json:"schema_version"`
	Data             json.RawMessage `json:"data"`
}

type CampaignCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	BrandID    string `json:"brand_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Budget     int64  `json:"budget"`
	CreatedAt  string `json:"created_at"`
}

type CampaignStatusChangedPayload struct {
	CampaignID string `json:"campaign_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	ChangedAt  string `json:"changed_at"`
}

type RosterChangedPayload struct {
	CampaignID      string `json:"campaign_id"`
	InfluencerID    string `json:"influencer_id"`
	Status          string `json:"status"`
	Applicants      int    `json:"applicants"`
	InfluencerCount int    `json:"influencer_count"`
	OccurredAt      string `json:"occurred_at"`
}

// InfluencerProfileUpdatedPayload is consumed from the profile service.
type InfluencerProfileUpdatedPayload struct {
	InfluencerID string   `json:"influencer_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Followers    int64    `json:"followers"`
	Engagement   float64  `json:"engagement"`
	Platforms    []string `json:"platforms"`
	Location     string   `json:"location"`
	Bio          string   `json:"bio"`
	Rate         int64    `json:"rate"`
}
