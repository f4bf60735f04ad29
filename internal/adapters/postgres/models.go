package postgres

import (
	"time"

	"github.com/google/uuid"
)

type campaignModel struct {
	CampaignID      string    `gorm:"column:campaign_id;primaryKey"`
	BrandID         string    `gorm:"column:brand_id"`
	BrandName       string    `gorm:"column:brand_name"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	Budget          int64     `gorm:"column:budget"`
	Category        string    `gorm:"column:category"`
	Platforms       string    `gorm:"column:platforms"`
	Requirements    string    `gorm:"column:requirements"`
	StartDate       string    `gorm:"column:start_date"`
	EndDate         string    `gorm:"column:end_date"`
	Status          string    `gorm:"column:status"`
	Location        string    `gorm:"column:location"`
	Applicants      int       `gorm:"column:applicants"`
	InfluencerCount int       `gorm:"column:influencer_count"`
	ViewCount       int       `gorm:"column:view_count"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type applicationModel struct {
	CampaignID   string    `gorm:"column:campaign_id;primaryKey"`
	InfluencerID string    `gorm:"column:influencer_id;primaryKey"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string { return "campaign_applications" }

type influencerModel struct {
	InfluencerID string    `gorm:"column:influencer_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Category     string    `gorm:"column:category"`
	Followers    int64     `gorm:"column:followers"`
	Engagement   float64   `gorm:"column:engagement"`
	Platforms    string    `gorm:"column:platforms"`
	Location     string    `gorm:"column:location"`
	Bio          string    `gorm:"column:bio"`
	Rate         int64     `gorm:"column:rate"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (influencerModel) TableName() string { return "influencers" }

type userModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	UserType  string    `gorm:"column:user_type"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "marketplace_users" }

type messageModel struct {
	MessageID       string    `gorm:"column:message_id;primaryKey"`
	ConversationKey string    `gorm:"column:conversation_key"`
	SenderID        string    `gorm:"column:sender_id"`
	RecipientID     string    `gorm:"column:recipient_id"`
	Body            string    `gorm:"column:body"`
	SentAt          time.Time `gorm:"column:sent_at"`
}

func (messageModel) TableName() string { return "inbox_messages" }

type contactModel struct {
	OwnerID       string     `gorm:"column:owner_id;primaryKey"`
	ContactID     string     `gorm:"column:contact_id;primaryKey"`
	ContactName   string     `gorm:"column:contact_name"`
	ContactType   string     `gorm:"column:contact_type"`
	LastMessage   string     `gorm:"column:last_message"`
	LastMessageAt *time.Time `gorm:"column:last_message_at"`
	Unread        int        `gorm:"column:unread"`
	Favorite      bool       `gorm:"column:favorite"`
}

func (contactModel) TableName() string { return "inbox_contacts" }

type campaignOutboxModel struct {
	OutboxID         uuid.UUID  `gorm:"column:outbox_id;primaryKey"`
	EventType        string     `gorm:"column:event_type"`
	PartitionKey     string     `gorm:"column:partition_key"`
	PartitionKeyPath string     `gorm:"column:partition_key_path"`
	Payload          string     `gorm:"column:payload"`
	SchemaVersion    string     `gorm:"column:schema_version"`
	TraceID          string     `gorm:"column:trace_id"`
	RetryCount       int        `gorm:"column:retry_count"`
	PublishedAt      *time.Time `gorm:"column:published_at"`
	LastError        *string    `gorm:"column:last_error"`
	LastErrorAt      *time.Time `gorm:"column:last_error_at"`
	FirstSeenAt      time.Time  `gorm:"column:first_seen_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
}

func (campaignOutboxModel) TableName() string { return "campaign_outbox" }

type campaignEventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	EventType   string    `gorm:"column:event_type"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (campaignEventDedupModel) TableName() string { return "campaign_event_dedup" }
