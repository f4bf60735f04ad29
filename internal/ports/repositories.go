package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	GetByID(ctx context.Context, campaignID string) (domain.Campaign, error)
	// List returns every campaign, newest first.
	List(ctx context.Context) ([]domain.Campaign, error)
	// UpdateStatus moves the campaign from one status to another and fails with
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, campaignID string, from, to domain.CampaignStatus, at time.Time) (domain.Campaign, error)
	IncrementViews(ctx context.Context, campaignID string) (domain.Campaign, error)
}

// RosterMutation edits campaign in place and returns the record to store for
// the pair. current is nil when the pair has no record yet. Returning a nil
// application and nil error commits nothing.
type RosterMutation func(campaign *domain.Campaign, current *domain.Application) (*domain.Application, error)

type RosterRepository interface {
	// UpdateRoster runs fn against the campaign and its record for the
	// influencer and commits both together or not at all.
	UpdateRoster(ctx context.Context, campaignID, influencerID string, fn RosterMutation) (domain.Campaign, *domain.Application, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Application, error)
	ListByInfluencer(ctx context.Context, influencerID string) ([]domain.Application, error)
}

type InfluencerRepository interface {
	Upsert(ctx context.Context, influencer domain.Influencer) (domain.Influencer, error)
	GetByID(ctx context.Context, influencerID string) (domain.Influencer, error)
	List(ctx context.Context) ([]domain.Influencer, error)
}

// UserRepository remembers every account that has opened a session so
// inbox contacts can be named after the session expires.
type UserRepository interface {
	Upsert(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, userID string) (domain.User, error)
}

type InboxRepository interface {
	// AppendMessage stores msg and refreshes both contact rows. The
	// recipient's unread count grows by one.
	AppendMessage(ctx context.Context, msg domain.Message, sender, recipient domain.User) error
	ListMessages(ctx context.Context, userID, contactID string) ([]domain.Message, error)
	ListContacts(ctx context.Context, ownerID string) ([]domain.Contact, error)
	MarkRead(ctx context.Context, ownerID, contactID string) error
	SetFavorite(ctx context.Context, ownerID, contactID string, favorite bool) (domain.Contact, error)
	GetContact(ctx context.Context, ownerID, contactID string) (domain.Contact, error)
}

type OutboxEvent struct {
	EventID          uuid.UUID
	EventType        string
	PartitionKey     string
	PartitionKeyPath string
	Payload          []byte
	OccurredAt       time.Time
	SchemaVersion    string
	TraceID          string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type EventDedupRepository interface {
	IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error
}
