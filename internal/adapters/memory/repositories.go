package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
)

type Repositories struct {
	Campaigns   *CampaignRepository
	Roster      *RosterRepository
	Influencers *InfluencerRepository
	Users       *UserRepository
	Inbox       *InboxRepository
	Outbox      *OutboxRepository
	EventDedup  *EventDedupRepository
}

func NewRepositories() *Repositories {
	state := &campaignState{
		campaigns:    map[string]domain.Campaign{},
		applications: map[rosterKey]domain.Application{},
	}
	return &Repositories{
		Campaigns:   &CampaignRepository{state: state},
		Roster:      &RosterRepository{state: state},
		Influencers: &InfluencerRepository{byID: map[string]domain.Influencer{}},
		Users:       &UserRepository{byID: map[string]domain.User{}},
		Inbox:       &InboxRepository{threads: map[string][]domain.Message{}, contacts: map[string]map[string]domain.Contact{}},
		Outbox:      &OutboxRepository{rows: map[uuid.UUID]ports.OutboxRecord{}},
		EventDedup:  &EventDedupRepository{rows: map[string]time.Time{}},
	}
}

type rosterKey struct {
	campaignID   string
	influencerID string
}

// campaignState holds campaigns and their application records behind one
// lock so a roster change commits both sides at once.
type campaignState struct {
	mu           sync.Mutex
	campaigns    map[string]domain.Campaign
	applications map[rosterKey]domain.Application
}

type CampaignRepository struct {
	state *campaignState
}

func (r *CampaignRepository) Create(_ context.Context, row domain.Campaign) (domain.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.campaigns[row.CampaignID]; ok {
		return domain.Campaign{}, domain.ErrConflict
	}
	r.state.campaigns[row.CampaignID] = row.Clone()
	return row.Clone(), nil
}

func (r *CampaignRepository) GetByID(_ context.Context, campaignID string) (domain.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	row, ok := r.state.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return row.Clone(), nil
}

func (r *CampaignRepository) List(_ context.Context) ([]domain.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	out := make([]domain.Campaign, 0, len(r.state.campaigns))
	for _, row := range r.state.campaigns {
		out = append(out, row.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CampaignID < out[j].CampaignID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CampaignRepository) UpdateStatus(_ context.Context, campaignID string, from, to domain.CampaignStatus, at time.Time) (domain.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	row, ok := r.state.campaigns[campaignID]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	if row.Status != from {
		return domain.Campaign{}, domain.ErrConflict
	}
	row.Status = to
	row.UpdatedAt = at
	r.state.campaigns[campaignID] = row
	return row.Clone(), nil
}

func (r *CampaignRepository) IncrementViews(_ context.Context, campaignID string) (domain.Campaign, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	row, ok := r.state.campaigns[campaignID]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	row.ViewCount++
	r.state.campaigns[campaignID] = row
	return row.Clone(), nil
}

type RosterRepository struct {
	state *campaignState
}

func (r *RosterRepository) UpdateRoster(_ context.Context, campaignID, influencerID string, fn ports.RosterMutation) (domain.Campaign, *domain.Application, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	stored, ok := r.state.campaigns[campaignID]
	if !ok {
		return domain.Campaign{}, nil, domain.ErrNotFound
	}
	key := rosterKey{campaignID: campaignID, influencerID: influencerID}
	var current *domain.Application
	if app, ok := r.state.applications[key]; ok {
		current = &app
	}

	staged := stored.Clone()
	next, err := fn(&staged, current)
	if err != nil {
		return domain.Campaign{}, nil, err
	}
	if next == nil {
		return stored.Clone(), current, nil
	}
	r.state.campaigns[campaignID] = staged
	r.state.applications[key] = *next
	out := *next
	return staged.Clone(), &out, nil
}

func (r *RosterRepository) ListByCampaign(_ context.Context, campaignID string) ([]domain.Application, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []domain.Application
	for key, app := range r.state.applications {
		if key.campaignID == campaignID {
			out = append(out, app)
		}
	}
	sortApplications(out)
	return out, nil
}

func (r *RosterRepository) ListByInfluencer(_ context.Context, influencerID string) ([]domain.Application, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []domain.Application
	for key, app := range r.state.applications {
		if key.influencerID == influencerID {
			out = append(out, app)
		}
	}
	sortApplications(out)
	return out, nil
}

func sortApplications(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		if apps[i].CampaignID != apps[j].CampaignID {
			return apps[i].CampaignID < apps[j].CampaignID
		}
		return apps[i].InfluencerID < apps[j].InfluencerID
	})
}

type InfluencerRepository struct {
	mu   sync.Mutex
	byID map[string]domain.Influencer
}

func (r *InfluencerRepository) Upsert(_ context.Context, row domain.Influencer) (domain.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[row.InfluencerID] = row.Clone()
	return row.Clone(), nil
}

func (r *InfluencerRepository) GetByID(_ context.Context, influencerID string) (domain.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.byID[strings.TrimSpace(influencerID)]
	if !ok {
		return domain.Influencer{}, domain.ErrNotFound
	}
	return row.Clone(), nil
}

// List returns profiles ordered by follower count, largest first.
func (r *InfluencerRepository) List(_ context.Context) ([]domain.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Influencer, 0, len(r.byID))
	for _, row := range r.byID {
		out = append(out, row.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Followers == out[j].Followers {
			return out[i].InfluencerID < out[j].InfluencerID
		}
		return out[i].Followers > out[j].Followers
	})
	return out, nil
}

type UserRepository struct {
	mu   sync.Mutex
	byID map[string]domain.User
}

func (r *UserRepository) Upsert(_ context.Context, row domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[row.UserID] = row
	return row, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.byID[strings.TrimSpace(userID)]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return row, nil
}

type InboxRepository struct {
	mu       sync.Mutex
	threads  map[string][]domain.Message
	contacts map[string]map[string]domain.Contact
}

func (r *InboxRepository) AppendMessage(_ context.Context, msg domain.Message, sender, recipient domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := domain.ConversationKey(sender.UserID, recipient.UserID)
	r.threads[key] = append(r.threads[key], msg)

	out := r.contactLocked(sender.UserID, recipient)
	out.LastMessage, out.LastMessageAt = msg.Text, msg.SentAt
	r.contacts[sender.UserID][recipient.UserID] = out

	in := r.contactLocked(recipient.UserID, sender)
	in.LastMessage, in.LastMessageAt = msg.Text, msg.SentAt
	in.Unread++
	r.contacts[recipient.UserID][sender.UserID] = in
	return nil
}

func (r *InboxRepository) contactLocked(ownerID string, other domain.User) domain.Contact {
	byContact, ok := r.contacts[ownerID]
	if !ok {
		byContact = map[string]domain.Contact{}
		r.contacts[ownerID] = byContact
	}
	c, ok := byContact[other.UserID]
	if !ok {
		c = domain.Contact{OwnerID: ownerID, ContactID: other.UserID}
	}
	c.ContactName = other.Name
	c.ContactType = other.Type
	return c
}

func (r *InboxRepository) ListMessages(_ context.Context, userID, contactID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	thread := r.threads[domain.ConversationKey(userID, contactID)]
	return append([]domain.Message(nil), thread...), nil
}

// ListContacts returns the owner's contacts, most recent conversation first.
func (r *InboxRepository) ListContacts(_ context.Context, ownerID string) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Contact, 0, len(r.contacts[ownerID]))
	for _, c := range r.contacts[ownerID] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].ContactID < out[j].ContactID
		}
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (r *InboxRepository) GetContact(_ context.Context, ownerID, contactID string) (domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[ownerID][contactID]
	if !ok {
		return domain.Contact{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *InboxRepository) MarkRead(_ context.Context, ownerID, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[ownerID][contactID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Unread = 0
	r.contacts[ownerID][contactID] = c
	return nil
}

func (r *InboxRepository) SetFavorite(_ context.Context, ownerID, contactID string, favorite bool) (domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[ownerID][contactID]
	if !ok {
		return domain.Contact{}, domain.ErrNotFound
	}
	c.Favorite = favorite
	r.contacts[ownerID][contactID] = c
	return c, nil
}

type OutboxRepository struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]ports.OutboxRecord
	order []uuid.UUID
}

func (r *OutboxRepository) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[event.EventID]; ok {
		return domain.ErrConflict
	}
	r.rows[event.EventID] = ports.OutboxRecord{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      append([]byte(nil), event.Payload...),
		FirstSeenAt:  event.OccurredAt,
	}
	r.order = append(r.order, event.EventID)
	return nil
}

func (r *OutboxRepository) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range r.order {
		out = append(out, r.rows[id])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// MarkPublished drops the row; nothing reads published rows back.
func (r *OutboxRepository) MarkPublished(_ context.Context, outboxID uuid.UUID, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[outboxID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, outboxID)
	for i, id := range r.order {
		if id == outboxID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *OutboxRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *OutboxRepository) MarkFailed(_ context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[outboxID]
	if !ok {
		return domain.ErrNotFound
	}
	row.RetryCount++
	row.LastError = &errMsg
	row.LastErrorAt = &at
	r.rows[outboxID] = row
	return nil
}

type EventDedupRepository struct {
	mu   sync.Mutex
	rows map[string]time.Time
}

// IsDuplicate also sweeps every entry that expired by now.
func (r *EventDedupRepository) IsDuplicate(_ context.Context, eventID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, until := range r.rows {
		if !until.After(now) {
			delete(r.rows, id)
		}
	}
	_, ok := r.rows[eventID]
	return ok, nil
}

func (r *EventDedupRepository) MarkProcessed(_ context.Context, eventID, _ string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[eventID] = expiresAt
	return nil
}

func (r *EventDedupRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

var (
	_ ports.CampaignRepository   = (*CampaignRepository)(nil)
	_ ports.RosterRepository     = (*RosterRepository)(nil)
	_ ports.InfluencerRepository = (*InfluencerRepository)(nil)
	_ ports.UserRepository       = (*UserRepository)(nil)
	_ ports.InboxRepository      = (*InboxRepository)(nil)
	_ ports.OutboxRepository     = (*OutboxRepository)(nil)
	_ ports.EventDedupRepository = (*EventDedupRepository)(nil)
)
