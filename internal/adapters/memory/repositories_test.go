package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
)

var baseTime = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func seedCampaign(t *testing.T, repos *Repositories, id string, status domain.CampaignStatus, createdAt time.Time) {
	t.Helper()
	_, err := repos.Campaigns.Create(context.Background(), domain.Campaign{
		CampaignID: id,
		Brand:      domain.BrandRef{BrandID: "b-1", Name: "Tech Gadgets"},
		Title:      "Review de Smartphones",
		Status:     status,
		Platforms:  []string{"YouTube"},
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("create campaign %s: %v", id, err)
	}
}

func apply(influencerID string) func(*domain.Campaign, *domain.Application) (*domain.Application, error) {
	return func(c *domain.Campaign, cur *domain.Application) (*domain.Application, error) {
		return domain.SubmitApplication(c, cur, influencerID, baseTime)
	}
}

func TestCampaignListNewestFirstAndCAS(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	seedCampaign(t, repos, "c-old", domain.CampaignStatusDraft, baseTime)
	seedCampaign(t, repos, "c-new", domain.CampaignStatusDraft, baseTime.Add(time.Hour))

	list, err := repos.Campaigns.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].CampaignID != "c-new" {
		t.Fatalf("expected newest first, got %v", list)
	}

	if _, err := repos.Campaigns.UpdateStatus(ctx, "c-old", domain.CampaignStatusDraft, domain.CampaignStatusActive, baseTime); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := repos.Campaigns.UpdateStatus(ctx, "c-old", domain.CampaignStatusDraft, domain.CampaignStatusCancelled, baseTime); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale from status: expected ErrConflict, got %v", err)
	}
	if _, err := repos.Campaigns.UpdateStatus(ctx, "missing", domain.CampaignStatusDraft, domain.CampaignStatusActive, baseTime); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, _ := repos.Campaigns.GetByID(ctx, "c-old")
	got.Platforms[0] = "mutated"
	again, _ := repos.Campaigns.GetByID(ctx, "c-old")
	if again.Platforms[0] != "YouTube" {
		t.Fatal("GetByID must return a copy")
	}
}

func TestUpdateRosterLeavesStateOnError(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	seedCampaign(t, repos, "c-1", domain.CampaignStatusActive, baseTime)

	_, _, err := repos.Roster.UpdateRoster(ctx, "c-1", "i-1", func(c *domain.Campaign, _ *domain.Application) (*domain.Application, error) {
		c.Applicants = 99
		return nil, domain.ErrInvalidState
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	c, _ := repos.Campaigns.GetByID(ctx, "c-1")
	if c.Applicants != 0 {
		t.Fatalf("failed mutation leaked into campaign: %d", c.Applicants)
	}
	if _, _, err := repos.Roster.UpdateRoster(ctx, "missing", "i-1", apply("i-1")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAppliesKeepCountersConsistent(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	seedCampaign(t, repos, "c-1", domain.CampaignStatusActive, baseTime)

	const influencers = 20
	var wg sync.WaitGroup
	for i := 0; i < influencers; i++ {
		id := fmt.Sprintf("i-%02d", i)
		for attempt := 0; attempt < 3; attempt++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, _, err := repos.Roster.UpdateRoster(ctx, "c-1", id, apply(id)); err != nil {
					t.Errorf("apply %s: %v", id, err)
				}
			}()
		}
	}
	wg.Wait()

	c, _ := repos.Campaigns.GetByID(ctx, "c-1")
	apps, err := repos.Roster.ListByCampaign(ctx, "c-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if c.Applicants != influencers || len(apps) != influencers {
		t.Fatalf("expected %d applicants and records, got %d/%d", influencers, c.Applicants, len(apps))
	}
	if !domain.CountersMatch(c, apps) {
		t.Fatalf("counters disagree with records")
	}
	mine, _ := repos.Roster.ListByInfluencer(ctx, "i-03")
	if len(mine) != 1 || mine[0].Status != domain.ApplicationStatusApplied {
		t.Fatalf("unexpected applications for i-03: %+v", mine)
	}
}

func TestInboxContactsAndReadState(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	brand := domain.User{UserID: "b-1", Name: "Tech Gadgets", Type: domain.UserTypeBrand}
	ana := domain.User{UserID: "i-1", Name: "Ana Silva", Type: domain.UserTypeInfluencer}

	for i, text := range []string{"Olá", "Tudo bem?"} {
		msg := domain.Message{MessageID: fmt.Sprint(i), SenderID: brand.UserID, RecipientID: ana.UserID, Text: text, SentAt: baseTime.Add(time.Duration(i) * time.Minute)}
		if err := repos.Inbox.AppendMessage(ctx, msg, brand, ana); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	inbound, err := repos.Inbox.GetContact(ctx, ana.UserID, brand.UserID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if inbound.Unread != 2 || inbound.LastMessage != "Tudo bem?" || inbound.ContactType != domain.UserTypeBrand {
		t.Fatalf("unexpected inbound contact: %+v", inbound)
	}
	outbound, _ := repos.Inbox.GetContact(ctx, brand.UserID, ana.UserID)
	if outbound.Unread != 0 {
		t.Fatalf("sender must not accrue unread, got %d", outbound.Unread)
	}

	thread, _ := repos.Inbox.ListMessages(ctx, brand.UserID, ana.UserID)
	if len(thread) != 2 || thread[0].Text != "Olá" {
		t.Fatalf("unexpected thread: %+v", thread)
	}
	if err := repos.Inbox.MarkRead(ctx, ana.UserID, brand.UserID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	fav, err := repos.Inbox.SetFavorite(ctx, ana.UserID, brand.UserID, true)
	if err != nil || !fav.Favorite || fav.Unread != 0 {
		t.Fatalf("unexpected contact after read+favorite: %+v %v", fav, err)
	}
	if _, err := repos.Inbox.SetFavorite(ctx, ana.UserID, "ghost", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOutboxDropsPublishedRows(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		err := repos.Outbox.Enqueue(ctx, ports.OutboxEvent{
			EventID:      id,
			EventType:    "campaign.created",
			PartitionKey: fmt.Sprintf("c-%d", i),
			Payload:      []byte(`{}`),
			OccurredAt:   baseTime,
		})
		if err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	if err := repos.Outbox.MarkPublished(ctx, ids[1], baseTime); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if got := repos.Outbox.Len(); got != 2 {
		t.Fatalf("expected published row dropped, %d rows left", got)
	}
	pending, err := repos.Outbox.FetchUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(pending) != 2 || pending[0].OutboxID != ids[0] || pending[1].OutboxID != ids[2] {
		t.Fatalf("unexpected pending rows: %+v", pending)
	}
	if err := repos.Outbox.MarkPublished(ctx, ids[1], baseTime); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for dropped row, got %v", err)
	}
}

func TestEventDedupSweepsExpiredEntries(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	if err := repos.EventDedup.MarkProcessed(ctx, "evt-old", "influencer.profile_updated", baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("mark old: %v", err)
	}
	if err := repos.EventDedup.MarkProcessed(ctx, "evt-new", "influencer.profile_updated", baseTime.Add(48*time.Hour)); err != nil {
		t.Fatalf("mark new: %v", err)
	}
	if dup, _ := repos.EventDedup.IsDuplicate(ctx, "evt-old", baseTime); !dup {
		t.Fatal("expected evt-old to be a duplicate inside its window")
	}

	later := baseTime.Add(2 * time.Hour)
	if dup, _ := repos.EventDedup.IsDuplicate(ctx, "evt-new", later); !dup {
		t.Fatal("expected evt-new to still be a duplicate")
	}
	if got := repos.EventDedup.Len(); got != 1 {
		t.Fatalf("expected expired entry swept, %d left", got)
	}
	if dup, _ := repos.EventDedup.IsDuplicate(ctx, "evt-old", later); dup {
		t.Fatal("expired entry must not count as duplicate")
	}
}
