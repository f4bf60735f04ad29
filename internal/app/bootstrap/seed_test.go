package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/cache"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/application"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

func TestSeedDemoDataIsRepeatable(t *testing.T) {
	repos := memory.NewRepositories()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(application.Dependencies{
		Campaigns:   repos.Campaigns,
		Roster:      repos.Roster,
		Influencers: repos.Influencers,
		Users:       repos.Users,
		Inbox:       repos.Inbox,
		Outbox:      repos.Outbox,
		EventDedup:  repos.EventDedup,
		Cache:       cache.NewLocalCache(),
		Logger:      logger,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := SeedDemoData(ctx, svc, logger); err != nil {
			t.Fatalf("seed #%d: %v", i+1, err)
		}
	}

	all, err := repos.Campaigns.List(ctx)
	if err != nil {
		t.Fatalf("list campaigns: %v", err)
	}
	if len(all) != len(demoCampaigns) {
		t.Fatalf("expected %d campaigns after reseeding, got %d", len(demoCampaigns), len(all))
	}
	counts := map[domain.CampaignStatus]int{}
	for _, c := range all {
		counts[c.Status]++
	}
	if counts[domain.CampaignStatusActive] != 2 || counts[domain.CampaignStatusCompleted] != 1 || counts[domain.CampaignStatusDraft] != 1 {
		t.Fatalf("unexpected status mix: %v", counts)
	}

	public, err := svc.ListCampaigns(ctx, application.Actor{}, domain.CampaignFilter{})
	if err != nil {
		t.Fatalf("list public campaigns: %v", err)
	}
	if len(public) != len(demoCampaigns)-1 {
		t.Fatalf("expected the draft hidden from anonymous listing, got %d campaigns", len(public))
	}

	tech, err := svc.SearchInfluencers(ctx, domain.InfluencerFilter{Categories: []string{"Tecnologia"}})
	if err != nil {
		t.Fatalf("search influencers: %v", err)
	}
	if len(tech) != 1 || tech[0].Name != "Carlos Mendes" || tech[0].Followers != 850_000 {
		t.Fatalf("unexpected influencers: %+v", tech)
	}
}
