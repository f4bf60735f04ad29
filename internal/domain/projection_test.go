package domain

import (
	"errors"
	"reflect"
	"testing"
)

func sampleCampaigns() []Campaign {
	return []Campaign{
		{CampaignID: "c-1", Title: "Lançamento Coleção Verão", Description: "roupas sustentáveis", Budget: 15000, Category: "Moda", Platforms: []string{"Instagram", "TikTok"}, Status: CampaignStatusActive},
		{CampaignID: "c-2", Title: "Review de Smartphones", Description: "novo smartphone", Budget: 25000, Category: "Tecnologia", Platforms: []string{"YouTube", "Instagram"}, Status: CampaignStatusActive},
		{CampaignID: "c-3", Title: "Campanha Produtos Naturais", Description: "beleza vegana", Budget: 10000, Category: "Beleza", Platforms: []string{"Instagram"}, Status: CampaignStatusCompleted},
		{CampaignID: "c-4", Title: "Lançamento App de Finanças", Description: "gestão financeira", Budget: 30000, Category: "Tecnologia", Platforms: []string{"LinkedIn"}, Status: CampaignStatusDraft},
		{CampaignID: "c-5", Title: "Notebooks Gamer", Description: "review de notebooks", Budget: 40000, Category: "Tecnologia", Platforms: []string{"YouTube"}, Status: CampaignStatusCancelled},
	}
}

func ids(cs []Campaign) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.CampaignID)
	}
	return out
}

func int64p(v int64) *int64 { return &v }

func TestProjectCampaignsCategoryAndBudget(t *testing.T) {
	got := ProjectCampaigns(sampleCampaigns(), CampaignFilter{
		Category:  "Tecnologia",
		MinBudget: int64p(20000),
		MaxBudget: int64p(30000),
	})
	if want := []string{"c-2", "c-4"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestProjectCampaignsPredicates(t *testing.T) {
	cases := []struct {
		name   string
		filter CampaignFilter
		want   []string
	}{
		{"empty filter keeps all", CampaignFilter{}, []string{"c-1", "c-2", "c-3", "c-4", "c-5"}},
		{"query matches title case-insensitively", CampaignFilter{Query: "LANÇAMENTO"}, []string{"c-1", "c-4"}},
		{"query matches description", CampaignFilter{Query: "vegana"}, []string{"c-3"}},
		{"platform intersection", CampaignFilter{Platforms: []string{"TikTok", "LinkedIn"}}, []string{"c-1", "c-4"}},
		{"status", CampaignFilter{Status: CampaignStatusCompleted}, []string{"c-3"}},
		{"active tab", CampaignFilter{Tab: CampaignTabActive}, []string{"c-1", "c-2"}},
		{"draft tab", CampaignFilter{Tab: CampaignTabDraft}, []string{"c-4"}},
		{"completed tab", CampaignFilter{Tab: CampaignTabCompleted}, []string{"c-3"}},
		{"conjunction", CampaignFilter{Query: "review", Platforms: []string{"YouTube"}, Tab: CampaignTabActive}, []string{"c-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(ProjectCampaigns(sampleCampaigns(), tc.filter)); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestProjectCampaignsIsIdempotent(t *testing.T) {
	filter := CampaignFilter{Category: "Tecnologia", Tab: CampaignTabAll}
	once := ProjectCampaigns(sampleCampaigns(), filter)
	twice := ProjectCampaigns(once, filter)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("projection not idempotent: %v vs %v", ids(once), ids(twice))
	}
	if again := ProjectCampaigns(sampleCampaigns(), filter); !reflect.DeepEqual(once, again) {
		t.Fatalf("projection not stable across calls")
	}
}

func TestParseCampaignTab(t *testing.T) {
	if tab, err := ParseCampaignTab(""); err != nil || tab != CampaignTabAll {
		t.Fatalf("empty tab should mean all, got %q %v", tab, err)
	}
	if _, err := ParseCampaignTab("archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectInfluencers(t *testing.T) {
	all := []Influencer{
		{InfluencerID: "i-1", Name: "Ana Silva", Category: "Moda", Followers: 1_200_000, Engagement: 4.8, Platforms: []string{"Instagram", "TikTok"}, Location: "São Paulo, SP"},
		{InfluencerID: "i-2", Name: "Carlos Mendes", Category: "Tecnologia", Followers: 850_000, Engagement: 5.2, Platforms: []string{"YouTube"}, Location: "Rio de Janeiro, RJ", Bio: "Reviews de produtos tech"},
		{InfluencerID: "i-3", Name: "Roberto Alves", Category: "Fitness", Followers: 950_000, Engagement: 6.1, Platforms: []string{"Instagram"}, Location: "Curitiba, PR"},
	}
	cases := []struct {
		name   string
		filter InfluencerFilter
		want   []string
	}{
		{"query over bio", InfluencerFilter{Query: "tech"}, []string{"i-2"}},
		{"categories", InfluencerFilter{Categories: []string{"Moda", "Fitness"}}, []string{"i-1", "i-3"}},
		{"follower range", InfluencerFilter{MinFollowers: int64p(900_000), MaxFollowers: int64p(1_000_000)}, []string{"i-3"}},
		{"min engagement", InfluencerFilter{MinEngagement: 5}, []string{"i-2", "i-3"}},
		{"location substring", InfluencerFilter{Location: "rio"}, []string{"i-2"}},
		{"platforms", InfluencerFilter{Platforms: []string{"Instagram"}, MinEngagement: 5}, []string{"i-3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectInfluencers(all, tc.filter)
			gotIDs := make([]string, 0, len(got))
			for _, i := range got {
				gotIDs = append(gotIDs, i.InfluencerID)
			}
			if !reflect.DeepEqual(gotIDs, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, gotIDs)
			}
		})
	}
}
