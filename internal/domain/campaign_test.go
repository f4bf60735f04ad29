package domain

import (
	"errors"
	"testing"
)

func validDraft() CampaignDraft {
	return CampaignDraft{
		Title:       "Lançamento Coleção Verão",
		Description: "Nova coleção de roupas sustentáveis.",
		Budget:      15000,
		Category:    "Moda",
		Platforms:   []string{"instagram"},
		StartDate:   "2026-11-01",
		EndDate:     "2026-12-15",
	}
}

func TestNewCampaignStartsAsDraft(t *testing.T) {
	d := validDraft().Normalize()
	start, end, err := ValidateCampaignDraft(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	c := NewCampaign("c-1", BrandRef{BrandID: "b-1", Name: "Moda Sustentável"}, d, start, end, testNow)
	if c.Status != CampaignStatusDraft {
		t.Fatalf("expected draft, got %s", c.Status)
	}
	if c.Applicants != 0 || c.InfluencerCount != 0 || c.ViewCount != 0 {
		t.Fatalf("expected zero counters, got %+v", c)
	}
	if c.Platforms[0] != "Instagram" {
		t.Fatalf("expected canonical platform, got %q", c.Platforms[0])
	}
	if !c.OwnedBy("b-1") || c.OwnedBy("b-2") || c.OwnedBy("") {
		t.Fatal("ownership check is wrong")
	}
}

func TestValidateCampaignDraftCollectsFieldErrors(t *testing.T) {
	d := validDraft()
	d.Title = "  "
	d.Budget = 0
	d.Platforms = []string{"Orkut"}
	d.StartDate = "01/11/2026"
	d = d.Normalize()

	_, _, err := ValidateCampaignDraft(d)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	for _, key := range []string{"title", "budget", "platforms[0]", "start_date"} {
		if fields[key] == "" {
			t.Fatalf("expected error for %s, got %v", key, fields)
		}
	}
}

func TestValidateCampaignDraftRejectsInvertedWindow(t *testing.T) {
	d := validDraft()
	d.EndDate = "2026-10-01"
	_, _, err := ValidateCampaignDraft(d.Normalize())
	var fields FieldErrors
	if !errors.As(err, &fields) || fields["end_date"] == "" {
		t.Fatalf("expected end_date error, got %v", err)
	}
}

func TestCampaignTransitions(t *testing.T) {
	allowed := map[[2]CampaignStatus]bool{
		{CampaignStatusDraft, CampaignStatusActive}:     true,
		{CampaignStatusDraft, CampaignStatusCancelled}:  true,
		{CampaignStatusActive, CampaignStatusCompleted}: true,
		{CampaignStatusActive, CampaignStatusCancelled}: true,
	}
	all := []CampaignStatus{CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted, CampaignStatusCancelled}
	for _, from := range all {
		for _, to := range all {
			c := Campaign{Status: from}
			err := c.TransitionTo(to, testNow)
			if allowed[[2]CampaignStatus{from, to}] {
				if err != nil || c.Status != to {
					t.Fatalf("%s -> %s should be allowed, got %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidState) || c.Status != from {
				t.Fatalf("%s -> %s should be rejected, got %v (status %s)", from, to, err, c.Status)
			}
		}
	}
}

func TestParseCampaignStatus(t *testing.T) {
	if s, err := ParseCampaignStatus(" Active "); err != nil || s != CampaignStatusActive {
		t.Fatalf("expected active, got %q %v", s, err)
	}
	if _, err := ParseCampaignStatus("paused"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
