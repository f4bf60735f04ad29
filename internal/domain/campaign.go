package domain

import (
	"fmt"
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

func ParseCampaignStatus(v string) (CampaignStatus, error) {
	switch s := CampaignStatus(strings.ToLower(strings.TrimSpace(v))); s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted, CampaignStatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown campaign status %q", ErrInvalidInput, v)
	}
}

// campaignTransitions lists the statuses reachable from each status.
// Completed and cancelled are terminal.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:  {CampaignStatusActive, CampaignStatusCancelled},
	CampaignStatusActive: {CampaignStatusCompleted, CampaignStatusCancelled},
}

func CanTransitionCampaign(from, to CampaignStatus) bool {
	for _, next := range campaignTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BrandRef struct {
	BrandID string
	Name    string
}

type Campaign struct {
	CampaignID      string
	Brand           BrandRef
	Title           string
	Description     string
	Budget          int64
	Category        string
	Platforms       []string
	Requirements    string
	StartDate       time.Time
	EndDate         time.Time
	Status          CampaignStatus
	Location        string
	Applicants      int
	InfluencerCount int
	ViewCount       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a copy that shares no slices with c.
func (c Campaign) Clone() Campaign {
	c.Platforms = append([]string(nil), c.Platforms...)
	return c
}

func (c Campaign) OwnedBy(brandID string) bool {
	return brandID != "" && c.Brand.BrandID == brandID
}

// VisibleTo reports whether viewerID may see the campaign. Drafts are
// private to the owning brand; an empty viewerID is anonymous.
func (c Campaign) VisibleTo(viewerID string) bool {
	return c.Status != CampaignStatusDraft || c.OwnedBy(viewerID)
}

func (c *Campaign) TransitionTo(to CampaignStatus, now time.Time) error {
	if !CanTransitionCampaign(c.Status, to) {
		return fmt.Errorf("%w: campaign cannot move from %s to %s", ErrInvalidState, c.Status, to)
	}
	c.Status = to
	c.UpdatedAt = now
	return nil
}

// NewCampaign builds a draft campaign from a validated draft.
func NewCampaign(id string, brand BrandRef, d CampaignDraft, start, end, now time.Time) Campaign {
	return Campaign{
		CampaignID:   id,
		Brand:        brand,
		Title:        d.Title,
		Description:  d.Description,
		Budget:       d.Budget,
		Category:     d.Category,
		Platforms:    append([]string(nil), d.Platforms...),
		Requirements: d.Requirements,
		StartDate:    start,
		EndDate:      end,
		Status:       CampaignStatusDraft,
		Location:     d.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

var knownPlatforms = map[string]string{
	"instagram": "Instagram",
	"youtube":   "YouTube",
	"tiktok":    "TikTok",
	"twitter":   "Twitter",
	"facebook":  "Facebook",
	"linkedin":  "LinkedIn",
}

// CanonicalPlatform returns the display spelling of a known platform, or the
// trimmed input when the platform is unknown.
func CanonicalPlatform(v string) string {
	trimmed := strings.TrimSpace(v)
	if canonical, ok := knownPlatforms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

func CanonicalPlatforms(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, CanonicalPlatform(v))
	}
	return out
}
