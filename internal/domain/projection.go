package domain

import (
	"fmt"
	"strings"
)

// CampaignTab is the status preset selected on the campaign listing.
type CampaignTab string

const (
	CampaignTabAll       CampaignTab = "all"
	CampaignTabActive    CampaignTab = "active"
	CampaignTabDraft     CampaignTab = "draft"
	CampaignTabCompleted CampaignTab = "completed"
)

func ParseCampaignTab(v string) (CampaignTab, error) {
	switch t := CampaignTab(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return CampaignTabAll, nil
	case CampaignTabAll, CampaignTabActive, CampaignTabDraft, CampaignTabCompleted:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown campaign tab %q", ErrInvalidInput, v)
	}
}

func (t CampaignTab) admits(status CampaignStatus) bool {
	switch t {
	case CampaignTabActive:
		return status == CampaignStatusActive
	case CampaignTabDraft:
		return status == CampaignStatusDraft
	case CampaignTabCompleted:
		return status == CampaignStatusCompleted
	default:
		return true
	}
}

// CampaignFilter is a conjunction of predicates; zero-valued fields match
// everything. Budget bounds are inclusive.
type CampaignFilter struct {
	BrandID   string
	Query     string
	Category  string
	Platforms []string
	Status    CampaignStatus
	MinBudget *int64
	MaxBudget *int64
	Tab       CampaignTab
}

// ProjectCampaigns returns the campaigns matching f, in input order.
func ProjectCampaigns(campaigns []Campaign, f CampaignFilter) []Campaign {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if f.matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func (f CampaignFilter) matches(c Campaign, query string) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(c.Title), query) &&
		!strings.Contains(strings.ToLower(c.Description), query) {
		return false
	}
	if f.BrandID != "" && c.Brand.BrandID != f.BrandID {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if len(f.Platforms) > 0 && !intersects(c.Platforms, f.Platforms) {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.MinBudget != nil && c.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && c.Budget > *f.MaxBudget {
		return false
	}
	return f.Tab.admits(c.Status)
}

type InfluencerFilter struct {
	Query         string
	Categories    []string
	Platforms     []string
	MinFollowers  *int64
	MaxFollowers  *int64
	MinEngagement float64
	Location      string
}

// ProjectInfluencers returns the influencers matching f, in input order.
func ProjectInfluencers(influencers []Influencer, f InfluencerFilter) []Influencer {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	location := strings.ToLower(strings.TrimSpace(f.Location))
	out := make([]Influencer, 0, len(influencers))
	for _, inf := range influencers {
		if query != "" &&
			!strings.Contains(strings.ToLower(inf.Name), query) &&
			!strings.Contains(strings.ToLower(inf.Category), query) &&
			!strings.Contains(strings.ToLower(inf.Bio), query) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, inf.Category) {
			continue
		}
		if len(f.Platforms) > 0 && !intersects(inf.Platforms, f.Platforms) {
			continue
		}
		if f.MinFollowers != nil && inf.Followers < *f.MinFollowers {
			continue
		}
		if f.MaxFollowers != nil && inf.Followers > *f.MaxFollowers {
			continue
		}
		if inf.Engagement < f.MinEngagement {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(inf.Location), location) {
			continue
		}
		out = append(out, inf)
	}
	return out
}

func intersects(have, want []string) bool {
	for _, h := range have {
		if contains(want, h) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
