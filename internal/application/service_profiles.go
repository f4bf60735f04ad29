package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

func (s *Service) GetInfluencer(ctx context.Context, influencerID string) (InfluencerView, error) {
	influencer, err := s.influencers.GetByID(ctx, strings.TrimSpace(influencerID))
	if err != nil {
		return InfluencerView{}, err
	}
	return toInfluencerView(influencer), nil
}

// GetBrandProfile returns the brand with the campaigns viewer may see,
// newest first. Campaign totals cover the same campaigns.
func (s *Service) GetBrandProfile(ctx context.Context, viewer Actor, brandID string) (BrandProfileView, error) {
	brandID = strings.TrimSpace(brandID)
	user, err := s.users.GetByID(ctx, brandID)
	if err != nil {
		return BrandProfileView{}, err
	}
	if user.Type != domain.UserTypeBrand {
		return BrandProfileView{}, fmt.Errorf("%w: %s is not a brand", domain.ErrNotFound, brandID)
	}
	visible, err := s.visibleCampaigns(ctx, viewer)
	if err != nil {
		return BrandProfileView{}, err
	}
	own := domain.ProjectCampaigns(visible, domain.CampaignFilter{BrandID: brandID})
	return BrandProfileView{
		Brand:     BrandView{BrandID: user.UserID, Name: user.Name},
		Summary:   toBrandDashboardView(domain.SummarizeBrand(own, brandID)),
		Campaigns: toCampaignViews(own),
	}, nil
}

// GetMyProfile returns the acting influencer's directory entry.
func (s *Service) GetMyProfile(ctx context.Context, actor Actor) (InfluencerView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return InfluencerView{}, domain.ErrUnauthorized
	}
	if !actor.isInfluencer() {
		return InfluencerView{}, fmt.Errorf("%w: only influencers have directory profiles", domain.ErrForbidden)
	}
	return s.GetInfluencer(ctx, actor.SubjectID)
}

// UpdateMyProfile replaces the acting influencer's directory entry with the
// submitted form. The account name follows a renamed profile.
func (s *Service) UpdateMyProfile(ctx context.Context, actor Actor, update domain.ProfileUpdate) (_ InfluencerView, err error) {
	ctx, span := s.startSpan(ctx, "UpdateMyProfile", actor)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return InfluencerView{}, domain.ErrUnauthorized
	}
	if !actor.isInfluencer() {
		return InfluencerView{}, fmt.Errorf("%w: only influencers have directory profiles", domain.ErrForbidden)
	}
	current, err := s.influencers.GetByID(ctx, actor.SubjectID)
	switch {
	case err == nil:
	case isNotFound(err):
		current = domain.Influencer{InfluencerID: actor.SubjectID, Name: actor.Name}
	default:
		return InfluencerView{}, err
	}
	next, err := update.Normalize().Apply(current, s.nowFn())
	if err != nil {
		return InfluencerView{}, err
	}
	saved, err := s.influencers.Upsert(ctx, next)
	if err != nil {
		return InfluencerView{}, err
	}
	if saved.Name != current.Name {
		if err := s.renameUser(ctx, actor.SubjectID, saved.Name); err != nil {
			return InfluencerView{}, err
		}
	}
	return toInfluencerView(saved), nil
}

func (s *Service) renameUser(ctx context.Context, userID, name string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	user.Name = name
	_, err = s.users.Upsert(ctx, user)
	return err
}

// GetDashboard summarizes the actor's side of the marketplace: campaign
// totals for brands, roster totals for influencers. Both carry the inbox
// unread total.
func (s *Service) GetDashboard(ctx context.Context, actor Actor) (DashboardView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return DashboardView{}, domain.ErrUnauthorized
	}
	contacts, err := s.inbox.ListContacts(ctx, actor.SubjectID)
	if err != nil {
		return DashboardView{}, err
	}
	out := DashboardView{Role: actor.Role, UnreadMessages: domain.UnreadTotal(contacts)}

	switch {
	case actor.isBrand():
		all, err := s.campaigns.List(ctx)
		if err != nil {
			return DashboardView{}, err
		}
		summary := toBrandDashboardView(domain.SummarizeBrand(all, actor.SubjectID))
		out.Brand = &summary
	case actor.isInfluencer():
		apps, err := s.roster.ListByInfluencer(ctx, actor.SubjectID)
		if err != nil {
			return DashboardView{}, err
		}
		campaigns := make(map[string]domain.Campaign, len(apps))
		for _, app := range apps {
			if app.Status != domain.ApplicationStatusAccepted {
				continue
			}
			c, err := s.campaigns.GetByID(ctx, app.CampaignID)
			switch {
			case err == nil:
				campaigns[c.CampaignID] = c
			case !isNotFound(err):
				return DashboardView{}, err
			}
		}
		summary := toInfluencerDashboardView(domain.SummarizeInfluencer(apps, campaigns))
		out.Influencer = &summary
	default:
		return DashboardView{}, fmt.Errorf("%w: unknown account type", domain.ErrForbidden)
	}
	return out, nil
}
