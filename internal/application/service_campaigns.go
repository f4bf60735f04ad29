package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/contracts"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

func (s *Service) CreateCampaign(ctx context.Context, actor Actor, draft domain.CampaignDraft) (_ CampaignView, err error) {
	ctx, span := s.startSpan(ctx, "CreateCampaign", actor)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return CampaignView{}, domain.ErrUnauthorized
	}
	if !actor.isBrand() {
		return CampaignView{}, fmt.Errorf("%w: only brands create campaigns", domain.ErrForbidden)
	}
	draft = draft.Normalize()
	start, end, err := domain.ValidateCampaignDraft(draft)
	if err != nil {
		return CampaignView{}, err
	}

	now := s.nowFn()
	campaign := domain.NewCampaign(uuid.NewString(), domain.BrandRef{BrandID: actor.SubjectID, Name: actor.Name}, draft, start, end, now)
	created, err := s.campaigns.Create(ctx, campaign)
	if err != nil {
		return CampaignView{}, err
	}
	s.enqueueEvent(ctx, actor, domain.EventCampaignCreated, created.CampaignID, contracts.CampaignCreatedPayload{
		CampaignID: created.CampaignID,
		BrandID:    created.Brand.BrandID,
		Title:      created.Title,
		Category:   created.Category,
		Budget:     created.Budget,
		CreatedAt:  created.CreatedAt.Format(timeFormat),
	})
	return toCampaignView(created), nil
}

// GetCampaign returns the campaign if viewer may see it. Drafts of other
// brands read as not found.
func (s *Service) GetCampaign(ctx context.Context, viewer Actor, campaignID string) (CampaignView, error) {
	campaign, err := s.visibleCampaign(ctx, viewer, campaignID)
	if err != nil {
		return CampaignView{}, err
	}
	return toCampaignView(campaign), nil
}

// RecordCampaignView counts one detail-page view of the campaign.
func (s *Service) RecordCampaignView(ctx context.Context, viewer Actor, campaignID string) (CampaignView, error) {
	current, err := s.visibleCampaign(ctx, viewer, campaignID)
	if err != nil {
		return CampaignView{}, err
	}
	campaign, err := s.campaigns.IncrementViews(ctx, current.CampaignID)
	if err != nil {
		return CampaignView{}, err
	}
	return toCampaignView(campaign), nil
}

// ListCampaigns projects the campaigns viewer may see through filter.
func (s *Service) ListCampaigns(ctx context.Context, viewer Actor, filter domain.CampaignFilter) ([]CampaignView, error) {
	visible, err := s.visibleCampaigns(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return toCampaignViews(domain.ProjectCampaigns(visible, filter)), nil
}

// CampaignCount counts every stored campaign regardless of visibility.
func (s *Service) CampaignCount(ctx context.Context) (int, error) {
	all, err := s.campaigns.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (s *Service) ChangeCampaignStatus(ctx context.Context, actor Actor, campaignID, status string) (_ CampaignView, err error) {
	ctx, span := s.startSpan(ctx, "ChangeCampaignStatus", actor, attribute.String("campaign.id", campaignID))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return CampaignView{}, domain.ErrUnauthorized
	}
	to, err := domain.ParseCampaignStatus(status)
	if err != nil {
		return CampaignView{}, err
	}
	current, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return CampaignView{}, err
	}
	from := current.Status
	now := s.nowFn()
	if err := current.TransitionTo(to, now); err != nil {
		return CampaignView{}, err
	}
	updated, err := s.campaigns.UpdateStatus(ctx, current.CampaignID, from, to, now)
	if err != nil {
		return CampaignView{}, err
	}
	metrics.RecordCampaignStatusChange(string(to))
	s.enqueueEvent(ctx, actor, domain.EventCampaignStatusChanged, updated.CampaignID, contracts.CampaignStatusChangedPayload{
		CampaignID: updated.CampaignID,
		From:       string(from),
		To:         string(to),
		ChangedAt:  now.Format(timeFormat),
	})
	return toCampaignView(updated), nil
}

// ApplyToCampaign records the acting influencer as an applicant. Applying
// again is a no-op that returns the campaign unchanged.
func (s *Service) ApplyToCampaign(ctx context.Context, actor Actor, campaignID string) (_ CampaignView, err error) {
	ctx, span := s.startSpan(ctx, "ApplyToCampaign", actor, attribute.String("campaign.id", campaignID))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return CampaignView{}, domain.ErrUnauthorized
	}
	if !actor.isInfluencer() {
		return CampaignView{}, fmt.Errorf("%w: only influencers apply to campaigns", domain.ErrForbidden)
	}

	var submitted bool
	campaign, app, err := s.roster.UpdateRoster(ctx, strings.TrimSpace(campaignID), actor.SubjectID,
		func(c *domain.Campaign, current *domain.Application) (*domain.Application, error) {
			next, err := domain.SubmitApplication(c, current, actor.SubjectID, s.nowFn())
			submitted = next != nil
			return next, err
		})
	if err != nil {
		return CampaignView{}, err
	}
	if submitted {
		metrics.RecordRosterTransition(string(domain.ApplicationStatusApplied))
		s.enqueueRosterEvent(ctx, actor, domain.EventCampaignApplicationSubmitted, campaign, app)
	}
	return toCampaignView(campaign), nil
}

func (s *Service) ownedCampaign(ctx context.Context, actor Actor, campaignID string) (domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return domain.Campaign{}, err
	}
	if !actor.isBrand() || !campaign.OwnedBy(actor.SubjectID) {
		return domain.Campaign{}, fmt.Errorf("%w: campaign belongs to another brand", domain.ErrForbidden)
	}
	return campaign, nil
}

func (s *Service) visibleCampaign(ctx context.Context, viewer Actor, campaignID string) (domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return domain.Campaign{}, err
	}
	if !campaign.VisibleTo(viewer.SubjectID) {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return campaign, nil
}

func (s *Service) visibleCampaigns(ctx context.Context, viewer Actor) ([]domain.Campaign, error) {
	all, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Campaign, 0, len(all))
	for _, c := range all {
		if c.VisibleTo(viewer.SubjectID) {
			out = append(out, c)
		}
	}
	return out, nil
}
