package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// UpdateApplicationStatus accepts or rejects an applied influencer. The
// record and the campaign counters are committed together.
func (s *Service) UpdateApplicationStatus(ctx context.Context, actor Actor, campaignID, influencerID, status string) (_ RosterChange, err error) {
	ctx, span := s.startSpan(ctx, "UpdateApplicationStatus", actor,
		attribute.String("campaign.id", campaignID),
		attribute.String("influencer.id", influencerID),
		attribute.String("application.status", status),
	)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return RosterChange{}, domain.ErrUnauthorized
	}
	decision, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return RosterChange{}, err
	}
	influencerID = strings.TrimSpace(influencerID)
	if influencerID == "" {
		return RosterChange{}, domain.FieldErrors{"influencer_id": "is required"}
	}
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return RosterChange{}, err
	}

	updated, app, err := s.roster.UpdateRoster(ctx, campaign.CampaignID, influencerID,
		func(c *domain.Campaign, current *domain.Application) (*domain.Application, error) {
			return domain.DecideApplication(c, current, decision, s.nowFn())
		})
	if err != nil {
		return RosterChange{}, err
	}
	metrics.RecordRosterTransition(string(decision))
	s.enqueueRosterEvent(ctx, actor, domain.EventCampaignApplicationDecided, updated, app)
	return RosterChange{Campaign: toCampaignView(updated), Application: toApplicationView(*app)}, nil
}

func (s *Service) InviteInfluencer(ctx context.Context, actor Actor, campaignID, influencerID string) (_ RosterChange, err error) {
	ctx, span := s.startSpan(ctx, "InviteInfluencer", actor,
		attribute.String("campaign.id", campaignID),
		attribute.String("influencer.id", influencerID),
	)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(actor.SubjectID) == "" {
		return RosterChange{}, domain.ErrUnauthorized
	}
	influencerID = strings.TrimSpace(influencerID)
	if influencerID == "" {
		return RosterChange{}, domain.FieldErrors{"influencer_id": "is required"}
	}
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return RosterChange{}, err
	}
	if _, err := s.influencers.GetByID(ctx, influencerID); err != nil {
		return RosterChange{}, err
	}

	updated, app, err := s.roster.UpdateRoster(ctx, campaign.CampaignID, influencerID,
		func(c *domain.Campaign, current *domain.Application) (*domain.Application, error) {
			return domain.InviteToCampaign(c, current, influencerID, s.nowFn())
		})
	if err != nil {
		return RosterChange{}, err
	}
	metrics.RecordRosterTransition(string(domain.ApplicationStatusInvited))
	s.enqueueRosterEvent(ctx, actor, domain.EventCampaignInfluencerInvited, updated, app)
	return RosterChange{Campaign: toCampaignView(updated), Application: toApplicationView(*app)}, nil
}

// GetRoster lists the campaign's application records joined to influencer
// profiles. The summary always covers the whole roster; status only narrows
// the entries.
func (s *Service) GetRoster(ctx context.Context, actor Actor, campaignID, status string) (RosterView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return RosterView{}, domain.ErrUnauthorized
	}
	var want domain.ApplicationStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseApplicationStatus(status)
		if err != nil {
			return RosterView{}, err
		}
		want = parsed
	}
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return RosterView{}, err
	}
	apps, err := s.roster.ListByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return RosterView{}, err
	}

	summary := domain.SummarizeRoster(apps)
	out := RosterView{
		CampaignID: campaign.CampaignID,
		Summary: RosterSummaryView{
			Applied:  summary.Applied,
			Invited:  summary.Invited,
			Accepted: summary.Accepted,
			Rejected: summary.Rejected,
		},
		Entries: make([]RosterEntry, 0, len(apps)),
	}
	for _, app := range apps {
		if want != "" && app.Status != want {
			continue
		}
		entry := RosterEntry{Status: string(app.Status), UpdatedAt: app.UpdatedAt}
		profile, err := s.influencers.GetByID(ctx, app.InfluencerID)
		switch {
		case err == nil:
			entry.Influencer = toInfluencerView(profile)
		case isNotFound(err):
			entry.Influencer = InfluencerView{InfluencerID: app.InfluencerID, Platforms: []string{}}
		default:
			return RosterView{}, err
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func (s *Service) ListMyApplications(ctx context.Context, actor Actor) ([]MyApplicationView, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if !actor.isInfluencer() {
		return nil, fmt.Errorf("%w: only influencers have applications", domain.ErrForbidden)
	}
	apps, err := s.roster.ListByInfluencer(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}
	out := make([]MyApplicationView, 0, len(apps))
	for _, app := range apps {
		campaign, err := s.campaigns.GetByID(ctx, app.CampaignID)
		if err != nil {
			return nil, err
		}
		out = append(out, MyApplicationView{
			CampaignID:    app.CampaignID,
			CampaignTitle: campaign.Title,
			BrandName:     campaign.Brand.Name,
			Status:        string(app.Status),
			UpdatedAt:     app.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Service) SearchInfluencers(ctx context.Context, filter domain.InfluencerFilter) ([]InfluencerView, error) {
	all, err := s.influencers.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := domain.ProjectInfluencers(all, filter)
	out := make([]InfluencerView, 0, len(matched))
	for _, inf := range matched {
		out = append(out, toInfluencerView(inf))
	}
	return out, nil
}

// UpsertInfluencer stores a directory profile as published by the profile
// service.
func (s *Service) UpsertInfluencer(ctx context.Context, influencer domain.Influencer) (InfluencerView, error) {
	influencer.InfluencerID = strings.TrimSpace(influencer.InfluencerID)
	influencer.Name = strings.TrimSpace(influencer.Name)
	influencer.Category = strings.TrimSpace(influencer.Category)
	influencer.Location = strings.TrimSpace(influencer.Location)
	influencer.Platforms = domain.CanonicalPlatforms(influencer.Platforms)
	if err := domain.ValidateInfluencer(influencer); err != nil {
		return InfluencerView{}, err
	}
	influencer.UpdatedAt = s.nowFn()
	saved, err := s.influencers.Upsert(ctx, influencer)
	if err != nil {
		return InfluencerView{}, err
	}
	return toInfluencerView(saved), nil
}
