package application

import (
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

func toCampaignView(c domain.Campaign) CampaignView {
	platforms := append([]string{}, c.Platforms...)
	return CampaignView{
		CampaignID:      c.CampaignID,
		Title:           c.Title,
		Brand:           BrandView{BrandID: c.Brand.BrandID, Name: c.Brand.Name},
		Description:     c.Description,
		Budget:          c.Budget,
		Category:        c.Category,
		Platforms:       platforms,
		Requirements:    c.Requirements,
		StartDate:       c.StartDate.Format(domain.DateLayout),
		EndDate:         c.EndDate.Format(domain.DateLayout),
		Status:          string(c.Status),
		Location:        c.Location,
		Applicants:      c.Applicants,
		InfluencerCount: c.InfluencerCount,
		ViewCount:       c.ViewCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toCampaignViews(items []domain.Campaign) []CampaignView {
	out := make([]CampaignView, 0, len(items))
	for _, c := range items {
		out = append(out, toCampaignView(c))
	}
	return out
}

func toInfluencerView(i domain.Influencer) InfluencerView {
	return InfluencerView{
		InfluencerID: i.InfluencerID,
		Name:         i.Name,
		Category:     i.Category,
		Followers:    i.Followers,
		Engagement:   i.Engagement,
		Platforms:    append([]string{}, i.Platforms...),
		Location:     i.Location,
		Bio:          i.Bio,
		Rate:         i.Rate,
	}
}

func toBrandDashboardView(d domain.BrandDashboard) BrandDashboardView {
	return BrandDashboardView{
		ActiveCampaigns:    d.ActiveCampaigns,
		DraftCampaigns:     d.DraftCampaigns,
		CompletedCampaigns: d.CompletedCampaigns,
		CancelledCampaigns: d.CancelledCampaigns,
		InfluencersHired:   d.InfluencersHired,
		PendingApplicants:  d.PendingApplicants,
		TotalViews:         d.TotalViews,
	}
}

func toInfluencerDashboardView(d domain.InfluencerDashboard) InfluencerDashboardView {
	return InfluencerDashboardView{
		ActiveCampaigns:     d.ActiveCampaigns,
		ProposalsReceived:   d.ProposalsReceived,
		PendingApplications: d.PendingApplications,
		Accepted:            d.Accepted,
		Rejected:            d.Rejected,
	}
}

func toApplicationView(a domain.Application) ApplicationView {
	return ApplicationView{
		CampaignID:   a.CampaignID,
		InfluencerID: a.InfluencerID,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toContactView(c domain.Contact) ContactView {
	out := ContactView{
		ContactID:   c.ContactID,
		Name:        c.ContactName,
		Type:        string(c.ContactType),
		LastMessage: c.LastMessage,
		Unread:      c.Unread,
		Favorite:    c.Favorite,
	}
	if !c.LastMessageAt.IsZero() {
		at := c.LastMessageAt
		out.LastMessageAt = &at
	}
	return out
}

func toMessageView(m domain.Message) MessageView {
	return MessageView{
		MessageID:   m.MessageID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		SentAt:      m.SentAt,
	}
}
