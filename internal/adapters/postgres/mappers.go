package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

func encodePlatforms(platforms []string) string {
	if platforms == nil {
		platforms = []string{}
	}
	raw, _ := json.Marshal(platforms)
	return string(raw)
}

func decodePlatforms(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode platforms %q: %w", raw, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", v, err)
	}
	return t, nil
}

func toCampaignModel(c domain.Campaign) campaignModel {
	return campaignModel{
		CampaignID:      c.CampaignID,
		BrandID:         c.Brand.BrandID,
		BrandName:       c.Brand.Name,
		Title:           c.Title,
		Description:     c.Description,
		Budget:          c.Budget,
		Category:        c.Category,
		Platforms:       encodePlatforms(c.Platforms),
		Requirements:    c.Requirements,
		StartDate:       c.StartDate.Format(domain.DateLayout),
		EndDate:         c.EndDate.Format(domain.DateLayout),
		Status:          string(c.Status),
		Location:        c.Location,
		Applicants:      c.Applicants,
		InfluencerCount: c.InfluencerCount,
		ViewCount:       c.ViewCount,
		CreatedAt:       c.CreatedAt.UTC(),
		UpdatedAt:       c.UpdatedAt.UTC(),
	}
}

func toDomainCampaign(m campaignModel) (domain.Campaign, error) {
	platforms, err := decodePlatforms(m.Platforms)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %s: %w", m.CampaignID, err)
	}
	start, err := parseDate(m.StartDate)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %s: start_date: %w", m.CampaignID, err)
	}
	end, err := parseDate(m.EndDate)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %s: end_date: %w", m.CampaignID, err)
	}
	return domain.Campaign{
		CampaignID:      m.CampaignID,
		Brand:           domain.BrandRef{BrandID: m.BrandID, Name: m.BrandName},
		Title:           m.Title,
		Description:     m.Description,
		Budget:          m.Budget,
		Category:        m.Category,
		Platforms:       platforms,
		Requirements:    m.Requirements,
		StartDate:       start,
		EndDate:         end,
		Status:          domain.CampaignStatus(m.Status),
		Location:        m.Location,
		Applicants:      m.Applicants,
		InfluencerCount: m.InfluencerCount,
		ViewCount:       m.ViewCount,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}, nil
}

func toApplicationModel(a domain.Application) applicationModel {
	return applicationModel{
		CampaignID:   a.CampaignID,
		InfluencerID: a.InfluencerID,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

func toDomainApplication(m applicationModel) domain.Application {
	return domain.Application{
		CampaignID:   m.CampaignID,
		InfluencerID: m.InfluencerID,
		Status:       domain.ApplicationStatus(m.Status),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toInfluencerModel(i domain.Influencer) influencerModel {
	return influencerModel{
		InfluencerID: i.InfluencerID,
		Name:         i.Name,
		Category:     i.Category,
		Followers:    i.Followers,
		Engagement:   i.Engagement,
		Platforms:    encodePlatforms(i.Platforms),
		Location:     i.Location,
		Bio:          i.Bio,
		Rate:         i.Rate,
		UpdatedAt:    i.UpdatedAt.UTC(),
	}
}

func toDomainInfluencer(m influencerModel) (domain.Influencer, error) {
	platforms, err := decodePlatforms(m.Platforms)
	if err != nil {
		return domain.Influencer{}, fmt.Errorf("influencer %s: %w", m.InfluencerID, err)
	}
	return domain.Influencer{
		InfluencerID: m.InfluencerID,
		Name:         m.Name,
		Category:     m.Category,
		Followers:    m.Followers,
		Engagement:   m.Engagement,
		Platforms:    platforms,
		Location:     m.Location,
		Bio:          m.Bio,
		Rate:         m.Rate,
		UpdatedAt:    m.UpdatedAt.UTC(),
	}, nil
}

func toDomainUser(m userModel) domain.User {
	return domain.User{UserID: m.UserID, Name: m.Name, Email: m.Email, Type: domain.UserType(m.UserType)}
}

func toDomainMessage(m messageModel) domain.Message {
	return domain.Message{
		MessageID:   m.MessageID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Body,
		SentAt:      m.SentAt.UTC(),
	}
}

func toDomainContact(m contactModel) domain.Contact {
	c := domain.Contact{
		OwnerID:     m.OwnerID,
		ContactID:   m.ContactID,
		ContactName: m.ContactName,
		ContactType: domain.UserType(m.ContactType),
		LastMessage: m.LastMessage,
		Unread:      m.Unread,
		Favorite:    m.Favorite,
	}
	if m.LastMessageAt != nil {
		c.LastMessageAt = m.LastMessageAt.UTC()
	}
	return c
}
