package domain

const (
	EventCampaignCreated              = "campaign.created"
	EventCampaignStatusChanged        = "campaign.status_changed"
	EventCampaignApplicationSubmitted = "campaign.application_submitted"
	EventCampaignInfluencerInvited    = "campaign.influencer_invited"
	EventCampaignApplicationDecided   = "campaign.application_status_changed"
	EventInfluencerProfileUpdated     = "influencer.profile_updated"
	CampaignEventPartitionKeyPath     = "data.campaign_id"
	InfluencerEventPartitionKeyPath   = "data.influencer_id"
	EventSchemaVersion                = "1.0"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventCampaignCreated, EventCampaignStatusChanged, EventCampaignApplicationSubmitted,
		EventCampaignInfluencerInvited, EventCampaignApplicationDecided:
		return true
	default:
		return false
	}
}

func IsCanonicalInputEvent(eventType string) bool {
	return eventType == EventInfluencerProfileUpdated
}
