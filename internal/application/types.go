package application

import (
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

type Config struct {
	ServiceName   string
	SessionTTL    time.Duration
	EventDedupTTL time.Duration
	// MaxMessageLength bounds inbox message text, in runes.
	MaxMessageLength int
}

type Actor struct {
	SubjectID string
	Name      string
	Role      string
	RequestID string
}

func (a Actor) isBrand() bool      { return a.Role == string(domain.UserTypeBrand) }
func (a Actor) isInfluencer() bool { return a.Role == string(domain.UserTypeInfluencer) }

func ActorFromUser(u domain.User, requestID string) Actor {
	return Actor{SubjectID: u.UserID, Name: u.Name, Role: string(u.Type), RequestID: requestID}
}

type StartSessionInput struct {
	Name  string
	Email string
	Type  string
}

type Session struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type BrandView struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
}

type CampaignView struct {
	CampaignID      string    `json:"campaign_id"`
	Title           string    `json:"title"`
	Brand           BrandView `json:"brand"`
	Description     string    `json:"description"`
	Budget          int64     `json:"budget"`
	Category        string    `json:"category"`
	Platforms       []string  `json:"platforms"`
	Requirements    string    `json:"requirements,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Status          string    `json:"status"`
	Location        string    `json:"location,omitempty"`
	Applicants      int       `json:"applicants"`
	InfluencerCount int       `json:"influencer_count"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type InfluencerView struct {
	InfluencerID string   `json:"influencer_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Followers    int64    `json:"followers"`
	Engagement   float64  `json:"engagement"`
	Platforms    []string `json:"platforms"`
	Location     string   `json:"location,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Rate         int64    `json:"rate"`
}

type ApplicationView struct {
	CampaignID   string    `json:"campaign_id"`
	InfluencerID string    `json:"influencer_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RosterEntry struct {
	Influencer InfluencerView `json:"influencer"`
	Status     string         `json:"status"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type RosterSummaryView struct {
	Applied  int `json:"applied"`
	Invited  int `json:"invited"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type RosterView struct {
	CampaignID string            `json:"campaign_id"`
	Summary    RosterSummaryView `json:"summary"`
	Entries    []RosterEntry     `json:"entries"`
}

// RosterChange is the result of a roster operation: the campaign after the
// change and the record now stored for the pair.
type RosterChange struct {
	Campaign    CampaignView    `json:"campaign"`
	Application ApplicationView `json:"application"`
}

type MyApplicationView struct {
	CampaignID    string    `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	BrandName     string    `json:"brand_name"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BrandDashboardView struct {
	ActiveCampaigns    int `json:"active_campaigns"`
	DraftCampaigns     int `json:"draft_campaigns"`
	CompletedCampaigns int `json:"completed_campaigns"`
	CancelledCampaigns int `json:"cancelled_campaigns"`
	InfluencersHired   int `json:"influencers_hired"`
	PendingApplicants  int `json:"pending_applicants"`
	TotalViews         int `json:"total_views"`
}

type InfluencerDashboardView struct {
	ActiveCampaigns     int `json:"active_campaigns"`
	ProposalsReceived   int `json:"proposals_received"`
	PendingApplications int `json:"pending_applications"`
	Accepted            int `json:"accepted"`
	Rejected            int `json:"rejected"`
}

// DashboardView carries exactly one of Brand or Influencer, by Role.
type DashboardView struct {
	Role           string                   `json:"role"`
	UnreadMessages int                      `json:"unread_messages"`
	Brand          *BrandDashboardView      `json:"brand,omitempty"`
	Influencer     *InfluencerDashboardView `json:"influencer,omitempty"`
}

type BrandProfileView struct {
	Brand     BrandView          `json:"brand"`
	Summary   BrandDashboardView `json:"summary"`
	Campaigns []CampaignView     `json:"campaigns"`
}

type ContactFilter struct {
	Query string
	Tab   string
}

type ContactView struct {
	ContactID     string     `json:"contact_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Unread        int        `json:"unread"`
	Favorite      bool       `json:"favorite"`
}

type ContactsView struct {
	Items       []ContactView `json:"items"`
	UnreadTotal int           `json:"unread_total"`
}

type MessageView struct {
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sent_at"`
}
