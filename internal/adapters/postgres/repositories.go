package postgres

import (
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Campaigns   ports.CampaignRepository
	Roster      ports.RosterRepository
	Influencers ports.InfluencerRepository
	Users       ports.UserRepository
	Inbox       ports.InboxRepository
	Outbox      ports.OutboxRepository
	EventDedup  ports.EventDedupRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Campaigns:   &campaignRepository{db: db},
		Roster:      &rosterRepository{db: db},
		Influencers: &influencerRepository{db: db},
		Users:       &userRepository{db: db},
		Inbox:       &inboxRepository{db: db},
		Outbox:      &outboxRepository{db: db},
		EventDedup:  &eventDedupRepository{db: db},
	}
}
