package postgres

import (
	"context"
	"errors"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rosterRepository struct {
	db *gorm.DB
}

// UpdateRoster runs fn inside one transaction. On postgres the campaign row
// is locked first, so concurrent roster changes to a campaign serialize.
func (r *rosterRepository) UpdateRoster(ctx context.Context, campaignID, influencerID string, fn ports.RosterMutation) (domain.Campaign, *domain.Application, error) {
	var (
		outCampaign domain.Campaign
		outApp      *domain.Application
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if supportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var campaignRec campaignModel
		if err := q.Where("campaign_id = ?", campaignID).Take(&campaignRec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		var current *domain.Application
		var appRec applicationModel
		err := tx.Where("campaign_id = ? AND influencer_id = ?", campaignID, influencerID).Take(&appRec).Error
		switch {
		case err == nil:
			app := toDomainApplication(appRec)
			current = &app
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		campaign, err := toDomainCampaign(campaignRec)
		if err != nil {
			return err
		}
		before := campaign
		next, err := fn(&campaign, current)
		if err != nil {
			return err
		}
		if next == nil {
			outCampaign, outApp = before, current
			return nil
		}

		if err := tx.Model(&campaignModel{}).
			Where("campaign_id = ?", campaignID).
			Updates(map[string]any{
				"applicants":       campaign.Applicants,
				"influencer_count": campaign.InfluencerCount,
				"updated_at":       campaign.UpdatedAt.UTC(),
			}).Error; err != nil {
			return err
		}
		rec := toApplicationModel(*next)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "influencer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return err
		}
		saved := *next
		outCampaign, outApp = campaign, &saved
		return nil
	})
	if err != nil {
		return domain.Campaign{}, nil, err
	}
	return outCampaign, outApp, nil
}

func (r *rosterRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Application, error) {
	return r.list(ctx, "campaign_id = ?", campaignID)
}

func (r *rosterRepository) ListByInfluencer(ctx context.Context, influencerID string) ([]domain.Application, error) {
	return r.list(ctx, "influencer_id = ?", influencerID)
}

func (r *rosterRepository) list(ctx context.Context, where string, arg string) ([]domain.Application, error) {
	var rows []applicationModel
	if err := r.db.WithContext(ctx).
		Where(where, arg).
		Order("created_at asc, campaign_id asc, influencer_id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainApplication(row))
	}
	return out, nil
}

var _ ports.RosterRepository = (*rosterRepository)(nil)
