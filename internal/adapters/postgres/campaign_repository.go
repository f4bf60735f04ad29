package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"gorm.io/gorm"
)

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	rec := toCampaignModel(campaign)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Campaign{}, domain.ErrConflict
		}
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec)
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID string) (domain.Campaign, error) {
	return getCampaign(r.db.WithContext(ctx), campaignID)
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).Order("created_at desc, campaign_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		c, err := toDomainCampaign(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, campaignID string, from, to domain.CampaignStatus, at time.Time) (domain.Campaign, error) {
	var out domain.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&campaignModel{}).
			Where("campaign_id = ? AND status = ?", campaignID, string(from)).
			Updates(map[string]any{"status": string(to), "updated_at": at.UTC()})
		if res.Error != nil {
			return res.Error
		}
		current, err := getCampaign(tx, campaignID)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return domain.ErrConflict
		}
		out = current
		return nil
	})
	return out, err
}

func (r *campaignRepository) IncrementViews(ctx context.Context, campaignID string) (domain.Campaign, error) {
	var out domain.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&campaignModel{}).
			Where("campaign_id = ?", campaignID).
			Update("view_count", gorm.Expr("view_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		current, err := getCampaign(tx, campaignID)
		out = current
		return err
	})
	return out, err
}

func getCampaign(db *gorm.DB, campaignID string) (domain.Campaign, error) {
	var rec campaignModel
	if err := db.Where("campaign_id = ?", campaignID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.ErrNotFound
		}
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec)
}

var _ ports.CampaignRepository = (*campaignRepository)(nil)
