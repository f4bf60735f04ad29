package postgres

import (
	"context"
	"errors"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type influencerRepository struct {
	db *gorm.DB
}

func (r *influencerRepository) Upsert(ctx context.Context, influencer domain.Influencer) (domain.Influencer, error) {
	rec := toInfluencerModel(influencer)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "influencer_id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return domain.Influencer{}, err
	}
	return toDomainInfluencer(rec)
}

func (r *influencerRepository) GetByID(ctx context.Context, influencerID string) (domain.Influencer, error) {
	var rec influencerModel
	if err := r.db.WithContext(ctx).Where("influencer_id = ?", influencerID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Influencer{}, domain.ErrNotFound
		}
		return domain.Influencer{}, err
	}
	return toDomainInfluencer(rec)
}

func (r *influencerRepository) List(ctx context.Context) ([]domain.Influencer, error) {
	var rows []influencerModel
	if err := r.db.WithContext(ctx).Order("followers desc, influencer_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Influencer, 0, len(rows))
	for _, row := range rows {
		inf, err := toDomainInfluencer(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inf)
	}
	return out, nil
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Upsert(ctx context.Context, user domain.User) (domain.User, error) {
	rec := userModel{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		UserType:  string(user.Type),
		UpdatedAt: nowUTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "user_type", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

var (
	_ ports.InfluencerRepository = (*influencerRepository)(nil)
	_ ports.UserRepository       = (*userRepository)(nil)
)
