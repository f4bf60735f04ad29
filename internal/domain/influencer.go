package domain

import (
	"fmt"
	"strings"
	"time"
)

type Influencer struct {
	InfluencerID string
	Name         string
	Category     string
	Followers    int64
	Engagement   float64
	Platforms    []string
	Location     string
	Bio          string
	Rate         int64
	UpdatedAt    time.Time
}

func (i Influencer) Clone() Influencer {
	i.Platforms = append([]string(nil), i.Platforms...)
	return i
}

// ProfileUpdate is the form an influencer submits to edit their own
// directory entry. A blank name keeps the current one.
type ProfileUpdate struct {
	Name       string   `json:"name" validate:"max=80"`
	Category   string   `json:"category" validate:"required,max=60"`
	Followers  int64    `json:"followers" validate:"gte=0"`
	Engagement float64  `json:"engagement" validate:"gte=0,lte=100"`
	Platforms  []string `json:"platforms" validate:"min=1,dive,required,max=40"`
	Location   string   `json:"location" validate:"max=120"`
	Bio        string   `json:"bio" validate:"max=1000"`
	Rate       int64    `json:"rate" validate:"gte=0"`
}

func (u ProfileUpdate) Normalize() ProfileUpdate {
	u.Name = strings.TrimSpace(u.Name)
	u.Category = strings.TrimSpace(u.Category)
	u.Location = strings.TrimSpace(u.Location)
	u.Bio = strings.TrimSpace(u.Bio)
	u.Platforms = CanonicalPlatforms(u.Platforms)
	return u
}

// Apply validates a normalized update and returns current with it applied.
func (u ProfileUpdate) Apply(current Influencer, now time.Time) (Influencer, error) {
	if err := validateStruct(u); err != nil {
		return Influencer{}, err
	}
	next := current.Clone()
	if u.Name != "" {
		next.Name = u.Name
	}
	next.Category = u.Category
	next.Followers = u.Followers
	next.Engagement = u.Engagement
	next.Platforms = append([]string(nil), u.Platforms...)
	next.Location = u.Location
	next.Bio = u.Bio
	next.Rate = u.Rate
	next.UpdatedAt = now
	if err := ValidateInfluencer(next); err != nil {
		return Influencer{}, err
	}
	return next, nil
}

func ValidateInfluencer(i Influencer) error {
	fields := FieldErrors{}
	if strings.TrimSpace(i.InfluencerID) == "" {
		fields["influencer_id"] = "is required"
	}
	if strings.TrimSpace(i.Name) == "" {
		fields["name"] = "is required"
	}
	if i.Followers < 0 {
		fields["followers"] = "must not be negative"
	}
	if i.Engagement < 0 || i.Engagement > 100 {
		fields["engagement"] = fmt.Sprintf("must be within 0-100, got %.2f", i.Engagement)
	}
	if i.Rate < 0 {
		fields["rate"] = "must not be negative"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}
