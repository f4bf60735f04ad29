package domain

import (
	"fmt"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "applied"
	ApplicationStatusInvited  ApplicationStatus = "invited"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func ParseApplicationStatus(v string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(strings.ToLower(strings.TrimSpace(v))); s {
	case ApplicationStatusApplied, ApplicationStatusInvited, ApplicationStatusAccepted, ApplicationStatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, v)
	}
}

// Application is the status of one influencer on one campaign.
type Application struct {
	CampaignID   string
	InfluencerID string
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubmitApplication records an influencer applying to c. It returns a nil
// application when the pair already has a record, leaving c untouched.
func SubmitApplication(c *Campaign, current *Application, influencerID string, now time.Time) (*Application, error) {
	if c.Status != CampaignStatusActive {
		return nil, fmt.Errorf("%w: campaign is %s, only active campaigns accept applications", ErrInvalidState, c.Status)
	}
	if current != nil {
		return nil, nil
	}
	c.Applicants++
	c.UpdatedAt = now
	return &Application{
		CampaignID:   c.CampaignID,
		InfluencerID: influencerID,
		Status:       ApplicationStatusApplied,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// InviteToCampaign records a brand invitation. Invitations do not touch the
// campaign counters.
func InviteToCampaign(c *Campaign, current *Application, influencerID string, now time.Time) (*Application, error) {
	if c.Status != CampaignStatusDraft && c.Status != CampaignStatusActive {
		return nil, fmt.Errorf("%w: campaign is %s, invitations need a draft or active campaign", ErrInvalidState, c.Status)
	}
	if current != nil {
		return nil, fmt.Errorf("%w: influencer already on roster as %s", ErrConflict, current.Status)
	}
	return &Application{
		CampaignID:   c.CampaignID,
		InfluencerID: influencerID,
		Status:       ApplicationStatusInvited,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// DecideApplication moves an applied record to accepted or rejected and
// adjusts the campaign counters to match.
func DecideApplication(c *Campaign, current *Application, decision ApplicationStatus, now time.Time) (*Application, error) {
	if decision != ApplicationStatusAccepted && decision != ApplicationStatusRejected {
		return nil, fmt.Errorf("%w: decision must be accepted or rejected", ErrInvalidInput)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no application for influencer on this campaign", ErrNotFound)
	}
	if current.Status != ApplicationStatusApplied {
		return nil, fmt.Errorf("%w: application is %s, only applied records can be decided", ErrInvalidState, current.Status)
	}
	next := *current
	next.Status = decision
	next.UpdatedAt = now

	if decision == ApplicationStatusAccepted {
		c.InfluencerCount++
	}
	c.Applicants = max(0, c.Applicants-1)
	c.UpdatedAt = now
	return &next, nil
}

type RosterSummary struct {
	Applied  int
	Invited  int
	Accepted int
	Rejected int
}

func SummarizeRoster(apps []Application) RosterSummary {
	var s RosterSummary
	for _, a := range apps {
		switch a.Status {
		case ApplicationStatusApplied:
			s.Applied++
		case ApplicationStatusInvited:
			s.Invited++
		case ApplicationStatusAccepted:
			s.Accepted++
		case ApplicationStatusRejected:
			s.Rejected++
		}
	}
	return s
}

// CountersMatch reports whether the campaign aggregates agree with the
// application records of that campaign.
func CountersMatch(c Campaign, apps []Application) bool {
	var own []Application
	for _, a := range apps {
		if a.CampaignID == c.CampaignID {
			own = append(own, a)
		}
	}
	s := SummarizeRoster(own)
	return c.Applicants == s.Applied && c.InfluencerCount == s.Accepted
}
