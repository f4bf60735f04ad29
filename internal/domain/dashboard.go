package domain

// BrandDashboard aggregates a brand's campaigns.
type BrandDashboard struct {
	ActiveCampaigns    int
	DraftCampaigns     int
	CompletedCampaigns int
	CancelledCampaigns int
	// InfluencersHired sums accepted influencers across every campaign.
	InfluencersHired  int
	PendingApplicants int
	TotalViews        int
}

func SummarizeBrand(campaigns []Campaign, brandID string) BrandDashboard {
	var d BrandDashboard
	for _, c := range campaigns {
		if !c.OwnedBy(brandID) {
			continue
		}
		switch c.Status {
		case CampaignStatusActive:
			d.ActiveCampaigns++
		case CampaignStatusDraft:
			d.DraftCampaigns++
		case CampaignStatusCompleted:
			d.CompletedCampaigns++
		case CampaignStatusCancelled:
			d.CancelledCampaigns++
		}
		d.InfluencersHired += c.InfluencerCount
		d.PendingApplicants += c.Applicants
		d.TotalViews += c.ViewCount
	}
	return d
}

// InfluencerDashboard aggregates an influencer's roster records.
type InfluencerDashboard struct {
	// ActiveCampaigns counts accepted records on campaigns still active.
	ActiveCampaigns int
	// ProposalsReceived counts invitations from brands.
	ProposalsReceived   int
	PendingApplications int
	Accepted            int
	Rejected            int
}

// SummarizeInfluencer folds apps using campaigns, keyed by campaign id, for
// campaign status. Records whose campaign is missing count by status only.
func SummarizeInfluencer(apps []Application, campaigns map[string]Campaign) InfluencerDashboard {
	var d InfluencerDashboard
	for _, a := range apps {
		switch a.Status {
		case ApplicationStatusInvited:
			d.ProposalsReceived++
		case ApplicationStatusApplied:
			d.PendingApplications++
		case ApplicationStatusAccepted:
			d.Accepted++
			if c, ok := campaigns[a.CampaignID]; ok && c.Status == CampaignStatusActive {
				d.ActiveCampaigns++
			}
		case ApplicationStatusRejected:
			d.Rejected++
		}
	}
	return d
}
