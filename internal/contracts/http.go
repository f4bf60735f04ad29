package contracts

type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string            `json:"status"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type StartSessionRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

type ChangeCampaignStatusRequest struct {
	Status string `json:"status"`
}

type InviteInfluencerRequest struct {
	InfluencerID string `json:"influencer_id"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}
