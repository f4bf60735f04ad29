package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/application"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/contracts"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

const maxBodyBytes = 1 << 20

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req contracts.StartSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	session, err := h.service.StartSession(r.Context(), application.StartSessionInput{
		Name:  req.Name,
		Email: req.Email,
		Type:  req.Type,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, session)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.EndSession(r.Context(), tokenFromContext(r.Context())); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, userFromContext(r.Context()))
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	var draft domain.CampaignDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	view, err := h.service.CreateCampaign(r.Context(), actorFromContext(r.Context()), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, view)
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	filter, err := campaignFilterFromQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items, err := h.service.ListCampaigns(r.Context(), actorFromContext(r.Context()), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetCampaign(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "campaign_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) recordCampaignView(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RecordCampaignView(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "campaign_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) changeCampaignStatus(w http.ResponseWriter, r *http.Request) {
	var req contracts.ChangeCampaignStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.service.ChangeCampaignStatus(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "campaign_id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) applyToCampaign(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ApplyToCampaign(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "campaign_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) inviteInfluencer(w http.ResponseWriter, r *http.Request) {
	var req contracts.InviteInfluencerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	change, err := h.service.InviteInfluencer(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "campaign_id"), req.InfluencerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, change)
}

func (h *Handler) updateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req contracts.UpdateApplicationStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	change, err := h.service.UpdateApplicationStatus(r.Context(), actorFromContext(r.Context()),
		chi.URLParam(r, "campaign_id"), chi.URLParam(r, "influencer_id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, change)
}

func (h *Handler) getRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.GetRoster(r.Context(), actorFromContext(r.Context()),
		chi.URLParam(r, "campaign_id"), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, roster)
}

func (h *Handler) listMyApplications(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMyApplications(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) searchInfluencers(w http.ResponseWriter, r *http.Request) {
	filter, err := influencerFilterFromQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items, err := h.service.SearchInfluencers(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) getInfluencer(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetInfluencer(r.Context(), chi.URLParam(r, "influencer_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) getBrandProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetBrandProfile(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "brand_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) getMyProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetMyProfile(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	view, err := h.service.UpdateMyProfile(r.Context(), actorFromContext(r.Context()), update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetDashboard(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	contacts, err := h.service.ListContacts(r.Context(), actorFromContext(r.Context()), application.ContactFilter{
		Query: q.Get("q"),
		Tab:   q.Get("tab"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contacts)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req contracts.SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, err := h.service.SendMessage(r.Context(), actorFromContext(r.Context()), req.RecipientID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, msg)
}

func (h *Handler) openConversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.OpenConversation(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "contact_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, msgs)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.ToggleFavorite(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "contact_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contact)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is required")
			return false
		}
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return false
	}
	return true
}

func campaignFilterFromQuery(q url.Values) (domain.CampaignFilter, error) {
	fields := domain.FieldErrors{}
	f := domain.CampaignFilter{
		Query:     q.Get("q"),
		Category:  strings.TrimSpace(q.Get("category")),
		Platforms: domain.CanonicalPlatforms(listParam(q, "platform")),
		MinBudget: int64Param(q, "min_budget", fields),
		MaxBudget: int64Param(q, "max_budget", fields),
	}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status, err := domain.ParseCampaignStatus(raw)
		if err != nil {
			fields["status"] = "is not a campaign status"
		}
		f.Status = status
	}
	tab, err := domain.ParseCampaignTab(q.Get("tab"))
	if err != nil {
		fields["tab"] = "must be all, active, draft or completed"
	}
	f.Tab = tab
	if len(fields) > 0 {
		return domain.CampaignFilter{}, fields
	}
	return f, nil
}

func influencerFilterFromQuery(q url.Values) (domain.InfluencerFilter, error) {
	fields := domain.FieldErrors{}
	f := domain.InfluencerFilter{
		Query:        q.Get("q"),
		Categories:   listParam(q, "category"),
		Platforms:    domain.CanonicalPlatforms(listParam(q, "platform")),
		MinFollowers: int64Param(q, "min_followers", fields),
		MaxFollowers: int64Param(q, "max_followers", fields),
		Location:     q.Get("location"),
	}
	if raw := strings.TrimSpace(q.Get("min_engagement")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			fields["min_engagement"] = "must be a non-negative number"
		}
		f.MinEngagement = v
	}
	if len(fields) > 0 {
		return domain.InfluencerFilter{}, fields
	}
	return f, nil
}

// listParam accepts both repeated keys and comma-separated values.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func int64Param(q url.Values, key string, fields domain.FieldErrors) *int64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		fields[key] = "must be a non-negative integer"
		return nil
	}
	return &v
}
