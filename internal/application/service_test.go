package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/cache"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/contracts"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

type fixture struct {
	svc   *Service
	repos *memory.Repositories
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	svc := NewService(Dependencies{
		Campaigns:   repos.Campaigns,
		Roster:      repos.Roster,
		Influencers: repos.Influencers,
		Users:       repos.Users,
		Inbox:       repos.Inbox,
		Outbox:      repos.Outbox,
		EventDedup:  repos.EventDedup,
		Cache:       cache.NewLocalCache(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	f := &fixture{svc: svc, repos: repos, now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	svc.nowFn = func() time.Time { return f.now }
	return f
}

func (f *fixture) login(t *testing.T, name, email string) Actor {
	t.Helper()
	session, err := f.svc.StartSession(context.Background(), StartSessionInput{Name: name, Email: email})
	if err != nil {
		t.Fatalf("start session %s: %v", email, err)
	}
	return ActorFromUser(session.User, "req-test")
}

func (f *fixture) createCampaign(t *testing.T, brand Actor, activate bool) CampaignView {
	t.Helper()
	ctx := context.Background()
	view, err := f.svc.CreateCampaign(ctx, brand, domain.CampaignDraft{
		Title:       "Lançamento Coleção Verão",
		Description: "Nova coleção de roupas sustentáveis.",
		Budget:      15000,
		Category:    "Moda",
		Platforms:   []string{"Instagram"},
		StartDate:   "2026-11-01",
		EndDate:     "2026-12-15",
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if activate {
		view, err = f.svc.ChangeCampaignStatus(ctx, brand, view.CampaignID, "active")
		if err != nil {
			t.Fatalf("activate campaign: %v", err)
		}
	}
	return view
}

func (f *fixture) pendingEventTypes(t *testing.T) []string {
	t.Helper()
	records, err := f.repos.Outbox.FetchUnpublished(context.Background(), 100)
	if err != nil {
		t.Fatalf("fetch outbox: %v", err)
	}
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.EventType)
	}
	return out
}

func countOf(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}

func TestCreateCampaignStartsAsDraftAndRejectsApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Moda Sustentável", "contato@moda-brand.com")
	influencer := f.login(t, "Ana Silva", "ana@example.com")

	campaign := f.createCampaign(t, brand, false)
	if campaign.Status != "draft" || campaign.Brand.BrandID != brand.SubjectID {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}
	if _, err := f.svc.ApplyToCampaign(ctx, influencer, campaign.CampaignID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("apply to draft: expected ErrInvalidState, got %v", err)
	}
	if countOf(f.pendingEventTypes(t), domain.EventCampaignCreated) != 1 {
		t.Fatalf("expected one campaign.created event, got %v", f.pendingEventTypes(t))
	}
}

func TestOnlyBrandsCreateCampaigns(t *testing.T) {
	f := newFixture(t)
	influencer := f.login(t, "Ana Silva", "ana@example.com")
	_, err := f.svc.CreateCampaign(context.Background(), influencer, domain.CampaignDraft{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.CreateCampaign(context.Background(), Actor{}, domain.CampaignDraft{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestApplyTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	influencer := f.login(t, "Carlos Mendes", "carlos@example.com")
	campaign := f.createCampaign(t, brand, true)

	for i := 0; i < 2; i++ {
		view, err := f.svc.ApplyToCampaign(ctx, influencer, campaign.CampaignID)
		if err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
		if view.Applicants != 1 {
			t.Fatalf("apply #%d: expected 1 applicant, got %d", i+1, view.Applicants)
		}
	}
	if n := countOf(f.pendingEventTypes(t), domain.EventCampaignApplicationSubmitted); n != 1 {
		t.Fatalf("expected one submission event, got %d", n)
	}
}

func TestRosterDecisionsUpdateCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	campaign := f.createCampaign(t, brand, true)

	var influencers []Actor
	for _, email := range []string{"ana@example.com", "carlos@example.com", "juliana@example.com"} {
		inf := f.login(t, "", email)
		influencers = append(influencers, inf)
		if _, err := f.svc.ApplyToCampaign(ctx, inf, campaign.CampaignID); err != nil {
			t.Fatalf("apply %s: %v", email, err)
		}
	}

	change, err := f.svc.UpdateApplicationStatus(ctx, brand, campaign.CampaignID, influencers[0].SubjectID, "accepted")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if change.Campaign.Applicants != 2 || change.Campaign.InfluencerCount != 1 {
		t.Fatalf("after accept expected 2/1, got %d/%d", change.Campaign.Applicants, change.Campaign.InfluencerCount)
	}
	change, err = f.svc.UpdateApplicationStatus(ctx, brand, campaign.CampaignID, influencers[1].SubjectID, "rejected")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if change.Campaign.Applicants != 1 || change.Campaign.InfluencerCount != 1 {
		t.Fatalf("after reject expected 1/1, got %d/%d", change.Campaign.Applicants, change.Campaign.InfluencerCount)
	}

	roster, err := f.svc.GetRoster(ctx, brand, campaign.CampaignID, "")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster.Entries) != 3 || roster.Summary != (RosterSummaryView{Applied: 1, Accepted: 1, Rejected: 1}) {
		t.Fatalf("unexpected roster: %+v", roster)
	}
	applied, err := f.svc.GetRoster(ctx, brand, campaign.CampaignID, "applied")
	if err != nil {
		t.Fatalf("filtered roster: %v", err)
	}
	if len(applied.Entries) != 1 || applied.Summary.Accepted != 1 {
		t.Fatalf("status filter must narrow entries only: %+v", applied)
	}

	mine, err := f.svc.ListMyApplications(ctx, influencers[0])
	if err != nil {
		t.Fatalf("my applications: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != "accepted" || mine[0].BrandName != "Tech Gadgets" {
		t.Fatalf("unexpected applications: %+v", mine)
	}
}

func TestInvitedInfluencerCannotBeAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	influencer := f.login(t, "Carlos Mendes", "carlos@example.com")
	campaign := f.createCampaign(t, brand, false)

	change, err := f.svc.InviteInfluencer(ctx, brand, campaign.CampaignID, influencer.SubjectID)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if change.Application.Status != "invited" || change.Campaign.Applicants != 0 {
		t.Fatalf("unexpected invite result: %+v", change)
	}
	_, err = f.svc.UpdateApplicationStatus(ctx, brand, campaign.CampaignID, influencer.SubjectID, "accepted")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := f.svc.InviteInfluencer(ctx, brand, campaign.CampaignID, "unknown-influencer"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("invite unknown: expected ErrNotFound, got %v", err)
	}
}

func TestRosterIsVisibleToOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	other := f.login(t, "Beleza Natural", "contato@beleza-brand.com")
	campaign := f.createCampaign(t, owner, true)

	if _, err := f.svc.GetRoster(ctx, other, campaign.CampaignID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.ChangeCampaignStatus(ctx, other, campaign.CampaignID, "cancelled"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.GetRoster(ctx, owner, "missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChangeCampaignStatusEnforcesTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	campaign := f.createCampaign(t, brand, true)

	if _, err := f.svc.ChangeCampaignStatus(ctx, brand, campaign.CampaignID, "completed"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.svc.ChangeCampaignStatus(ctx, brand, campaign.CampaignID, "active"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("reopen: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.svc.ChangeCampaignStatus(ctx, brand, campaign.CampaignID, "paused"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}
	if n := countOf(f.pendingEventTypes(t), domain.EventCampaignStatusChanged); n != 2 {
		t.Fatalf("expected two status events, got %d", n)
	}
}

func TestRecordCampaignViewCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	campaign := f.createCampaign(t, brand, true)
	for i := 0; i < 3; i++ {
		if _, err := f.svc.RecordCampaignView(ctx, Actor{}, campaign.CampaignID); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}
	got, err := f.svc.GetCampaign(ctx, Actor{}, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got.ViewCount != 3 {
		t.Fatalf("expected 3 views, got %d", got.ViewCount)
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.StartSession(ctx, StartSessionInput{Name: "Tech Gadgets", Email: " Contato@Tech-Brand.com "})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if first.User.Type != domain.UserTypeBrand || first.User.Email != "contato@tech-brand.com" {
		t.Fatalf("unexpected user: %+v", first.User)
	}
	if !first.ExpiresAt.Equal(f.now.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiry: %s", first.ExpiresAt)
	}
	user, err := f.svc.ResolveSession(ctx, first.Token)
	if err != nil || user.UserID != first.User.UserID {
		t.Fatalf("resolve: %+v %v", user, err)
	}

	second, err := f.svc.StartSession(ctx, StartSessionInput{Email: "contato@tech-brand.com"})
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if second.User.UserID != first.User.UserID || second.User.Name != "Tech Gadgets" || second.Token == first.Token {
		t.Fatalf("returning user should keep identity with a new token: %+v", second)
	}

	if err := f.svc.EndSession(ctx, first.Token); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if _, err := f.svc.ResolveSession(ctx, first.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
	if _, err := f.svc.ResolveSession(ctx, second.Token); err != nil {
		t.Fatalf("other session must survive: %v", err)
	}
}

func TestStartSessionValidatesInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartSession(context.Background(), StartSessionInput{Email: "not-an-email", Type: "agency"})
	var fields domain.FieldErrors
	if !errors.As(err, &fields) || fields["email"] == "" || fields["type"] == "" {
		t.Fatalf("expected email and type field errors, got %v", err)
	}
}

func TestInfluencerSessionCreatesDirectoryProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inf := f.login(t, "Fernanda Lima", "fernanda@example.com")
	found, err := f.svc.SearchInfluencers(ctx, domain.InfluencerFilter{Query: "fernanda"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].InfluencerID != inf.SubjectID {
		t.Fatalf("expected profile for new influencer, got %+v", found)
	}
}

func TestInboxUnreadFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	ana := f.login(t, "Ana Silva", "ana@example.com")
	carlos := f.login(t, "Carlos Mendes", "carlos@example.com")

	for _, text := range []string{"Olá Ana", "Tem interesse na campanha?"} {
		if _, err := f.svc.SendMessage(ctx, brand, ana.SubjectID, text); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	if _, err := f.svc.SendMessage(ctx, carlos, ana.SubjectID, "Oi Ana"); err != nil {
		t.Fatalf("send: %v", err)
	}

	contacts, err := f.svc.ListContacts(ctx, ana, ContactFilter{Tab: "brands"})
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts.Items) != 1 || contacts.Items[0].Unread != 2 || contacts.UnreadTotal != 3 {
		t.Fatalf("unexpected contacts: %+v", contacts)
	}

	thread, err := f.svc.OpenConversation(ctx, ana, brand.SubjectID)
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	if len(thread) != 2 || thread[0].Text != "Olá Ana" {
		t.Fatalf("unexpected thread: %+v", thread)
	}
	contacts, err = f.svc.ListContacts(ctx, ana, ContactFilter{})
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if contacts.UnreadTotal != 1 {
		t.Fatalf("expected 1 unread after opening brand thread, got %d", contacts.UnreadTotal)
	}

	if _, err := f.svc.SendMessage(ctx, ana, ana.SubjectID, "eco"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("message to self: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.SendMessage(ctx, ana, "nobody", "hi"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown recipient: expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.OpenConversation(ctx, ana, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown contact: expected ErrNotFound, got %v", err)
	}
}

func profileEnvelope(t *testing.T, eventID string, payload contracts.InfluencerProfileUpdatedPayload) contracts.EventEnvelope {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return contracts.EventEnvelope{
		EventID:          eventID,
		EventType:        domain.EventInfluencerProfileUpdated,
		OccurredAt:       time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		PartitionKeyPath: domain.InfluencerEventPartitionKeyPath,
		PartitionKey:     payload.InfluencerID,
		SourceService:    "M02-Profile-Service",
		SchemaVersion:    domain.EventSchemaVersion,
		Data:             data,
	}
}

func TestHandleCanonicalEventUpsertsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payload := contracts.InfluencerProfileUpdatedPayload{
		InfluencerID: "inf-42",
		Name:         "Roberto Alves",
		Category:     "Fitness",
		Followers:    950_000,
		Engagement:   6.1,
		Platforms:    []string{"instagram", "tiktok"},
	}
	if err := f.svc.HandleCanonicalEvent(ctx, profileEnvelope(t, "evt-1", payload)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	payload.Followers = 1
	if err := f.svc.HandleCanonicalEvent(ctx, profileEnvelope(t, "evt-1", payload)); err != nil {
		t.Fatalf("duplicate should be skipped silently, got %v", err)
	}
	got, err := f.repos.Influencers.GetByID(ctx, "inf-42")
	if err != nil {
		t.Fatalf("get influencer: %v", err)
	}
	if got.Followers != 950_000 || got.Platforms[1] != "TikTok" {
		t.Fatalf("duplicate event must not be applied: %+v", got)
	}

	bad := profileEnvelope(t, "evt-2", payload)
	bad.PartitionKey = "someone-else"
	if err := f.svc.HandleCanonicalEvent(ctx, bad); !errors.Is(err, domain.ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
	other := profileEnvelope(t, "evt-3", payload)
	other.EventType = "user.deleted"
	if err := f.svc.HandleCanonicalEvent(ctx, other); !errors.Is(err, domain.ErrUnsupportedEventType) {
		t.Fatalf("expected ErrUnsupportedEventType, got %v", err)
	}
}

func TestDraftCampaignsAreVisibleToOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	rival := f.login(t, "Eco Fashion", "mkt@eco-brand.com")
	influencer := f.login(t, "Ana Silva", "ana@example.com")
	draft := f.createCampaign(t, owner, false)
	active := f.createCampaign(t, owner, true)

	for name, viewer := range map[string]Actor{"anonymous": {}, "rival": rival, "influencer": influencer} {
		if _, err := f.svc.GetCampaign(ctx, viewer, draft.CampaignID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s get draft: expected ErrNotFound, got %v", name, err)
		}
		if _, err := f.svc.RecordCampaignView(ctx, viewer, draft.CampaignID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s view draft: expected ErrNotFound, got %v", name, err)
		}
		items, err := f.svc.ListCampaigns(ctx, viewer, domain.CampaignFilter{Tab: domain.CampaignTabDraft})
		if err != nil || len(items) != 0 {
			t.Fatalf("%s draft tab: %+v %v", name, items, err)
		}
		if _, err := f.svc.GetCampaign(ctx, viewer, active.CampaignID); err != nil {
			t.Fatalf("%s get active: %v", name, err)
		}
	}

	items, err := f.svc.ListCampaigns(ctx, owner, domain.CampaignFilter{Tab: domain.CampaignTabDraft})
	if err != nil || len(items) != 1 || items[0].CampaignID != draft.CampaignID {
		t.Fatalf("owner draft tab: %+v %v", items, err)
	}
	if _, err := f.svc.GetCampaign(ctx, owner, draft.CampaignID); err != nil {
		t.Fatalf("owner get draft: %v", err)
	}
	if n, err := f.svc.CampaignCount(ctx); err != nil || n != 2 {
		t.Fatalf("campaign count = %d, %v", n, err)
	}
}

func TestUpdateMyProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nova := f.login(t, "", "nova@example.com")
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")

	blank, err := f.svc.GetMyProfile(ctx, nova)
	if err != nil || blank.Category != "" || blank.Followers != 0 {
		t.Fatalf("expected blank profile, got %+v %v", blank, err)
	}

	f.now = f.now.Add(time.Hour)
	updated, err := f.svc.UpdateMyProfile(ctx, nova, domain.ProfileUpdate{
		Name:       "Nova Rocha",
		Category:   "Tecnologia",
		Followers:  120_000,
		Engagement: 6.1,
		Platforms:  []string{"youtube", "tiktok"},
		Location:   "Recife, PE",
		Bio:        "Reviews de gadgets.",
		Rate:       1800,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Nova Rocha" || updated.Followers != 120_000 || len(updated.Platforms) != 2 || updated.Platforms[0] != "YouTube" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	found, err := f.svc.SearchInfluencers(ctx, domain.InfluencerFilter{Categories: []string{"Tecnologia"}})
	if err != nil || len(found) != 1 || found[0].InfluencerID != nova.SubjectID {
		t.Fatalf("expected updated profile in directory, got %+v %v", found, err)
	}
	user, err := f.repos.Users.GetByID(ctx, nova.SubjectID)
	if err != nil || user.Name != "Nova Rocha" {
		t.Fatalf("expected account renamed, got %+v %v", user, err)
	}

	kept, err := f.svc.UpdateMyProfile(ctx, nova, domain.ProfileUpdate{Category: "Tecnologia", Platforms: []string{"YouTube"}})
	if err != nil || kept.Name != "Nova Rocha" {
		t.Fatalf("blank name must keep current: %+v %v", kept, err)
	}

	_, err = f.svc.UpdateMyProfile(ctx, nova, domain.ProfileUpdate{Engagement: 140, Followers: -1})
	var fields domain.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, key := range []string{"category", "platforms", "engagement", "followers"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected field error for %s, got %v", key, fields)
		}
	}
	if _, err := f.svc.UpdateMyProfile(ctx, brand, domain.ProfileUpdate{Category: "Moda", Platforms: []string{"Instagram"}}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("brand edit: expected ErrForbidden, got %v", err)
	}
}

func TestGetBrandProfileListsVisibleCampaigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	other := f.login(t, "Eco Fashion", "mkt@eco-brand.com")
	influencer := f.login(t, "Ana Silva", "ana@example.com")
	f.createCampaign(t, brand, false)
	active := f.createCampaign(t, brand, true)
	f.createCampaign(t, other, true)

	public, err := f.svc.GetBrandProfile(ctx, Actor{}, brand.SubjectID)
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	if public.Brand.Name != "Tech Gadgets" || len(public.Campaigns) != 1 || public.Campaigns[0].CampaignID != active.CampaignID {
		t.Fatalf("unexpected public profile: %+v", public)
	}
	if public.Summary.ActiveCampaigns != 1 || public.Summary.DraftCampaigns != 0 {
		t.Fatalf("unexpected public summary: %+v", public.Summary)
	}
	own, err := f.svc.GetBrandProfile(ctx, brand, brand.SubjectID)
	if err != nil || len(own.Campaigns) != 2 || own.Summary.DraftCampaigns != 1 {
		t.Fatalf("owner profile: %+v %v", own, err)
	}
	if _, err := f.svc.GetBrandProfile(ctx, Actor{}, influencer.SubjectID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("influencer as brand: expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.GetBrandProfile(ctx, Actor{}, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing brand: expected ErrNotFound, got %v", err)
	}
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brand := f.login(t, "Tech Gadgets", "contato@tech-brand.com")
	ana := f.login(t, "Ana Silva", "ana@example.com")
	carlos := f.login(t, "Carlos Mendes", "carlos@example.com")
	first := f.createCampaign(t, brand, true)
	second := f.createCampaign(t, brand, true)
	f.createCampaign(t, brand, false)

	for _, c := range []CampaignView{first, second} {
		if _, err := f.svc.ApplyToCampaign(ctx, ana, c.CampaignID); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if _, err := f.svc.UpdateApplicationStatus(ctx, brand, c.CampaignID, ana.SubjectID, "accepted"); err != nil {
			t.Fatalf("accept: %v", err)
		}
	}
	if _, err := f.svc.InviteInfluencer(ctx, brand, second.CampaignID, carlos.SubjectID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := f.svc.ChangeCampaignStatus(ctx, brand, second.CampaignID, "completed"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.svc.ApplyToCampaign(ctx, carlos, first.CampaignID); err != nil {
		t.Fatalf("apply carlos: %v", err)
	}
	if _, err := f.svc.SendMessage(ctx, carlos, brand.SubjectID, "Olá!"); err != nil {
		t.Fatalf("send: %v", err)
	}

	got, err := f.svc.GetDashboard(ctx, brand)
	if err != nil {
		t.Fatalf("brand dashboard: %v", err)
	}
	if got.Role != "brand" || got.Brand == nil || got.Influencer != nil || got.UnreadMessages != 1 {
		t.Fatalf("unexpected brand dashboard: %+v", got)
	}
	want := BrandDashboardView{ActiveCampaigns: 1, DraftCampaigns: 1, CompletedCampaigns: 1, InfluencersHired: 2, PendingApplicants: 1}
	if *got.Brand != want {
		t.Fatalf("brand summary = %+v, want %+v", *got.Brand, want)
	}

	got, err = f.svc.GetDashboard(ctx, ana)
	if err != nil || got.Influencer == nil {
		t.Fatalf("ana dashboard: %+v %v", got, err)
	}
	if *got.Influencer != (InfluencerDashboardView{ActiveCampaigns: 1, Accepted: 2}) {
		t.Fatalf("ana summary = %+v", *got.Influencer)
	}
	got, err = f.svc.GetDashboard(ctx, carlos)
	if err != nil || got.Influencer == nil {
		t.Fatalf("carlos dashboard: %+v %v", got, err)
	}
	if *got.Influencer != (InfluencerDashboardView{ProposalsReceived: 1, PendingApplications: 1}) {
		t.Fatalf("carlos summary = %+v", *got.Influencer)
	}
	if _, err := f.svc.GetDashboard(ctx, Actor{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous: expected ErrUnauthorized, got %v", err)
	}
}
