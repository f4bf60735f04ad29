package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/application"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/domain"
)

type seedBrand struct {
	name  string
	email string
}

type seedCampaign struct {
	brand  seedBrand
	draft  domain.CampaignDraft
	status []string
}

type seedInfluencer struct {
	email   string
	profile domain.Influencer
}

var demoCampaigns = []seedCampaign{
	{
		brand: seedBrand{name: "Moda Sustentável", email: "contato@modasustentavel-brand.com"},
		draft: domain.CampaignDraft{
			Title:        "Lançamento Coleção Verão",
			Description:  "Campanha para divulgação da nova coleção de roupas sustentáveis para o verão.",
			Budget:       15000,
			Category:     "Moda",
			Platforms:    []string{"Instagram", "TikTok"},
			Requirements: "Influenciadores com foco em moda sustentável e estilo de vida.",
			StartDate:    "2023-11-01",
			EndDate:      "2023-12-15",
			Location:     "Brasil",
		},
		status: []string{"active"},
	},
	{
		brand: seedBrand{name: "Tech Gadgets", email: "contato@techgadgets-brand.com"},
		draft: domain.CampaignDraft{
			Title:        "Review de Smartphones",
			Description:  "Campanha para review do nosso novo smartphone com tecnologia de ponta.",
			Budget:       25000,
			Category:     "Tecnologia",
			Platforms:    []string{"YouTube", "Instagram"},
			Requirements: "Criadores de conteúdo tech com experiência em reviews de smartphones.",
			StartDate:    "2023-10-15",
			EndDate:      "2023-11-30",
			Location:     "Brasil",
		},
		status: []string{"active"},
	},
	{
		brand: seedBrand{name: "Beleza Natural", email: "contato@belezanatural-brand.com"},
		draft: domain.CampaignDraft{
			Title:        "Campanha Produtos Naturais",
			Description:  "Divulgação da nossa linha de produtos de beleza 100% naturais e veganos.",
			Budget:       10000,
			Category:     "Beleza",
			Platforms:    []string{"Instagram", "TikTok", "YouTube"},
			Requirements: "Influenciadores com foco em beleza natural, vegana e sustentável.",
			StartDate:    "2023-09-01",
			EndDate:      "2023-10-15",
			Location:     "Brasil",
		},
		status: []string{"active", "completed"},
	},
	{
		brand: seedBrand{name: "Suplementos Pro", email: "contato@suplementospro-brand.com"},
		draft: domain.CampaignDraft{
			Title:        "Campanha Fitness Verão",
			Description:  "Campanha para divulgação da nossa linha de suplementos para o verão.",
			Budget:       20000,
			Category:     "Fitness",
			Platforms:    []string{"Instagram", "YouTube"},
			Requirements: "Atletas e influenciadores fitness com foco em nutrição e treino.",
			StartDate:    "2023-10-01",
			EndDate:      "2023-12-31",
			Location:     "Brasil",
		},
	},
}

var demoInfluencers = []seedInfluencer{
	{email: "ana.silva@example.com", profile: domain.Influencer{
		Name: "Ana Silva", Category: "Moda", Followers: 1_200_000, Engagement: 4.8,
		Platforms: []string{"Instagram", "TikTok", "YouTube"}, Location: "São Paulo, SP", Rate: 5000,
		Bio: "Criadora de conteúdo de moda e lifestyle. Compartilho dicas de estilo, tendências e meu dia a dia.",
	}},
	{email: "carlos.mendes@example.com", profile: domain.Influencer{
		Name: "Carlos Mendes", Category: "Tecnologia", Followers: 850_000, Engagement: 5.2,
		Platforms: []string{"YouTube", "Instagram", "Twitter"}, Location: "Rio de Janeiro, RJ", Rate: 4000,
		Bio: "Apaixonado por tecnologia e inovação. Reviews de produtos, tutoriais e novidades do mundo tech.",
	}},
	{email: "juliana.costa@example.com", profile: domain.Influencer{
		Name: "Juliana Costa", Category: "Beleza", Followers: 2_100_000, Engagement: 3.9,
		Platforms: []string{"Instagram", "YouTube"}, Location: "Belo Horizonte, MG", Rate: 7000,
		Bio: "Maquiadora profissional e criadora de conteúdo. Tutoriais, reviews de produtos e dicas de beleza.",
	}},
	{email: "fernanda.lima@example.com", profile: domain.Influencer{
		Name: "Fernanda Lima", Category: "Viagem", Followers: 1_500_000, Engagement: 4.2,
		Platforms: []string{"Instagram", "YouTube", "Blog"}, Location: "Florianópolis, SC", Rate: 5500,
		Bio: "Viajante em tempo integral. Compartilho destinos, dicas de viagem e experiências pelo mundo.",
	}},
}

// SeedDemoData fills an empty store with a small marketplace through the
// regular service operations. A store that already holds campaigns is left
// untouched.
func SeedDemoData(ctx context.Context, svc *application.Service, logger *slog.Logger) error {
	existing, err := svc.CampaignCount(ctx)
	if err != nil {
		return fmt.Errorf("seed: count campaigns: %w", err)
	}
	if existing > 0 {
		return nil
	}

	for _, inf := range demoInfluencers {
		session, err := svc.StartSession(ctx, application.StartSessionInput{
			Name:  inf.profile.Name,
			Email: inf.email,
			Type:  string(domain.UserTypeInfluencer),
		})
		if err != nil {
			return fmt.Errorf("seed influencer %s: %w", inf.email, err)
		}
		profile := inf.profile
		profile.InfluencerID = session.User.UserID
		if _, err := svc.UpsertInfluencer(ctx, profile); err != nil {
			return fmt.Errorf("seed influencer %s: %w", inf.email, err)
		}
		_ = svc.EndSession(ctx, session.Token)
	}

	for _, c := range demoCampaigns {
		session, err := svc.StartSession(ctx, application.StartSessionInput{
			Name:  c.brand.name,
			Email: c.brand.email,
			Type:  string(domain.UserTypeBrand),
		})
		if err != nil {
			return fmt.Errorf("seed brand %s: %w", c.brand.email, err)
		}
		actor := application.ActorFromUser(session.User, "seed")
		created, err := svc.CreateCampaign(ctx, actor, c.draft)
		if err != nil {
			return fmt.Errorf("seed campaign %q: %w", c.draft.Title, err)
		}
		for _, status := range c.status {
			if _, err := svc.ChangeCampaignStatus(ctx, actor, created.CampaignID, status); err != nil {
				return fmt.Errorf("seed campaign %q -> %s: %w", c.draft.Title, status, err)
			}
		}
		_ = svc.EndSession(ctx, session.Token)
	}

	logger.InfoContext(ctx, "demo data seeded",
		"module", "bootstrap.seed",
		"layer", "platform",
		"operation", "seed_demo_data",
		"outcome", "success",
		"campaigns", len(demoCampaigns),
		"influencers", len(demoInfluencers),
	)
	return nil
}
