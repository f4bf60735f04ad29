package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/application"
	"github.com/viralforge/mesh/services/marketplace/M24-campaign-roster-service/internal/platform/metrics"
)

type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewHandler(service *application.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

type RouterOptions struct {
	// RateLimitRPS is the sustained per-client request rate; zero disables
	// limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	// AllowedOrigins lists browser origins allowed to call the API.
	AllowedOrigins []string
	// Ready reports whether backing stores are reachable.
	Ready func(*http.Request) error
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(handler.logger))
	r.Use(loggingMiddleware(handler.logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(req); err != nil {
				handler.logger.WarnContext(req.Context(), "readiness check failed",
					"module", "http.router",
					"layer", "adapter",
					"operation", "readyz",
					"outcome", "failure",
					"error", err,
				)
				writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "not ready")
				return
			}
		}
		writeSuccess(w, http.StatusOK, "ready")
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if opts.RateLimitRPS > 0 {
			r.Use(rateLimitMiddleware(newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst)))
		}

		r.Post("/sessions", handler.startSession)
		r.Get("/influencers", handler.searchInfluencers)
		r.Get("/influencers/{influencer_id}", handler.getInfluencer)

		r.Group(func(r chi.Router) {
			r.Use(handler.optionalAuthMiddleware)
			r.Get("/campaigns", handler.listCampaigns)
			r.Get("/campaigns/{campaign_id}", handler.getCampaign)
			r.Post("/campaigns/{campaign_id}/views", handler.recordCampaignView)
			r.Get("/brands/{brand_id}", handler.getBrandProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/sessions/current", handler.currentUser)
			r.Delete("/sessions/current", handler.endSession)

			r.Post("/campaigns", handler.createCampaign)
			r.Post("/campaigns/{campaign_id}/status", handler.changeCampaignStatus)
			r.Post("/campaigns/{campaign_id}/applications", handler.applyToCampaign)
			r.Put("/campaigns/{campaign_id}/applications/{influencer_id}", handler.updateApplicationStatus)
			r.Post("/campaigns/{campaign_id}/invitations", handler.inviteInfluencer)
			r.Get("/campaigns/{campaign_id}/roster", handler.getRoster)

			r.Get("/me/applications", handler.listMyApplications)
			r.Get("/me/dashboard", handler.getDashboard)
			r.Get("/me/profile", handler.getMyProfile)
			r.Put("/me/profile", handler.updateMyProfile)

			r.Get("/inbox/contacts", handler.listContacts)
			r.Get("/inbox/contacts/{contact_id}/messages", handler.openConversation)
			r.Post("/inbox/contacts/{contact_id}/favorite", handler.toggleFavorite)
			r.Post("/inbox/messages", handler.sendMessage)
		})
	})
	return r
}
