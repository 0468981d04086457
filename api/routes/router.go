package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairwayev/quotedesk-backend/api/controllers"
	"github.com/fairwayev/quotedesk-backend/api/middleware"
	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	sessionsvc "github.com/fairwayev/quotedesk-backend/internal/session"
	"github.com/fairwayev/quotedesk-backend/internal/template"
	"github.com/fairwayev/quotedesk-backend/pkg/auth/session"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	pkgredis "github.com/fairwayev/quotedesk-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The zero value of any
// optional field (metrics handler, redis) degrades that concern gracefully.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *pkgredis.Client
	Sessions session.AccessSessionChecker

	Auth      sessionsvc.Service
	Store     controllers.QuoteReader
	Lifecycle interface {
		controllers.LifecycleService
		controllers.OrderRemover
	}
	History  ledger.Service
	Exporter interface {
		controllers.QuoteExporter
		controllers.OrderExporter
	}
	Catalog  controllers.CatalogSource
	Template template.Service

	Metrics http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisPinger controllers.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	var idempotencyStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
	}

	r.Route("/api", func(r chi.Router) {
		// Buyer-facing surface: no credential gate, replay-protected submit.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore, logg))
			r.Post("/auth/login", controllers.AuthLogin(deps.Auth, logg))
			r.Get("/catalog", controllers.Catalog(deps.Catalog, logg))
			r.Post("/quotes/submit", controllers.SubmitQuote(deps.Lifecycle, logg))
		})

		// Staff surface behind the shared-secret session gate.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", controllers.QuoteList(deps.Store, logg))
				r.Get("/{quoteId}", controllers.QuoteDetail(deps.Store, logg))
				r.Put("/{quoteId}", controllers.QuoteUpdate(deps.Lifecycle, logg))
				r.Put("/{quoteId}/status", controllers.QuoteStatus(deps.Lifecycle, logg))
				r.Delete("/{quoteId}", controllers.QuoteDelete(deps.Lifecycle, logg))
				r.Post("/{quoteId}/export", controllers.QuoteExport(deps.Exporter, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.History, logg))
				r.Get("/export.csv", controllers.OrderExportCSV(deps.History, logg))
				r.Post("/{orderId}/export", controllers.OrderExportArtifact(deps.Exporter, logg))
				r.Delete("/{orderId}", controllers.OrderDelete(deps.Lifecycle, logg))
				r.Post("/batch-delete", controllers.OrderBatchDelete(deps.Lifecycle, logg))
				r.Delete("/", controllers.OrderClear(deps.Lifecycle, logg))
			})

			r.Get("/catalog/export.csv", controllers.CatalogExportCSV(deps.Catalog, logg))

			r.Route("/template", func(r chi.Router) {
				r.Get("/", controllers.TemplateGet(deps.Template, logg))
				r.Put("/", controllers.TemplateUpdate(deps.Template, logg))
			})
		})
	})

	return r
}
