package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidreyero/comboforge-backend/api/controllers"
	"github.com/davidreyero/comboforge-backend/api/middleware"
	"github.com/davidreyero/comboforge-backend/internal/catalog"
	"github.com/davidreyero/comboforge-backend/internal/combos"
	"github.com/davidreyero/comboforge-backend/internal/fixedcombos"
	"github.com/davidreyero/comboforge-backend/internal/slots"
	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/db"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
	"github.com/davidreyero/comboforge-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache redis.Pinger,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	sessionService slots.Service,
	recalculator *combos.Recalculator,
	fixedComboService fixedcombos.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cache))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/", controllers.CatalogList(catalogService, logg))
		r.Post("/", controllers.CatalogCreate(catalogService, logg))
		r.Get("/{productId}", controllers.CatalogGet(catalogService, logg))
		r.Put("/{productId}", controllers.CatalogUpdate(catalogService, logg))
		r.Post("/{productId}/active", controllers.CatalogSetActive(catalogService, logg))
	})

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", controllers.SessionCreate(sessionService, logg))
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(sessionService, logg))
			r.Delete("/", controllers.SessionDelete(sessionService, logg))

			r.Post("/slots", controllers.SlotAdd(sessionService, logg))
			r.Route("/slots/{category}", func(r chi.Router) {
				r.Delete("/", controllers.SlotRemove(sessionService, logg))
				r.Post("/toggle", controllers.SlotToggleProduct(sessionService, logg))
				r.Post("/select-all", controllers.SlotSelectAll(sessionService, logg))
				r.Post("/deselect-all", controllers.SlotDeselectAll(sessionService, logg))
			})

			r.Post("/quotes", controllers.QuoteRun(sessionService, recalculator, logg))
		})
	})

	r.Route("/api/v1/fixed-combos", func(r chi.Router) {
		r.Get("/", controllers.FixedComboList(fixedComboService, logg))
		r.Get("/{comboId}", controllers.FixedComboGet(fixedComboService, logg))
		r.Delete("/{comboId}", controllers.FixedComboDelete(fixedComboService, logg))

		r.Route("/builders", func(r chi.Router) {
			r.Post("/", controllers.BuilderStart(fixedComboService, logg))
			r.Route("/{builderId}", func(r chi.Router) {
				r.Post("/slots", controllers.BuilderAddSlot(fixedComboService, logg))
				r.Post("/products", controllers.BuilderSelectProduct(fixedComboService, logg))
				r.Post("/preview", controllers.BuilderPreview(fixedComboService, logg))
				r.Post("/save", controllers.BuilderSave(fixedComboService, logg))
				r.Post("/reset", controllers.BuilderReset(fixedComboService, logg))
			})
		})
	})

	return r
}
