package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fundledger/internal/http/handlers"
	"fundledger/internal/infra/geoip"
	"fundledger/internal/middleware"
)

// Options carries the router's cross-cutting dependencies.
type Options struct {
	AllowedOrigins  []string
	CountryResolver geoip.CountryResolver
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Signer,
		middleware.Country(opts.CountryResolver),
		middleware.Logger(app.Log),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Post("/", app.CreateCampaign)
		r.Get("/", app.ListCampaigns)
		r.Get("/all", app.ListAllCampaigns)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", app.UpdateCampaign)
			r.Delete("/", app.DeleteCampaign)
			r.Get("/progress", app.CampaignProgress)
			r.Get("/donations", app.ListDonations)
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).
				Post("/donations", app.Donate)
		})
	})

	r.Get("/v1/donations/recent", app.RecentDonations)

	r.Route("/v1/stats", func(r chi.Router) {
		r.Get("/", app.Stats)
		r.Get("/timeline", app.Timeline)
	})

	r.Route("/v1/ledger", func(r chi.Router) {
		r.Get("/", app.LedgerView)
		r.Get("/export", app.LedgerExport)
	})

	r.Route("/v1/admins/{identity}", func(r chi.Router) {
		r.Get("/", app.GetAdmin)
		r.Put("/", app.SetAdmin)
	})

	return r
}
