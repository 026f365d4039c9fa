package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"creatorstudio/internal/http/handlers"
	"creatorstudio/internal/middleware"
)

type Options struct {
	// MCP, when set, is mounted at /mcp outside the rate limiter.
	MCP http.Handler
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.CORSAllowedOrigins),
		middleware.I18N(app.Config.DefaultLocale),
	)

	r.Get("/", app.Index)
	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))

		r.Get("/v1/options", app.Options)

		r.Route("/v1/shell", func(r chi.Router) {
			r.Get("/", app.Shell)
			r.Post("/view", app.Navigate)
			r.Post("/topic", app.UseTopic)
			r.Get("/export", app.Export)
		})

		r.Route("/v1/credentials", func(r chi.Router) {
			r.Post("/check", app.CheckCredentials)
			r.Post("/select", app.SelectCredentials)
		})

		r.Route("/v1/views", func(r chi.Router) {
			r.Get("/dashboard", app.Dashboard)
			r.Get("/{view}", app.View)
			r.Post("/script", app.SubmitScript)
			r.Post("/image", app.SubmitImage)
			r.Post("/video", app.SubmitVideo)
		})

		r.Get("/v1/media/{id}", app.ServeMedia)
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}
