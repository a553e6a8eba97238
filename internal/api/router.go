package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/bharativoice/internal/api/handlers"
	"github.com/nikhilbhutani/bharativoice/internal/api/middleware"
	"github.com/nikhilbhutani/bharativoice/internal/config"
	"github.com/nikhilbhutani/bharativoice/internal/session"
	"github.com/nikhilbhutani/bharativoice/internal/web"
)

type Router struct {
	mux      *chi.Mux
	redis    *redis.Client
	cfg      *config.Config
	sessions *session.Registry
	log      *slog.Logger
}

// NewRouter wires the HTTP surface. rdb may be nil.
func NewRouter(cfg *config.Config, sessions *session.Registry, rdb *redis.Client, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		mux:      chi.NewRouter(),
		redis:    rdb,
		cfg:      cfg,
		sessions: sessions,
		log:      logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(rt.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	// Health endpoints (no session)
	health := handlers.NewHealthHandler(rt.redis, rt.sessions)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	page := handlers.NewPageHandler(web.Assets)
	r.Get("/static/*", page.Static)

	speechH := handlers.NewSpeechHandler(rt.sessions, rt.log)
	playbackH := handlers.NewPlaybackHandler(rt.sessions, rt.cfg.CORS.AllowedOrigins, rt.log)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session)

		r.Get("/", page.Index)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/speech", func(r chi.Router) {
				r.Get("/", speechH.Get)
				r.Post("/", speechH.Submit)
				r.Get("/download", speechH.Download)
			})
			r.Get("/playback/ws", playbackH.Serve)
		})
	})

	return r
}
