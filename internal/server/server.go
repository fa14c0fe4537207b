// Package server exposes the climate platform over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/climate-intel/internal/advisor"
	"github.com/sells-group/climate-intel/internal/auth"
	"github.com/sells-group/climate-intel/internal/config"
	"github.com/sells-group/climate-intel/internal/observability"
	"github.com/sells-group/climate-intel/internal/store"
)

// Version is the API version reported by the service banner.
const Version = "1.0.0"

// Server wires the handlers to their dependencies.
type Server struct {
	cfg      *config.Config
	store    store.Store
	issuer   *auth.Issuer
	advisor  *advisor.Advisor
	metrics  *observability.Metrics
	registry *prometheus.Registry
	clock    clockwork.Clock
}

// New builds a Server. The clock is injectable so handler tests can pin time.
func New(cfg *config.Config, st store.Store, adv *advisor.Advisor, clock clockwork.Clock) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		store:    st,
		issuer:   auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).WithTimeFunc(clock.Now),
		advisor:  adv,
		metrics:  observability.NewMetrics(registry),
		registry: registry,
		clock:    clock,
	}
}

// Router assembles the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.instrument)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleBanner)
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/verify-otp", s.handleVerifyOTP)
		r.Post("/auth/login", s.handleLogin)

		r.Post("/climate/data", s.handleClimateData)
		r.Post("/climate/scenario", s.handleScenario)
		r.Get("/climate/layers", s.handleLayers)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/auth/me", s.handleMe)
			r.Post("/chat", s.handleChat)
			r.Get("/chat/history", s.handleChatHistory)
			r.Post("/recommendations", s.handleRecommendations)
			r.Put("/user/language", s.handleLanguage)
		})
	})

	return r
}

func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Climate Intelligence Platform API",
		"version": Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.clock.Now().UTC().Format(timeFormat),
	})
}
