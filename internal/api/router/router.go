package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prismatek/prismatek-ai-backend/internal/chat"
	httpmiddleware "github.com/prismatek/prismatek-ai-backend/internal/http/middleware"
	"github.com/prismatek/prismatek-ai-backend/internal/leads"
	"github.com/prismatek/prismatek-ai-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	LeadsHandler *leads.Handler
	StatsHandler *leads.StatsHandler
	ChatHandler  *chat.Handler

	MetricsHandler http.Handler
	StaticDir      string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (chat page, health check, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		staticDir := cfg.StaticDir
		if staticDir == "" {
			staticDir = filepath.Join("web", "static")
		}
		index := filepath.Join(staticDir, "index.html")
		public.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
	})

	// API endpoints
	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		api.Post("/submit-lead", cfg.LeadsHandler.SubmitLead)
		api.Get("/leads", cfg.LeadsHandler.ListLeads)
		api.Post("/chat", cfg.ChatHandler.HandleChat)
		api.Get("/stats", cfg.StatsHandler.GetStats)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
