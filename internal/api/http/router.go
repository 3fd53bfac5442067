// Package http is the HTTP surface: the respondent API, the legacy storage
// action API and the JWT-protected dashboard.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
	"github.com/courtneynewtocode/career-compass/internal/assessment"
	auth "github.com/courtneynewtocode/career-compass/internal/auth/middleware"
	"github.com/courtneynewtocode/career-compass/internal/rbac"
	"github.com/courtneynewtocode/career-compass/internal/results"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

type TestCatalog interface {
	Load(id string) (*scoring.TestDefinition, error)
	List() ([]string, error)
}

type EventStore interface {
	Append(ctx context.Context, e analytics.Event) error
	Stats(ctx context.Context) (analytics.Stats, error)
}

type Deps struct {
	Service   *assessment.Service
	Tests     TestCatalog
	Results   results.Store
	Events    EventStore
	Auth      *auth.AuthService
	Accounts  []auth.Account
	AccessKey string // legacy /api/storage key
	Origins   []string
	DB        *sql.DB      // pinged by /readyz; may be nil
	Metrics   http.Handler // served at /metrics; may be nil
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Access-Key"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// respondent API
	r.Get("/tests", ListTestsHandler(d.Tests))
	r.Get("/tests/{testID}", GetTestHandler(d.Tests))
	r.Post("/assessments/{testID}/submit", SubmitHandler(d.Service))
	r.With(auth.RequireAccessKey(d.AccessKey)).
		Post("/events", TrackEventHandler(d.Events))

	r.Post("/api/storage", StorageActionHandler(d.Results, d.Events, d.AccessKey))

	r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Accounts...))

	// dashboard (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("results:list")).
			Get("/results", ListResultsHandler(d.Results))
		pr.With(rbac.Require("results:list")).
			Get("/results/stats", ResultStatsHandler(d.Results))
		pr.With(rbac.Require("results:view")).
			Get("/results/{id}", GetResultHandler(d.Results))
		pr.With(rbac.Require("results:view")).
			Get("/results/{id}/report", ResultReportHandler(d.Results, d.Service))
		pr.With(rbac.Require("results:delete")).
			Delete("/results/{id}", DeleteResultHandler(d.Results))

		pr.With(rbac.Require("analytics:view")).
			Get("/analytics/stats", AnalyticsStatsHandler(d.Events))
		pr.With(rbac.Require("results:list"), rbac.Require("analytics:view")).
			Get("/dashboard", DashboardHandler(d.Results, d.Events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", ReadyHandler(d.DB))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	return r
}
