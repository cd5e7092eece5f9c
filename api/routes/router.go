package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartspend-ai/smartspend-backend/api/controllers"
	"github.com/smartspend-ai/smartspend-backend/api/middleware"
	"github.com/smartspend-ai/smartspend-backend/internal/auth"
	"github.com/smartspend-ai/smartspend-backend/internal/bills"
	"github.com/smartspend-ai/smartspend-backend/internal/insights"
	"github.com/smartspend-ai/smartspend-backend/internal/shoppinglist"
	"github.com/smartspend-ai/smartspend-backend/pkg/auth/session"
	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
	"github.com/smartspend-ai/smartspend-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	BillService     bills.Service
	InsightsService insights.Service
	ListService     shoppinglist.Service
	Metrics         prometheus.Gatherer
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, params.Redis))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, params.Redis, logg)).
			Post("/register", controllers.AuthRegister(params.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, params.Redis, logg)).
			Post("/login", controllers.AuthLogin(params.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(params.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, params.SessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(params.AuthService, logg))
			r.Get("/me", controllers.AuthMe(params.AuthService, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.SessionChecker, logg))

		r.Route("/bills", func(r chi.Router) {
			r.Post("/upload", controllers.BillUpload(params.BillService, cfg.Upload, logg))
			r.Get("/", controllers.BillList(params.BillService, logg))
			r.Get("/{billId}", controllers.BillGet(params.BillService, logg))
		})

		r.Get("/insights", controllers.InsightsSnapshot(params.InsightsService, logg))

		r.Post("/shopping-list/generate", controllers.ShoppingListGenerate(params.ListService, logg))
		r.Get("/shopping-lists", controllers.ShoppingListHistory(params.ListService, logg))
	})

	return r
}
