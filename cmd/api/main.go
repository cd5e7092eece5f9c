package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartspend-ai/smartspend-backend/api/routes"
	"github.com/smartspend-ai/smartspend-backend/internal/ai"
	"github.com/smartspend-ai/smartspend-backend/internal/auth"
	"github.com/smartspend-ai/smartspend-backend/internal/bills"
	"github.com/smartspend-ai/smartspend-backend/internal/classifier"
	"github.com/smartspend-ai/smartspend-backend/internal/insights"
	"github.com/smartspend-ai/smartspend-backend/internal/pricing"
	"github.com/smartspend-ai/smartspend-backend/internal/shoppinglist"
	"github.com/smartspend-ai/smartspend-backend/internal/users"
	"github.com/smartspend-ai/smartspend-backend/pkg/auth/session"
	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/db"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
	"github.com/smartspend-ai/smartspend-backend/pkg/metrics"
	"github.com/smartspend-ai/smartspend-backend/pkg/migrate"
	"github.com/smartspend-ai/smartspend-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	provider, err := ai.NewGemini(context.Background(), cfg.Gemini)
	if err != nil {
		logg.Error(context.Background(), "failed to create gemini provider", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	pipeline := metrics.NewPipelineMetrics(registry)

	comparator := pricing.NewComparator(cfg.Affiliates, cfg.Pricing, redisClient, logg)

	billRepo := bills.NewRepository(dbClient.DB())
	billService, err := bills.NewService(bills.ServiceParams{
		Repo:       billRepo,
		Extractor:  provider,
		Classifier: classifier.New(provider, pipeline, logg),
		Comparator: comparator,
		Pipeline:   pipeline,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create bill service", err)
		os.Exit(1)
	}

	insightsService, err := insights.NewService(billRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create insights service", err)
		os.Exit(1)
	}

	listService, err := shoppinglist.NewService(shoppinglist.ServiceParams{
		Repo:      shoppinglist.NewRepository(dbClient.DB()),
		Generator: provider,
		History:   insightsService,
		Pipeline:  pipeline,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shopping list service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			AuthService:     authService,
			BillService:     billService,
			InsightsService: insightsService,
			ListService:     listService,
			Metrics:         registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
