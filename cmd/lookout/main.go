package main

import (
	"context"

	"frameworks/lookout/internal/collector"
	"frameworks/lookout/internal/handlers"
	"frameworks/lookout/internal/predictor"
	"frameworks/lookout/internal/storage"
	"frameworks/lookout/pkg/config"
	"frameworks/lookout/pkg/database"
	"frameworks/lookout/pkg/llm"
	"frameworks/lookout/pkg/logging"
	"frameworks/lookout/pkg/monitoring"
	"frameworks/lookout/pkg/server"
	"frameworks/lookout/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("lookout")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Lookout (Crypto News Sentiment API)")

	// Connect to database
	dbConfig := database.DefaultConfig()
	dbConfig.URL = config.GetEnv("DATABASE_URL", "postgres://localhost:5432/lookout?sslmode=disable")
	db := database.MustConnect(dbConfig, logger)
	defer db.Close()

	store := storage.New(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.WithError(err).Fatal("Schema setup failed")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("lookout", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("lookout", version.Version, version.GitCommit)

	// Add health checks
	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"OPENROUTER_API_KEY": config.GetEnv("OPENROUTER_API_KEY", ""),
	}))

	// Create service metrics
	metrics := &handlers.Metrics{
		CollectRuns: metricsCollector.NewCounter("collect_runs_total",
			"Collection runs by outcome", []string{"status"}),
		ArticlesInserted: metricsCollector.NewCounter("articles_inserted_total",
			"Articles stored by collection runs", nil),
		PredictRuns: metricsCollector.NewCounter("predict_runs_total",
			"Prediction runs by outcome", []string{"outcome"}),
		LLMCallDuration: metricsCollector.NewHistogram("llm_call_duration_seconds",
			"Wall time of prediction runs including the remote call", []string{"model"}, nil),
	}

	// Setup feed collection
	collectorConfig := collector.DefaultConfig()
	collectorConfig.Feeds = config.GetEnvList("FEED_URLS", nil)
	collectorConfig.FeedTimeout = config.GetEnvSeconds("FEED_TIMEOUT_SECONDS", collectorConfig.FeedTimeout)
	feedCollector := collector.New(store, logger, collectorConfig)

	// Setup sentiment prediction
	llmConfig := llm.LoadConfig()
	predictEnabled := llmConfig.APIKey != ""
	if !predictEnabled {
		logger.Warn("OPENROUTER_API_KEY not set, prediction endpoint disabled")
	}
	provider := llm.NewOpenRouterProvider(llmConfig)
	sentimentPredictor := predictor.New(store, provider, logger, llmConfig.Model, llmConfig.Timeout)

	// Initialize handlers
	h := handlers.New(feedCollector, sentimentPredictor, store, logger, metrics, predictEnabled)

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "lookout", healthChecker, metricsCollector)

	api := router.Group("/api")
	{
		api.POST("/collect", h.Collect)
		api.POST("/predict", h.Predict)
		api.GET("/articles", h.Articles)
		api.GET("/predictions", h.Predictions)
		api.GET("/llm-queries", h.QueryLogs)
	}

	// Start server with graceful shutdown
	serverConfig := server.DefaultConfig("lookout", "18090")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
