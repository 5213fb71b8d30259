package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/application/webhook_handlers"
	apiinfra "commerce-adapter-layer/internal/infrastructure/api"
	"commerce-adapter-layer/internal/infrastructure/cache"
	"commerce-adapter-layer/internal/infrastructure/encryption"
	securitymiddleware "commerce-adapter-layer/internal/infrastructure/middleware"
	"commerce-adapter-layer/internal/infrastructure/pubsub"
	"commerce-adapter-layer/internal/infrastructure/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDatabase := os.Getenv("MONGODB_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "commerce_adapter"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(mongoDatabase)

	// Connect to Redis (webhook dedup)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer redisClient.Close()

	// Get encryption key
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	// Initialize repositories
	eventRepo := repository.NewMongoWebhookEventRepository(db)
	complianceRepo := repository.NewMongoComplianceRepository(db)
	connectionRepo := repository.NewMongoConnectionRepository(db)
	credentialsRepo := repository.NewMongoCredentialsRepository(db)
	sessionRepo := repository.NewMongoSessionRepository(db)
	dedupStore := cache.NewRedisDedupStore(redisClient, "")

	// Initialize application services
	registry := application.NewRegistry(logger)
	credentialsService := application.NewCredentialsService(credentialsRepo, encryptionService, registry, logger)
	connectionService := application.NewConnectionService(connectionRepo, credentialsService, logger)
	syncService := application.NewSyncService(credentialsService, logger)
	complianceService := application.NewComplianceService(complianceRepo, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewOrderHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewInventoryHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewComplianceHandler(logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewUninstallHandler(connectionRepo, logger))

	// Initialize webhook pub/sub for downstream consumers
	webhookPubSub := pubsub.NewWebhookPubSub(logger)

	webhookService := application.NewWebhookService(
		eventRepo,
		dedupStore,
		complianceService,
		webhookDispatcher,
		webhookPubSub,
		logger,
	)

	// Initialize HTTP handlers
	webhookHandler := apiinfra.NewWebhookHandler(credentialsService, webhookService, logger)
	oauthHandler := apiinfra.NewOAuthHandler(sessionRepo, credentialsService, connectionService, logger)
	restHandler := apiinfra.NewRESTHandler(syncService, connectionService, credentialsService, complianceService, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securitymiddleware.SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(securitymiddleware.TenantMiddleware())

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// OAuth routes
	r.Get("/auth/{platform}", oauthHandler.Init)
	r.Get("/auth/{platform}/callback", oauthHandler.Callback)

	// Webhook endpoint: POST /webhooks/{platform}/{projectId}/{environment}
	r.Post("/webhooks/{platform}/{projectId}/{environment}", webhookHandler.Handle)

	// REST API (tenant headers required)
	r.Mount("/api/v1", restHandler.Routes())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
