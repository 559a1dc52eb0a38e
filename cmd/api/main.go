// Sleep Intelligence API
//
// REST API for sensor-based sleep tracking, staging and circadian analysis.
//
//	@title			Sleep Intelligence API
//	@version		1.0
//	@description	Track sleep sessions from raw sensor samples, classify sleep stages and analyze circadian rhythm.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			sessions
//	@tag.description	Sleep tracking session endpoints
//
//	@tag.name			circadian
//	@tag.description	Circadian analysis and recommendation endpoints
//
//	@tag.name			insights
//	@tag.description	LLM narrative endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/somnolabs/sleep-intelligence/internal/analysis"
	"github.com/somnolabs/sleep-intelligence/internal/api"
	"github.com/somnolabs/sleep-intelligence/internal/api/handler"
	"github.com/somnolabs/sleep-intelligence/internal/cache"
	"github.com/somnolabs/sleep-intelligence/internal/config"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
	"github.com/somnolabs/sleep-intelligence/internal/environment"
	"github.com/somnolabs/sleep-intelligence/internal/langfuse"
	"github.com/somnolabs/sleep-intelligence/internal/llm"
	"github.com/somnolabs/sleep-intelligence/internal/repository"
	"github.com/somnolabs/sleep-intelligence/internal/seed"
	"github.com/somnolabs/sleep-intelligence/internal/service"
	"github.com/somnolabs/sleep-intelligence/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry tracing (no-op when Langfuse is not configured)
	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-intelligence-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.SleepSession{}, &domain.SensorSample{}, &domain.SleepStage{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Circadian report cache (no-op when REDIS_ADDR is empty)
	circadianCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if cfg.RedisAddr == "" {
		log.Println("Warning: Redis not configured, circadian reports are recomputed per request")
	}

	// Langfuse analytics client (disabled when not configured)
	analytics := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Environment context sources; static defaults until wearables report
	// ambient light and room conditions.
	lightSource := environment.NewStaticLightSource(environment.DefaultLightProfile())
	roomSensor := environment.NewStaticSensor(environment.DefaultConditions())

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	// Initialize services
	analysisCfg := analysis.DefaultConfig()
	userService := service.NewUserService(userRepo)
	trackingService := service.NewTrackingService(sessionRepo, userRepo, circadianCache, analytics, analysisCfg)
	circadianService := service.NewCircadianService(sessionRepo, userRepo, lightSource, roomSensor, circadianCache, analytics, analysisCfg)
	insightsService := service.NewInsightsService(circadianService, openaiClient, sessionRepo, userRepo, analytics)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sessionHandler := handler.NewSessionHandler(trackingService)
	circadianHandler := handler.NewCircadianHandler(circadianService)
	insightsHandler := handler.NewInsightsHandler(insightsService, analytics)

	// Setup router
	router := api.NewRouter(userHandler, sessionHandler, circadianHandler, insightsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
