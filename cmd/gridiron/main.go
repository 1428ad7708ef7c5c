package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/api/rest"
	"github.com/fortuna/gridiron/internal/api/websocket"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/ingest"
	"github.com/fortuna/gridiron/internal/metrics"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/scheduler"
	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
)

const (
	serviceName    = "gridiron"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Fantasy Football Scoring Service", serviceName, serviceVersion)

	// Load configuration (defaults, optional YAML, GRIDIRON_ env vars)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// League scoring rules are a hard requirement; a missing or
	// malformed weight must never be silently defaulted.
	rules, err := scoring.Load(cfg.ScoringRulesPath)
	if err != nil {
		log.Fatalf("Failed to load scoring rules: %v", err)
	}
	log.Printf("✓ Scoring rules loaded from %s", cfg.ScoringRulesPath)

	// Roster is optional; the matchup report degrades without it
	roster, err := analysis.LoadRoster(cfg.RosterPath)
	if err != nil {
		log.Printf("⚠️  Roster not loaded: %v (matchup report will be empty)", err)
	}

	// Initialize database connection
	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Seed initial data (non-fatal - may already exist)
	if err := db.SeedData(); err != nil {
		log.Printf("⚠️  Seed data warning: %v (continuing anyway)", err)
	} else {
		log.Println("✓ Seed data applied")
	}

	// Initialize Redis client with retry logic
	var redisCache *cache.RedisCache
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer redisCache.Close()

	log.Println("✓ Connected to Redis")

	streamPublisher := publisher.NewRedisStreamPublisher(redisCache.Client())
	m := metrics.New()

	// Artifact writer and analysis runner
	writer, err := analysis.NewWriter(cfg.ArtifactsDir)
	if err != nil {
		log.Fatalf("Failed to prepare artifacts dir: %v", err)
	}

	runner := analysis.NewRunner(db, writer, redisCache, streamPublisher, m, analysis.RunnerParams{
		Seasons:          cfg.Seasons,
		Rules:            rules,
		Roster:           roster,
		MinGames:         cfg.Analysis.MinGamesPlayed,
		NumTiers:         cfg.Analysis.NumTiers,
		Floors:           cfg.Analysis.ConsistencyFloors,
		ReplacementRanks: cfg.Analysis.ReplacementRanks,
		TierPositions:    cfg.Analysis.TierPositions,
		WaiverLimits:     cfg.Analysis.WaiverLimits,
		CacheTTL:         cfg.CacheTTL,
	})

	// Stat feed ingester
	ingester := ingest.NewIngester(ingest.NewClient(cfg.StatsFeedURL), db)

	// Scheduler: periodic stat refresh plus the nightly analysis run
	schedulerConfig := &scheduler.Config{
		IngestInterval: cfg.IngestInterval,
		AnalysisHour:   cfg.AnalysisHour,
		Seasons:        cfg.Seasons,
		EnableIngest:   getEnv("ENABLE_INGEST", "true") == "true",
		EnableAnalysis: getEnv("ENABLE_ANALYSIS", "true") == "true",
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
	}

	sched := scheduler.NewOrchestrator(ingester, runner, m, schedulerConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)

	log.Println("✓ Scheduler started")

	// Initialize REST API server
	restServer := rest.NewServer(cfg.RESTAddr, db, redisCache, writer, rules, runner, m)
	go func() {
		log.Printf("Starting REST API server on %s", cfg.RESTAddr)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on %s", cfg.RESTAddr)

	// Initialize WebSocket server
	wsServer := websocket.NewServer(redisCache, m)
	go func() {
		log.Printf("Starting WebSocket server on %s", cfg.WSAddr)
		if err := wsServer.Start(ctx, cfg.WSAddr); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on %s", cfg.WSAddr)
	log.Printf("✓ Gridiron v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0%s", cfg.RESTAddr)
	log.Printf("  WebSocket: ws://0.0.0.0%s", cfg.WSAddr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Gridiron gracefully...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Gridiron stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
