package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/ingest"
	"github.com/fortuna/gridiron/internal/metrics"
)

// Orchestrator manages the scheduled ingestion and analysis tasks
type Orchestrator struct {
	ingester *ingest.Ingester
	runner   *analysis.Runner
	metrics  *metrics.Metrics
	config   *Config
	cancel   context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	IngestInterval time.Duration // Default: 30m
	AnalysisHour   int           // Default: 4 (4 AM)
	Seasons        []int
	EnableIngest   bool // Default: true
	EnableAnalysis bool // Default: true
	MaxRetries     int  // Default: 3
	RetryDelay     time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		IngestInterval: 30 * time.Minute,
		AnalysisHour:   4,
		EnableIngest:   true,
		EnableAnalysis: true,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(ingester *ingest.Ingester, runner *analysis.Runner, m *metrics.Metrics, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		ingester: ingester,
		runner:   runner,
		metrics:  m,
		config:   config,
	}
}

// Start begins all scheduled tasks and blocks until the context ends.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Gridiron Scheduler Orchestrator     ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Stat polling: %v (interval: %v)", o.config.EnableIngest, o.config.IngestInterval)
	log.Printf("Nightly analysis: %v (at %02d:00)", o.config.EnableAnalysis, o.config.AnalysisHour)
	log.Printf("Seasons: %v", o.config.Seasons)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableIngest {
		go o.runStatPolling(ctx)
	}

	if o.config.EnableAnalysis {
		go o.runNightlyAnalysis(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// Stop cancels all scheduled tasks
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// runStatPolling refreshes the current season's stats on a fixed interval
func (o *Orchestrator) runStatPolling(ctx context.Context) {
	log.Printf("→ Stat polling started (interval: %v)", o.config.IngestInterval)

	ticker := time.NewTicker(o.config.IngestInterval)
	defer ticker.Stop()

	// Run immediately on start
	o.pollStatsWithRetry(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Stat polling stopped")
			return
		case <-ticker.C:
			o.pollStatsWithRetry(ctx)
		}
	}
}

// pollStatsWithRetry re-ingests the newest configured season with retries
func (o *Orchestrator) pollStatsWithRetry(ctx context.Context) {
	if len(o.config.Seasons) == 0 {
		return
	}
	season := o.config.Seasons[len(o.config.Seasons)-1]

	var stored int
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		stored, err = o.ingester.IngestSeason(ctx, season)
		if err == nil {
			break
		}

		log.Printf("  ⚠️  Polling attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	if err != nil {
		log.Printf("  ❌ All %d retry attempts failed for season %d", o.config.MaxRetries, season)
		if o.metrics != nil {
			o.metrics.IngestErrors.Inc()
		}
		return
	}

	if o.metrics != nil {
		o.metrics.RowsIngested.Add(float64(stored))
	}

	// The schedule changes rarely; refresh it on the same cadence so
	// newly final games flip the upcoming-week pointer.
	games, err := o.ingester.IngestSchedule(ctx, season)
	if err != nil {
		log.Printf("  ⚠️  Schedule refresh failed: %v", err)
		return
	}
	if o.metrics != nil {
		o.metrics.GamesIngested.Add(float64(games))
	}
}

// runNightlyAnalysis regenerates every report once a day
func (o *Orchestrator) runNightlyAnalysis(ctx context.Context) {
	log.Printf("→ Nightly analysis scheduler started (runs at %02d:00 daily)", o.config.AnalysisHour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.AnalysisHour, 0, 0, 0, now.Location())

		// If we've passed today's run time, schedule for tomorrow
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next analysis run: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Nightly analysis scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println()
			log.Println("═══ Nightly Analysis Starting ═══")
			o.runAnalysisTask(ctx)
			log.Println("═══ Nightly Analysis Complete ═══")
			log.Println()
		}
	}
}

// runAnalysisTask performs one full analysis run
func (o *Orchestrator) runAnalysisTask(ctx context.Context) {
	startTime := time.Now()

	manifest, err := o.runner.Run(ctx)
	if err != nil {
		log.Printf("❌ Analysis run failed: %v", err)
		return
	}

	log.Printf("✓ Analysis run %s complete in %v", manifest.RunID, time.Since(startTime).Round(time.Second))
}
