package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/ingest"
	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
)

const (
	appName    = "gridiron-analyze"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	var (
		csvPath  = flag.String("csv", "", "Score a local stat CSV directly instead of reading the database")
		seasons  = flag.String("seasons", "", "Comma-separated seasons to analyze (overrides config)")
		backfill = flag.Bool("backfill", false, "Ingest the configured seasons before analyzing")
		outDir   = flag.String("out", "", "Artifacts directory (overrides config)")
	)

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	if *seasons != "" {
		parsed, err := parseSeasons(*seasons)
		if err != nil {
			log.Fatalf("parse --seasons: %v", err)
		}
		cfg.Seasons = parsed
	}
	if *outDir != "" {
		cfg.ArtifactsDir = *outDir
	}

	rules, err := scoring.Load(cfg.ScoringRulesPath)
	if err != nil {
		log.Fatalf("load scoring rules: %v", err)
	}

	roster, err := analysis.LoadRoster(cfg.RosterPath)
	if err != nil {
		log.Printf("⚠️  Roster not loaded: %v (matchup report will be empty)", err)
	}

	writer, err := analysis.NewWriter(cfg.ArtifactsDir)
	if err != nil {
		log.Fatalf("prepare artifacts dir: %v", err)
	}

	ctx := context.Background()

	params := analysis.RunnerParams{
		Seasons:          cfg.Seasons,
		Rules:            rules,
		Roster:           roster,
		MinGames:         cfg.Analysis.MinGamesPlayed,
		NumTiers:         cfg.Analysis.NumTiers,
		Floors:           cfg.Analysis.ConsistencyFloors,
		ReplacementRanks: cfg.Analysis.ReplacementRanks,
		TierPositions:    cfg.Analysis.TierPositions,
		WaiverLimits:     cfg.Analysis.WaiverLimits,
	}

	// CSV mode needs no database at all
	if *csvPath != "" {
		rows, err := ingest.LoadCSVFile(*csvPath)
		if err != nil {
			log.Fatalf("load CSV: %v", err)
		}

		runner := analysis.NewRunner(nil, writer, nil, nil, nil, params)
		manifest, err := runner.RunFromRows(ctx, rows, nil)
		if err != nil {
			log.Fatalf("analysis failed: %v", err)
		}

		log.Printf("✓ Run %s wrote %d artifacts to %s", manifest.RunID, len(manifest.Artifacts), cfg.ArtifactsDir)
		return
	}

	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	if *backfill {
		ingester := ingest.NewIngester(ingest.NewClient(cfg.StatsFeedURL), db)
		if err := ingester.BackfillSeasons(ctx, cfg.Seasons); err != nil {
			log.Fatalf("backfill failed: %v", err)
		}
	}

	runner := analysis.NewRunner(db, writer, nil, nil, nil, params)
	manifest, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	log.Printf("✓ Run %s wrote %d artifacts to %s", manifest.RunID, len(manifest.Artifacts), cfg.ArtifactsDir)
}

func parseSeasons(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	seasons := make([]int, 0, len(parts))
	for _, part := range parts {
		season, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}
