package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/metrics"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// RunnerParams carries everything one analysis run needs to know.
type RunnerParams struct {
	Seasons  []int
	Rules    *scoring.Rules
	Roster   *Roster
	MinGames int
	NumTiers int
	Floors   map[string]float64
	// ReplacementRanks maps position to the 1-indexed replacement cutoff.
	ReplacementRanks map[string]int
	TierPositions    []string
	// WaiverLimits maps position to how many waiver candidates to surface.
	WaiverLimits map[string]int
	CacheTTL     time.Duration
}

// Runner executes a full analysis pass: load rows, score them, build every
// report, persist the artifacts, then fan the results out.
type Runner struct {
	stats     *repository.StatsRepository
	games     *repository.GameRepository
	writer    *Writer
	cache     *cache.RedisCache
	publisher *publisher.RedisStreamPublisher
	metrics   *metrics.Metrics
	params    RunnerParams
}

// NewRunner wires an analysis runner. Cache, publisher, and metrics may be
// nil; the run then skips those steps.
func NewRunner(db *store.Database, writer *Writer, c *cache.RedisCache, p *publisher.RedisStreamPublisher, m *metrics.Metrics, params RunnerParams) *Runner {
	return &Runner{
		stats:     repository.NewStatsRepository(db),
		games:     repository.NewGameRepository(db),
		writer:    writer,
		cache:     c,
		publisher: p,
		metrics:   m,
		params:    params,
	}
}

// Run loads the configured seasons from the database and produces every
// artifact. The returned manifest describes the completed run.
func (r *Runner) Run(ctx context.Context) (*Manifest, error) {
	rows, err := r.stats.LoadSeasons(ctx, r.params.Seasons)
	if err != nil {
		r.countFailure()
		return nil, fmt.Errorf("loading seasons %v: %w", r.params.Seasons, err)
	}
	if len(rows) == 0 {
		r.countFailure()
		return nil, fmt.Errorf("no stat rows for seasons %v", r.params.Seasons)
	}

	var schedule []store.Game
	if len(r.params.Seasons) > 0 {
		current := r.params.Seasons[len(r.params.Seasons)-1]
		schedule, err = r.games.SeasonSchedule(ctx, current)
		if err != nil {
			log.Printf("⚠️  Loading schedule for %d failed, matchup report degrades: %v", current, err)
		}
	}

	return r.run(ctx, rows, schedule)
}

// RunFromRows produces every artifact directly from the given rows,
// bypassing the database. Used by the one-shot analyzer on CSV input.
func (r *Runner) RunFromRows(ctx context.Context, rows []store.StatRow, schedule []store.Game) (*Manifest, error) {
	if len(rows) == 0 {
		r.countFailure()
		return nil, fmt.Errorf("no stat rows supplied")
	}
	return r.run(ctx, rows, schedule)
}

func (r *Runner) run(ctx context.Context, rows []store.StatRow, schedule []store.Game) (*Manifest, error) {
	started := time.Now()
	log.Printf("Starting analysis run: %d rows, seasons %v", len(rows), r.params.Seasons)

	scored := scoring.Apply(rows, r.params.Rules)
	currentSeason := r.currentSeason(scored)

	reports := map[string]any{}

	consistency := BuildConsistencyReport(scored, ConsistencyConfig{
		Seasons:  r.params.Seasons,
		MinGames: r.params.MinGames,
		Floors:   r.params.Floors,
	})
	reports[ArtifactConsistency] = consistency

	reports[ArtifactTiers] = BuildTierReport(scored, TierConfig{
		Season:    currentSeason,
		NumTiers:  r.params.NumTiers,
		Positions: r.params.TierPositions,
		MinGames:  r.params.MinGames,
	})

	reports[ArtifactVORP] = BuildVORPReport(scored, VORPConfig{
		Season:           currentSeason,
		ReplacementRanks: r.params.ReplacementRanks,
	})

	ranks := BuildTeamRankingReport(scored, TeamRankingConfig{Season: currentSeason})
	reports[ArtifactTeamRankings] = ranks

	reports[ArtifactMatchups] = BuildMatchupReport(scored, ranks, schedule, r.params.Roster, MatchupConfig{Season: currentSeason})

	reports[ArtifactWaivers] = BuildWaiverReport(scored, WaiverConfig{TopN: r.params.WaiverLimits})

	weekly, form, players := BuildWeeklyFeeds(scored)
	reports[ArtifactWeeklyPoints] = weekly
	reports[ArtifactForm] = form
	reports[ArtifactPlayers] = players

	for _, name := range ArtifactNames {
		report, ok := reports[name]
		if !ok {
			continue
		}
		if err := r.writer.Write(name, report); err != nil {
			r.countFailure()
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		if r.metrics != nil {
			r.metrics.ArtifactsWritten.Inc()
		}
	}

	manifest := NewManifest(r.params.Seasons, ArtifactNames)
	if err := r.writer.Write("manifest", manifest); err != nil {
		r.countFailure()
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	status := &Status{
		GeneratedUTC: manifest.GeneratedUTC,
		Season:       currentSeason,
		Week:         latestWeek(scored, currentSeason),
		Notes:        fmt.Sprintf("%d stat lines analyzed", len(scored)),
	}
	if err := r.writer.Write("status", status); err != nil {
		r.countFailure()
		return nil, fmt.Errorf("writing status: %w", err)
	}

	r.cacheReports(ctx, reports, manifest)
	r.publish(ctx, manifest)

	if r.metrics != nil {
		r.metrics.AnalysisRuns.Inc()
		r.metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	}

	log.Printf("✓ Analysis run %s complete in %v", manifest.RunID, time.Since(started).Round(time.Millisecond))
	return manifest, nil
}

func (r *Runner) cacheReports(ctx context.Context, reports map[string]any, manifest *Manifest) {
	if r.cache == nil {
		return
	}
	for name, report := range reports {
		payload, err := json.Marshal(report)
		if err != nil {
			log.Printf("⚠️  Marshaling %s for cache failed: %v", name, err)
			continue
		}
		if err := r.cache.SetReport(ctx, name, payload, r.params.CacheTTL); err != nil {
			log.Printf("⚠️  Caching %s failed: %v", name, err)
		}
	}
	if payload, err := json.Marshal(manifest); err == nil {
		if err := r.cache.SetReport(ctx, "manifest", payload, r.params.CacheTTL); err != nil {
			log.Printf("⚠️  Caching manifest failed: %v", err)
		}
	}
}

func (r *Runner) publish(ctx context.Context, manifest *Manifest) {
	if r.publisher == nil {
		return
	}
	event := publisher.ReportEvent{
		RunID:     manifest.RunID,
		Seasons:   manifest.Seasons,
		Artifacts: manifest.Artifacts,
	}
	if err := r.publisher.PublishReportGenerated(ctx, event); err != nil {
		log.Printf("⚠️  Publishing report event failed: %v", err)
	}
}

func (r *Runner) countFailure() {
	if r.metrics != nil {
		r.metrics.AnalysisFailures.Inc()
	}
}

// currentSeason is the newest season present in the scored rows.
func (r *Runner) currentSeason(rows []store.ScoredRow) int {
	current := 0
	for _, row := range rows {
		if row.Season > current {
			current = row.Season
		}
	}
	return current
}

func latestWeek(rows []store.ScoredRow, season int) int {
	week := 0
	for _, row := range rows {
		if row.Season == season && row.Week > week {
			week = row.Week
		}
	}
	return week
}
