package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// statStore is the slice of the stats repository ingestion needs.
type statStore interface {
	Upsert(ctx context.Context, row store.StatRow) error
	LatestWeek(ctx context.Context) (season int, week int, ok bool, err error)
}

// gameStore is the slice of the game repository ingestion needs.
type gameStore interface {
	Upsert(ctx context.Context, game store.Game) error
	MarkFinalThrough(ctx context.Context, season, week int) (int64, error)
}

// Ingester pulls weekly stat feeds and schedules into the database
type Ingester struct {
	client *Client
	stats  statStore
	games  gameStore
}

// NewIngester creates an ingester backed by the given database
func NewIngester(client *Client, db *store.Database) *Ingester {
	return &Ingester{
		client: client,
		stats:  repository.NewStatsRepository(db),
		games:  repository.NewGameRepository(db),
	}
}

// IngestSeason fetches one season's weekly stats and upserts every row.
// Re-running is safe: rows collide on (season, week, player) and the newer
// line wins.
func (i *Ingester) IngestSeason(ctx context.Context, season int) (int, error) {
	log.Printf("Ingesting weekly stats for season %d...", season)

	records, err := i.client.FetchSeason(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("fetching season %d: %w", season, err)
	}

	rows, skipped, err := NormalizeRecords(records)
	if err != nil {
		return 0, fmt.Errorf("normalizing season %d: %w", season, err)
	}
	if skipped > 0 {
		log.Printf("⚠️  Skipped %d malformed records in season %d feed", skipped, season)
	}

	stored := 0
	for _, row := range rows {
		if err := i.stats.Upsert(ctx, row); err != nil {
			return stored, fmt.Errorf("storing stats for %s week %d: %w", row.PlayerID, row.Week, err)
		}
		stored++
	}

	log.Printf("✓ Stored %d stat lines for season %d", stored, season)
	return stored, nil
}

// IngestSchedule fetches and stores one season's schedule, then marks
// completed games final.
func (i *Ingester) IngestSchedule(ctx context.Context, season int) (int, error) {
	log.Printf("Ingesting schedule for season %d...", season)

	games, err := i.client.FetchSchedule(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("fetching schedule %d: %w", season, err)
	}

	return i.storeSchedule(ctx, season, games)
}

// storeSchedule upserts the games, then closes out every week the stat
// feed already covers. The scrape only flags a game final when its score
// cell was posted; a week with stat lines was played regardless.
func (i *Ingester) storeSchedule(ctx context.Context, season int, games []store.Game) (int, error) {
	stored := 0
	for _, game := range games {
		if err := i.games.Upsert(ctx, game); err != nil {
			return stored, fmt.Errorf("storing game %s@%s week %d: %w", game.AwayTeam, game.HomeTeam, game.Week, err)
		}
		stored++
	}

	statSeason, week, ok, err := i.stats.LatestWeek(ctx)
	if err != nil {
		return stored, fmt.Errorf("finding latest stat week: %w", err)
	}
	if ok && statSeason == season {
		finalized, err := i.games.MarkFinalThrough(ctx, season, week)
		if err != nil {
			return stored, fmt.Errorf("finalizing games through week %d: %w", week, err)
		}
		if finalized > 0 {
			log.Printf("✓ Marked %d games final through week %d", finalized, week)
		}
	}

	log.Printf("✓ Stored %d games for season %d", stored, season)
	return stored, nil
}

// BackfillSeasons ingests stats and schedules for every requested season.
func (i *Ingester) BackfillSeasons(ctx context.Context, seasons []int) error {
	log.Printf("Starting backfill for seasons %v", seasons)

	for _, season := range seasons {
		if _, err := i.IngestSeason(ctx, season); err != nil {
			return fmt.Errorf("season %d stats: %w", season, err)
		}
		if _, err := i.IngestSchedule(ctx, season); err != nil {
			// A missing schedule page degrades matchup output but the
			// stat data is still usable.
			log.Printf("⚠️  Schedule ingest failed for season %d: %v", season, err)
		}
	}

	log.Println("✓ Backfill complete")
	return nil
}

// IngestCSVFile loads stat rows from a local CSV export instead of the
// network feed. Used by the one-shot analyzer.
func (i *Ingester) IngestCSVFile(ctx context.Context, path string) (int, error) {
	rows, err := LoadCSVFile(path)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, row := range rows {
		if err := i.stats.Upsert(ctx, row); err != nil {
			return stored, fmt.Errorf("storing stats for %s: %w", row.PlayerID, err)
		}
		stored++
	}

	log.Printf("✓ Stored %d stat lines from %s", stored, path)
	return stored, nil
}

// LoadCSVFile parses a local stat CSV into normalized rows without touching
// the database.
func LoadCSVFile(path string) ([]store.StatRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rows, skipped, err := NormalizeRecords(records)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("⚠️  Skipped %d malformed records in %s", skipped, path)
	}

	return rows, nil
}
