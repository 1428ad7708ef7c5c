package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// StatsRepository handles player-game stat rows
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// LoadSeasons returns every stat row for the given seasons, ordered by
// (season, week, player_id) so repeated runs see an identical snapshot.
func (r *StatsRepository) LoadSeasons(ctx context.Context, seasons []int) ([]store.StatRow, error) {
	query := `
		SELECT season, week, player_id, player_display_name, position,
			recent_team, home_team, away_team, stats
		FROM player_game_stats
		WHERE season = ANY($1)
		ORDER BY season, week, player_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(seasons))
	if err != nil {
		return nil, fmt.Errorf("querying stat rows: %w", err)
	}
	defer rows.Close()

	return scanStatRows(rows)
}

// PlayerGameLog returns one player's rows for a season in week order.
func (r *StatsRepository) PlayerGameLog(ctx context.Context, playerID string, season int) ([]store.StatRow, error) {
	query := `
		SELECT season, week, player_id, player_display_name, position,
			recent_team, home_team, away_team, stats
		FROM player_game_stats
		WHERE player_id = $1 AND season = $2
		ORDER BY week
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("querying game log: %w", err)
	}
	defer rows.Close()

	return scanStatRows(rows)
}

// LatestWeek returns the most recent (season, week) present in the
// snapshot; ok is false when the table is empty.
func (r *StatsRepository) LatestWeek(ctx context.Context) (season int, week int, ok bool, err error) {
	query := `
		SELECT season, week
		FROM player_game_stats
		ORDER BY season DESC, week DESC
		LIMIT 1
	`

	err = r.db.DB().QueryRowContext(ctx, query).Scan(&season, &week)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("querying latest week: %w", err)
	}
	return season, week, true, nil
}

// Upsert inserts or updates one stat row keyed by (season, week, player).
func (r *StatsRepository) Upsert(ctx context.Context, row store.StatRow) error {
	stats, err := json.Marshal(row.Stats)
	if err != nil {
		return fmt.Errorf("marshaling stats for %s: %w", row.PlayerID, err)
	}

	query := `
		INSERT INTO player_game_stats (season, week, player_id, player_display_name,
			position, recent_team, home_team, away_team, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (season, week, player_id) DO UPDATE SET
			player_display_name = EXCLUDED.player_display_name,
			position = EXCLUDED.position,
			recent_team = EXCLUDED.recent_team,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			stats = EXCLUDED.stats,
			updated_at = NOW()
	`

	_, err = r.db.DB().ExecContext(ctx, query,
		row.Season, row.Week, row.PlayerID, row.PlayerName,
		row.Position, row.Team, row.HomeTeam, row.AwayTeam, stats,
	)
	if err != nil {
		return fmt.Errorf("upserting stat row: %w", err)
	}

	return nil
}

// scanStatRows scans multiple stat rows, decoding the JSONB stat map
func scanStatRows(rows *sql.Rows) ([]store.StatRow, error) {
	var all []store.StatRow
	for rows.Next() {
		var row store.StatRow
		var stats []byte

		err := rows.Scan(
			&row.Season, &row.Week, &row.PlayerID, &row.PlayerName, &row.Position,
			&row.Team, &row.HomeTeam, &row.AwayTeam, &stats,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stat row: %w", err)
		}

		if err := json.Unmarshal(stats, &row.Stats); err != nil {
			return nil, fmt.Errorf("decoding stats for %s: %w", row.PlayerID, err)
		}

		all = append(all, row)
	}

	return all, rows.Err()
}
