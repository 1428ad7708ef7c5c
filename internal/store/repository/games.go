package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// GameRepository handles schedule data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// SeasonSchedule returns every game for a season in week order.
func (r *GameRepository) SeasonSchedule(ctx context.Context, season int) ([]store.Game, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team,
			COALESCE(kickoff, 'epoch'::timestamptz), final, created_at, updated_at
		FROM games
		WHERE season = $1
		ORDER BY week, home_team
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// UpcomingGames returns the non-final games for a season in week order.
func (r *GameRepository) UpcomingGames(ctx context.Context, season int) ([]store.Game, error) {
	query := `
		SELECT game_id, season, week, home_team, away_team,
			COALESCE(kickoff, 'epoch'::timestamptz), final, created_at, updated_at
		FROM games
		WHERE season = $1 AND final = FALSE
		ORDER BY week, home_team
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying upcoming games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// Upsert inserts or updates one game keyed by (season, week, home_team).
func (r *GameRepository) Upsert(ctx context.Context, game store.Game) error {
	query := `
		INSERT INTO games (season, week, home_team, away_team, kickoff, final)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (season, week, home_team) DO UPDATE SET
			away_team = EXCLUDED.away_team,
			kickoff = EXCLUDED.kickoff,
			final = EXCLUDED.final,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		game.Season, game.Week, game.HomeTeam, game.AwayTeam, game.Kickoff, game.Final,
	)
	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}

	return nil
}

// MarkFinalThrough marks every game at or before the given week as final.
func (r *GameRepository) MarkFinalThrough(ctx context.Context, season, week int) (int64, error) {
	query := `UPDATE games SET final = TRUE, updated_at = NOW() WHERE season = $1 AND week <= $2 AND final = FALSE`

	res, err := r.db.DB().ExecContext(ctx, query, season, week)
	if err != nil {
		return 0, fmt.Errorf("marking games final: %w", err)
	}
	return res.RowsAffected()
}

func scanGames(rows *sql.Rows) ([]store.Game, error) {
	var games []store.Game
	for rows.Next() {
		var g store.Game
		err := rows.Scan(
			&g.GameID, &g.Season, &g.Week, &g.HomeTeam, &g.AwayTeam,
			&g.Kickoff, &g.Final, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}
