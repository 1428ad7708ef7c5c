package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// TeamRepository handles franchise data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// List returns every franchise, ordered by abbreviation.
func (r *TeamRepository) List(ctx context.Context) ([]store.Team, error) {
	query := `
		SELECT abbreviation, full_name, conference, division, created_at
		FROM teams
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []store.Team
	for rows.Next() {
		var t store.Team
		if err := rows.Scan(&t.Abbreviation, &t.FullName, &t.Conference, &t.Division, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// Get returns one franchise by abbreviation.
func (r *TeamRepository) Get(ctx context.Context, abbreviation string) (*store.Team, error) {
	query := `
		SELECT abbreviation, full_name, conference, division, created_at
		FROM teams
		WHERE abbreviation = $1
	`

	var t store.Team
	err := r.db.DB().QueryRowContext(ctx, query, abbreviation).Scan(
		&t.Abbreviation, &t.FullName, &t.Conference, &t.Division, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("team %s not found: %w", abbreviation, err)
	}

	return &t, nil
}
