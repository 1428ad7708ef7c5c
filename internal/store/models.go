package store

import (
	"time"
)

// StatRow is one player's canonical counting line for one game. The sparse
// Stats map uses the canonical stat names produced by the ingest layer;
// a stat that did not occur is simply absent and reads as zero.
type StatRow struct {
	Season     int                `json:"season" db:"season"`
	Week       int                `json:"week" db:"week"`
	PlayerID   string             `json:"player_id" db:"player_id"`
	PlayerName string             `json:"player_display_name" db:"player_display_name"`
	Position   string             `json:"position" db:"position"`
	Team       string             `json:"recent_team" db:"recent_team"`
	HomeTeam   string             `json:"home_team" db:"home_team"`
	AwayTeam   string             `json:"away_team" db:"away_team"`
	Stats      map[string]float64 `json:"stats" db:"stats"`
}

// Stat returns the named counter, or zero when the row does not carry it.
func (r StatRow) Stat(name string) float64 {
	return r.Stats[name]
}

// Opponent derives the team this player faced from the home/away pair.
func (r StatRow) Opponent() string {
	if r.Team == r.HomeTeam {
		return r.AwayTeam
	}
	return r.HomeTeam
}

// ScoredRow is a StatRow plus its fantasy-point total under the league
// rules. Computed once per row and never mutated afterward.
type ScoredRow struct {
	StatRow
	FantasyPoints float64 `json:"fantasy_points"`
}

// Season represents one NFL season
type Season struct {
	Season    int       `json:"season" db:"season"`
	Label     string    `json:"label" db:"label"`
	IsCurrent bool      `json:"is_current" db:"is_current"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Team represents an NFL franchise
type Team struct {
	Abbreviation string    `json:"abbreviation" db:"abbreviation"`
	FullName     string    `json:"full_name" db:"full_name"`
	Conference   string    `json:"conference" db:"conference"`
	Division     string    `json:"division" db:"division"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Game represents one scheduled (or completed) NFL game
type Game struct {
	GameID    int       `json:"game_id" db:"game_id"`
	Season    int       `json:"season" db:"season"`
	Week      int       `json:"week" db:"week"`
	HomeTeam  string    `json:"home_team" db:"home_team"`
	AwayTeam  string    `json:"away_team" db:"away_team"`
	Kickoff   time.Time `json:"kickoff" db:"kickoff"`
	Final     bool      `json:"final" db:"final"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Involves reports whether the given team plays in this game.
func (g Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// OpponentOf returns the other side of this game, or "" when the team
// does not play in it.
func (g Game) OpponentOf(team string) string {
	switch team {
	case g.HomeTeam:
		return g.AwayTeam
	case g.AwayTeam:
		return g.HomeTeam
	}
	return ""
}
