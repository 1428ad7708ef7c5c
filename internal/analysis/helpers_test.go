package analysis

import "github.com/fortuna/gridiron/internal/store"

// scored builds one scored row for report tests.
func scored(id, name, pos, team string, season, week int, pts float64) store.ScoredRow {
	return store.ScoredRow{
		StatRow: store.StatRow{
			Season:     season,
			Week:       week,
			PlayerID:   id,
			PlayerName: name,
			Position:   pos,
			Team:       team,
			Stats:      map[string]float64{},
		},
		FantasyPoints: pts,
	}
}

// scoredVs is scored with an explicit home/away pair so Opponent() works.
func scoredVs(id, name, pos, team, opp string, season, week int, pts float64) store.ScoredRow {
	row := scored(id, name, pos, team, season, week, pts)
	row.HomeTeam = team
	row.AwayTeam = opp
	return row
}

// weeksOf produces n consecutive weeks of identical-position rows with the
// given per-week points.
func weeksOf(id, name, pos, team string, season int, points []float64) []store.ScoredRow {
	rows := make([]store.ScoredRow, 0, len(points))
	for i, pts := range points {
		rows = append(rows, scored(id, name, pos, team, season, i+1, pts))
	}
	return rows
}
