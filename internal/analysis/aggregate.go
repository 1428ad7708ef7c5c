// Package analysis builds the derived-metric reports (consistency, draft
// tiers, VORP, team rankings, matchups, waiver wire) from scored rows.
// Every report is computed from an immutable snapshot in one pass and
// discarded at the end of the run; nothing here carries state between runs.
package analysis

import (
	"math"
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// playerKey identifies one player within a grouping pass.
type playerKey struct {
	PlayerID string
	Name     string
	Position string
}

// playerGames collects a player's per-game points in (season, week) order.
type playerGames struct {
	key    playerKey
	Team   string
	games  []gamePoints
	totals map[string]float64
}

type gamePoints struct {
	Season int
	Week   int
	Points float64
}

func (p *playerGames) points() []float64 {
	pts := make([]float64, len(p.games))
	for i, g := range p.games {
		pts[i] = g.Points
	}
	return pts
}

// groupByPlayer buckets rows per player, keeping first-seen order so that
// downstream stable sorts are deterministic. The Team field tracks the
// most recent appearance.
func groupByPlayer(rows []store.ScoredRow) []*playerGames {
	index := make(map[playerKey]*playerGames)
	var order []*playerGames

	for _, row := range rows {
		key := playerKey{PlayerID: row.PlayerID, Name: row.PlayerName, Position: row.Position}
		pg, ok := index[key]
		if !ok {
			pg = &playerGames{key: key, totals: make(map[string]float64)}
			index[key] = pg
			order = append(order, pg)
		}
		pg.Team = row.Team
		pg.games = append(pg.games, gamePoints{Season: row.Season, Week: row.Week, Points: row.FantasyPoints})
		for name, v := range row.Stats {
			pg.totals[name] += v
		}
	}

	for _, pg := range order {
		sort.SliceStable(pg.games, func(i, j int) bool {
			if pg.games[i].Season != pg.games[j].Season {
				return pg.games[i].Season < pg.games[j].Season
			}
			return pg.games[i].Week < pg.games[j].Week
		})
	}

	return order
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stddevSample is the n-1 standard deviation used for per-player spread;
// zero when fewer than two games exist.
func stddevSample(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// stddevPop is the population standard deviation used for tier widths.
func stddevPop(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}

// percentile returns the linearly interpolated q-th percentile (q in
// [0, 1]) of the values, matching the ceiling/floor numbers the previous
// report generation produced.
func percentile(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// round2 rounds half away from zero to 2 decimals; applied at the output
// boundary of every report.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
