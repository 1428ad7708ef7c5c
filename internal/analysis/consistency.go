package analysis

import (
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// ConsistencyConfig controls the multi-season consistency report.
type ConsistencyConfig struct {
	Seasons  []int
	MinGames int
	// Floors maps a position to the per-game score that counts as a
	// "good" game. Positions without a floor score 0% by definition.
	Floors map[string]float64
}

// PlayerConsistency is one player's row in the consistency report.
type PlayerConsistency struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_display_name"`
	Position       string  `json:"position"`
	GamesPlayed    int     `json:"games_played"`
	MeanPPG        float64 `json:"mean_ppg"`
	StdDevPPG      float64 `json:"std_dev_ppg"`
	CeilingPPG     float64 `json:"ceiling_ppg"` // 90th percentile
	FloorPPG       float64 `json:"floor_ppg"`   // 10th percentile
	ConsistencyPct float64 `json:"consistency_pct"`
}

// ConsistencyReport is the self-describing artifact for one analysis window.
type ConsistencyReport struct {
	AnalysisSeasons []int               `json:"analysis_seasons"`
	Players         []PlayerConsistency `json:"players"`
}

// BuildConsistencyReport computes per-player spread and consistency over
// the configured seasons. Players below the minimum-games floor are
// excluded entirely; a player at exactly the floor is included.
func BuildConsistencyReport(rows []store.ScoredRow, cfg ConsistencyConfig) *ConsistencyReport {
	window := filterSeasons(rows, cfg.Seasons)

	var players []PlayerConsistency
	for _, pg := range groupByPlayer(window) {
		if len(pg.games) < cfg.MinGames {
			continue
		}

		pts := pg.points()
		floor, hasFloor := cfg.Floors[pg.key.Position]

		var pct float64
		if hasFloor && floor > 0 {
			good := 0
			for _, p := range pts {
				if p >= floor {
					good++
				}
			}
			pct = float64(good) / float64(len(pts)) * 100
		}

		players = append(players, PlayerConsistency{
			PlayerID:       pg.key.PlayerID,
			PlayerName:     pg.key.Name,
			Position:       pg.key.Position,
			GamesPlayed:    len(pts),
			MeanPPG:        round2(mean(pts)),
			StdDevPPG:      round2(stddevSample(pts)),
			CeilingPPG:     round2(percentile(pts, 0.9)),
			FloorPPG:       round2(percentile(pts, 0.1)),
			ConsistencyPct: round2(pct),
		})
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Position != players[j].Position {
			return players[i].Position < players[j].Position
		}
		if players[i].ConsistencyPct != players[j].ConsistencyPct {
			return players[i].ConsistencyPct > players[j].ConsistencyPct
		}
		return players[i].MeanPPG > players[j].MeanPPG
	})

	return &ConsistencyReport{
		AnalysisSeasons: cfg.Seasons,
		Players:         players,
	}
}

func filterSeasons(rows []store.ScoredRow, seasons []int) []store.ScoredRow {
	if len(seasons) == 0 {
		return rows
	}
	want := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	var out []store.ScoredRow
	for _, row := range rows {
		if want[row.Season] {
			out = append(out, row)
		}
	}
	return out
}
