package analysis

import (
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// WaiverConfig controls the waiver-wire report.
type WaiverConfig struct {
	// TopN maps a position to how many of the week's best performers to
	// surface for it.
	TopN map[string]int
}

// WaiverEntry is one top performer for the latest completed week.
type WaiverEntry struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_display_name"`
	Team          string  `json:"recent_team"`
	FantasyPoints float64 `json:"fantasy_points"`
}

// WaiverReport is the self-describing artifact for the latest week.
type WaiverReport struct {
	Season    int                      `json:"season"`
	Week      int                      `json:"week"`
	Positions map[string][]WaiverEntry `json:"positions"`
}

// BuildWaiverReport lists the top scorers per position for the most
// recent (season, week) present in the snapshot. An empty snapshot yields
// an empty report.
func BuildWaiverReport(rows []store.ScoredRow, cfg WaiverConfig) *WaiverReport {
	report := &WaiverReport{Positions: make(map[string][]WaiverEntry, len(cfg.TopN))}
	if len(rows) == 0 {
		for pos := range cfg.TopN {
			report.Positions[pos] = []WaiverEntry{}
		}
		return report
	}

	for _, row := range rows {
		if row.Season > report.Season {
			report.Season = row.Season
		}
	}
	for _, row := range rows {
		if row.Season == report.Season && row.Week > report.Week {
			report.Week = row.Week
		}
	}

	byPosition := make(map[string][]WaiverEntry)
	for _, row := range rows {
		if row.Season != report.Season || row.Week != report.Week {
			continue
		}
		if _, tracked := cfg.TopN[row.Position]; !tracked {
			continue
		}
		byPosition[row.Position] = append(byPosition[row.Position], WaiverEntry{
			PlayerID:      row.PlayerID,
			PlayerName:    row.PlayerName,
			Team:          row.Team,
			FantasyPoints: round2(row.FantasyPoints),
		})
	}

	for pos, limit := range cfg.TopN {
		entries := byPosition[pos]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].FantasyPoints > entries[j].FantasyPoints
		})
		if len(entries) > limit {
			entries = entries[:limit]
		}
		if entries == nil {
			entries = []WaiverEntry{}
		}
		report.Positions[pos] = entries
	}

	return report
}
