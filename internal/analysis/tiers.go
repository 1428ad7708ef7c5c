package analysis

import (
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// TierConfig controls the draft tier report for one season.
type TierConfig struct {
	Season    int
	NumTiers  int
	Positions []string
	// MinGames drops small samples before tiering; zero keeps everyone.
	MinGames int
}

// TieredPlayer is one player's row in the tier report.
type TieredPlayer struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_display_name"`
	Team       string  `json:"recent_team"`
	PPG        float64 `json:"ppg"`
	Tier       int     `json:"tier"`
}

// TierReport is the self-describing artifact for one season.
type TierReport struct {
	Season    int                       `json:"season"`
	NumTiers  int                       `json:"num_tiers"`
	Positions map[string][]TieredPlayer `json:"positions"`
}

// BuildTierReport assigns each position's players to draft tiers.
// Boundaries sit at top − k·σ·0.75 (population σ of the position's ppg)
// for k = 1..N; a player lands in the lowest-indexed tier whose boundary
// they meet, else the last tier. A position with no eligible players
// yields an empty slice, never an error.
func BuildTierReport(rows []store.ScoredRow, cfg TierConfig) *TierReport {
	season := filterSeasons(rows, []int{cfg.Season})
	grouped := groupByPlayer(season)

	report := &TierReport{
		Season:    cfg.Season,
		NumTiers:  cfg.NumTiers,
		Positions: make(map[string][]TieredPlayer, len(cfg.Positions)),
	}

	byPosition := make(map[string][]TieredPlayer)
	ppgByPosition := make(map[string][]float64)
	for _, pg := range grouped {
		if len(pg.games) < cfg.MinGames {
			continue
		}
		ppg := mean(pg.points())
		pos := pg.key.Position
		byPosition[pos] = append(byPosition[pos], TieredPlayer{
			PlayerID:   pg.key.PlayerID,
			PlayerName: pg.key.Name,
			Team:       pg.Team,
			PPG:        round2(ppg),
		})
		ppgByPosition[pos] = append(ppgByPosition[pos], ppg)
	}

	for _, pos := range cfg.Positions {
		players := byPosition[pos]
		report.Positions[pos] = assignTiers(players, ppgByPosition[pos], cfg.NumTiers)
	}

	return report
}

func assignTiers(players []TieredPlayer, ppgs []float64, numTiers int) []TieredPlayer {
	if len(players) == 0 {
		return []TieredPlayer{}
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].PPG > players[j].PPG
	})

	top := players[0].PPG
	sigma := stddevPop(ppgs)

	boundaries := make([]float64, numTiers)
	for k := 1; k <= numTiers; k++ {
		boundaries[k-1] = top - float64(k)*sigma*0.75
	}

	for i := range players {
		tier := numTiers
		for t, bound := range boundaries {
			if players[i].PPG >= bound {
				tier = t + 1
				break
			}
		}
		players[i].Tier = tier
	}

	return players
}
