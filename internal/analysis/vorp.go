package analysis

import (
	"sort"

	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
)

// VORPConfig controls the value-over-replacement report for one season.
type VORPConfig struct {
	Season int
	// ReplacementRanks maps a position to its replacement cutoff: the
	// 1-indexed rank whose points-per-game is the replacement value.
	// Only positions listed here appear in the report.
	ReplacementRanks map[string]int
}

// trackedStats are the raw counters whose per-game averages ride along in
// the VORP report for context.
var trackedStats = []string{
	scoring.StatPassingYards,
	scoring.StatPassingTDs,
	scoring.StatInterceptions,
	scoring.StatRushingYards,
	scoring.StatRushingTDs,
	scoring.StatReceptions,
	scoring.StatReceivingYards,
	scoring.StatReceivingTDs,
}

// PlayerVORP is one player's row in the VORP report.
type PlayerVORP struct {
	PlayerID    string             `json:"player_id"`
	PlayerName  string             `json:"player_display_name"`
	Position    string             `json:"position"`
	Team        string             `json:"recent_team"`
	GamesPlayed int                `json:"games_played"`
	PPG         float64            `json:"ppg"`
	VORP        float64            `json:"vorp"`
	PerGame     map[string]float64 `json:"per_game"`
}

// VORPReport is the self-describing artifact for one season.
type VORPReport struct {
	Season  int          `json:"season"`
	Players []PlayerVORP `json:"players"`
}

// BuildVORPReport ranks each position by points-per-game and subtracts the
// replacement-level baseline. When a position has fewer players than its
// cutoff the replacement value is zero, so every player's VORP equals
// their own points-per-game.
func BuildVORPReport(rows []store.ScoredRow, cfg VORPConfig) *VORPReport {
	season := filterSeasons(rows, []int{cfg.Season})
	grouped := groupByPlayer(season)

	byPosition := make(map[string][]PlayerVORP)
	for _, pg := range grouped {
		if _, tracked := cfg.ReplacementRanks[pg.key.Position]; !tracked {
			continue
		}

		games := len(pg.games)
		perGame := make(map[string]float64, len(trackedStats))
		for _, stat := range trackedStats {
			perGame[stat] = round2(pg.totals[stat] / float64(games))
		}

		byPosition[pg.key.Position] = append(byPosition[pg.key.Position], PlayerVORP{
			PlayerID:    pg.key.PlayerID,
			PlayerName:  pg.key.Name,
			Position:    pg.key.Position,
			Team:        pg.Team,
			GamesPlayed: games,
			PPG:         round2(mean(pg.points())),
			PerGame:     perGame,
		})
	}

	positions := make([]string, 0, len(cfg.ReplacementRanks))
	for pos := range cfg.ReplacementRanks {
		positions = append(positions, pos)
	}
	sort.Strings(positions)

	var players []PlayerVORP
	for _, pos := range positions {
		cutoff := cfg.ReplacementRanks[pos]
		posPlayers := byPosition[pos]
		sort.SliceStable(posPlayers, func(i, j int) bool {
			return posPlayers[i].PPG > posPlayers[j].PPG
		})

		var replacement float64
		if len(posPlayers) >= cutoff && cutoff > 0 {
			replacement = posPlayers[cutoff-1].PPG
		}

		for i := range posPlayers {
			posPlayers[i].VORP = round2(posPlayers[i].PPG - replacement)
		}
		players = append(players, posPlayers...)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].VORP != players[j].VORP {
			return players[i].VORP > players[j].VORP
		}
		return players[i].PPG > players[j].PPG
	})

	return &VORPReport{
		Season:  cfg.Season,
		Players: players,
	}
}
