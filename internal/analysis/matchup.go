package analysis

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// Matchup ratings, best to worst, keyed off the opponent's defensive rank
// against the player's position.
const (
	RatingGreat   = "Great"
	RatingGood    = "Good"
	RatingAverage = "Average"
	RatingBad     = "Bad"
	RatingVeryBad = "Very Bad"

	// OpponentBye is the sentinel opponent for a player whose team has
	// no scheduled game; callers must be able to tell it apart from a
	// zero projection.
	OpponentBye = "BYE WEEK"
)

// Roster is the named-player lineup the matchup report analyzes.
type Roster struct {
	Players []string `json:"players"`
}

// LoadRoster reads a roster file.
func LoadRoster(path string) (*Roster, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	var roster Roster
	if err := json.Unmarshal(content, &roster); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	return &roster, nil
}

// MatchupConfig controls the matchup report.
type MatchupConfig struct {
	Season int
}

// Matchup is one roster player's row in the matchup report.
type Matchup struct {
	Player     string   `json:"player"`
	Position   string   `json:"position,omitempty"`
	Team       string   `json:"team,omitempty"`
	Opponent   string   `json:"opponent"`
	Rating     string   `json:"rating"`
	Details    string   `json:"details"`
	Projection *float64 `json:"projection,omitempty"`
}

// MatchupReport is the self-describing artifact for one upcoming week.
type MatchupReport struct {
	Week     int       `json:"week"`
	Matchups []Matchup `json:"matchups"`
}

// BuildMatchupReport classifies each roster player's next opponent. The
// upcoming week is the lowest week among the non-final scheduled games; a
// player whose team has no game that week gets the bye sentinel, and a
// player without defensive-rank data rates Average with a note. The
// numeric projection scales the player's season average by how generous
// the opponent is relative to the league.
func BuildMatchupReport(rows []store.ScoredRow, ranks *TeamRankingReport, schedule []store.Game, roster *Roster, cfg MatchupConfig) *MatchupReport {
	week, games := upcomingWeek(schedule)

	seasonAvg := seasonAverages(rows, cfg.Season)
	info := playerDirectoryFromRows(rows)

	report := &MatchupReport{Week: week}
	if roster == nil {
		return report
	}
	for _, name := range roster.Players {
		player, ok := info[name]
		if !ok {
			log.Printf("⚠️  Roster player %q not found in dataset, skipping", name)
			continue
		}

		game := gameFor(games, player.Team)
		if game == nil {
			report.Matchups = append(report.Matchups, Matchup{
				Player:   name,
				Position: player.Position,
				Team:     player.Team,
				Opponent: OpponentBye,
				Rating:   "N/A",
				Details:  "Player is on a bye week.",
			})
			continue
		}

		opponent := game.OpponentOf(player.Team)
		m := Matchup{
			Player:   name,
			Position: player.Position,
			Team:     player.Team,
			Opponent: opponent,
		}

		rank, found := ranks.Rank(opponent, player.Position)
		if !found {
			m.Rating = RatingAverage
			m.Details = "No specific ranking data available."
		} else {
			m.Rating = ratingForRank(rank.Rank)
			m.Details = fmt.Sprintf("vs. the #%d easiest defense for %ss", rank.Rank, player.Position)
			if leagueAvg := ranks.LeagueAvgAllowed(player.Position); leagueAvg > 0 {
				proj := round2(seasonAvg[name] * (rank.PPGAllowed / leagueAvg))
				m.Projection = &proj
			}
		}

		report.Matchups = append(report.Matchups, m)
	}

	return report
}

func ratingForRank(rank int) string {
	switch {
	case rank <= 5:
		return RatingGreat
	case rank <= 12:
		return RatingGood
	case rank <= 20:
		return RatingAverage
	case rank <= 28:
		return RatingBad
	default:
		return RatingVeryBad
	}
}

// upcomingWeek picks the lowest week with a non-final game and returns
// that week's games.
func upcomingWeek(schedule []store.Game) (int, []store.Game) {
	week := 0
	for _, g := range schedule {
		if g.Final {
			continue
		}
		if week == 0 || g.Week < week {
			week = g.Week
		}
	}

	var games []store.Game
	for _, g := range schedule {
		if !g.Final && g.Week == week {
			games = append(games, g)
		}
	}
	return week, games
}

func gameFor(games []store.Game, team string) *store.Game {
	for i := range games {
		if games[i].Involves(team) {
			return &games[i]
		}
	}
	return nil
}

type playerInfo struct {
	Position string
	Team     string
}

// playerDirectoryFromRows keeps each player's most recent position and
// team, scanning rows in (season, week) order.
func playerDirectoryFromRows(rows []store.ScoredRow) map[string]playerInfo {
	ordered := append([]store.ScoredRow(nil), rows...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Season != ordered[j].Season {
			return ordered[i].Season < ordered[j].Season
		}
		return ordered[i].Week < ordered[j].Week
	})

	info := make(map[string]playerInfo)
	for _, row := range ordered {
		info[row.PlayerName] = playerInfo{Position: row.Position, Team: row.Team}
	}
	return info
}

func seasonAverages(rows []store.ScoredRow, season int) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range rows {
		if row.Season != season {
			continue
		}
		sums[row.PlayerName] += row.FantasyPoints
		counts[row.PlayerName]++
	}
	avg := make(map[string]float64, len(sums))
	for name, sum := range sums {
		avg[name] = sum / float64(counts[name])
	}
	return avg
}
