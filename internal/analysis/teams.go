package analysis

import (
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// TeamRankingConfig controls the team/defensive ranking report.
type TeamRankingConfig struct {
	Season int
}

// DefensiveRank is one (team, position) row: the mean fantasy points that
// team allowed to the position, and its rank among all teams. Rank 1 is
// the most generous defense; ties share the maximum ordinal among the
// tied entries.
type DefensiveRank struct {
	Team       string  `json:"team"`
	PPGAllowed float64 `json:"ppg_allowed"`
	Rank       int     `json:"rank"`
}

// TeamRankingReport is the self-describing artifact for one season.
type TeamRankingReport struct {
	Season int `json:"season"`
	// PointsAllowed maps position → teams sorted by points allowed,
	// most generous first.
	PointsAllowed map[string][]DefensiveRank `json:"points_allowed"`
	// OffenseAvgPoints maps team → its mean total fantasy points scored
	// per game across home and away appearances.
	OffenseAvgPoints map[string]float64 `json:"offense_avg_points"`
}

// BuildTeamRankingReport derives each row's opponent, averages fantasy
// points allowed per (opponent, position), and ranks defenses within each
// position. Ranking uses the "max" tie rule: tied defenses all receive
// the worst (largest) ordinal of the tie group.
func BuildTeamRankingReport(rows []store.ScoredRow, cfg TeamRankingConfig) *TeamRankingReport {
	season := filterSeasons(rows, []int{cfg.Season})

	type teamPos struct{ team, pos string }
	allowedSum := make(map[teamPos]float64)
	allowedN := make(map[teamPos]int)

	type teamWeek struct {
		team string
		week int
	}
	scoredSum := make(map[teamWeek]float64)

	for _, row := range season {
		opp := row.Opponent()
		if opp != "" {
			k := teamPos{team: opp, pos: row.Position}
			allowedSum[k] += row.FantasyPoints
			allowedN[k]++
		}
		scoredSum[teamWeek{team: row.Team, week: row.Week}] += row.FantasyPoints
	}

	byPosition := make(map[string][]DefensiveRank)
	for k, sum := range allowedSum {
		byPosition[k.pos] = append(byPosition[k.pos], DefensiveRank{
			Team:       k.team,
			PPGAllowed: round2(sum / float64(allowedN[k])),
		})
	}

	for pos, ranks := range byPosition {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].PPGAllowed != ranks[j].PPGAllowed {
				return ranks[i].PPGAllowed > ranks[j].PPGAllowed
			}
			return ranks[i].Team < ranks[j].Team
		})
		// Max-rank ties: walk forward to the last entry with the same
		// points allowed and share its ordinal.
		for i := 0; i < len(ranks); {
			j := i
			for j+1 < len(ranks) && ranks[j+1].PPGAllowed == ranks[i].PPGAllowed {
				j++
			}
			for k := i; k <= j; k++ {
				ranks[k].Rank = j + 1
			}
			i = j + 1
		}
		byPosition[pos] = ranks
	}

	offense := make(map[string]float64)
	offenseWeeks := make(map[string]int)
	for k, sum := range scoredSum {
		offense[k.team] += sum
		offenseWeeks[k.team]++
	}
	for team, total := range offense {
		offense[team] = round2(total / float64(offenseWeeks[team]))
	}

	return &TeamRankingReport{
		Season:           cfg.Season,
		PointsAllowed:    byPosition,
		OffenseAvgPoints: offense,
	}
}

// Rank looks up a team's defensive rank against a position.
func (r *TeamRankingReport) Rank(team, position string) (DefensiveRank, bool) {
	for _, dr := range r.PointsAllowed[position] {
		if dr.Team == team {
			return dr, true
		}
	}
	return DefensiveRank{}, false
}

// LeagueAvgAllowed is the mean of every team's points allowed to a
// position; zero when no team has data for it.
func (r *TeamRankingReport) LeagueAvgAllowed(position string) float64 {
	ranks := r.PointsAllowed[position]
	if len(ranks) == 0 {
		return 0
	}
	var sum float64
	for _, dr := range ranks {
		sum += dr.PPGAllowed
	}
	return sum / float64(len(ranks))
}
