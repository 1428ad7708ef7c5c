package scoring

import (
	"math"
	"strings"

	"github.com/fortuna/gridiron/internal/store"
)

// Position families select which scoring sub-table applies. Anything that
// is not a kicker or a defense scores on the offensive path, so an
// unrecognized position string degrades to skill-player scoring instead
// of failing the row.
const (
	familyOffense = iota
	familyKicker
	familyDST
)

func positionFamily(pos string) int {
	switch strings.ToUpper(strings.TrimSpace(pos)) {
	case "K", "PK":
		return familyKicker
	case "DST", "DEF", "D/ST":
		return familyDST
	default:
		// QB/RB/WR/TE/FLEX and anything unresolvable
		return familyOffense
	}
}

// Score computes the fantasy-point total for one stat row under the given
// rules. Missing stats contribute zero. The result is rounded half away
// from zero to 2 decimal places and is deterministic for a fixed
// (row, rules) pair: every term is an explicit struct field, no map
// iteration feeds the sum.
func Score(row store.StatRow, pos string, rules *Rules) float64 {
	var pts float64
	switch positionFamily(pos) {
	case familyKicker:
		pts = scoreKicker(row, &rules.Kicking)
	case familyDST:
		pts = scoreDST(row, &rules.DST)
	default:
		pts = scorePassing(row, &rules.Offense.Passing) +
			scoreRushing(row, &rules.Offense.Rushing) +
			scoreReceiving(row, &rules.Offense.Receiving) +
			scoreTurnoversAndReturns(row, &rules.Offense)
	}
	return round2(pts)
}

// Apply scores every row, resolving the position from the row itself.
func Apply(rows []store.StatRow, rules *Rules) []store.ScoredRow {
	scored := make([]store.ScoredRow, 0, len(rows))
	for _, row := range rows {
		scored = append(scored, store.ScoredRow{
			StatRow:       row,
			FantasyPoints: Score(row, row.Position, rules),
		})
	}
	return scored
}

func scorePassing(row store.StatRow, w *PassingWeights) float64 {
	yards := row.Stat(StatPassingYards)
	pts := yards * *w.YardsPer
	pts += row.Stat(StatPassingTDs) * *w.TD
	pts += row.Stat(StatInterceptions) * *w.Interception
	pts += row.Stat(StatPassing2Pt) * *w.TwoPt
	pts += yardageBonus(yards, w.Bonuses)
	return pts
}

func scoreRushing(row store.StatRow, w *RushingWeights) float64 {
	yards := row.Stat(StatRushingYards)
	pts := yards * *w.YardsPer
	pts += row.Stat(StatRushingTDs) * *w.TD
	pts += row.Stat(StatRushing2Pt) * *w.TwoPt
	pts += row.Stat(StatRushingFirstDowns) * *w.FirstDown
	pts += yardageBonus(yards, w.Bonuses)
	return pts
}

func scoreReceiving(row store.StatRow, w *ReceivingWeights) float64 {
	yards := row.Stat(StatReceivingYards)
	pts := yards * *w.YardsPer
	pts += row.Stat(StatReceptions) * *w.Reception
	pts += row.Stat(StatReceivingTDs) * *w.TD
	pts += row.Stat(StatReceiving2Pt) * *w.TwoPt
	pts += row.Stat(StatReceivingFirstDowns) * *w.FirstDown
	pts += yardageBonus(yards, w.Bonuses)
	return pts
}

func scoreTurnoversAndReturns(row store.StatRow, o *Offense) float64 {
	pts := row.Stat(StatFumblesLost) * *o.Turnovers.FumblesLost

	r := &o.Returns
	pts += row.Stat(StatKickReturnTDs) * *r.KickReturnTD
	pts += row.Stat(StatPuntReturnTDs) * *r.PuntReturnTD
	pts += row.Stat(StatIntReturnTDs) * *r.IntReturnTD
	pts += row.Stat(StatFumbleReturnTDs) * *r.FumbleReturnTD
	pts += row.Stat(StatBlockedKickRetTDs) * *r.BlockedKickReturnTD
	pts += row.Stat(StatTwoPtReturns) * *r.TwoPtReturn
	pts += row.Stat(StatOnePtSafeties) * *r.OnePtSafety
	return pts
}

func scoreKicker(row store.StatRow, k *Kicking) float64 {
	pts := row.Stat(StatPATMade) * *k.PATMade
	pts += row.Stat(StatFGMissed) * *k.FGMissed
	pts += row.Stat(StatFGMade039) * *k.FG0to39
	pts += row.Stat(StatFGMade4049) * *k.FG40to49
	pts += row.Stat(StatFGMade5059) * *k.FG50to59
	pts += row.Stat(StatFGMade60Plus) * *k.FG60Plus
	return pts
}

func scoreDST(row store.StatRow, d *DST) float64 {
	pts := row.Stat(StatDSTSacks) * *d.Sack
	pts += row.Stat(StatDSTInterceptions) * *d.Interception
	pts += row.Stat(StatDSTFumbleRecoveries) * *d.FumbleRecovery
	pts += row.Stat(StatDSTSafeties) * *d.Safety
	pts += row.Stat(StatDSTBlockedKicks) * *d.Block

	r := &d.ReturnTDs
	pts += row.Stat(StatDSTKickReturnTDs) * *r.Kickoff
	pts += row.Stat(StatDSTPuntReturnTDs) * *r.Punt
	pts += row.Stat(StatDSTIntReturnTDs) * *r.Interception
	pts += row.Stat(StatDSTFumbleReturnTDs) * *r.Fumble
	pts += row.Stat(StatDSTBlockedKickTDs) * *r.BlockedKick

	pts += bucketScore(row.Stat(StatPointsAllowed), d.PointsAllowed)
	pts += bucketScore(row.Stat(StatYardsAllowed), d.YardsAllowed)
	return pts
}

// yardageBonus pays exactly one bonus: the one with the highest floor the
// yardage meets. Overlapping bands never stack.
func yardageBonus(yards float64, bonuses []YardageBonus) float64 {
	var best *YardageBonus
	for i := range bonuses {
		b := &bonuses[i]
		if yards < b.MinYards {
			continue
		}
		if best == nil || b.MinYards > best.MinYards {
			best = b
		}
	}
	if best == nil {
		return 0
	}
	return best.Points
}

// bucketScore returns the fixed value of the first bucket whose inclusive
// range contains v. Validated tables are exhaustive over [0, +inf), so a
// zero fallthrough can only happen for negative inputs.
func bucketScore(v float64, buckets []Bucket) float64 {
	for _, b := range buckets {
		if b.Contains(v) {
			return b.Points
		}
	}
	return 0
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
