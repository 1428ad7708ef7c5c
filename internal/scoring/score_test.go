package scoring_test

import (
	"testing"

	scoring "github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
	. "github.com/smartystreets/goconvey/convey"
)

func fp(v float64) *float64 { return &v }

// leagueRules mirrors the default league configuration shipped in
// configs/scoring.json.
func leagueRules() *scoring.Rules {
	return &scoring.Rules{
		Offense: scoring.Offense{
			Passing: scoring.PassingWeights{
				YardsPer:     fp(0.05),
				TD:           fp(4),
				Interception: fp(-2),
				TwoPt:        fp(2),
				Bonuses:      []scoring.YardageBonus{{MinYards: 400, Points: 3}},
			},
			Rushing: scoring.RushingWeights{
				YardsPer:  fp(0.1),
				TD:        fp(6),
				TwoPt:     fp(2),
				FirstDown: fp(1),
				Bonuses: []scoring.YardageBonus{
					{MinYards: 100, Points: 2},
					{MinYards: 200, Points: 4},
				},
			},
			Receiving: scoring.ReceivingWeights{
				YardsPer:  fp(0.1),
				Reception: fp(1),
				TD:        fp(6),
				TwoPt:     fp(2),
				FirstDown: fp(0.5),
				Bonuses:   []scoring.YardageBonus{{MinYards: 200, Points: 3}},
			},
			Turnovers: scoring.TurnoverWeights{FumblesLost: fp(-2)},
			Returns: scoring.ReturnWeights{
				KickReturnTD:        fp(6),
				PuntReturnTD:        fp(6),
				IntReturnTD:         fp(6),
				FumbleReturnTD:      fp(6),
				BlockedKickReturnTD: fp(6),
				TwoPtReturn:         fp(2),
				OnePtSafety:         fp(1),
			},
		},
		Kicking: scoring.Kicking{
			PATMade:  fp(1),
			FGMissed: fp(-1),
			FG0to39:  fp(3),
			FG40to49: fp(4),
			FG50to59: fp(5),
			FG60Plus: fp(6),
		},
		DST: scoring.DST{
			Sack:           fp(1),
			Interception:   fp(2),
			FumbleRecovery: fp(2),
			Safety:         fp(2),
			Block:          fp(2),
			ReturnTDs: scoring.DSTReturnWeights{
				Kickoff:      fp(6),
				Punt:         fp(6),
				Interception: fp(6),
				Fumble:       fp(6),
				BlockedKick:  fp(6),
			},
			PointsAllowed: []scoring.Bucket{
				{Max: fp(0), Points: 10},
				{Min: fp(1), Max: fp(6), Points: 7},
				{Min: fp(7), Max: fp(13), Points: 3},
				{Min: fp(14), Max: fp(20), Points: 1},
				{Min: fp(21), Max: fp(27), Points: 0},
				{Min: fp(28), Max: fp(34), Points: -1},
				{Min: fp(35), Points: -4},
			},
			YardsAllowed: []scoring.Bucket{
				{Max: fp(99), Points: 5},
				{Min: fp(100), Max: fp(199), Points: 3},
				{Min: fp(200), Max: fp(299), Points: 2},
				{Min: fp(300), Max: fp(399), Points: 0},
				{Min: fp(400), Max: fp(449), Points: -1},
				{Min: fp(450), Points: -3},
			},
		},
	}
}

func statRow(pos string, stats map[string]float64) store.StatRow {
	return store.StatRow{
		Season:     2024,
		Week:       5,
		PlayerID:   "00-0099999",
		PlayerName: "Test Player",
		Position:   pos,
		Team:       "KC",
		HomeTeam:   "KC",
		AwayTeam:   "BUF",
		Stats:      stats,
	}
}

func TestScoreOffense(t *testing.T) {
	rules := leagueRules()

	Convey("Given the league scoring rules", t, func() {
		Convey("A QB line scores passing, rushing, and turnover points", func() {
			row := statRow("QB", map[string]float64{
				scoring.StatPassingYards:  320,
				scoring.StatPassingTDs:    3,
				scoring.StatInterceptions: 1,
				scoring.StatRushingYards:  20,
			})
			// 320*0.05 + 3*4 - 2 + 20*0.1 = 16 + 12 - 2 + 2
			So(scoring.Score(row, "QB", rules), ShouldEqual, 28.00)
		})

		Convey("Scoring the same row twice yields identical totals", func() {
			row := statRow("WR", map[string]float64{
				scoring.StatReceptions:          7,
				scoring.StatReceivingYards:      92,
				scoring.StatReceivingTDs:        1,
				scoring.StatReceivingFirstDowns: 4,
			})
			So(scoring.Score(row, "WR", rules), ShouldEqual, scoring.Score(row, "WR", rules))
		})

		Convey("An empty stat line scores exactly zero", func() {
			So(scoring.Score(statRow("RB", nil), "RB", rules), ShouldEqual, 0.00)
			So(scoring.Score(statRow("K", nil), "K", rules), ShouldEqual, 0.00)
		})

		Convey("Yardage bonuses never stack", func() {
			row := statRow("RB", map[string]float64{scoring.StatRushingYards: 250})
			// 250*0.1 + the single 200+ bonus (4), not 100+ and 200+ together
			So(scoring.Score(row, "RB", rules), ShouldEqual, 29.00)
		})

		Convey("A QB row with rushing yards still earns rushing points", func() {
			row := statRow("QB", map[string]float64{scoring.StatRushingYards: 50})
			So(scoring.Score(row, "QB", rules), ShouldEqual, 5.00)
		})

		Convey("An unresolvable position scores on the skill-player path", func() {
			row := statRow("XX", map[string]float64{scoring.StatReceptions: 5})
			So(scoring.Score(row, "XX", rules), ShouldEqual, 5.00)
		})
	})
}

func TestScoreKicker(t *testing.T) {
	rules := leagueRules()

	Convey("Given a kicker line", t, func() {
		row := statRow("K", map[string]float64{
			scoring.StatPATMade:      3,
			scoring.StatFGMade039:    1,
			scoring.StatFGMade5059:   1,
			scoring.StatFGMissed:     1,
		})

		Convey("Made kicks pay by distance bucket and misses subtract", func() {
			// 3*1 + 3 + 5 - 1
			So(scoring.Score(row, "K", rules), ShouldEqual, 10.00)
		})
	})
}

func TestScoreDST(t *testing.T) {
	rules := leagueRules()

	Convey("Given the DST scoring table", t, func() {
		Convey("Event rates plus exactly one points-allowed bucket apply", func() {
			row := statRow("DST", map[string]float64{
				scoring.StatDSTSacks:         2,
				scoring.StatDSTInterceptions: 1,
				scoring.StatPointsAllowed:    13,
				scoring.StatYardsAllowed:     310,
			})
			// 2*1 + 1*2 + [7,13]→3 + [300,399]→0
			So(scoring.Score(row, "DST", rules), ShouldEqual, 7.00)
		})

		Convey("A shutout hits the zero bucket", func() {
			row := statRow("DST", map[string]float64{
				scoring.StatPointsAllowed: 0,
				scoring.StatYardsAllowed:  150,
			})
			// shutout 10 + [100,199]→3
			So(scoring.Score(row, "DST", rules), ShouldEqual, 13.00)
		})

		Convey("Values inside the same inclusive range score the same bucket", func() {
			one := statRow("DST", map[string]float64{
				scoring.StatPointsAllowed: 1,
				scoring.StatYardsAllowed:  150,
			})
			six := statRow("DST", map[string]float64{
				scoring.StatPointsAllowed: 6,
				scoring.StatYardsAllowed:  150,
			})
			So(scoring.Score(one, "DST", rules), ShouldEqual, scoring.Score(six, "DST", rules))
		})

		Convey("The DEF spelling resolves to the defense table", func() {
			row := statRow("DEF", map[string]float64{
				scoring.StatDSTSacks:      4,
				scoring.StatPointsAllowed: 21,
				scoring.StatYardsAllowed:  310,
			})
			// 4*1 + [21,27]→0 + [300,399]→0
			So(scoring.Score(row, "DEF", rules), ShouldEqual, 4.00)
		})
	})
}

func TestApply(t *testing.T) {
	rules := leagueRules()

	rows := []store.StatRow{
		statRow("QB", map[string]float64{scoring.StatPassingYards: 300}),
		statRow("WR", map[string]float64{scoring.StatReceptions: 8, scoring.StatReceivingYards: 110}),
	}

	scored := scoring.Apply(rows, rules)
	if len(scored) != 2 {
		t.Fatalf("scored %d rows, want 2", len(scored))
	}
	if scored[0].FantasyPoints != 15.00 {
		t.Errorf("QB points = %v, want 15.00", scored[0].FantasyPoints)
	}
	if scored[1].FantasyPoints != 19.00 {
		t.Errorf("WR points = %v, want 19.00", scored[1].FantasyPoints)
	}
}
