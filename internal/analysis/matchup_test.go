package analysis

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fortuna/gridiron/internal/store"
)

func TestBuildMatchupReport(t *testing.T) {
	Convey("Given a roster, rankings, and a schedule", t, func() {
		var rows []store.ScoredRow
		rows = append(rows, weeksOf("r1", "Lead Back", "RB", "DET", 2024, []float64{20, 20, 20})...)
		rows = append(rows, weeksOf("w1", "Deep Threat", "WR", "DET", 2024, []float64{10, 10, 10})...)
		rows = append(rows, weeksOf("q1", "Idle Arm", "QB", "MIA", 2024, []float64{18, 18, 18})...)

		// Defensive data so that CHI ranks against RBs. Rank 4 lands in
		// the best matchup band.
		ranks := &TeamRankingReport{
			Season: 2024,
			PointsAllowed: map[string][]DefensiveRank{
				"RB": {
					{Team: "WAS", PPGAllowed: 30, Rank: 1},
					{Team: "CHI", PPGAllowed: 10, Rank: 4},
				},
			},
		}

		week5 := []store.Game{
			{Season: 2024, Week: 5, HomeTeam: "DET", AwayTeam: "CHI", Final: false},
		}
		played := []store.Game{
			{Season: 2024, Week: 4, HomeTeam: "DET", AwayTeam: "GB", Final: true, Kickoff: time.Now()},
		}
		schedule := append(played, week5...)

		roster := &Roster{Players: []string{"Lead Back", "Deep Threat", "Idle Arm", "Ghost Player"}}

		report := BuildMatchupReport(rows, ranks, schedule, roster, MatchupConfig{Season: 2024})

		Convey("The upcoming week is the lowest non-final week", func() {
			So(report.Week, ShouldEqual, 5)
		})

		Convey("A ranked opponent produces a rating and projection", func() {
			m := findMatchup(report, "Lead Back")
			So(m, ShouldNotBeNil)
			So(m.Opponent, ShouldEqual, "CHI")
			So(m.Rating, ShouldEqual, RatingGreat)
			So(m.Projection, ShouldNotBeNil)
			// Season avg 20 scaled by 10 allowed vs league avg 20.
			So(*m.Projection, ShouldEqual, 10.0)
		})

		Convey("A player without rank data rates Average with a note", func() {
			m := findMatchup(report, "Deep Threat")
			So(m, ShouldNotBeNil)
			So(m.Rating, ShouldEqual, RatingAverage)
			So(m.Details, ShouldContainSubstring, "No specific ranking data")
			So(m.Projection, ShouldBeNil)
		})

		Convey("A team with no scheduled game yields the bye sentinel", func() {
			m := findMatchup(report, "Idle Arm")
			So(m, ShouldNotBeNil)
			So(m.Opponent, ShouldEqual, OpponentBye)
			So(m.Rating, ShouldEqual, "N/A")
		})

		Convey("Roster names absent from the dataset are skipped", func() {
			So(findMatchup(report, "Ghost Player"), ShouldBeNil)
		})
	})

	Convey("A nil roster produces an empty report", t, func() {
		report := BuildMatchupReport(nil, &TeamRankingReport{}, nil, nil, MatchupConfig{Season: 2024})
		So(report.Matchups, ShouldBeEmpty)
	})
}

func TestRatingForRank(t *testing.T) {
	Convey("Rank bands map to ratings", t, func() {
		So(ratingForRank(1), ShouldEqual, RatingGreat)
		So(ratingForRank(5), ShouldEqual, RatingGreat)
		So(ratingForRank(6), ShouldEqual, RatingGood)
		So(ratingForRank(12), ShouldEqual, RatingGood)
		So(ratingForRank(13), ShouldEqual, RatingAverage)
		So(ratingForRank(20), ShouldEqual, RatingAverage)
		So(ratingForRank(21), ShouldEqual, RatingBad)
		So(ratingForRank(28), ShouldEqual, RatingBad)
		So(ratingForRank(29), ShouldEqual, RatingVeryBad)
	})
}

func findMatchup(report *MatchupReport, player string) *Matchup {
	for i := range report.Matchups {
		if report.Matchups[i].Player == player {
			return &report.Matchups[i]
		}
	}
	return nil
}
