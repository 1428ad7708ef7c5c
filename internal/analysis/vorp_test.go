package analysis

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
)

func TestBuildVORPReport(t *testing.T) {
	cfg := VORPConfig{
		Season:           2024,
		ReplacementRanks: map[string]int{"QB": 3},
	}

	Convey("Given enough quarterbacks to reach the cutoff", t, func() {
		var rows []store.ScoredRow
		rows = append(rows, weeksOf("q1", "Top Dog", "QB", "BUF", 2024, []float64{30, 30})...)
		rows = append(rows, weeksOf("q2", "Solid", "QB", "CIN", 2024, []float64{24, 24})...)
		rows = append(rows, weeksOf("q3", "Baseline", "QB", "NYJ", 2024, []float64{18, 18})...)
		rows = append(rows, weeksOf("q4", "Streamer", "QB", "CAR", 2024, []float64{12, 12})...)

		report := BuildVORPReport(rows, cfg)

		Convey("Replacement level is the cutoff rank's points per game", func() {
			// Rank 3 of 4 is Baseline at 18 ppg.
			byID := indexVORP(report)
			So(byID["q1"].VORP, ShouldEqual, 12.0)
			So(byID["q2"].VORP, ShouldEqual, 6.0)
			So(byID["q3"].VORP, ShouldEqual, 0.0)
			So(byID["q4"].VORP, ShouldEqual, -6.0)
		})

		Convey("Players sort by VORP descending", func() {
			So(report.Players[0].PlayerID, ShouldEqual, "q1")
			So(report.Players[len(report.Players)-1].PlayerID, ShouldEqual, "q4")
		})

		Convey("Untracked positions never appear", func() {
			mixed := append(rows, weeksOf("r1", "Some Back", "RB", "DET", 2024, []float64{20, 20})...)
			mixedReport := BuildVORPReport(mixed, cfg)
			So(mixedReport.Players, ShouldHaveLength, 4)
		})
	})

	Convey("Given fewer players than the replacement cutoff", t, func() {
		var rows []store.ScoredRow
		rows = append(rows, weeksOf("q1", "Top Dog", "QB", "BUF", 2024, []float64{30, 30})...)
		rows = append(rows, weeksOf("q2", "Solid", "QB", "CIN", 2024, []float64{24, 24})...)

		report := BuildVORPReport(rows, cfg)

		Convey("Replacement is zero, so VORP equals points per game", func() {
			byID := indexVORP(report)
			So(byID["q1"].VORP, ShouldEqual, byID["q1"].PPG)
			So(byID["q2"].VORP, ShouldEqual, byID["q2"].PPG)
		})
	})

	Convey("Per-game stat context rides along", t, func() {
		row := scored("q1", "Top Dog", "QB", "BUF", 2024, 1, 25)
		row.Stats[scoring.StatPassingYards] = 300
		row.Stats[scoring.StatPassingTDs] = 3
		row2 := scored("q1", "Top Dog", "QB", "BUF", 2024, 2, 25)
		row2.Stats[scoring.StatPassingYards] = 200
		row2.Stats[scoring.StatPassingTDs] = 1

		report := BuildVORPReport([]store.ScoredRow{row, row2}, cfg)

		So(report.Players, ShouldHaveLength, 1)
		So(report.Players[0].PerGame[scoring.StatPassingYards], ShouldEqual, 250.0)
		So(report.Players[0].PerGame[scoring.StatPassingTDs], ShouldEqual, 2.0)
	})
}

func indexVORP(report *VORPReport) map[string]PlayerVORP {
	byID := make(map[string]PlayerVORP, len(report.Players))
	for _, p := range report.Players {
		byID[p.PlayerID] = p
	}
	return byID
}
