package analysis

import (
	"testing"

	"github.com/fortuna/gridiron/internal/store"
)

func TestBuildTeamRankingReport(t *testing.T) {
	rows := []store.ScoredRow{
		// KC allows 20 and 10 to RBs across two weeks (avg 15).
		scoredVs("r1", "Back One", "RB", "DEN", "KC", 2024, 1, 20),
		scoredVs("r2", "Back Two", "RB", "LV", "KC", 2024, 2, 10),
		// SF allows a single 15 to RBs, tying KC's average.
		scoredVs("r3", "Back Three", "RB", "SEA", "SF", 2024, 1, 15),
		// DAL allows 5, the stingiest defense.
		scoredVs("r4", "Back Four", "RB", "NYG", "DAL", 2024, 1, 5),
	}

	report := BuildTeamRankingReport(rows, TeamRankingConfig{Season: 2024})

	ranks := report.PointsAllowed["RB"]
	if len(ranks) != 3 {
		t.Fatalf("expected 3 ranked defenses, got %d", len(ranks))
	}

	// KC and SF tie at 15 allowed; with the max tie rule both take rank 2
	// and DAL takes rank 3.
	for _, team := range []string{"KC", "SF"} {
		rank, ok := report.Rank(team, "RB")
		if !ok {
			t.Fatalf("no rank for %s", team)
		}
		if rank.PPGAllowed != 15.0 {
			t.Errorf("%s allowed = %v, want 15.0", team, rank.PPGAllowed)
		}
		if rank.Rank != 2 {
			t.Errorf("%s rank = %d, want shared max rank 2", team, rank.Rank)
		}
	}

	dal, _ := report.Rank("DAL", "RB")
	if dal.Rank != 3 {
		t.Errorf("DAL rank = %d, want 3", dal.Rank)
	}

	// League average allowed to RBs: (15 + 15 + 5) / 3.
	if got := round2(report.LeagueAvgAllowed("RB")); got != 11.67 {
		t.Errorf("league avg = %v, want 11.67", got)
	}

	if _, ok := report.Rank("KC", "WR"); ok {
		t.Error("expected no WR data for KC")
	}
	if report.LeagueAvgAllowed("WR") != 0 {
		t.Error("expected zero league average for position without data")
	}
}

func TestBuildTeamRankingReportOffense(t *testing.T) {
	rows := []store.ScoredRow{
		// DEN scores 20 + 10 in week 1 and 6 in week 2: weekly totals
		// 30 and 6, so the per-game average is 18.
		scoredVs("p1", "One", "RB", "DEN", "KC", 2024, 1, 20),
		scoredVs("p2", "Two", "WR", "DEN", "KC", 2024, 1, 10),
		scoredVs("p1", "One", "RB", "DEN", "LV", 2024, 2, 6),
	}

	report := BuildTeamRankingReport(rows, TeamRankingConfig{Season: 2024})

	if got := report.OffenseAvgPoints["DEN"]; got != 18.0 {
		t.Errorf("DEN offense avg = %v, want 18.0", got)
	}
}
