package analysis

import (
	"testing"

	"github.com/fortuna/gridiron/internal/store"
)

func TestBuildWaiverReport(t *testing.T) {
	cfg := WaiverConfig{TopN: map[string]int{"RB": 2, "TE": 2}}

	rows := []store.ScoredRow{
		// Older week that must not leak into the report.
		scored("r0", "Old News", "RB", "NYJ", 2024, 4, 40),
		// Latest week (2024 week 5).
		scored("r1", "Hot Hand", "RB", "DET", 2024, 5, 22),
		scored("r2", "Mid Back", "RB", "KC", 2024, 5, 14),
		scored("r3", "Third Wheel", "RB", "SF", 2024, 5, 9),
		// Untracked position in the latest week.
		scored("q1", "Some QB", "QB", "BUF", 2024, 5, 31),
	}

	report := BuildWaiverReport(rows, cfg)

	if report.Season != 2024 || report.Week != 5 {
		t.Fatalf("latest snapshot = %d week %d, want 2024 week 5", report.Season, report.Week)
	}

	rbs := report.Positions["RB"]
	if len(rbs) != 2 {
		t.Fatalf("expected top 2 RBs, got %d", len(rbs))
	}
	if rbs[0].PlayerID != "r1" || rbs[1].PlayerID != "r2" {
		t.Errorf("unexpected RB order: %v", rbs)
	}

	if _, ok := report.Positions["QB"]; ok {
		t.Error("untracked position should not appear")
	}

	tes := report.Positions["TE"]
	if tes == nil || len(tes) != 0 {
		t.Errorf("expected empty non-nil TE slice, got %v", tes)
	}
}

func TestBuildWaiverReportPositionLimits(t *testing.T) {
	// Each position keeps its own cap; the deeper RB cap must not bleed
	// into the shallower K list.
	cfg := WaiverConfig{TopN: map[string]int{"RB": 2, "K": 1}}

	rows := []store.ScoredRow{
		scored("r1", "Lead Back", "RB", "DET", 2024, 5, 22),
		scored("r2", "Change of Pace", "RB", "KC", 2024, 5, 14),
		scored("r3", "Deep Stash", "RB", "SF", 2024, 5, 9),
		scored("k1", "Leg One", "K", "BAL", 2024, 5, 17),
		scored("k2", "Leg Two", "K", "DAL", 2024, 5, 12),
	}

	report := BuildWaiverReport(rows, cfg)

	if got := len(report.Positions["RB"]); got != 2 {
		t.Errorf("RB list = %d entries, want 2", got)
	}
	ks := report.Positions["K"]
	if len(ks) != 1 {
		t.Fatalf("K list = %d entries, want 1", len(ks))
	}
	if ks[0].PlayerID != "k1" {
		t.Errorf("K leader = %s, want k1", ks[0].PlayerID)
	}
}

func TestBuildWaiverReportEmpty(t *testing.T) {
	report := BuildWaiverReport(nil, WaiverConfig{TopN: map[string]int{"RB": 5}})

	if report.Season != 0 || report.Week != 0 {
		t.Errorf("empty snapshot should produce zero season/week, got %d/%d", report.Season, report.Week)
	}
	if rbs := report.Positions["RB"]; rbs == nil || len(rbs) != 0 {
		t.Errorf("expected empty non-nil RB slice, got %v", rbs)
	}
}
