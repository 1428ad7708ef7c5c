package analysis

import (
	"testing"

	"github.com/fortuna/gridiron/internal/store"
)

func TestWeekBucket(t *testing.T) {
	cases := []struct {
		season, week int
		want         string
	}{
		{2024, 5, "2024-W05"},
		{2024, 18, "2024-W18"},
		{2023, 1, "2023-W01"},
	}

	for _, tc := range cases {
		if got := WeekBucket(tc.season, tc.week); got != tc.want {
			t.Errorf("WeekBucket(%d, %d) = %q, want %q", tc.season, tc.week, got, tc.want)
		}
	}
}

func TestBuildWeeklyFeeds(t *testing.T) {
	rows := []store.ScoredRow{
		scoredVs("w1", "Wideout", "WR", "MIA", "NE", 2024, 1, 12.5),
		scoredVs("w1", "Wideout", "WR", "MIA", "BUF", 2024, 2, 8.0),
		scoredVs("r1", "Back", "RB", "DET", "GB", 2024, 1, 19.0),
	}

	weekly, form, directory := BuildWeeklyFeeds(rows)

	buckets := sortedBuckets(weekly.Weeks)
	if len(buckets) != 2 || buckets[0] != "2024-W01" || buckets[1] != "2024-W02" {
		t.Fatalf("unexpected buckets: %v", buckets)
	}

	entry := weekly.Weeks["2024-W01"]["w1"]
	if entry.Points != 12.5 || entry.Opponent != "NE" || entry.Team != "MIA" {
		t.Errorf("unexpected week 1 entry: %+v", entry)
	}

	dir, ok := directory["r1"]
	if !ok || dir.Name != "Back" || dir.Position != "RB" {
		t.Errorf("unexpected directory entry: %+v", dir)
	}

	f := form.Players["w1"]
	if f.Games != 2 || f.AvgPoints != 10.25 {
		t.Errorf("form = %+v, want 2 games at 10.25", f)
	}
}

func TestBuildWeeklyFeedsFormWindow(t *testing.T) {
	// Six games; the form feed only averages the most recent four.
	rows := weeksOf("r1", "Workhorse", "RB", "SF", 2024, []float64{1, 1, 10, 10, 10, 10})

	_, form, _ := BuildWeeklyFeeds(rows)

	f := form.Players["r1"]
	if f.Games != 4 {
		t.Fatalf("form window = %d games, want 4", f.Games)
	}
	if f.AvgPoints != 10.0 {
		t.Errorf("form avg = %v, want 10.0 over the last four games", f.AvgPoints)
	}
}
