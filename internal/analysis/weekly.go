package analysis

import (
	"fmt"
	"sort"

	"github.com/fortuna/gridiron/internal/store"
)

// WeeklyEntry is one player's line in the weekly points feed.
type WeeklyEntry struct {
	Position string  `json:"pos"`
	Team     string  `json:"team"`
	Opponent string  `json:"opp"`
	Points   float64 `json:"points"`
}

// WeeklyPointsReport maps "SEASON-Wnn" buckets to per-player point lines,
// the feed the front end renders week by week.
type WeeklyPointsReport struct {
	Weeks map[string]map[string]WeeklyEntry `json:"weeks"`
}

// FormEntry is a player's rolling average over their last four games.
type FormEntry struct {
	PlayerName string  `json:"player_display_name"`
	Position   string  `json:"position"`
	Team       string  `json:"recent_team"`
	Games      int     `json:"games"`
	AvgPoints  float64 `json:"avg_points"`
}

// FormReport is the last-4-game form feed.
type FormReport struct {
	Players map[string]FormEntry `json:"players"`
}

// DirectoryEntry maps a player id to identity fields for the UI.
type DirectoryEntry struct {
	Name     string `json:"name"`
	Position string `json:"pos"`
	Team     string `json:"team"`
}

// PlayerDirectory is the id → identity map shipped alongside the feeds.
type PlayerDirectory map[string]DirectoryEntry

// WeekBucket formats the feed key for one (season, week) pair.
func WeekBucket(season, week int) string {
	return fmt.Sprintf("%d-W%02d", season, week)
}

// BuildWeeklyFeeds produces the weekly points feed, the last-4 form feed,
// and the player directory in one pass over the scored rows.
func BuildWeeklyFeeds(rows []store.ScoredRow) (*WeeklyPointsReport, *FormReport, PlayerDirectory) {
	weekly := &WeeklyPointsReport{Weeks: make(map[string]map[string]WeeklyEntry)}
	directory := make(PlayerDirectory)

	for _, row := range rows {
		bucket := WeekBucket(row.Season, row.Week)
		entries, ok := weekly.Weeks[bucket]
		if !ok {
			entries = make(map[string]WeeklyEntry)
			weekly.Weeks[bucket] = entries
		}
		entries[row.PlayerID] = WeeklyEntry{
			Position: row.Position,
			Team:     row.Team,
			Opponent: row.Opponent(),
			Points:   round2(row.FantasyPoints),
		}
		directory[row.PlayerID] = DirectoryEntry{
			Name:     row.PlayerName,
			Position: row.Position,
			Team:     row.Team,
		}
	}

	form := &FormReport{Players: make(map[string]FormEntry)}
	for _, pg := range groupByPlayer(rows) {
		pts := pg.points()
		window := pts
		if len(window) > 4 {
			window = window[len(window)-4:]
		}
		form.Players[pg.key.PlayerID] = FormEntry{
			PlayerName: pg.key.Name,
			Position:   pg.key.Position,
			Team:       pg.Team,
			Games:      len(window),
			AvgPoints:  round2(mean(window)),
		}
	}

	return weekly, form, directory
}

// sortedBuckets returns the feed keys in chronological order; useful for
// deterministic artifact diffs and in tests.
func sortedBuckets(weeks map[string]map[string]WeeklyEntry) []string {
	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
