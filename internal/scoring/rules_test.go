package scoring_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	scoring "github.com/fortuna/gridiron/internal/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validRulesJSON = `{
  "offense": {
    "passing":   {"yards_per": 0.05, "td": 4, "interception": -2, "two_pt": 2,
                  "bonuses": [{"min_yards": 400, "points": 3}]},
    "rushing":   {"yards_per": 0.1, "td": 6, "two_pt": 2, "first_down": 1},
    "receiving": {"yards_per": 0.1, "reception": 1, "td": 6, "two_pt": 2, "first_down": 0.5},
    "turnovers": {"fumbles_lost": -2},
    "returns":   {"kick_return_td": 6, "punt_return_td": 6, "int_return_td": 6,
                  "fumble_return_td": 6, "blocked_kick_return_td": 6,
                  "two_pt_return": 2, "one_pt_safety": 1}
  },
  "kicking": {"pat_made": 1, "fg_missed": -1, "fg_0_39": 3, "fg_40_49": 4,
              "fg_50_59": 5, "fg_60_plus": 6},
  "dst": {
    "sack": 1, "interception": 2, "fumble_recovery": 2, "safety": 2, "block": 2,
    "return_tds": {"kickoff": 6, "punt": 6, "interception": 6, "fumble": 6, "blocked_kick": 6},
    "points_allowed": [
      {"max": 0, "points": 10},
      {"min": 1, "max": 6, "points": 7},
      {"min": 7, "max": 13, "points": 3},
      {"min": 14, "max": 20, "points": 1},
      {"min": 21, "max": 27, "points": 0},
      {"min": 28, "max": 34, "points": -1},
      {"min": 35, "points": -4}
    ],
    "yards_allowed": [
      {"max": 299, "points": 3},
      {"min": 300, "max": 399, "points": 0},
      {"min": 400, "points": -2}
    ]
  }
}`

func TestLoadRules(t *testing.T) {
	Convey("Loading a complete rules file", t, func() {
		rules, err := scoring.Load(writeRules(t, validRulesJSON))
		So(err, ShouldBeNil)
		So(*rules.Offense.Passing.YardsPer, ShouldEqual, 0.05)
		So(len(rules.DST.PointsAllowed), ShouldEqual, 7)
	})

	Convey("A missing weight key is a configuration error, not a default", t, func() {
		broken := strings.Replace(validRulesJSON, `"td": 4, `, "", 1)
		_, err := scoring.Load(writeRules(t, broken))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "offense.passing.td")
	})

	Convey("A configured zero weight is not treated as missing", t, func() {
		zeroed := strings.Replace(validRulesJSON, `"first_down": 1`, `"first_down": 0`, 1)
		_, err := scoring.Load(writeRules(t, zeroed))
		So(err, ShouldBeNil)
	})

	Convey("A points-allowed table with an interior gap fails validation", t, func() {
		// Drop the 21-27 bucket: 20 → 28 leaves a hole.
		gapped := strings.Replace(validRulesJSON,
			`{"min": 21, "max": 27, "points": 0},
      `, "", 1)
		_, err := scoring.Load(writeRules(t, gapped))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "gap")
	})

	Convey("A bucket table that does not reach zero fails validation", t, func() {
		noZero := strings.Replace(validRulesJSON, `{"max": 0, "points": 10},
      {"min": 1, `, `{"min": 1, `, 1)
		_, err := scoring.Load(writeRules(t, noZero))
		So(err, ShouldNotBeNil)
	})

	Convey("A bucket table capped above fails validation", t, func() {
		capped := strings.Replace(validRulesJSON, `{"min": 400, "points": -2}`,
			`{"min": 400, "max": 599, "points": -2}`, 1)
		_, err := scoring.Load(writeRules(t, capped))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "open-ended")
	})
}
