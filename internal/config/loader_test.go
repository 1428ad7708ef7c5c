package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Defaults apply when no file or env is present", t, func() {
		t.Setenv("GRIDIRON_CONFIG", writeConfig(t, ""))

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.RESTAddr, ShouldEqual, ":8080")
		So(cfg.Analysis.MinGamesPlayed, ShouldEqual, 8)
		So(cfg.Analysis.ReplacementRanks["RB"], ShouldEqual, 21)
	})

	Convey("Waiver limits are sized per position", t, func() {
		t.Setenv("GRIDIRON_CONFIG", writeConfig(t, ""))

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.Analysis.WaiverLimits["QB"], ShouldEqual, 10)
		So(cfg.Analysis.WaiverLimits["RB"], ShouldEqual, 15)
		So(cfg.Analysis.WaiverLimits["WR"], ShouldEqual, 15)
		So(cfg.Analysis.WaiverLimits["TE"], ShouldEqual, 10)
		So(cfg.Analysis.WaiverLimits["K"], ShouldEqual, 5)
		So(cfg.Analysis.WaiverLimits["DST"], ShouldEqual, 5)
	})

	Convey("File values override defaults", t, func() {
		t.Setenv("GRIDIRON_CONFIG", writeConfig(t, `
rest_addr: ":9999"
seasons: [2022]
analysis:
  num_tiers: 4
`))

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.RESTAddr, ShouldEqual, ":9999")
		So(cfg.Seasons, ShouldResemble, []int{2022})
		So(cfg.Analysis.NumTiers, ShouldEqual, 4)
		// Untouched keys keep their defaults.
		So(cfg.WSAddr, ShouldEqual, ":8081")
	})

	Convey("Environment overrides both file and defaults", t, func() {
		t.Setenv("GRIDIRON_CONFIG", writeConfig(t, `rest_addr: ":9999"`))
		t.Setenv("GRIDIRON_REST_ADDR", ":7777")

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.RESTAddr, ShouldEqual, ":7777")
	})

	Convey("Invalid analysis hour is rejected", t, func() {
		t.Setenv("GRIDIRON_CONFIG", writeConfig(t, `analysis_hour: 99`))

		_, err := Load()
		So(err, ShouldNotBeNil)
	})
}
