package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Artifact names, shared by the writer, the cache keys, and the REST API.
const (
	ArtifactConsistency  = "consistency_report"
	ArtifactTiers        = "draft_tiers"
	ArtifactVORP         = "vorp_analysis"
	ArtifactTeamRankings = "team_rankings"
	ArtifactMatchups     = "matchup_report"
	ArtifactWaivers      = "waiver_wire_report"
	ArtifactWeeklyPoints = "player_points_weekly"
	ArtifactForm         = "player_form_last4"
	ArtifactPlayers      = "players"
)

// ArtifactNames lists every report artifact a run can produce.
var ArtifactNames = []string{
	ArtifactConsistency,
	ArtifactTiers,
	ArtifactVORP,
	ArtifactTeamRankings,
	ArtifactMatchups,
	ArtifactWaivers,
	ArtifactWeeklyPoints,
	ArtifactForm,
	ArtifactPlayers,
}

// Manifest describes one completed analysis run.
type Manifest struct {
	RunID        string   `json:"run_id"`
	GeneratedUTC string   `json:"generated_utc"`
	Seasons      []int    `json:"seasons"`
	Artifacts    []string `json:"artifacts"`
}

// Status is the small heartbeat artifact the front end polls.
type Status struct {
	GeneratedUTC string `json:"generated_utc"`
	Season       int    `json:"season"`
	Week         int    `json:"week"`
	Notes        string `json:"notes"`
}

// Writer persists report artifacts as indented JSON files in one
// directory. There is exactly one writer per run, so no locking applies.
type Writer struct {
	dir string
}

// NewWriter creates the artifact directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifacts dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Write marshals one artifact to <dir>/<name>.json.
func (w *Writer) Write(name string, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Path returns the on-disk location of a named artifact.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+".json")
}

// NewManifest stamps a fresh run manifest.
func NewManifest(seasons []int, artifacts []string) *Manifest {
	return &Manifest{
		RunID:        uuid.NewString(),
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		Seasons:      seasons,
		Artifacts:    artifacts,
	}
}
