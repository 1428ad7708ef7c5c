package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fortuna/gridiron/internal/store"
)

// header maps a CSV header row to column positions, with identity fields
// resolved through their alias lists.
type header struct {
	columns  []string
	playerID int
	name     int
	position int
	team     int
	opponent int
	season   int
	week     int
	homeTeam int
	awayTeam int
}

func newHeader(row []string) (*header, error) {
	h := &header{
		columns:  make([]string, len(row)),
		playerID: -1, name: -1, position: -1, team: -1, opponent: -1,
		season: -1, week: -1, homeTeam: -1, awayTeam: -1,
	}
	index := make(map[string]int, len(row))
	for i, col := range row {
		col = strings.ToLower(strings.TrimSpace(col))
		h.columns[i] = col
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	h.playerID = firstIndex(index, playerIDColumns)
	h.name = firstIndex(index, playerNameColumns)
	h.position = firstIndex(index, positionColumns)
	h.team = firstIndex(index, teamColumns)
	h.opponent = firstIndex(index, opponentColumns)
	h.season = firstIndex(index, seasonColumns)
	h.week = firstIndex(index, weekColumns)
	h.homeTeam = firstIndex(index, homeTeamColumns)
	h.awayTeam = firstIndex(index, awayTeamColumns)

	if h.playerID < 0 || h.season < 0 || h.week < 0 {
		return nil, fmt.Errorf("feed is missing identity columns (have %v)", row)
	}
	return h, nil
}

func firstIndex(index map[string]int, candidates []string) int {
	for _, c := range candidates {
		if i, ok := index[c]; ok {
			return i
		}
	}
	return -1
}

// identityColumn reports whether position i holds identity data rather than
// a stat value.
func (h *header) identityColumn(i int) bool {
	return i == h.playerID || i == h.name || i == h.position || i == h.team ||
		i == h.opponent || i == h.season || i == h.week ||
		i == h.homeTeam || i == h.awayTeam
}

// NormalizeRecord converts one CSV record into a StatRow. Stat columns go
// through the alias table; blank and non-numeric cells are dropped so absent
// stats read as zero downstream.
func (h *header) NormalizeRecord(record []string) (store.StatRow, error) {
	row := store.StatRow{Stats: make(map[string]float64)}

	cell := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row.PlayerID = cell(h.playerID)
	if row.PlayerID == "" {
		return row, fmt.Errorf("record has no player id")
	}
	row.PlayerName = cell(h.name)
	row.Position = strings.ToUpper(cell(h.position))
	row.Team = strings.ToUpper(cell(h.team))
	row.HomeTeam = strings.ToUpper(cell(h.homeTeam))
	row.AwayTeam = strings.ToUpper(cell(h.awayTeam))

	season, err := strconv.Atoi(cell(h.season))
	if err != nil {
		return row, fmt.Errorf("bad season %q: %w", cell(h.season), err)
	}
	row.Season = season

	week, err := strconv.Atoi(cell(h.week))
	if err != nil {
		return row, fmt.Errorf("bad week %q: %w", cell(h.week), err)
	}
	row.Week = week

	// Some feeds carry opponent instead of home/away. Reconstruct the pair
	// so Opponent() works either way; without a venue flag we treat the
	// player's team as home.
	if row.HomeTeam == "" && row.AwayTeam == "" {
		if opp := strings.ToUpper(cell(h.opponent)); opp != "" && row.Team != "" {
			row.HomeTeam = row.Team
			row.AwayTeam = opp
		}
	}

	for i, value := range record {
		if h.identityColumn(i) || i >= len(h.columns) {
			continue
		}
		v := strings.TrimSpace(value)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		row.Stats[CanonicalStat(h.columns[i])] = f
	}

	return row, nil
}

// NormalizeRecords converts a full CSV table (header row first) into StatRows.
// Records that cannot be normalized are skipped and counted, not fatal.
func NormalizeRecords(records [][]string) ([]store.StatRow, int, error) {
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("empty feed")
	}

	h, err := newHeader(records[0])
	if err != nil {
		return nil, 0, err
	}

	rows := make([]store.StatRow, 0, len(records)-1)
	skipped := 0
	for _, record := range records[1:] {
		row, err := h.NormalizeRecord(record)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}
