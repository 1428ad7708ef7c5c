package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/gridiron/internal/store"
)

// ScheduleURL hosts the season schedule pages
const ScheduleURL = "https://www.pro-football-reference.com/years/%d/games.htm"

var weekPattern = regexp.MustCompile(`^\d{1,2}$`)

// FetchSchedule downloads and parses the schedule page for one season.
func (c *Client) FetchSchedule(ctx context.Context, season int) ([]store.Game, error) {
	url := fmt.Sprintf(ScheduleURL, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule HTML: %w", err)
	}

	return ParseSchedule(doc, season), nil
}

// ParseSchedule extracts games from a schedule document. Rows without a
// numeric week (playoff rounds, section headers) are skipped.
func ParseSchedule(doc *goquery.Document, season int) []store.Game {
	var games []store.Game

	doc.Find("table#games tbody tr").Each(func(i int, s *goquery.Selection) {
		game := parseScheduleRow(s, season)
		if game != nil {
			games = append(games, *game)
		}
	})

	log.Printf("Parsed %d games from %d schedule", len(games), season)
	return games
}

func parseScheduleRow(s *goquery.Selection, season int) *store.Game {
	weekText := strings.TrimSpace(s.Find("th[data-stat='week_num']").Text())
	if !weekPattern.MatchString(weekText) {
		return nil
	}
	week, err := strconv.Atoi(weekText)
	if err != nil {
		return nil
	}

	winner := strings.TrimSpace(s.Find("td[data-stat='winner'] a").Text())
	loser := strings.TrimSpace(s.Find("td[data-stat='loser'] a").Text())
	if winner == "" || loser == "" {
		return nil
	}

	// The "@" marker means the winner played on the road.
	atMark := strings.TrimSpace(s.Find("td[data-stat='game_location']").Text())
	home, away := winner, loser
	if atMark == "@" {
		home, away = loser, winner
	}

	game := &store.Game{
		Season:   season,
		Week:     week,
		HomeTeam: TeamAbbreviation(home),
		AwayTeam: TeamAbbreviation(away),
	}

	// A posted winner score means the game has been played.
	scoreText := strings.TrimSpace(s.Find("td[data-stat='pts_win']").Text())
	if _, err := strconv.Atoi(scoreText); err == nil {
		game.Final = true
	}

	dateText := strings.TrimSpace(s.Find("td[data-stat='game_date']").Text())
	timeText := strings.TrimSpace(s.Find("td[data-stat='gametime']").Text())
	if kickoff, err := parseKickoff(dateText, timeText); err == nil {
		game.Kickoff = kickoff
	}

	return game
}

func parseKickoff(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("no date")
	}
	if clock != "" {
		if t, err := time.Parse("2006-01-02 3:04PM", date+" "+strings.ToUpper(clock)); err == nil {
			return t, nil
		}
	}
	return time.Parse("2006-01-02", date)
}

// teamAbbreviations maps franchise names as they appear on schedule pages to
// the abbreviations used everywhere else in the system.
var teamAbbreviations = map[string]string{
	"arizona cardinals":     "ARI",
	"atlanta falcons":       "ATL",
	"baltimore ravens":      "BAL",
	"buffalo bills":         "BUF",
	"carolina panthers":     "CAR",
	"chicago bears":         "CHI",
	"cincinnati bengals":    "CIN",
	"cleveland browns":      "CLE",
	"dallas cowboys":        "DAL",
	"denver broncos":        "DEN",
	"detroit lions":         "DET",
	"green bay packers":     "GB",
	"houston texans":        "HOU",
	"indianapolis colts":    "IND",
	"jacksonville jaguars":  "JAX",
	"kansas city chiefs":    "KC",
	"las vegas raiders":     "LV",
	"los angeles chargers":  "LAC",
	"los angeles rams":      "LA",
	"miami dolphins":        "MIA",
	"minnesota vikings":     "MIN",
	"new england patriots":  "NE",
	"new orleans saints":    "NO",
	"new york giants":       "NYG",
	"new york jets":         "NYJ",
	"philadelphia eagles":   "PHI",
	"pittsburgh steelers":   "PIT",
	"san francisco 49ers":   "SF",
	"seattle seahawks":      "SEA",
	"tampa bay buccaneers":  "TB",
	"tennessee titans":      "TEN",
	"washington commanders": "WAS",
}

// TeamAbbreviation returns the franchise abbreviation for a full team name.
// Unknown names come back unchanged so callers can decide what to do.
func TeamAbbreviation(name string) string {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	if abbr, ok := teamAbbreviations[nameLower]; ok {
		return abbr
	}

	for key, abbr := range teamAbbreviations {
		if strings.Contains(nameLower, key) {
			return abbr
		}
	}

	return name
}
