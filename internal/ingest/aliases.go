package ingest

import "github.com/fortuna/gridiron/internal/scoring"

// statAliases maps every column name the weekly feeds have shipped under to
// the canonical stat name the scoring engine reads. Feeds derived from
// nflfastR, nfl-data-py and ESPN exports all disagree on spelling, so the
// translation happens once here and nowhere else.
var statAliases = map[string]string{
	// Passing
	"passing_yards":           scoring.StatPassingYards,
	"pass_yards":              scoring.StatPassingYards,
	"pass_yds":                scoring.StatPassingYards,
	"py":                      scoring.StatPassingYards,
	"passing_tds":             scoring.StatPassingTDs,
	"pass_tds":                scoring.StatPassingTDs,
	"passing_touchdowns":      scoring.StatPassingTDs,
	"interceptions":           scoring.StatInterceptions,
	"interceptions_thrown":    scoring.StatInterceptions,
	"pass_interceptions":      scoring.StatInterceptions,
	"passing_2pt_conversions": scoring.StatPassing2Pt,
	"two_point_pass":          scoring.StatPassing2Pt,
	"pass_2pt":                scoring.StatPassing2Pt,
	"two_pt_pass":             scoring.StatPassing2Pt,

	// Rushing
	"rushing_yards":           scoring.StatRushingYards,
	"rush_yards":              scoring.StatRushingYards,
	"rush_yds":                scoring.StatRushingYards,
	"ry":                      scoring.StatRushingYards,
	"rushing_tds":             scoring.StatRushingTDs,
	"rush_tds":                scoring.StatRushingTDs,
	"rushing_touchdowns":      scoring.StatRushingTDs,
	"rushing_2pt_conversions": scoring.StatRushing2Pt,
	"two_point_rush":          scoring.StatRushing2Pt,
	"rush_2pt":                scoring.StatRushing2Pt,
	"two_pt_rush":             scoring.StatRushing2Pt,
	"rushing_first_downs":     scoring.StatRushingFirstDowns,
	"rush_first_downs":        scoring.StatRushingFirstDowns,
	"first_down_rush":         scoring.StatRushingFirstDowns,

	// Receiving
	"receptions":                scoring.StatReceptions,
	"rec":                       scoring.StatReceptions,
	"recs":                      scoring.StatReceptions,
	"receiving_yards":           scoring.StatReceivingYards,
	"rec_yards":                 scoring.StatReceivingYards,
	"rec_yds":                   scoring.StatReceivingYards,
	"rey":                       scoring.StatReceivingYards,
	"receiving_tds":             scoring.StatReceivingTDs,
	"rec_tds":                   scoring.StatReceivingTDs,
	"receiving_touchdowns":      scoring.StatReceivingTDs,
	"receiving_2pt_conversions": scoring.StatReceiving2Pt,
	"two_point_receive":         scoring.StatReceiving2Pt,
	"rec_2pt":                   scoring.StatReceiving2Pt,
	"two_pt_rec":                scoring.StatReceiving2Pt,
	"receiving_first_downs":     scoring.StatReceivingFirstDowns,
	"rec_first_downs":           scoring.StatReceivingFirstDowns,
	"first_down_rec":            scoring.StatReceivingFirstDowns,
	"first_down_receiving":      scoring.StatReceivingFirstDowns,

	// Turnovers
	"fumbles_lost":         scoring.StatFumblesLost,
	"fumlost":              scoring.StatFumblesLost,
	"fumbles_lost_offense": scoring.StatFumblesLost,

	// Player return touchdowns
	"kick_return_tds":           scoring.StatKickReturnTDs,
	"kick_return_td":            scoring.StatKickReturnTDs,
	"kret_td":                   scoring.StatKickReturnTDs,
	"punt_return_tds":           scoring.StatPuntReturnTDs,
	"punt_return_td":            scoring.StatPuntReturnTDs,
	"pret_td":                   scoring.StatPuntReturnTDs,
	"int_return_td":             scoring.StatIntReturnTDs,
	"interception_return_td":    scoring.StatIntReturnTDs,
	"fumble_return_td":          scoring.StatFumbleReturnTDs,
	"blocked_kick_return_td":    scoring.StatBlockedKickRetTDs,
	"blocked_punt_fg_return_td": scoring.StatBlockedKickRetTDs,
	"two_pt_return":             scoring.StatTwoPtReturns,
	"def_two_pt_return":         scoring.StatTwoPtReturns,
	"one_pt_safety":             scoring.StatOnePtSafeties,
	"one_point_safety":          scoring.StatOnePtSafeties,

	// Kicking
	"pat_made":              scoring.StatPATMade,
	"xp_made":               scoring.StatPATMade,
	"extra_points_made":     scoring.StatPATMade,
	"fg_missed":             scoring.StatFGMissed,
	"field_goals_missed":    scoring.StatFGMissed,
	"fg_made_0_39":          scoring.StatFGMade039,
	"fgm_0_39":              scoring.StatFGMade039,
	"fg_made_40_49":         scoring.StatFGMade4049,
	"fgm_40_49":             scoring.StatFGMade4049,
	"fg_made_50_59":         scoring.StatFGMade5059,
	"fgm_50_59":             scoring.StatFGMade5059,
	"fg_made_60_plus":       scoring.StatFGMade60Plus,
	"fgm_60_plus":           scoring.StatFGMade60Plus,
	"fg_made_60_plus_yards": scoring.StatFGMade60Plus,

	// Team defense
	"def_sacks":                  scoring.StatDSTSacks,
	"sacks":                      scoring.StatDSTSacks,
	"team_def_sacks":             scoring.StatDSTSacks,
	"def_interceptions":          scoring.StatDSTInterceptions,
	"interceptions_def":          scoring.StatDSTInterceptions,
	"team_def_interceptions":     scoring.StatDSTInterceptions,
	"def_fumbles_recovered":      scoring.StatDSTFumbleRecoveries,
	"fumbles_recovered_def":      scoring.StatDSTFumbleRecoveries,
	"team_def_fumbles_rec":       scoring.StatDSTFumbleRecoveries,
	"def_safeties":               scoring.StatDSTSafeties,
	"safeties":                   scoring.StatDSTSafeties,
	"team_def_safeties":          scoring.StatDSTSafeties,
	"def_blocked_kicks":          scoring.StatDSTBlockedKicks,
	"blocked_kicks":              scoring.StatDSTBlockedKicks,
	"team_def_blocks":            scoring.StatDSTBlockedKicks,
	"points_allowed":             scoring.StatPointsAllowed,
	"pa_def":                     scoring.StatPointsAllowed,
	"def_points_allowed":         scoring.StatPointsAllowed,
	"yards_allowed":              scoring.StatYardsAllowed,
	"ya_def":                     scoring.StatYardsAllowed,
	"def_yards_allowed":          scoring.StatYardsAllowed,
	"def_kick_return_td":         scoring.StatDSTKickReturnTDs,
	"def_kick_return_tds":        scoring.StatDSTKickReturnTDs,
	"def_punt_return_td":         scoring.StatDSTPuntReturnTDs,
	"def_punt_return_tds":        scoring.StatDSTPuntReturnTDs,
	"def_int_return_td":          scoring.StatDSTIntReturnTDs,
	"def_interception_td":        scoring.StatDSTIntReturnTDs,
	"def_fumble_return_td":       scoring.StatDSTFumbleReturnTDs,
	"def_blocked_kick_return_td": scoring.StatDSTBlockedKickTDs,
}

// Identity columns also drift between feeds. Each canonical field lists its
// accepted spellings in priority order.
var (
	playerIDColumns   = []string{"player_id", "gsis_id", "player_gsis_id"}
	playerNameColumns = []string{"player_display_name", "player_name", "player", "full_name"}
	positionColumns   = []string{"position", "pos", "player_position", "fantasy_position"}
	teamColumns       = []string{"recent_team", "team", "posteam"}
	opponentColumns   = []string{"opponent_team", "opp", "defteam"}
	seasonColumns     = []string{"season", "year"}
	weekColumns       = []string{"week", "game_week"}
	homeTeamColumns   = []string{"home_team"}
	awayTeamColumns   = []string{"away_team"}
)

// CanonicalStat resolves a feed column name to its canonical stat name.
// Unknown columns map to themselves so novel stats survive the round trip.
func CanonicalStat(column string) string {
	if canonical, ok := statAliases[column]; ok {
		return canonical
	}
	return column
}
