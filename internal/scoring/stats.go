package scoring

// Canonical stat names. The ingest layer resolves upstream column aliases
// onto these once; scoring and analysis never see any other spelling.
const (
	// Passing
	StatPassingYards  = "passing_yards"
	StatPassingTDs    = "passing_tds"
	StatInterceptions = "interceptions"
	StatPassing2Pt    = "passing_2pt_conversions"

	// Rushing
	StatRushingYards      = "rushing_yards"
	StatRushingTDs        = "rushing_tds"
	StatRushing2Pt        = "rushing_2pt_conversions"
	StatRushingFirstDowns = "rushing_first_downs"

	// Receiving
	StatReceptions          = "receptions"
	StatReceivingYards      = "receiving_yards"
	StatReceivingTDs        = "receiving_tds"
	StatReceiving2Pt        = "receiving_2pt_conversions"
	StatReceivingFirstDowns = "receiving_first_downs"

	// Turnovers
	StatFumblesLost = "fumbles_lost"

	// Returns (player-level)
	StatKickReturnTDs     = "kick_return_tds"
	StatPuntReturnTDs     = "punt_return_tds"
	StatIntReturnTDs      = "int_return_tds"
	StatFumbleReturnTDs   = "fumble_return_tds"
	StatBlockedKickRetTDs = "blocked_kick_return_tds"
	StatTwoPtReturns      = "two_pt_returns"
	StatOnePtSafeties     = "one_pt_safeties"

	// Kicking
	StatPATMade      = "pat_made"
	StatFGMissed     = "fg_missed"
	StatFGMade039    = "fg_made_0_39"
	StatFGMade4049   = "fg_made_40_49"
	StatFGMade5059   = "fg_made_50_59"
	StatFGMade60Plus = "fg_made_60_plus"

	// Defense / special teams (team-level)
	StatDSTSacks            = "def_sacks"
	StatDSTInterceptions    = "def_interceptions"
	StatDSTFumbleRecoveries = "def_fumbles_recovered"
	StatDSTSafeties         = "def_safeties"
	StatDSTBlockedKicks     = "def_blocked_kicks"
	StatPointsAllowed       = "points_allowed"
	StatYardsAllowed        = "yards_allowed"
	StatDSTKickReturnTDs    = "def_kick_return_tds"
	StatDSTPuntReturnTDs    = "def_punt_return_tds"
	StatDSTIntReturnTDs     = "def_int_return_tds"
	StatDSTFumbleReturnTDs  = "def_fumble_return_tds"
	StatDSTBlockedKickTDs   = "def_blocked_kick_return_tds"
)
