// Package scoring converts one player-game stat line into a fantasy-point
// total under a league's configurable rule set. Rules are loaded once per
// run and treated as immutable; every weight is required and a missing key
// fails loading rather than silently defaulting.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// Rules is the full league scoring configuration.
type Rules struct {
	Offense Offense `json:"offense"`
	Kicking Kicking `json:"kicking"`
	DST     DST     `json:"dst"`
}

// Offense groups the linear-weight tables for the three offensive phases
// plus turnovers and player return touchdowns.
type Offense struct {
	Passing   PassingWeights   `json:"passing"`
	Rushing   RushingWeights   `json:"rushing"`
	Receiving ReceivingWeights `json:"receiving"`
	Turnovers TurnoverWeights  `json:"turnovers"`
	Returns   ReturnWeights    `json:"returns"`
}

// Required weights are pointers so Validate can tell a configured zero
// apart from a key that never appeared in the file.
type PassingWeights struct {
	YardsPer     *float64       `json:"yards_per"`
	TD           *float64       `json:"td"`
	Interception *float64       `json:"interception"`
	TwoPt        *float64       `json:"two_pt"`
	Bonuses      []YardageBonus `json:"bonuses,omitempty"`
}

type RushingWeights struct {
	YardsPer  *float64       `json:"yards_per"`
	TD        *float64       `json:"td"`
	TwoPt     *float64       `json:"two_pt"`
	FirstDown *float64       `json:"first_down"`
	Bonuses   []YardageBonus `json:"bonuses,omitempty"`
}

type ReceivingWeights struct {
	YardsPer  *float64       `json:"yards_per"`
	Reception *float64       `json:"reception"`
	TD        *float64       `json:"td"`
	TwoPt     *float64       `json:"two_pt"`
	FirstDown *float64       `json:"first_down"`
	Bonuses   []YardageBonus `json:"bonuses,omitempty"`
}

type TurnoverWeights struct {
	FumblesLost *float64 `json:"fumbles_lost"`
}

type ReturnWeights struct {
	KickReturnTD        *float64 `json:"kick_return_td"`
	PuntReturnTD        *float64 `json:"punt_return_td"`
	IntReturnTD         *float64 `json:"int_return_td"`
	FumbleReturnTD      *float64 `json:"fumble_return_td"`
	BlockedKickReturnTD *float64 `json:"blocked_kick_return_td"`
	TwoPtReturn         *float64 `json:"two_pt_return"`
	OnePtSafety         *float64 `json:"one_pt_safety"`
}

// Kicking holds fixed points per made kick bucketed by distance, plus
// extra points and the (negative) miss rate.
type Kicking struct {
	PATMade  *float64 `json:"pat_made"`
	FGMissed *float64 `json:"fg_missed"`
	FG0to39  *float64 `json:"fg_0_39"`
	FG40to49 *float64 `json:"fg_40_49"`
	FG50to59 *float64 `json:"fg_50_59"`
	FG60Plus *float64 `json:"fg_60_plus"`
}

// DST holds the defense/special-teams event rates and the two bucketed
// step functions for points and yards allowed.
type DST struct {
	Sack           *float64         `json:"sack"`
	Interception   *float64         `json:"interception"`
	FumbleRecovery *float64         `json:"fumble_recovery"`
	Safety         *float64         `json:"safety"`
	Block          *float64         `json:"block"`
	ReturnTDs      DSTReturnWeights `json:"return_tds"`
	PointsAllowed  []Bucket         `json:"points_allowed"`
	YardsAllowed   []Bucket         `json:"yards_allowed"`
}

type DSTReturnWeights struct {
	Kickoff      *float64 `json:"kickoff"`
	Punt         *float64 `json:"punt"`
	Interception *float64 `json:"interception"`
	Fumble       *float64 `json:"fumble"`
	BlockedKick  *float64 `json:"blocked_kick"`
}

// YardageBonus is a fixed award when a phase's yardage meets the floor.
// When several floors are met, only the highest one pays out.
type YardageBonus struct {
	MinYards float64 `json:"min_yards"`
	Points   float64 `json:"points"`
}

// Bucket is one inclusive [Min, Max] range of a step function. A nil Min
// means open-ended below, a nil Max open-ended above.
type Bucket struct {
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Points float64  `json:"points"`
}

// Contains reports whether v falls inside this bucket's inclusive range.
func (b Bucket) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// Load reads and validates a rules file. Any missing required weight or a
// malformed bucket table is a configuration error that fails the run.
func Load(path string) (*Rules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scoring rules: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(content, &rules); err != nil {
		return nil, fmt.Errorf("parsing scoring rules %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("scoring rules %s: %w", path, err)
	}

	return &rules, nil
}

// Validate checks that every required weight is present and finite and
// that both DST bucket tables cover [0, +inf) without gaps.
func (r *Rules) Validate() error {
	v := &validator{}

	v.require("offense.passing.yards_per", r.Offense.Passing.YardsPer)
	v.require("offense.passing.td", r.Offense.Passing.TD)
	v.require("offense.passing.interception", r.Offense.Passing.Interception)
	v.require("offense.passing.two_pt", r.Offense.Passing.TwoPt)

	v.require("offense.rushing.yards_per", r.Offense.Rushing.YardsPer)
	v.require("offense.rushing.td", r.Offense.Rushing.TD)
	v.require("offense.rushing.two_pt", r.Offense.Rushing.TwoPt)
	v.require("offense.rushing.first_down", r.Offense.Rushing.FirstDown)

	v.require("offense.receiving.yards_per", r.Offense.Receiving.YardsPer)
	v.require("offense.receiving.reception", r.Offense.Receiving.Reception)
	v.require("offense.receiving.td", r.Offense.Receiving.TD)
	v.require("offense.receiving.two_pt", r.Offense.Receiving.TwoPt)
	v.require("offense.receiving.first_down", r.Offense.Receiving.FirstDown)

	v.require("offense.turnovers.fumbles_lost", r.Offense.Turnovers.FumblesLost)

	v.require("offense.returns.kick_return_td", r.Offense.Returns.KickReturnTD)
	v.require("offense.returns.punt_return_td", r.Offense.Returns.PuntReturnTD)
	v.require("offense.returns.int_return_td", r.Offense.Returns.IntReturnTD)
	v.require("offense.returns.fumble_return_td", r.Offense.Returns.FumbleReturnTD)
	v.require("offense.returns.blocked_kick_return_td", r.Offense.Returns.BlockedKickReturnTD)
	v.require("offense.returns.two_pt_return", r.Offense.Returns.TwoPtReturn)
	v.require("offense.returns.one_pt_safety", r.Offense.Returns.OnePtSafety)

	v.require("kicking.pat_made", r.Kicking.PATMade)
	v.require("kicking.fg_missed", r.Kicking.FGMissed)
	v.require("kicking.fg_0_39", r.Kicking.FG0to39)
	v.require("kicking.fg_40_49", r.Kicking.FG40to49)
	v.require("kicking.fg_50_59", r.Kicking.FG50to59)
	v.require("kicking.fg_60_plus", r.Kicking.FG60Plus)

	v.require("dst.sack", r.DST.Sack)
	v.require("dst.interception", r.DST.Interception)
	v.require("dst.fumble_recovery", r.DST.FumbleRecovery)
	v.require("dst.safety", r.DST.Safety)
	v.require("dst.block", r.DST.Block)
	v.require("dst.return_tds.kickoff", r.DST.ReturnTDs.Kickoff)
	v.require("dst.return_tds.punt", r.DST.ReturnTDs.Punt)
	v.require("dst.return_tds.interception", r.DST.ReturnTDs.Interception)
	v.require("dst.return_tds.fumble", r.DST.ReturnTDs.Fumble)
	v.require("dst.return_tds.blocked_kick", r.DST.ReturnTDs.BlockedKick)

	if len(v.missing) > 0 {
		return fmt.Errorf("missing required weights: %s", strings.Join(v.missing, ", "))
	}
	if len(v.nonFinite) > 0 {
		return fmt.Errorf("non-finite weights: %s", strings.Join(v.nonFinite, ", "))
	}

	if err := validateBuckets("dst.points_allowed", r.DST.PointsAllowed); err != nil {
		return err
	}
	if err := validateBuckets("dst.yards_allowed", r.DST.YardsAllowed); err != nil {
		return err
	}

	return nil
}

type validator struct {
	missing   []string
	nonFinite []string
}

func (v *validator) require(key string, w *float64) {
	if w == nil {
		v.missing = append(v.missing, key)
		return
	}
	if math.IsNaN(*w) || math.IsInf(*w, 0) {
		v.nonFinite = append(v.nonFinite, key)
	}
}

// validateBuckets enforces contiguous, exhaustive coverage over [0, +inf):
// the first bucket must be open-ended below, the last open-ended above, and
// each interior boundary must abut the previous one (next min == prev max
// + 1, integer-step domains). Several versions of the league rules shipped
// with a hole in the 18-27 points-allowed range that silently scored zero;
// rejecting gaps here makes that class of table unloadable.
func validateBuckets(key string, buckets []Bucket) error {
	if len(buckets) == 0 {
		return fmt.Errorf("%s: bucket table is empty", key)
	}

	if buckets[0].Min != nil && *buckets[0].Min > 0 {
		return fmt.Errorf("%s: first bucket must cover 0 (got min=%g)", key, *buckets[0].Min)
	}
	if buckets[len(buckets)-1].Max != nil {
		return fmt.Errorf("%s: last bucket must be open-ended above", key)
	}

	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1], buckets[i]
		if prev.Max == nil {
			return fmt.Errorf("%s: bucket %d is open-ended above but not last", key, i-1)
		}
		if cur.Min == nil {
			return fmt.Errorf("%s: bucket %d has no lower bound", key, i)
		}
		if *cur.Min != *prev.Max+1 {
			return fmt.Errorf("%s: gap between buckets %d and %d (max=%g, next min=%g)",
				key, i-1, i, *prev.Max, *cur.Min)
		}
	}

	for i, b := range buckets {
		if math.IsNaN(b.Points) || math.IsInf(b.Points, 0) {
			return fmt.Errorf("%s: bucket %d has non-finite points", key, i)
		}
	}

	return nil
}
