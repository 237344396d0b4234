// Package market prices football markets against a pair of half-time
// scoreline matrices.
package market

import (
	"fmt"
	"strconv"
)

// Result is a match-result selection: 1X2 or a double chance.
type Result int

const (
	Home       Result = iota + 1 // 1
	Draw                         // X
	Away                         // 2
	HomeOrDraw                   // 1X
	HomeOrAway                   // 12
	DrawOrAway                   // X2
)

var resultCodes = map[Result]string{
	Home:       "1",
	Draw:       "X",
	Away:       "2",
	HomeOrDraw: "1X",
	HomeOrAway: "12",
	DrawOrAway: "X2",
}

// ParseResult maps a code such as "1", "x" or "X2" to a Result.
func ParseResult(code string) (Result, error) {
	switch code {
	case "1":
		return Home, nil
	case "X", "x":
		return Draw, nil
	case "2":
		return Away, nil
	case "1X", "1x":
		return HomeOrDraw, nil
	case "12":
		return HomeOrAway, nil
	case "X2", "x2":
		return DrawOrAway, nil
	}
	return 0, fmt.Errorf("unknown result code %q", code)
}

// Code returns the 1X2 code for the result.
func (r Result) Code() string {
	if c, ok := resultCodes[r]; ok {
		return c
	}
	return "?"
}

func (r Result) String() string {
	return r.Code()
}

// Matches reports whether the score (home, away) satisfies the selection.
func (r Result) Matches(home, away int) bool {
	switch r {
	case Home:
		return home > away
	case Draw:
		return home == away
	case Away:
		return home < away
	case HomeOrDraw:
		return home >= away
	case HomeOrAway:
		return home != away
	case DrawOrAway:
		return home <= away
	}
	return false
}

// TotalKind is the comparison applied to a goal total.
type TotalKind int

const (
	Over TotalKind = iota + 1
	Under
	Exact
)

func (k TotalKind) String() string {
	switch k {
	case Over:
		return "Over"
	case Under:
		return "Under"
	case Exact:
		return "Exactly"
	}
	return "?"
}

// Total constrains home + away goals against Value.
type Total struct {
	Kind  TotalKind
	Value float64
}

// Matches reports whether the goal total satisfies the constraint.
// Over and Under are strict.
func (t Total) Matches(home, away int) bool {
	goals := float64(home + away)
	switch t.Kind {
	case Over:
		return goals > t.Value
	case Under:
		return goals < t.Value
	case Exact:
		return goals == t.Value
	}
	return false
}

func (t Total) String() string {
	return t.Kind.String() + " " + strconv.FormatFloat(t.Value, 'f', -1, 64)
}

// Score is an exact scoreline.
type Score struct {
	Home int
	Away int
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// Window selects the part of the match a condition applies to.
type Window int

const (
	FirstHalf Window = iota
	SecondHalf
	FullTime
)

func (w Window) String() string {
	switch w {
	case FirstHalf:
		return "1H"
	case SecondHalf:
		return "2H"
	case FullTime:
		return "FT"
	}
	return "?"
}

// WindowConditions are the optional constraints for one window.
// Nil fields impose no constraint.
type WindowConditions struct {
	Result       *Result
	Total        *Total
	BTTS         *bool
	CorrectScore *Score
}

// IsEmpty reports whether no constraint is set.
func (w WindowConditions) IsEmpty() bool {
	return w.Result == nil && w.Total == nil && w.BTTS == nil && w.CorrectScore == nil
}

// Matches reports whether the score satisfies every set constraint.
func (w WindowConditions) Matches(home, away int) bool {
	if w.Result != nil && !w.Result.Matches(home, away) {
		return false
	}
	if w.Total != nil && !w.Total.Matches(home, away) {
		return false
	}
	if w.BTTS != nil && (home > 0 && away > 0) != *w.BTTS {
		return false
	}
	if w.CorrectScore != nil && (home != w.CorrectScore.Home || away != w.CorrectScore.Away) {
		return false
	}
	return true
}

// Conditions is an AND of per-window constraints. Full-time scores are
// always derived from the two halves.
type Conditions struct {
	FirstHalf  WindowConditions
	SecondHalf WindowConditions
	FullTime   WindowConditions
}

// Window returns a pointer to the constraints for w.
func (c *Conditions) Window(w Window) *WindowConditions {
	switch w {
	case FirstHalf:
		return &c.FirstHalf
	case SecondHalf:
		return &c.SecondHalf
	default:
		return &c.FullTime
	}
}

// IsEmpty reports whether no window carries a constraint.
func (c Conditions) IsEmpty() bool {
	return c.FirstHalf.IsEmpty() && c.SecondHalf.IsEmpty() && c.FullTime.IsEmpty()
}

// Builder helpers for programmatic condition sets.

// ResultPtr returns a pointer to r.
func ResultPtr(r Result) *Result { return &r }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// OverPtr returns an Over constraint.
func OverPtr(v float64) *Total { return &Total{Kind: Over, Value: v} }

// UnderPtr returns an Under constraint.
func UnderPtr(v float64) *Total { return &Total{Kind: Under, Value: v} }

// ScorePtr returns a pointer to an exact scoreline.
func ScorePtr(home, away int) *Score { return &Score{Home: home, Away: away} }
