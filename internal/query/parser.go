// Package query turns short market descriptions such as
// "1h o1.5 and ft btts yes" into condition sets.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"football-fair-odds/internal/market"
)

var (
	// ErrUnrecognized means a clause matched no rule.
	ErrUnrecognized = errors.New("unrecognized market")
	// ErrMarginUnsupported is returned for any request mentioning margin.
	ErrMarginUnsupported = errors.New("margins are not supported, only fair odds are computed")
	// ErrEmptyQuery is returned for blank input.
	ErrEmptyQuery = errors.New("empty query")
)

// ParseError names the fragment that could not be parsed.
type ParseError struct {
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result is a parsed query.
type Result struct {
	Conditions market.Conditions
	Label      string
	// Warnings is reserved; currently always empty.
	Warnings []string
}

type shape int

const (
	shapeResult shape = iota
	shapeTotal
	shapeBTTS
	shapeCorrectScore
)

// rule is one (pattern, builder) pair. The first rule whose pattern
// matches a clause wins.
type rule struct {
	pattern *regexp.Regexp
	build   func(m []string, c *market.Conditions) (string, error)
}

const (
	ftPrefix = `(?:ft\s*)?`
	h1Prefix = `(?:1h|1\s*half|i\s*half)\s*`
	h2Prefix = `(?:2h|2\s*half|ii\s*half)\s*`
)

var shapePatterns = map[shape]string{
	shapeResult:       `(1x|12|x2|1|x|2)`,
	shapeTotal:        `(over|under|o|u)\s*(\d+(?:\.\d+)?)`,
	shapeBTTS:         `btts\s*(yes|no)`,
	shapeCorrectScore: `cs\s*(\d+)\s*[-:]\s*(\d+)`,
}

// Second-half btts and correct score are not offered.
var rules = buildRules()

func buildRules() []rule {
	var rs []rule
	rs = append(rs, windowRules(market.FullTime, ftPrefix, shapeResult, shapeTotal, shapeBTTS, shapeCorrectScore)...)
	rs = append(rs, windowRules(market.FirstHalf, h1Prefix, shapeResult, shapeTotal, shapeBTTS, shapeCorrectScore)...)
	rs = append(rs, windowRules(market.SecondHalf, h2Prefix, shapeResult, shapeTotal)...)
	return rs
}

func windowRules(w market.Window, prefix string, shapes ...shape) []rule {
	rs := make([]rule, 0, len(shapes))
	for _, s := range shapes {
		rs = append(rs, rule{
			pattern: regexp.MustCompile(`^` + prefix + shapePatterns[s] + `$`),
			build:   builderFor(w, s),
		})
	}
	return rs
}

func builderFor(w market.Window, s shape) func([]string, *market.Conditions) (string, error) {
	switch s {
	case shapeResult:
		return func(m []string, c *market.Conditions) (string, error) {
			r, err := market.ParseResult(m[1])
			if err != nil {
				return "", err
			}
			c.Window(w).Result = &r
			return fmt.Sprintf("%s Result %s", w, r.Code()), nil
		}
	case shapeTotal:
		return func(m []string, c *market.Conditions) (string, error) {
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return "", err
			}
			kind := market.Over
			if strings.HasPrefix(m[1], "u") {
				kind = market.Under
			}
			t := market.Total{Kind: kind, Value: v}
			c.Window(w).Total = &t
			return fmt.Sprintf("%s %s", w, t), nil
		}
	case shapeBTTS:
		return func(m []string, c *market.Conditions) (string, error) {
			yes := m[1] == "yes"
			c.Window(w).BTTS = &yes
			return fmt.Sprintf("%s BTTS %s", w, titleYesNo(yes)), nil
		}
	default:
		return func(m []string, c *market.Conditions) (string, error) {
			home, err := strconv.Atoi(m[1])
			if err != nil {
				return "", err
			}
			away, err := strconv.Atoi(m[2])
			if err != nil {
				return "", err
			}
			score := market.Score{Home: home, Away: away}
			c.Window(w).CorrectScore = &score
			return fmt.Sprintf("%s CS %s", w, score), nil
		}
	}
}

func titleYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

var (
	whitespace    = regexp.MustCompile(`\s+`)
	clauseDivider = regexp.MustCompile(`\s*(?:\band\b|&)\s*`)
)

// Parse converts free text into a condition set. Clauses separated by
// "and" or "&" are ANDed; a later clause on the same field replaces an
// earlier one.
func Parse(text string) (Result, error) {
	normalized := strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(text), " "))
	if normalized == "" {
		return Result{}, &ParseError{Fragment: text, Err: ErrEmptyQuery}
	}
	if strings.Contains(normalized, "margin") {
		return Result{}, &ParseError{Fragment: normalized, Err: ErrMarginUnsupported}
	}

	var (
		conds  market.Conditions
		labels []string
	)

	for _, clause := range clauseDivider.Split(normalized, -1) {
		label, err := parseClause(clause, &conds)
		if err != nil {
			return Result{}, err
		}
		labels = append(labels, label)
	}

	return Result{
		Conditions: conds,
		Label:      strings.Join(labels, " & "),
		Warnings:   []string{},
	}, nil
}

func parseClause(clause string, c *market.Conditions) (string, error) {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(clause)
		if m == nil {
			continue
		}
		label, err := r.build(m, c)
		if err != nil {
			return "", &ParseError{Fragment: clause, Err: err}
		}
		return label, nil
	}
	return "", &ParseError{Fragment: clause, Err: ErrUnrecognized}
}
