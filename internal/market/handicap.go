package market

import (
	"errors"
	"fmt"
	"math"

	"football-fair-odds/internal/odds"
	"football-fair-odds/internal/scoreline"
)

const (
	// marginEpsilon absorbs floating-point error on whole-goal margins.
	marginEpsilon = 0.01
	// pushEpsilon is how close to 1 the push mass must be to count as all push.
	pushEpsilon = 1e-9
)

// ErrInvalidLine is returned for handicap lines that are not a multiple of 0.25.
var ErrInvalidLine = errors.New("handicap line must be a multiple of 0.25")

// Buckets is the raw three-way split of a handicap line.
type Buckets struct {
	HomeWin float64
	Push    float64
	AwayWin float64
}

// Total returns the mass covered by all three buckets.
func (b Buckets) Total() float64 {
	return b.HomeWin + b.Push + b.AwayWin
}

// HandicapBuckets classifies every full-time path by
// margin = home goals + line − away goals.
func HandicapBuckets(line float64, h1, h2 *scoreline.Matrix) Buckets {
	var b Buckets
	max1, max2 := h1.MaxGoals(), h2.MaxGoals()

	for h1Home := 0; h1Home <= max1; h1Home++ {
		for h1Away := 0; h1Away <= max1; h1Away++ {
			p1 := h1.At(h1Home, h1Away)
			if p1 == 0 {
				continue
			}
			for h2Home := 0; h2Home <= max2; h2Home++ {
				for h2Away := 0; h2Away <= max2; h2Away++ {
					p2 := h2.At(h2Home, h2Away)
					if p2 == 0 {
						continue
					}
					p := p1 * p2
					margin := float64(h1Home+h2Home) + line - float64(h1Away+h2Away)
					switch {
					case margin > marginEpsilon:
						b.HomeWin += p
					case margin < -marginEpsilon:
						b.AwayWin += p
					default:
						b.Push += p
					}
				}
			}
		}
	}

	return b
}

// HandicapPrice is the refunded-push price of a home handicap line.
type HandicapPrice struct {
	Line float64
	Home float64
	Away float64
	// Push is the raw push mass; always 0 for quarter lines.
	Push float64
	// AllPush marks a line on which every path is refunded and no price exists.
	AllPush bool
}

// IsQuarterLine reports whether line is a multiple of 0.25 but not of 0.5.
func IsQuarterLine(line float64) bool {
	q := line * 4
	return isWhole(q) && !isWhole(line*2)
}

// ValidLine reports whether line is a multiple of 0.25.
func ValidLine(line float64) bool {
	return !math.IsNaN(line) && !math.IsInf(line, 0) && isWhole(line*4)
}

func isWhole(f float64) bool {
	return math.Abs(f-math.Round(f)) < 1e-9
}

// Handicap prices a home handicap line with pushes refunded.
//
// Half and whole lines renormalize wins by (1 − push). Quarter lines are
// split into line−0.25 and line+0.25, each half priced as decimal odds,
// and the two odds averaged. This is not the same as averaging the
// probabilities.
func Handicap(line float64, h1, h2 *scoreline.Matrix) (HandicapPrice, error) {
	if !ValidLine(line) {
		return HandicapPrice{}, fmt.Errorf("%w: got %v", ErrInvalidLine, line)
	}

	if !IsQuarterLine(line) {
		b := HandicapBuckets(line, h1, h2)
		home, away, allPush := refundPush(b)
		return HandicapPrice{Line: line, Home: home, Away: away, Push: b.Push, AllPush: allPush}, nil
	}

	lowHome, lowAway, _ := refundPush(HandicapBuckets(line-0.25, h1, h2))
	highHome, highAway, _ := refundPush(HandicapBuckets(line+0.25, h1, h2))

	return HandicapPrice{
		Line: line,
		Home: BlendQuarter(lowHome, highHome),
		Away: BlendQuarter(lowAway, highAway),
	}, nil
}

// refundPush normalizes win probabilities over non-push mass.
// All-push lines return zeros with allPush set.
func refundPush(b Buckets) (home, away float64, allPush bool) {
	if math.Abs(1-b.Push) < pushEpsilon {
		return 0, 0, true
	}
	stake := 1 - b.Push
	return b.HomeWin / stake, b.AwayWin / stake, false
}

// BlendQuarter averages two half-line probabilities as decimal odds:
// p = 1 / ((1/pLow + 1/pHigh) / 2). A zero side is priced at the sentinel.
func BlendQuarter(pLow, pHigh float64) float64 {
	avg := (odds.ProbToDecimal(pLow) + odds.ProbToDecimal(pHigh)) / 2
	return odds.DecimalToProb(avg)
}
