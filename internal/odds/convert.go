package odds

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// SentinelOdds stands in for the price of a zero-probability outcome.
	SentinelOdds = 1e9
	// MinProbability floors probabilities before inversion.
	MinProbability = 1e-9
)

// ProbToDecimal converts a probability to fair decimal odds.
// Zero or negative probability returns SentinelOdds instead of +Inf.
// Example: 0.5 → 2.0, 0.25 → 4.0
func ProbToDecimal(prob float64) float64 {
	if prob <= 0 || math.IsNaN(prob) {
		return SentinelOdds
	}
	return 1.0 / prob
}

// DecimalToProb converts fair decimal odds back to probability.
// Odds at or above SentinelOdds map to 0.
func DecimalToProb(odds float64) float64 {
	if odds >= SentinelOdds || odds <= 0 || math.IsNaN(odds) {
		return 0
	}
	return 1.0 / odds
}

// Price is a formatted fair price for one market.
type Price struct {
	Probability float64
	Percent     string
	FairOdds    decimal.Decimal
}

// Format renders a probability as percentage and fair decimal odds.
// The probability is floored at MinProbability so the odds stay finite.
func Format(prob float64) Price {
	if math.IsNaN(prob) || prob < 0 {
		prob = 0
	}
	if prob > 1 {
		prob = 1
	}

	fair := 1.0 / math.Max(prob, MinProbability)

	return Price{
		Probability: prob,
		Percent:     fmt.Sprintf("%.2f%%", prob*100),
		FairOdds:    decimal.NewFromFloat(fair).Round(2),
	}
}

// String renders the price as "54.32% @ 1.84".
func (p Price) String() string {
	return fmt.Sprintf("%s @ %s", p.Percent, p.FairOdds.StringFixed(2))
}
