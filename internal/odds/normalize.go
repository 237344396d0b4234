package odds

import (
	"errors"
	"fmt"
	"math"
)

// PercentSumTolerance is how far (in percentage points) a 1X2 input may
// stray from 100 before it is rejected.
const PercentSumTolerance = 1.0

// ErrPercentSum is returned when 1X2 percentages do not add up to ~100.
var ErrPercentSum = errors.New("1X2 percentages must sum to 100")

// NormalizePercentages turns home/draw/away percentages into probabilities
// summing to 1.
//
// Method: proportional rescale
// probX = pctX / (pctHome + pctDraw + pctAway)
//
// The inputs are expected to already be fair (sum within ±1 of 100); this
// is a rounding clean-up, not margin removal.
func NormalizePercentages(home, draw, away float64) (float64, float64, float64, error) {
	for _, p := range []float64{home, draw, away} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return 0, 0, 0, fmt.Errorf("%w: got non-numeric or negative value %v", ErrPercentSum, p)
		}
	}

	total := home + draw + away
	if math.Abs(total-100) > PercentSumTolerance {
		return 0, 0, 0, fmt.Errorf("%w (±%.0f), got %.2f", ErrPercentSum, PercentSumTolerance, total)
	}

	return home / total, draw / total, away / total, nil
}
