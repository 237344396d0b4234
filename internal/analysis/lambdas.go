package analysis

import (
	"errors"
	"fmt"
	"math"

	"football-fair-odds/internal/scoreline"
)

// Calibrated grid search constants. Do not re-derive.
const (
	SolverSteps     = 400
	SolverTolerance = 0.0015
)

var (
	// ErrInvalidInput is returned for a non-positive total or a malformed target triple.
	ErrInvalidInput = errors.New("invalid solver input")
	// ErrUnsolvable means no goal-rate split reproduces the target within tolerance.
	ErrUnsolvable = errors.New("could not reconcile 1X2 probabilities with total goals")
)

// Lambdas is a home/away full-time goal rate pair recovered by the solver.
type Lambdas struct {
	Home float64
	Away float64
	// Error is the squared 1X2 error of the chosen split.
	Error float64
}

// DeriveLambdas finds (λ_home, λ_away) with λ_home + λ_away = totalGoals
// whose Poisson-implied 1X2 best matches target.
//
// The search is an exhaustive scan over SolverSteps+1 uniform splits; the
// first split with the lowest error wins.
func DeriveLambdas(totalGoals float64, target scoreline.Outcome) (Lambdas, error) {
	if math.IsNaN(totalGoals) || math.IsInf(totalGoals, 0) || totalGoals <= 0 {
		return Lambdas{}, fmt.Errorf("%w: total goals must be positive, got %v", ErrInvalidInput, totalGoals)
	}
	if err := validateTarget(target); err != nil {
		return Lambdas{}, err
	}

	best := Lambdas{Error: math.Inf(1)}
	found := false

	for i := 0; i <= SolverSteps; i++ {
		home := totalGoals * float64(i) / SolverSteps
		away := totalGoals - home

		probs, ok := normalizedOutcomes(home, away)
		if !ok {
			continue
		}

		sqErr := squaredError(probs, target)
		if sqErr < best.Error {
			best = Lambdas{Home: home, Away: away, Error: sqErr}
			found = true
		}
	}

	if !found {
		return Lambdas{}, fmt.Errorf("%w: no split carried probability mass", ErrUnsolvable)
	}
	if best.Error > SolverTolerance {
		return Lambdas{}, fmt.Errorf("%w: best squared error %.5f exceeds %.4f", ErrUnsolvable, best.Error, SolverTolerance)
	}
	return best, nil
}

// normalizedOutcomes returns full-time 1X2 at the solver bound, rescaled so
// home + draw + away = 1 over the truncated grid.
func normalizedOutcomes(home, away float64) (scoreline.Outcome, bool) {
	o := scoreline.Build(home, away, scoreline.SolverMaxGoals).Outcomes()
	total := o.Total()
	if total <= 0 {
		return scoreline.Outcome{}, false
	}
	return scoreline.Outcome{
		Home: o.Home / total,
		Draw: o.Draw / total,
		Away: o.Away / total,
	}, true
}

func squaredError(got, want scoreline.Outcome) float64 {
	dh := got.Home - want.Home
	dd := got.Draw - want.Draw
	da := got.Away - want.Away
	return dh*dh + dd*dd + da*da
}

func validateTarget(target scoreline.Outcome) error {
	for _, p := range []float64{target.Home, target.Draw, target.Away} {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidInput, p)
		}
	}
	if math.Abs(target.Total()-1) > 1e-6 {
		return fmt.Errorf("%w: target probabilities sum to %v, want 1", ErrInvalidInput, target.Total())
	}
	return nil
}
