package analysis

import (
	"errors"
	"math"
	"testing"

	"football-fair-odds/internal/scoreline"
)

// forwardTarget computes the renormalized 1X2 the solver compares against.
func forwardTarget(home, away float64) scoreline.Outcome {
	o, _ := normalizedOutcomes(home, away)
	return o
}

func TestDeriveLambdasRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		home float64
		away float64
	}{
		{"home favourite", 1.5, 1.0},
		{"away favourite", 0.9, 1.6},
		{"even", 1.25, 1.25},
		{"heavy home favourite", 2.1, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := tt.home + tt.away
			got, err := DeriveLambdas(total, forwardTarget(tt.home, tt.away))
			if err != nil {
				t.Fatalf("DeriveLambdas error: %v", err)
			}

			step := total / SolverSteps
			if math.Abs(got.Home-tt.home) > step {
				t.Errorf("Home = %.4f, want %.4f (±%.4f)", got.Home, tt.home, step)
			}
			if math.Abs(got.Home+got.Away-total) > 1e-9 {
				t.Errorf("Home+Away = %v, want %v", got.Home+got.Away, total)
			}
			if got.Error > SolverTolerance {
				t.Errorf("Error = %v exceeds tolerance", got.Error)
			}
		})
	}
}

func TestDeriveLambdasOffGridTarget(t *testing.T) {
	// 1.3337 is not on the 2.5/400 grid; nearest split must still be accepted.
	target := forwardTarget(1.3337, 2.5-1.3337)
	got, err := DeriveLambdas(2.5, target)
	if err != nil {
		t.Fatalf("DeriveLambdas error: %v", err)
	}
	if math.Abs(got.Home-1.3337) > 2.5/SolverSteps {
		t.Errorf("Home = %.4f, want ~1.3337", got.Home)
	}
}

func TestDeriveLambdasUnsolvable(t *testing.T) {
	// No Poisson split at 2.5 goals yields a certain draw.
	_, err := DeriveLambdas(2.5, scoreline.Outcome{Home: 0, Draw: 1, Away: 0})
	if !errors.Is(err, ErrUnsolvable) {
		t.Errorf("err = %v, want ErrUnsolvable", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("unsolvable target must not be reported as invalid input")
	}
}

func TestDeriveLambdasInvalidInput(t *testing.T) {
	valid := scoreline.Outcome{Home: 0.45, Draw: 0.27, Away: 0.28}

	tests := []struct {
		name   string
		total  float64
		target scoreline.Outcome
	}{
		{"zero total", 0, valid},
		{"negative total", -1, valid},
		{"NaN total", math.NaN(), valid},
		{"does not sum to one", 2.5, scoreline.Outcome{Home: 0.5, Draw: 0.3, Away: 0.3}},
		{"negative probability", 2.5, scoreline.Outcome{Home: 1.1, Draw: -0.1, Away: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveLambdas(tt.total, tt.target)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNormalizedOutcomesSumToOne(t *testing.T) {
	for _, r := range [][2]float64{{0, 2.5}, {1.2, 1.3}, {4, 3}} {
		o, ok := normalizedOutcomes(r[0], r[1])
		if !ok {
			t.Fatalf("rates %v: expected positive mass", r)
		}
		if math.Abs(o.Total()-1) > 1e-12 {
			t.Errorf("rates %v: total = %v, want 1", r, o.Total())
		}
	}
}
