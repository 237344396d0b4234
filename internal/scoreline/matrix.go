// Package scoreline builds independent-Poisson correct score matrices.
package scoreline

import "football-fair-odds/internal/mathutil"

// Truncation bounds. Each serves a different consumer and they are kept
// independent: unifying them changes observable prices.
const (
	DisplayMaxGoals = 5  // on-screen correct score grids
	CalcMaxGoals    = 8  // routine market aggregation
	SolverMaxGoals  = 12 // inverse solver
)

// Matrix holds P(home goals = h, away goals = a) for h, a in [0, MaxGoals].
// Mass beyond the bound is dropped and never re-normalized.
type Matrix struct {
	maxGoals int
	cells    [][]float64
}

// Build creates the outer product of two Poisson marginals up to maxGoals.
func Build(lambdaHome, lambdaAway float64, maxGoals int) *Matrix {
	if maxGoals < 0 {
		maxGoals = 0
	}

	homeProbs := make([]float64, maxGoals+1)
	awayProbs := make([]float64, maxGoals+1)
	for k := 0; k <= maxGoals; k++ {
		homeProbs[k] = mathutil.Poisson(lambdaHome, k)
		awayProbs[k] = mathutil.Poisson(lambdaAway, k)
	}

	cells := make([][]float64, maxGoals+1)
	for h := range cells {
		cells[h] = make([]float64, maxGoals+1)
		for a := range cells[h] {
			cells[h][a] = homeProbs[h] * awayProbs[a]
		}
	}

	return &Matrix{maxGoals: maxGoals, cells: cells}
}

// MaxGoals returns the truncation bound (inclusive).
func (m *Matrix) MaxGoals() int {
	return m.maxGoals
}

// At returns the probability of the scoreline, 0 outside the grid.
func (m *Matrix) At(home, away int) float64 {
	if home < 0 || away < 0 || home > m.maxGoals || away > m.maxGoals {
		return 0
	}
	return m.cells[home][away]
}

// Sum returns the total mass retained by the grid (<= 1).
func (m *Matrix) Sum() float64 {
	total := 0.0
	for _, row := range m.cells {
		for _, p := range row {
			total += p
		}
	}
	return total
}

// Truncate returns a copy limited to maxGoals, e.g. for display.
// A bound at or above the current one returns an unchanged copy.
func (m *Matrix) Truncate(maxGoals int) *Matrix {
	if maxGoals > m.maxGoals {
		maxGoals = m.maxGoals
	}
	if maxGoals < 0 {
		maxGoals = 0
	}
	cells := make([][]float64, maxGoals+1)
	for h := range cells {
		cells[h] = make([]float64, maxGoals+1)
		copy(cells[h], m.cells[h][:maxGoals+1])
	}
	return &Matrix{maxGoals: maxGoals, cells: cells}
}

// Outcome is a home / draw / away probability split.
type Outcome struct {
	Home float64
	Draw float64
	Away float64
}

// Total returns Home + Draw + Away.
func (o Outcome) Total() float64 {
	return o.Home + o.Draw + o.Away
}

// Outcomes sums the grid into home win / draw / away win mass.
func (m *Matrix) Outcomes() Outcome {
	var o Outcome
	for h, row := range m.cells {
		for a, p := range row {
			switch {
			case h > a:
				o.Home += p
			case h == a:
				o.Draw += p
			default:
				o.Away += p
			}
		}
	}
	return o
}

// ExpectedGoals returns the truncated expectation of home and away goals.
func (m *Matrix) ExpectedGoals() (home, away float64) {
	for h, row := range m.cells {
		for a, p := range row {
			home += float64(h) * p
			away += float64(a) * p
		}
	}
	return home, away
}
