package mathutil

import "math"

// MaxCachedGoals is the largest goal count with a cached factorial.
// It covers the deepest scoreline bound in use (12) plus a small margin.
const MaxCachedGoals = 16

// factorials[k] = k! for k in [0, MaxCachedGoals].
var factorials = buildFactorials(MaxCachedGoals)

func buildFactorials(n int) []float64 {
	table := make([]float64, n+1)
	table[0] = 1
	for i := 1; i <= n; i++ {
		table[i] = table[i-1] * float64(i)
	}
	return table
}

// Factorial returns k! from the cached table.
// Returns 0 for k outside [0, MaxCachedGoals].
func Factorial(k int) float64 {
	if k < 0 || k >= len(factorials) {
		return 0
	}
	return factorials[k]
}

// Poisson calculates P(X = k) for X ~ Poisson(lambda)
// P(X=k) = λ^k * e^(-λ) / k!
//
// Goal counts beyond the cached factorial range return 0.
func Poisson(lambda float64, k int) float64 {
	if lambda < 0 || k < 0 || k > MaxCachedGoals {
		return 0
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return 0
	}
	return math.Pow(lambda, float64(k)) * math.Exp(-lambda) / factorials[k]
}

// ApproxEqual reports whether a and b differ by no more than tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
