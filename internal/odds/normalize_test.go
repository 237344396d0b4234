package odds

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizePercentages(t *testing.T) {
	tests := []struct {
		name             string
		home, draw, away float64
		wantHome         float64
		delta            float64
	}{
		{"Exact 100", 45, 27, 28, 0.45, 1e-12},
		{"Slightly over", 45.5, 27, 28, 45.5 / 100.5, 1e-12},
		{"Slightly under", 44.5, 27, 28, 44.5 / 99.5, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d, a, err := NormalizePercentages(tt.home, tt.draw, tt.away)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(h-tt.wantHome) > tt.delta {
				t.Errorf("home = %v, want %v", h, tt.wantHome)
			}
			if sum := h + d + a; math.Abs(sum-1.0) > 1e-12 {
				t.Errorf("probs should sum to 1, got %v", sum)
			}
		})
	}
}

func TestNormalizePercentagesRejects(t *testing.T) {
	tests := []struct {
		name             string
		home, draw, away float64
	}{
		{"Too high", 50, 30, 25},
		{"Too low", 40, 25, 25},
		{"Negative", 110, -5, -5},
		{"NaN", math.NaN(), 50, 50},
		{"Already fractions", 0.45, 0.27, 0.28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := NormalizePercentages(tt.home, tt.draw, tt.away)
			if !errors.Is(err, ErrPercentSum) {
				t.Errorf("err = %v, want ErrPercentSum", err)
			}
		})
	}
}
