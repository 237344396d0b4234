package market

import (
	"errors"
	"math"
	"testing"
)

func TestIsQuarterLine(t *testing.T) {
	tests := []struct {
		line float64
		want bool
	}{
		{0, false},
		{0.25, true},
		{-0.25, true},
		{0.5, false},
		{-0.75, true},
		{1, false},
		{1.75, true},
		{-2, false},
	}
	for _, tt := range tests {
		if got := IsQuarterLine(tt.line); got != tt.want {
			t.Errorf("IsQuarterLine(%v) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestHandicapBucketsCoverMass(t *testing.T) {
	h1, h2 := favouriteMatrices()
	mass := h1.Sum() * h2.Sum()

	for line := -2.0; line <= 2.0+1e-9; line += 0.25 {
		b := HandicapBuckets(line, h1, h2)
		if math.Abs(b.Total()-mass) > 1e-12 {
			t.Errorf("line %+.2f: buckets sum to %v, want %v", line, b.Total(), mass)
		}
		if IsQuarterLine(line) || !isWhole(line) {
			if b.Push != 0 {
				t.Errorf("line %+.2f: fractional line has push %v", line, b.Push)
			}
		}
	}
}

func TestHandicapBucketsLevelLine(t *testing.T) {
	h1, h2 := favouriteMatrices()
	b := HandicapBuckets(0, h1, h2)

	draw := Evaluate(ftResult(Draw), h1, h2)
	home := Evaluate(ftResult(Home), h1, h2)
	if math.Abs(b.Push-draw) > 1e-12 {
		t.Errorf("level-line push = %v, want draw %v", b.Push, draw)
	}
	if math.Abs(b.HomeWin-home) > 1e-12 {
		t.Errorf("level-line home = %v, want %v", b.HomeWin, home)
	}
}

func TestHandicapHalfLineMatchesResult(t *testing.T) {
	h1, h2 := favouriteMatrices()

	hp, err := Handicap(-0.5, h1, h2)
	if err != nil {
		t.Fatal(err)
	}
	home := Evaluate(ftResult(Home), h1, h2)
	if math.Abs(hp.Home-home) > 1e-12 {
		t.Errorf("-0.5 home = %v, want 1 result %v", hp.Home, home)
	}
	if hp.Push != 0 || hp.AllPush {
		t.Errorf("-0.5 should not push: %+v", hp)
	}
}

func TestHandicapWholeLineRefundsPush(t *testing.T) {
	h1, h2 := favouriteMatrices()

	hp, err := Handicap(0, h1, h2)
	if err != nil {
		t.Fatal(err)
	}
	b := HandicapBuckets(0, h1, h2)
	if want := b.HomeWin / (1 - b.Push); math.Abs(hp.Home-want) > 1e-12 {
		t.Errorf("DNB home = %v, want %v", hp.Home, want)
	}
	if want := b.AwayWin / (1 - b.Push); math.Abs(hp.Away-want) > 1e-12 {
		t.Errorf("DNB away = %v, want %v", hp.Away, want)
	}
	if hp.Home <= hp.Away {
		t.Errorf("DNB home %v should beat away %v", hp.Home, hp.Away)
	}
}

func TestHandicapQuarterLineAveragesOdds(t *testing.T) {
	h1, h2 := favouriteMatrices()

	for _, line := range []float64{-1.75, -0.75, -0.25, 0.25, 1.25} {
		low, _ := Handicap(line-0.25, h1, h2)
		high, _ := Handicap(line+0.25, h1, h2)

		got, err := Handicap(line, h1, h2)
		if err != nil {
			t.Fatalf("line %v: %v", line, err)
		}

		wantHome := 1 / ((1/low.Home + 1/high.Home) / 2)
		if math.Abs(got.Home-wantHome) > 1e-12 {
			t.Errorf("line %+.2f: home = %v, want odds-averaged %v", line, got.Home, wantHome)
		}
		wantAway := 1 / ((1/low.Away + 1/high.Away) / 2)
		if math.Abs(got.Away-wantAway) > 1e-12 {
			t.Errorf("line %+.2f: away = %v, want odds-averaged %v", line, got.Away, wantAway)
		}

		probAvg := (low.Home + high.Home) / 2
		if math.Abs(got.Home-probAvg) < 1e-6 {
			t.Errorf("line %+.2f: blended home %v should differ from probability average %v", line, got.Home, probAvg)
		}
		if got.Push != 0 {
			t.Errorf("line %+.2f: quarter line push = %v, want 0", line, got.Push)
		}
	}
}

func TestHandicapAllPush(t *testing.T) {
	// Zero rates: every match ends 0-0.
	h1, h2 := halfMatrices(0, 0)

	hp, err := Handicap(0, h1, h2)
	if err != nil {
		t.Fatal(err)
	}
	if !hp.AllPush {
		t.Error("level line on a certain 0-0 should be all push")
	}
	if hp.Home != 0 || hp.Away != 0 {
		t.Errorf("all-push prices = %v/%v, want 0/0", hp.Home, hp.Away)
	}

	q, err := Handicap(0.25, h1, h2)
	if err != nil {
		t.Fatal(err)
	}
	if q.AllPush {
		t.Error("quarter line is never reported as all push")
	}
	if q.Away != 0 {
		t.Errorf("+0.25 away = %v, want 0 (both halves priced at the sentinel)", q.Away)
	}
	if q.Home <= 0 || q.Home > 1e-8 {
		t.Errorf("+0.25 home = %v, want a tiny positive blend of sentinel and evens", q.Home)
	}
}

func TestHandicapInvalidLine(t *testing.T) {
	h1, h2 := favouriteMatrices()
	for _, line := range []float64{0.1, 1.3, math.NaN(), math.Inf(-1)} {
		if _, err := Handicap(line, h1, h2); !errors.Is(err, ErrInvalidLine) {
			t.Errorf("Handicap(%v) err = %v, want ErrInvalidLine", line, err)
		}
	}
}

func TestBlendQuarter(t *testing.T) {
	// Odds 2.0 and 4.0 average to 3.0, i.e. 1/3; probability average would be 0.375.
	if got := BlendQuarter(0.5, 0.25); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("BlendQuarter(0.5, 0.25) = %v, want 1/3", got)
	}
	if got := BlendQuarter(0, 0); got != 0 {
		t.Errorf("BlendQuarter(0, 0) = %v, want 0", got)
	}
}
