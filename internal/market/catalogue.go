package market

import (
	"fmt"
	"math"

	"football-fair-odds/internal/scoreline"
)

// Quote is one priced selection of the standard catalogue.
type Quote struct {
	Group       string
	Name        string
	Probability float64
	// NoPrice marks a degenerate selection (all push / all draw).
	NoPrice bool
}

// CatalogueOptions chooses which lines the standard catalogue prices.
type CatalogueOptions struct {
	TotalsLines     []float64
	HalfTotalsLines []float64
	HandicapMin     float64
	HandicapMax     float64
	HandicapStep    float64
}

// DefaultCatalogueOptions returns the usual pre-match line set.
func DefaultCatalogueOptions() CatalogueOptions {
	return CatalogueOptions{
		TotalsLines:     []float64{0.5, 1.5, 2.5, 3.5, 4.5},
		HalfTotalsLines: []float64{0.5, 1.5, 2.5},
		HandicapMin:     -2.0,
		HandicapMax:     2.0,
		HandicapStep:    0.25,
	}
}

// HandicapLines expands the configured handicap range.
func (o CatalogueOptions) HandicapLines() []float64 {
	if o.HandicapStep <= 0 || o.HandicapMax < o.HandicapMin {
		return nil
	}
	n := int(math.Round((o.HandicapMax-o.HandicapMin)/o.HandicapStep)) + 1
	lines := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		// Round to the quarter grid so accumulated steps stay exact.
		line := math.Round((o.HandicapMin+float64(i)*o.HandicapStep)*4) / 4
		lines = append(lines, line)
	}
	return lines
}

var resultNames = []struct {
	r    Result
	name string
}{
	{Home, "Home"},
	{Draw, "Draw"},
	{Away, "Away"},
}

var doubleChanceNames = []struct {
	r    Result
	name string
}{
	{HomeOrDraw, "Home or Draw"},
	{HomeOrAway, "Home or Away"},
	{DrawOrAway, "Draw or Away"},
}

// Catalogue prices the standard pre-match market set.
func Catalogue(h1, h2 *scoreline.Matrix, opts CatalogueOptions) []Quote {
	var quotes []Quote

	add := func(group, name string, c Conditions) {
		quotes = append(quotes, Quote{Group: group, Name: name, Probability: Evaluate(c, h1, h2)})
	}

	for _, w := range []Window{FullTime, FirstHalf, SecondHalf} {
		for _, rn := range resultNames {
			var c Conditions
			c.Window(w).Result = ResultPtr(rn.r)
			add(w.String()+" 1X2", rn.name, c)
		}
	}

	for _, dc := range doubleChanceNames {
		var c Conditions
		c.FullTime.Result = ResultPtr(dc.r)
		add("Double Chance", dc.name, c)
	}

	dnb, err := Handicap(0, h1, h2)
	if err == nil {
		quotes = append(quotes,
			Quote{Group: "Draw No Bet", Name: "Home", Probability: dnb.Home, NoPrice: dnb.AllPush},
			Quote{Group: "Draw No Bet", Name: "Away", Probability: dnb.Away, NoPrice: dnb.AllPush},
		)
	}

	for _, w := range []Window{FullTime, FirstHalf, SecondHalf} {
		for _, yes := range []bool{true, false} {
			var c Conditions
			c.Window(w).BTTS = BoolPtr(yes)
			name := "No"
			if yes {
				name = "Yes"
			}
			add(w.String()+" BTTS", name, c)
		}
	}

	for _, line := range opts.TotalsLines {
		addTotals(add, FullTime, line)
	}
	for _, w := range []Window{FirstHalf, SecondHalf} {
		for _, line := range opts.HalfTotalsLines {
			addTotals(add, w, line)
		}
	}

	for _, ht := range resultNames {
		for _, ft := range resultNames {
			var c Conditions
			c.FirstHalf.Result = ResultPtr(ht.r)
			c.FullTime.Result = ResultPtr(ft.r)
			add("HT/FT", ht.r.Code()+"/"+ft.r.Code(), c)
		}
	}

	for _, line := range opts.HandicapLines() {
		hp, err := Handicap(line, h1, h2)
		if err != nil {
			continue
		}
		awayLine := -line
		if awayLine == 0 {
			awayLine = 0 // avoid "-0.00"
		}
		quotes = append(quotes,
			Quote{Group: "Asian Handicap", Name: fmt.Sprintf("Home %+.2f", line), Probability: hp.Home, NoPrice: hp.AllPush},
			Quote{Group: "Asian Handicap", Name: fmt.Sprintf("Away %+.2f", awayLine), Probability: hp.Away, NoPrice: hp.AllPush},
		)
	}

	return quotes
}

func addTotals(add func(string, string, Conditions), w Window, line float64) {
	over, under := Conditions{}, Conditions{}
	over.Window(w).Total = OverPtr(line)
	under.Window(w).Total = UnderPtr(line)
	add(w.String()+" Goals", fmt.Sprintf("Over %.1f", line), over)
	add(w.String()+" Goals", fmt.Sprintf("Under %.1f", line), under)
}
