package market

import (
	"math"
	"strings"
	"testing"
)

func TestHandicapLines(t *testing.T) {
	lines := DefaultCatalogueOptions().HandicapLines()
	if len(lines) != 17 {
		t.Fatalf("got %d lines, want 17", len(lines))
	}
	if lines[0] != -2 || lines[16] != 2 || lines[8] != 0 {
		t.Errorf("unexpected ladder ends: %v", lines)
	}

	if got := (CatalogueOptions{HandicapStep: 0}).HandicapLines(); got != nil {
		t.Errorf("zero step should give no lines, got %v", got)
	}
}

func TestCatalogue(t *testing.T) {
	h1, h2 := favouriteMatrices()
	opts := DefaultCatalogueOptions()
	quotes := Catalogue(h1, h2, opts)

	groups := map[string][]Quote{}
	for _, q := range quotes {
		groups[q.Group] = append(groups[q.Group], q)
		if q.Probability < 0 || q.Probability > 1 {
			t.Errorf("%s %s probability %v out of range", q.Group, q.Name, q.Probability)
		}
	}

	if n := len(groups["HT/FT"]); n != 9 {
		t.Errorf("HT/FT has %d selections, want 9", n)
	}
	if n := len(groups["Asian Handicap"]); n != 2*len(opts.HandicapLines()) {
		t.Errorf("Asian Handicap has %d selections, want %d", n, 2*len(opts.HandicapLines()))
	}
	if n := len(groups["FT Goals"]); n != 2*len(opts.TotalsLines) {
		t.Errorf("FT Goals has %d selections, want %d", n, 2*len(opts.TotalsLines))
	}

	dnb := groups["Draw No Bet"]
	if len(dnb) != 2 || math.Abs(dnb[0].Probability+dnb[1].Probability-1) > 1e-5 {
		t.Errorf("DNB should be two selections summing to ~1: %+v", dnb)
	}

	for _, q := range groups["Asian Handicap"] {
		if strings.Contains(q.Name, "-0.00") {
			t.Errorf("handicap name %q has negative zero", q.Name)
		}
	}
}

func TestCatalogueAllDrawDNB(t *testing.T) {
	h1, h2 := halfMatrices(0, 0)
	for _, q := range Catalogue(h1, h2, DefaultCatalogueOptions()) {
		if q.Group == "Draw No Bet" && !q.NoPrice {
			t.Errorf("DNB %s on a certain draw should carry NoPrice", q.Name)
		}
	}
}
