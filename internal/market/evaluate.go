package market

import "football-fair-odds/internal/scoreline"

// Evaluate sums the joint first-half × second-half probability mass of
// every score path that satisfies all set conditions.
//
// The result is short of the true probability by whatever mass the
// matrices truncate.
func Evaluate(c Conditions, h1, h2 *scoreline.Matrix) float64 {
	total := 0.0
	max1, max2 := h1.MaxGoals(), h2.MaxGoals()

	for h1Home := 0; h1Home <= max1; h1Home++ {
		for h1Away := 0; h1Away <= max1; h1Away++ {
			p1 := h1.At(h1Home, h1Away)
			if p1 == 0 {
				continue
			}
			if !c.FirstHalf.Matches(h1Home, h1Away) {
				continue
			}

			for h2Home := 0; h2Home <= max2; h2Home++ {
				for h2Away := 0; h2Away <= max2; h2Away++ {
					p2 := h2.At(h2Home, h2Away)
					if p2 == 0 {
						continue
					}
					if !c.SecondHalf.Matches(h2Home, h2Away) {
						continue
					}
					if !c.FullTime.Matches(h1Home+h2Home, h1Away+h2Away) {
						continue
					}
					total += p1 * p2
				}
			}
		}
	}

	return total
}
