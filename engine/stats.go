package engine

import "math"

// ============================================================================
// STATS — Pairwise correlation over View measures
// ============================================================================

// Pearson computes the Pearson correlation coefficient between two
// measures over rows where BOTH are present (pairwise-complete).
// ok is false with fewer than two complete pairs or when either
// measure has zero variance.
func Pearson(view View, mx, my string) (float64, bool) {
	var sx, sy, sxx, syy, sxy float64
	var n int

	for i := 0; i < view.Len(); i++ {
		x, okx := view.Measure(i, mx)
		y, oky := view.Measure(i, my)
		if !okx || !oky {
			continue
		}
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
		n++
	}

	if n < 2 {
		return 0, false
	}

	fn := float64(n)
	cov := sxy - sx*sy/fn
	varX := sxx - sx*sx/fn
	varY := syy - sy*sy/fn
	if varX <= 0 || varY <= 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varX*varY)
	// Guard against floating-point drift outside [-1, 1]
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
