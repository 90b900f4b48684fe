package astromath

// LagrangeInterp evaluates the barycentric Lagrange interpolant through
// (xs[i], ys[i]) at x. len(xs) must
// equal len(ys) and be >= 1; the window is assumed already selected and
// clamped by the caller (interp package).
//
// If x exactly equals one of the xs, that sample's y is returned directly
// (the barycentric formula is singular there).
func LagrangeInterp(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 1 {
		return ys[0]
	}

	weights := barycentricWeights(xs)

	for i, xi := range xs {
		if x == xi {
			return ys[i]
		}
	}

	var num, den float64
	for i := 0; i < n; i++ {
		t := weights[i] / (x - xs[i])
		num += t * ys[i]
		den += t
	}
	return num / den
}

// barycentricWeights computes the classic barycentric weights
// w_i = 1 / prod_{j != i} (x_i - x_j).
func barycentricWeights(xs []float64) []float64 {
	n := len(xs)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		prod := 1.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			prod *= xs[i] - xs[j]
		}
		w[i] = 1.0 / prod
	}
	return w
}
