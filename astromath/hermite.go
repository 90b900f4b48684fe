package astromath

// HermiteInterp evaluates the Hermite interpolant through samples
// (xs[i], ys[i], dys[i]) — value and derivative at each node — returning
// the interpolated value and derivative at x.
//
// It reproduces the classic divided-difference two-column recurrence: each
// node is duplicated (z[2i] = z[2i+1] = xs[i]); the first-order column
// alternates between the input derivative at odd indices and the secant
// slope between consecutive samples at even indices; 2N-1 further columns
// build the Newton form, which is then evaluated (and differentiated) by a
// single accumulating pass. It does not work in one fixed buffer: z, column
// 0, column 1 and the Newton coefficients each take 2N doubles, and every
// further column is a freshly allocated 2N slice.
func HermiteInterp(xs, ys, dys []float64, x float64) (value, deriv float64) {
	n := len(xs)
	m := 2 * n

	// z holds the node positions (duplicated); q holds the first-order
	// (derivative) column.
	z := make([]float64, m)
	q := make([]float64, m)

	for i := 0; i < n; i++ {
		z[2*i] = xs[i]
		z[2*i+1] = xs[i]
	}

	// Column 0: the duplicated values themselves, used to seed column 1.
	col0 := make([]float64, m)
	for i := 0; i < n; i++ {
		col0[2*i] = ys[i]
		col0[2*i+1] = ys[i]
	}

	// Column 1: derivative column.
	for i := 0; i < n; i++ {
		q[2*i+1] = dys[i]
		if i > 0 {
			q[2*i] = (col0[2*i] - col0[2*i-1]) / (z[2*i] - z[2*i-1])
		}
	}
	// q[0] is undefined by the recurrence (no predecessor); it is never
	// read as a divided difference, only used as a Newton coefficient,
	// so seed it from the duplicate-node secant limit (the derivative).
	q[0] = dys[0]

	// Newton coefficients: coeffs[0] = col0[0]; coeffs[1] = q[0] (the
	// derivative-column value anchored at z[0]); coeffs[k] for k>=2 comes
	// from further divided-difference columns.
	coeffs := make([]float64, m)
	coeffs[0] = col0[0]
	coeffs[1] = q[0]

	prev := q
	for k := 2; k < m; k++ {
		curr := make([]float64, m)
		for i := k; i < m; i++ {
			curr[i] = (prev[i] - prev[i-1]) / (z[i] - z[i-k])
		}
		coeffs[k] = curr[k]
		prev = curr
	}

	// Evaluate the Newton form and its derivative in one pass:
	// P(x) = c0 + c1*(x-z0) + c2*(x-z0)(x-z1) +...
	// P'(x) accumulated via the product rule on each term.
	prod := 1.0
	prodDeriv := 0.0
	value = coeffs[0]
	deriv = 0.0
	for k := 1; k < m; k++ {
		// d/dx[prod * (x - z[k-1])] = prodDeriv*(x-z[k-1]) + prod
		newProd := prod * (x - z[k-1])
		newProdDeriv := prodDeriv*(x-z[k-1]) + prod

		value += coeffs[k] * newProd
		deriv += coeffs[k] * newProdDeriv

		prod = newProd
		prodDeriv = newProdDeriv
	}
	return value, deriv
}
