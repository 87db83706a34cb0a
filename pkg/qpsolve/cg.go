package qpsolve

import "math"

// conjugateGradient solves H x = b for x, where H is given implicitly by
// apply (a linear operator assumed symmetric positive definite), starting
// from x = 0. Stops once the residual norm drops below tol or maxIter
// iterations have run.
func conjugateGradient(apply func([]float64) []float64, b []float64, tol float64, maxIter int) []float64 {
	n := len(b)
	x := make([]float64, n)
	r := make([]float64, n)
	copy(r, b)
	p := make([]float64, n)
	copy(p, r)

	rsOld := dot(r, r)
	if rsOld < tol*tol {
		return x
	}

	for iter := 0; iter < maxIter; iter++ {
		hp := apply(p)
		denom := dot(p, hp)
		if math.Abs(denom) < 1e-15 {
			break
		}
		alpha := rsOld / denom
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * hp[i]
		}

		rsNew := dot(r, r)
		if rsNew < tol*tol {
			break
		}
		beta := rsNew / rsOld
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rsOld = rsNew
	}

	return x
}
