package qpsolve

import "github.com/depictlang/depict/pkg/constraint"

// matVec computes y = m*x for a CSC matrix m.
func matVec(m *constraint.CSC, x []float64) []float64 {
	y := make([]float64, m.Rows)
	for col := 0; col < m.Cols; col++ {
		xc := x[col]
		if xc == 0 {
			continue
		}
		for k := m.ColPtr[col]; k < m.ColPtr[col+1]; k++ {
			y[m.RowIdx[k]] += m.Values[k] * xc
		}
	}
	return y
}

// matVecT computes y = m^T*x for a CSC matrix m.
func matVecT(m *constraint.CSC, x []float64) []float64 {
	y := make([]float64, m.Cols)
	for col := 0; col < m.Cols; col++ {
		var sum float64
		for k := m.ColPtr[col]; k < m.ColPtr[col+1]; k++ {
			sum += m.Values[k] * x[m.RowIdx[k]]
		}
		y[col] = sum
	}
	return y
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
