package constraint

import "sort"

// Triplet is one (row, col, value) entry of a sparse matrix in coordinate
// form. Repeated (row, col) pairs accumulate by addition when converted to
// CSC, the same convention the objective-term builders rely on to combine
// several quadratic terms touching the same pair of variables.
type Triplet struct {
	Row, Col int
	Value    float64
}

// CSC is a sparse matrix in compressed sparse column form: the layout the
// QP solver's operator-splitting iterations expect for both the quadratic
// term and the constraint matrix.
type CSC struct {
	Rows, Cols int
	ColPtr     []int     // length Cols+1
	RowIdx     []int     // length nnz, row index of each stored value
	Values     []float64 // length nnz
}

// NewCSC builds a CSC matrix from triplets, summing duplicate (row, col)
// entries and dropping exact zeros after summation.
func NewCSC(rows, cols int, triplets []Triplet) *CSC {
	sort.SliceStable(triplets, func(i, j int) bool {
		if triplets[i].Col != triplets[j].Col {
			return triplets[i].Col < triplets[j].Col
		}
		return triplets[i].Row < triplets[j].Row
	})

	colPtr := make([]int, cols+1)
	var rowIdx []int
	var values []float64

	i := 0
	for col := 0; col < cols; col++ {
		colPtr[col] = len(values)
		for i < len(triplets) && triplets[i].Col == col {
			row := triplets[i].Row
			sum := 0.0
			for i < len(triplets) && triplets[i].Col == col && triplets[i].Row == row {
				sum += triplets[i].Value
				i++
			}
			if sum != 0 {
				rowIdx = append(rowIdx, row)
				values = append(values, sum)
			}
		}
	}
	colPtr[cols] = len(values)

	return &CSC{Rows: rows, Cols: cols, ColPtr: colPtr, RowIdx: rowIdx, Values: values}
}

// NNZ returns the number of stored (nonzero) entries.
func (m *CSC) NNZ() int { return len(m.Values) }

// Dense expands m into a rows×cols slice of slices, for tests and small
// diagnostic dumps. Never used on the solver's hot path.
func (m *CSC) Dense() [][]float64 {
	out := make([][]float64, m.Rows)
	for r := range out {
		out[r] = make([]float64, m.Cols)
	}
	for col := 0; col < m.Cols; col++ {
		for k := m.ColPtr[col]; k < m.ColPtr[col+1]; k++ {
			out[m.RowIdx[k]][col] = m.Values[k]
		}
	}
	return out
}
