package solver

import "gonum.org/v1/gonum/mat"

// estimateDOF returns the remaining degrees of freedom for a component with
// n free state variables, given its hard (non-driven) residual rows: n
// minus the numeric rank of the constraint jacobian at the current state,
// estimated via singular value decomposition (spec.md 4.2, "DOF analysis").
func estimateDOF(n int, hardCount int, rows []residualRow) int {
	if hardCount == 0 {
		return n
	}
	J := mat.NewDense(hardCount, n, nil)
	ri := 0
	for _, r := range rows {
		if r.isDriven {
			continue
		}
		for si, v := range r.partials {
			J.Set(ri, si, v)
		}
		ri++
	}

	var svd mat.SVD
	if !svd.Factorize(J, mat.SVDNone) {
		return n
	}
	values := svd.Values(nil)

	rank := 0
	thresh := 1e-9
	if len(values) > 0 && values[0] > 0 {
		thresh = values[0] * 1e-9 * float64(n+1)
	}
	for _, v := range values {
		if v > thresh {
			rank++
		}
	}
	return n - rank
}
