package qap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvqap/matrix"
	"github.com/katalvlaran/lvqap/tensor"
)

// Problem is the immutable input of every solver: n facilities, the n×n
// travel-cost matrix D and the n×n×n×n risk tensor F, indexed
// F[i][j][k][p] for facility i at position k and facility j at position p.
type Problem struct {
	N int
	D matrix.Matrix
	F [][][][]float64
}

// NewProblem validates and packs the inputs.
//
// Errors: ErrInvalidSize, ErrNonSquare, ErrDimensionMismatch,
// ErrNegativeWeight, ErrNaNInf.
func NewProblem(n int, d matrix.Matrix, f [][][][]float64) (Problem, error) {
	p := Problem{N: n, D: d, F: f}
	if err := validateProblem(p); err != nil {
		return Problem{}, err
	}

	return p, nil
}

// CostTensor derives the scaled integer tensor
//
//	C[i][k][j][p] = round(D[i][j] · F[i][j][k][p] · scale)
//
// with infeasible cells ((i == j) xor (k == p)) left at zero.
//
// Contracts:
//   - p has passed validateProblem.
//   - The largest cell times 4·n⁴ stays below MaxInt64, so no sum formed by
//     the bound engine or the search can overflow.
//
// Errors: ErrBadScale, ErrScaleOverflow.
//
// Complexity: O(n⁴).
func (p Problem) CostTensor(scale float64) (*tensor.Cost, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return nil, ErrBadScale
	}
	d, err := matrix.ToRows(p.D)
	if err != nil {
		return nil, fmt.Errorf("qap: read D: %w", err)
	}

	var (
		n4      = float64(p.N) * float64(p.N) * float64(p.N) * float64(p.N)
		maxCell = math.MaxInt64 / (4 * n4)
		bad     bool
	)
	c, err := tensor.FromFunc(p.N, func(i, k, j, q int) int64 {
		v := d[i][j] * p.F[i][j][k][q] * scale
		if v > maxCell {
			bad = true

			return 0
		}

		return int64(math.Round(v))
	})
	if err != nil {
		return nil, err
	}
	if bad {
		return nil, ErrScaleOverflow
	}

	return c, nil
}

// Evaluate returns the float objective of assign on D and F.
//
// Errors: ErrInvalidAssignment.
//
// Complexity: O(n²).
func (p Problem) Evaluate(assign []int) (float64, error) {
	if err := ValidateAssignment(assign, p.N); err != nil {
		return 0, err
	}
	var (
		total float64
		dij   float64
		i, j  int
		err   error
	)
	for i = 0; i < p.N; i++ {
		for j = 0; j < p.N; j++ {
			if dij, err = p.D.At(i, j); err != nil {
				return 0, fmt.Errorf("qap: read D: %w", err)
			}
			total += dij * p.F[i][j][assign[i]][assign[j]]
		}
	}

	return total, nil
}
