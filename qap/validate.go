// Package qap - validation utilities shared by every solver.
//
// This file contains small helpers that:
//  1. Validate Options (algorithm, scale, counts, cooling).
//  2. Validate the problem (n, shape of D and F, finiteness, sign).
//  3. Validate assignments (slice and 0/1 matrix forms).
//
// All functions are deterministic and side-effect free; they return only
// the sentinels of types.go.
package qap

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvqap/matrix"
)

// validateOptions checks Options in isolation. It runs after normalize, so
// zero values have already been replaced by defaults.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch opts.Algo {
	case BranchAndBound, BruteForce, SimulatedAnnealing:
	default:
		return ErrUnsupportedAlgorithm
	}
	if math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) || opts.Scale <= 0 {
		return ErrBadScale
	}
	if opts.Branching != BranchPairs && opts.Branching != BranchFirstFacility {
		return ErrBadOptions
	}
	if opts.Workers < 1 || opts.Restarts < 1 || opts.Iterations < 0 {
		return ErrBadOptions
	}
	if opts.Bound.MaxIterations < 0 || opts.Bound.MaxProbes < 0 || opts.Bound.Cutoff != 0 {
		return ErrBadOptions
	}
	if math.IsNaN(opts.InitialTemp) || math.IsInf(opts.InitialTemp, 0) || opts.InitialTemp < 0 {
		return ErrBadOptions
	}
	if !(opts.Cooling > 0 && opts.Cooling < 1) {
		return ErrBadOptions
	}

	return nil
}

// normalize replaces zero-valued fields by their defaults. Negative values
// are kept so that validateOptions can reject them.
func normalize(opts Options) Options {
	def := DefaultOptions()
	if opts.Scale == 0 {
		opts.Scale = def.Scale
	}
	if opts.Workers == 0 {
		opts.Workers = def.Workers
	}
	if opts.Restarts == 0 {
		opts.Restarts = def.Restarts
	}
	if opts.Cooling == 0 {
		opts.Cooling = def.Cooling
	}

	return opts
}

// validateProblem verifies n, the shape and values of D, and the shape and
// values of F.
//
// Complexity: O(n⁴).
func validateProblem(p Problem) error {
	if p.N < 1 {
		return ErrInvalidSize
	}

	// Stage 1: D shape and values.
	if err := matrix.ValidateSquare(p.D); err != nil {
		if errors.Is(err, matrix.ErrNilMatrix) {
			return ErrDimensionMismatch
		}

		return ErrNonSquare
	}
	if p.D.Rows() != p.N {
		return ErrDimensionMismatch
	}
	if err := matrix.ValidateNonNegative(p.D); err != nil {
		return mapMatrixErr(err)
	}
	if err := matrix.ValidateFinite(p.D); err != nil {
		return mapMatrixErr(err)
	}

	// Stage 2: F shape and values.
	var (
		i, j, k int
		v       float64
	)
	if len(p.F) != p.N {
		return ErrDimensionMismatch
	}
	for i = 0; i < p.N; i++ {
		if len(p.F[i]) != p.N {
			return ErrDimensionMismatch
		}
		for j = 0; j < p.N; j++ {
			if len(p.F[i][j]) != p.N {
				return ErrDimensionMismatch
			}
			for k = 0; k < p.N; k++ {
				if len(p.F[i][j][k]) != p.N {
					return ErrDimensionMismatch
				}
				for _, v = range p.F[i][j][k] {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						return ErrNaNInf
					}
					if v < 0 {
						return ErrNegativeWeight
					}
				}
			}
		}
	}

	return nil
}

// mapMatrixErr translates matrix validator sentinels into qap sentinels.
func mapMatrixErr(err error) error {
	switch {
	case errors.Is(err, matrix.ErrNaNInf):
		return ErrNaNInf
	case errors.Is(err, matrix.ErrNegative):
		return ErrNegativeWeight
	default:
		return ErrDimensionMismatch
	}
}

// ValidateAssignment enforces len(assign) == n and that assign is a
// permutation of 0..n−1.
//
// Complexity: O(n) time and space.
func ValidateAssignment(assign []int, n int) error {
	if len(assign) != n {
		return ErrInvalidAssignment
	}
	seen := make([]bool, n)
	for _, k := range assign {
		if k < 0 || k >= n || seen[k] {
			return ErrInvalidAssignment
		}
		seen[k] = true
	}

	return nil
}
