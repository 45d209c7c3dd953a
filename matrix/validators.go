// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the shape and value checks that
//    solvers run before touching a cost table.
//  - Return sentinels wrapped with the validator tag so call sites can match
//    them with errors.Is and still see where they failed.
//
// All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	return scan(m, "ValidateFinite", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}

		return nil
	})
}

// ValidateNonNegative rejects any entry below zero. NaN is reported as
// ErrNaNInf since it compares false against everything.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	return scan(m, "ValidateNonNegative", func(v float64) error {
		if math.IsNaN(v) {
			return ErrNaNInf
		}
		if v < 0 {
			return ErrNegative
		}

		return nil
	})
}

// ValidateSymmetric checks |a_ij − a_ji| ≤ tol on the strict upper triangle.
// A NaN or infinite tol is rejected with ErrNaNInf; a negative one is
// taken by absolute value.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// scan applies check to every entry in row-major order and stops at the
// first violation.
func scan(m Matrix, tag string, check func(float64) error) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf(tag, err)
			}
			if err = check(v); err != nil {
				return validatorErrorf(fmt.Sprintf("%s(%d,%d)", tag, i, j), err)
			}
		}
	}

	return nil
}
