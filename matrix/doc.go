// SPDX-License-Identifier: MIT
// Package matrix provides the dense float64 matrix used for travel-cost
// tables.
//
// What & Why:
//
//	The Matrix interface is a uniform, bounds-checked view over a two-dimensional
//	array of float64 values. Solvers accept the interface so that callers can
//	plug their own storage; Dense is the canonical row-major implementation.
//
// Complexity:
//
//	Rows() and Cols() run in O(1) time.
//	At() and Set() perform bounds checking in O(1) time, returning an error on invalid indices.
//	Clone() performs a deep copy in O(rows*cols) time.
//
// Validators (ValidateSquare, ValidateFinite, ValidateNonNegative,
// ValidateSymmetric) return the sentinels of errors.go wrapped with their
// tag, so callers match them with errors.Is.
package matrix
