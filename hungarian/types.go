package hungarian

import "errors"

var (
	// ErrNonSquare is returned when the cost matrix is not m×m.
	ErrNonSquare = errors.New("hungarian: cost matrix is not square")

	// ErrNegativeCost is returned when any entry is below zero.
	ErrNegativeCost = errors.New("hungarian: negative cost entry")
)

// Result holds the outcome of Solve.
type Result struct {
	// Assignment maps each row to its column; len(Assignment) == m.
	Assignment []int

	// Cost is the optimal total cost.
	Cost int64

	// Reduced is the row/column reduced matrix (non-negative, zero on Assignment).
	Reduced [][]int64
}
