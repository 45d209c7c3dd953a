package hgb

import (
	"fmt"

	"github.com/katalvlaran/lvqap/hungarian"
	"github.com/katalvlaran/lvqap/tensor"
)

// engine owns the private working tensor and every scratch buffer of one
// Bound call. It is never shared between goroutines.
type engine struct {
	n    int
	c    *tensor.Cost
	opts Options

	// lb is the accumulated constant R′.
	lb int64

	// sub is the reusable (n−1)×(n−1) submatrix handed to the matcher.
	sub [][]int64

	// exactness probe state
	assign []int
	used   []bool
	probes int
}

func newEngine(c *tensor.Cost, opts Options) *engine {
	n := c.N()
	e := &engine{
		n:      n,
		c:      c,
		opts:   opts,
		sub:    make([][]int64, n-1),
		assign: make([]int, n),
		used:   make([]bool, n),
	}
	for a := range e.sub {
		e.sub[a] = make([]int64, n-1)
	}

	return e
}

// reduceLeader moves the optimal value of the submatrix attached to leader
// (i,k) into the leader and leaves the reduced residuals behind.
//
// The working tensor is consolidated, so the pair (i,k)–(j,p) lives in
// C[i][k][j][p] when j > i and in C[j][p][i][k] when j < i. Both are read
// into S[j][p]; the residual goes back to the cell it came from.
func (e *engine) reduceLeader(i, k int) error {
	var (
		n          = e.n
		a, b, j, p int
	)
	for a = 0; a < n-1; a++ {
		j = skip(a, i)
		for b = 0; b < n-1; b++ {
			p = skip(b, k)
			if j > i {
				e.sub[a][b] = e.c.At(i, k, j, p)
			} else {
				e.sub[a][b] = e.c.At(j, p, i, k) + e.c.At(i, k, j, p)
			}
		}
	}

	res, err := hungarian.Solve(e.sub)
	if err != nil {
		return fmt.Errorf("hgb: reduce leader (%d,%d): %w", i, k, err)
	}
	e.c.Add(i, k, i, k, res.Cost)

	for a = 0; a < n-1; a++ {
		j = skip(a, i)
		for b = 0; b < n-1; b++ {
			p = skip(b, k)
			if j > i {
				e.c.Set(i, k, j, p, res.Reduced[a][b])
			} else {
				e.c.Set(j, p, i, k, res.Reduced[a][b])
				e.c.Set(i, k, j, p, 0)
			}
		}
	}

	return nil
}

// reduceAll reduces every leader in row-major order.
func (e *engine) reduceAll() error {
	var i, k int
	for i = 0; i < e.n; i++ {
		for k = 0; k < e.n; k++ {
			if err := e.reduceLeader(i, k); err != nil {
				return err
			}
		}
	}

	return nil
}

// skip maps a submatrix index to the tensor index that omits removed.
func skip(idx, removed int) int {
	if idx >= removed {
		return idx + 1
	}

	return idx
}
