package tensor

import "errors"

var (
	// ErrBadSize is returned for a non-positive tensor order.
	ErrBadSize = errors.New("tensor: order must be ≥ 1")

	// ErrIndex is returned when a fixed pair or an assignment is out of range.
	ErrIndex = errors.New("tensor: index out of range")
)

// Cost is a dense n×n×n×n int64 tensor laid out row-major over (i, k, j, p).
//
// Accessors do not bound-check beyond the slice itself: hot loops in the
// bound engine read millions of cells and callers own the index space.
type Cost struct {
	n    int
	data []int64
}

// New allocates a zero tensor of order n.
//
// Complexity: O(n⁴) time and memory.
func New(n int) (*Cost, error) {
	if n < 1 {
		return nil, ErrBadSize
	}

	return &Cost{n: n, data: make([]int64, n*n*n*n)}, nil
}

// FromFunc builds a tensor of order n with cell values f(i, k, j, p).
// Infeasible cells are left at zero and f is not called for them.
func FromFunc(n int, f func(i, k, j, p int) int64) (*Cost, error) {
	c, err := New(n)
	if err != nil {
		return nil, err
	}
	var i, k, j, p int
	for i = 0; i < n; i++ {
		for k = 0; k < n; k++ {
			for j = 0; j < n; j++ {
				for p = 0; p < n; p++ {
					if Feasible(i, k, j, p) {
						c.data[c.index(i, k, j, p)] = f(i, k, j, p)
					}
				}
			}
		}
	}

	return c, nil
}

// Feasible reports whether (i,k) and (j,p) can both hold in one permutation.
func Feasible(i, k, j, p int) bool { return (i == j) == (k == p) }

// N returns the tensor order.
func (c *Cost) N() int { return c.n }

func (c *Cost) index(i, k, j, p int) int { return ((i*c.n+k)*c.n+j)*c.n + p }

// At returns C[i][k][j][p].
func (c *Cost) At(i, k, j, p int) int64 { return c.data[c.index(i, k, j, p)] }

// Set assigns C[i][k][j][p] = v.
func (c *Cost) Set(i, k, j, p int, v int64) { c.data[c.index(i, k, j, p)] = v }

// Add performs C[i][k][j][p] += v.
func (c *Cost) Add(i, k, j, p int, v int64) { c.data[c.index(i, k, j, p)] += v }

// Leader returns the leader cell C[i][k][i][k].
func (c *Cost) Leader(i, k int) int64 { return c.data[c.index(i, k, i, k)] }

// Clone returns a deep copy.
func (c *Cost) Clone() *Cost {
	return &Cost{n: c.n, data: append([]int64(nil), c.data...)}
}

// Equal reports whether both tensors have the same order and cells.
func (c *Cost) Equal(o *Cost) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.n != o.n {
		return false
	}
	for idx := range c.data {
		if c.data[idx] != o.data[idx] {
			return false
		}
	}

	return true
}

// Sum returns the total of every cell, feasible or not.
func (c *Cost) Sum() int64 {
	var s int64
	for _, x := range c.data {
		s += x
	}

	return s
}

// Max returns the largest cell value.
func (c *Cost) Max() int64 {
	mx := c.data[0]
	for _, x := range c.data[1:] {
		if x > mx {
			mx = x
		}
	}

	return mx
}

// Min returns the smallest cell value.
func (c *Cost) Min() int64 {
	mn := c.data[0]
	for _, x := range c.data[1:] {
		if x < mn {
			mn = x
		}
	}

	return mn
}

// Leaders returns the n×n leader matrix L[i][k] = C[i][k][i][k].
func (c *Cost) Leaders() [][]int64 {
	out := make([][]int64, c.n)
	var i, k int
	for i = 0; i < c.n; i++ {
		out[i] = make([]int64, c.n)
		for k = 0; k < c.n; k++ {
			out[i][k] = c.Leader(i, k)
		}
	}

	return out
}

// Cost returns Σ_i Σ_j C[i][assign[i]][j][assign[j]], the objective of
// assignment assign (assign[facility] = position).
//
// Complexity: O(n²).
func (c *Cost) Cost(assign []int) (int64, error) {
	if err := c.checkAssignment(assign); err != nil {
		return 0, err
	}
	var (
		total int64
		i, j  int
	)
	for i = 0; i < c.n; i++ {
		for j = 0; j < c.n; j++ {
			total += c.At(i, assign[i], j, assign[j])
		}
	}

	return total, nil
}

// checkAssignment verifies that assign is a permutation of 0..n−1.
func (c *Cost) checkAssignment(assign []int) error {
	if len(assign) != c.n {
		return ErrIndex
	}
	seen := make([]bool, c.n)
	for _, k := range assign {
		if k < 0 || k >= c.n || seen[k] {
			return ErrIndex
		}
		seen[k] = true
	}

	return nil
}
