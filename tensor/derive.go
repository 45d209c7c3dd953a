package tensor

// Consolidate folds every pair cell with a higher first facility into its
// mirror: for all i > j, C[j][p][i][k] += C[i][k][j][p] and the source is
// zeroed. Afterwards each unordered facility pair is represented once, in the
// row of the lower-indexed facility.
//
// Contracts:
//   - Σ cells is unchanged, and so is the cost of every assignment.
//   - Idempotent: a second call is a no-op.
//
// Complexity: O(n⁴).
func (c *Cost) Consolidate() {
	var (
		n          = c.n
		i, j, k, p int
		src        int
	)
	for i = 1; i < n; i++ {
		for k = 0; k < n; k++ {
			for j = 0; j < i; j++ {
				for p = 0; p < n; p++ {
					src = c.index(i, k, j, p)
					if c.data[src] == 0 {
						continue
					}
					c.data[c.index(j, p, i, k)] += c.data[src]
					c.data[src] = 0
				}
			}
		}
	}
}

// Consolidated reports whether every cell with i > j is zero.
func (c *Cost) Consolidated() bool {
	var i, k, j, p int
	for i = 1; i < c.n; i++ {
		for k = 0; k < c.n; k++ {
			for j = 0; j < i; j++ {
				for p = 0; p < c.n; p++ {
					if c.At(i, k, j, p) != 0 {
						return false
					}
				}
			}
		}
	}

	return true
}

// Fix returns the order n−1 tensor left after placing facility i at position
// k. Facilities and positions above the fixed ones shift down by one.
//
// The cross terms C[a][b][i][k] + C[i][k][a][b] become linear once (i,k) is
// fixed, so they are added to the new leader of (a,b) and nowhere else. For
// every assignment π of the child,
//
//	Cost_parent(Expand(π, i, k)) = C[i][k][i][k] + Cost_child(π).
//
// Errors: ErrBadSize when n == 1, ErrIndex when i or k is out of range.
//
// Complexity: O(n⁴) time and memory.
func Fix(c *Cost, i, k int) (*Cost, error) {
	if i < 0 || i >= c.n || k < 0 || k >= c.n {
		return nil, ErrIndex
	}
	if c.n == 1 {
		return nil, ErrBadSize
	}
	m := c.n - 1
	sub := &Cost{n: m, data: make([]int64, m*m*m*m)}

	var (
		a, b, x, y     int // child indices
		oa, ob, ox, oy int // parent indices
	)
	for a = 0; a < m; a++ {
		oa = skip(a, i)
		for b = 0; b < m; b++ {
			ob = skip(b, k)
			for x = 0; x < m; x++ {
				ox = skip(x, i)
				for y = 0; y < m; y++ {
					oy = skip(y, k)
					sub.data[sub.index(a, b, x, y)] = c.At(oa, ob, ox, oy)
				}
			}
			sub.data[sub.index(a, b, a, b)] += c.At(oa, ob, i, k) + c.At(i, k, oa, ob)
		}
	}

	return sub, nil
}

// Expand lifts an assignment of the child produced by Fix(c, i, k) back to the
// parent's indices, placing facility i at position k.
func Expand(child []int, i, k int) []int {
	out := make([]int, len(child)+1)
	out[i] = k
	for a, b := range child {
		out[skip(a, i)] = skip(b, k)
	}

	return out
}

// skip maps a child index to the parent index that omits removed.
func skip(idx, removed int) int {
	if idx >= removed {
		return idx + 1
	}

	return idx
}
