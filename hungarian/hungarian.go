package hungarian

import "math"

// inf is a slack sentinel that survives subtraction of any reachable delta.
const inf = math.MaxInt64 / 4

// Solve computes an optimal assignment of the square matrix cost.
//
// Contracts:
//   - cost must be m×m with every entry ≥ 0; m == 0 yields an empty result.
//   - cost is not modified.
//
// Errors: ErrNonSquare, ErrNegativeCost.
//
// Complexity: O(m³) time, O(m²) memory.
func Solve(cost [][]int64) (Result, error) {
	m := len(cost)

	// Stage 1: validate shape and sign before touching anything.
	var i, j int
	for i = 0; i < m; i++ {
		if len(cost[i]) != m {
			return Result{}, ErrNonSquare
		}
		for j = 0; j < m; j++ {
			if cost[i][j] < 0 {
				return Result{}, ErrNegativeCost
			}
		}
	}

	// Trivial shapes.
	if m == 0 {
		return Result{Assignment: []int{}, Reduced: [][]int64{}}, nil
	}
	if m == 1 {
		return Result{
			Assignment: []int{0},
			Cost:       cost[0][0],
			Reduced:    [][]int64{{0}},
		}, nil
	}

	// Stage 2: row then column reduction on a private copy.
	red := make([][]int64, m)
	for i = 0; i < m; i++ {
		red[i] = append([]int64(nil), cost[i]...)
	}
	base := reduceRows(red) + reduceCols(red)

	// Stage 3: shortest augmenting paths with potentials (1-indexed; row 0
	// and column 0 are virtual).
	var (
		u    = make([]int64, m+1) // row potentials
		v    = make([]int64, m+1) // column potentials
		p    = make([]int, m+1)   // p[col] = row matched to col (0 = free)
		way  = make([]int, m+1)   // way[col] = previous column on the path
		minv = make([]int64, m+1) // minimal slack per column in the current tree
		used = make([]bool, m+1)  // column already in the tree
	)
	var (
		row, i0, j0, j1 int
		delta, cur      int64
	)
	for row = 1; row <= m; row++ {
		p[0] = row
		j0 = 0
		for j = 0; j <= m; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 = p[j0]
			delta = inf
			j1 = 0
			for j = 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur = red[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			// Shift potentials: tree rows up, tree columns down, slack of the rest down.
			for j = 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path back to the virtual column.
		for j0 != 0 {
			j1 = way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	// Stage 4: read out assignment, cost and reduced matrix.
	res := Result{
		Assignment: make([]int, m),
		Reduced:    make([][]int64, m),
	}
	for j = 1; j <= m; j++ {
		res.Assignment[p[j]-1] = j - 1
	}
	var dual int64
	for i = 1; i <= m; i++ {
		dual += u[i] + v[i]
	}
	for i = 0; i < m; i++ {
		res.Reduced[i] = make([]int64, m)
		for j = 0; j < m; j++ {
			res.Reduced[i][j] = red[i][j] - u[i+1] - v[j+1]
		}
	}
	res.Cost = base + dual

	return res, nil
}

// reduceRows subtracts each row minimum in place and returns their sum.
func reduceRows(a [][]int64) int64 {
	var (
		total int64
		mn    int64
		i, j  int
	)
	for i = range a {
		mn = a[i][0]
		for j = 1; j < len(a[i]); j++ {
			if a[i][j] < mn {
				mn = a[i][j]
			}
		}
		if mn == 0 {
			continue
		}
		for j = range a[i] {
			a[i][j] -= mn
		}
		total += mn
	}

	return total
}

// reduceCols subtracts each column minimum in place and returns their sum.
func reduceCols(a [][]int64) int64 {
	var (
		total int64
		mn    int64
		i, j  int
		m     = len(a)
	)
	for j = 0; j < m; j++ {
		mn = a[0][j]
		for i = 1; i < m; i++ {
			if a[i][j] < mn {
				mn = a[i][j]
			}
		}
		if mn == 0 {
			continue
		}
		for i = 0; i < m; i++ {
			a[i][j] -= mn
		}
		total += mn
	}

	return total
}

// Evaluate returns the cost of assignment on matrix cost. It does not
// validate the permutation; callers pass Solve output or checked input.
//
// Complexity: O(m).
func Evaluate(cost [][]int64, assignment []int) int64 {
	var total int64
	for i, j := range assignment {
		total += cost[i][j]
	}

	return total
}
