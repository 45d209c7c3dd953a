package hungarian_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvqap/hungarian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteLAP enumerates all permutations of an m×m matrix (m ≤ 7 in tests).
func bruteLAP(cost [][]int64) int64 {
	m := len(cost)
	perm := make([]int, m)
	for i := range perm {
		perm[i] = i
	}
	best := int64(-1)
	var rec func(k int)
	rec = func(k int) {
		if k == m {
			c := hungarian.Evaluate(cost, perm)
			if best < 0 || c < best {
				best = c
			}

			return
		}
		for i := k; i < m; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			rec(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	rec(0)

	return best
}

// checkReduced asserts the dual certificate: Reduced ≥ 0, zero on Assignment.
func checkReduced(t *testing.T, res hungarian.Result) {
	t.Helper()
	for i, row := range res.Reduced {
		for j, x := range row {
			require.GreaterOrEqual(t, x, int64(0), "reduced[%d][%d]", i, j)
		}
		require.Equal(t, int64(0), row[res.Assignment[i]], "assigned cell (%d,%d) not zero", i, res.Assignment[i])
	}
}

func TestSolve_ClassicFourByFour(t *testing.T) {
	cost := [][]int64{
		{82, 83, 69, 92},
		{77, 37, 49, 92},
		{11, 69, 5, 86},
		{8, 9, 98, 23},
	}
	res, err := hungarian.Solve(cost)
	require.NoError(t, err)
	assert.Equal(t, int64(140), res.Cost)
	assert.Equal(t, []int{2, 1, 0, 3}, res.Assignment)
	checkReduced(t, res)
}

func TestSolve_ThreeByThree(t *testing.T) {
	cost := [][]int64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	res, err := hungarian.Solve(cost)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Cost)
	assert.Equal(t, []int{1, 0, 2}, res.Assignment)
	checkReduced(t, res)
}

// TestSolve_ZeroTies is the case a row-by-row greedy zero pick gets wrong:
// row 0 grabbing column 0 leaves no zero for row 1.
func TestSolve_ZeroTies(t *testing.T) {
	cost := [][]int64{
		{0, 0, 7},
		{0, 9, 9},
		{5, 0, 0},
	}
	res, err := hungarian.Solve(cost)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Cost)
	assert.Equal(t, 1, res.Assignment[0])
	assert.Equal(t, 0, res.Assignment[1])
	assert.Equal(t, 2, res.Assignment[2])
}

func TestSolve_TrivialShapes(t *testing.T) {
	res, err := hungarian.Solve(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Assignment)
	assert.Equal(t, int64(0), res.Cost)

	res, err = hungarian.Solve([][]int64{{42}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Assignment)
	assert.Equal(t, int64(42), res.Cost)
	assert.Equal(t, [][]int64{{0}}, res.Reduced)
}

func TestSolve_Errors(t *testing.T) {
	_, err := hungarian.Solve([][]int64{{1, 2}, {3}})
	assert.ErrorIs(t, err, hungarian.ErrNonSquare)

	_, err = hungarian.Solve([][]int64{{1, 2, 3}, {4, 5, 6}})
	assert.ErrorIs(t, err, hungarian.ErrNonSquare)

	_, err = hungarian.Solve([][]int64{{1, -2}, {3, 4}})
	assert.ErrorIs(t, err, hungarian.ErrNegativeCost)
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	cost := [][]int64{{3, 1}, {2, 7}}
	_, err := hungarian.Solve(cost)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{3, 1}, {2, 7}}, cost)
}

func TestSolve_RandomAgainstEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		m := 2 + rng.Intn(5)
		cost := make([][]int64, m)
		for i := range cost {
			cost[i] = make([]int64, m)
			for j := range cost[i] {
				// Small range forces many ties.
				cost[i][j] = int64(rng.Intn(6))
			}
		}
		res, err := hungarian.Solve(cost)
		require.NoError(t, err)
		require.Equal(t, bruteLAP(cost), res.Cost, "trial %d: %v", trial, cost)
		require.Equal(t, res.Cost, hungarian.Evaluate(cost, res.Assignment))
		checkReduced(t, res)

		var sum, red int64
		for i := range cost {
			for j := range cost[i] {
				sum += cost[i][j]
				red += res.Reduced[i][j]
			}
		}
		// Each dual is counted once per row/column entry: Σreduced = Σcost − m·Cost.
		require.Equal(t, sum-int64(m)*res.Cost, red)
	}
}
