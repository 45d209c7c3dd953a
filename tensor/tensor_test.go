package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvqap/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomTensor fills every feasible cell with a value in [0, hi).
func randomTensor(t *testing.T, rng *rand.Rand, n int, hi int64) *tensor.Cost {
	t.Helper()
	c, err := tensor.FromFunc(n, func(_, _, _, _ int) int64 { return rng.Int63n(hi) })
	require.NoError(t, err)

	return c
}

// permutations calls fn for every permutation of 0..n−1 (the slice is reused).
func permutations(n int, fn func([]int)) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var rec func(int)
	rec = func(d int) {
		if d == n {
			fn(perm)

			return
		}
		for i := d; i < n; i++ {
			perm[d], perm[i] = perm[i], perm[d]
			rec(d + 1)
			perm[d], perm[i] = perm[i], perm[d]
		}
	}
	rec(0)
}

func TestNew_BadSize(t *testing.T) {
	_, err := tensor.New(0)
	assert.ErrorIs(t, err, tensor.ErrBadSize)
	_, err = tensor.FromFunc(-1, nil)
	assert.ErrorIs(t, err, tensor.ErrBadSize)
}

func TestFromFunc_ClearsInfeasible(t *testing.T) {
	c, err := tensor.FromFunc(3, func(_, _, _, _ int) int64 { return 1 })
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				for p := 0; p < 3; p++ {
					want := int64(0)
					if tensor.Feasible(i, k, j, p) {
						want = 1
					}
					require.Equal(t, want, c.At(i, k, j, p), "(%d,%d,%d,%d)", i, k, j, p)
				}
			}
		}
	}
}

func TestCost_Assignment(t *testing.T) {
	c, err := tensor.New(2)
	require.NoError(t, err)
	c.Set(0, 1, 0, 1, 4)
	c.Set(1, 0, 1, 0, 3)
	c.Set(0, 1, 1, 0, 2)
	c.Set(1, 0, 0, 1, 1)

	got, err := c.Cost([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)

	got, err = c.Cost([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = c.Cost([]int{0, 0})
	assert.ErrorIs(t, err, tensor.ErrIndex)
	_, err = c.Cost([]int{0})
	assert.ErrorIs(t, err, tensor.ErrIndex)
}

func TestConsolidate_IdempotentAndSumPreserving(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 5; n++ {
		c := randomTensor(t, rng, n, 50)
		orig := c.Clone()

		c.Consolidate()
		assert.True(t, c.Consolidated())
		assert.Equal(t, orig.Sum(), c.Sum())

		once := c.Clone()
		c.Consolidate()
		assert.True(t, once.Equal(c), "second Consolidate changed the tensor (n=%d)", n)

		permutations(n, func(p []int) {
			want, err := orig.Cost(p)
			require.NoError(t, err)
			got, err := c.Cost(p)
			require.NoError(t, err)
			require.Equal(t, want, got, "perm %v", p)
		})
	}
}

func TestFix_ConservesCost(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for n := 2; n <= 5; n++ {
		c := randomTensor(t, rng, n, 100)
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				sub, err := tensor.Fix(c, i, k)
				require.NoError(t, err)
				require.Equal(t, n-1, sub.N())
				permutations(n-1, func(p []int) {
					full := tensor.Expand(p, i, k)
					want, err := c.Cost(full)
					require.NoError(t, err)
					got, err := sub.Cost(p)
					require.NoError(t, err)
					require.Equal(t, want, c.Leader(i, k)+got, "fix (%d,%d) perm %v", i, k, p)
				})
			}
		}
	}
}

func TestFix_DoesNotAliasParent(t *testing.T) {
	c, err := tensor.FromFunc(3, func(i, k, j, p int) int64 { return int64(i + k + j + p) })
	require.NoError(t, err)
	before := c.Clone()
	sub, err := tensor.Fix(c, 1, 2)
	require.NoError(t, err)
	sub.Set(0, 0, 0, 0, 999)
	assert.True(t, before.Equal(c))
}

func TestFix_Errors(t *testing.T) {
	c, err := tensor.New(1)
	require.NoError(t, err)
	_, err = tensor.Fix(c, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrBadSize)

	c, err = tensor.New(3)
	require.NoError(t, err)
	_, err = tensor.Fix(c, 3, 0)
	assert.ErrorIs(t, err, tensor.ErrIndex)
	_, err = tensor.Fix(c, 0, -1)
	assert.ErrorIs(t, err, tensor.ErrIndex)
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, tensor.Expand([]int{0, 1}, 0, 2))
	assert.Equal(t, []int{2, 0, 1}, tensor.Expand([]int{1, 0}, 1, 0))
	assert.Equal(t, []int{0}, tensor.Expand(nil, 0, 0))
}

func TestLeaders(t *testing.T) {
	c, err := tensor.New(2)
	require.NoError(t, err)
	c.Set(0, 0, 0, 0, 1)
	c.Set(0, 1, 0, 1, 2)
	c.Set(1, 0, 1, 0, 3)
	c.Set(1, 1, 1, 1, 4)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, c.Leaders())
	assert.Equal(t, int64(4), c.Max())
	assert.Equal(t, int64(0), c.Min())
}
