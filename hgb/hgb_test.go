package hgb_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/hungarian"
	"github.com/katalvlaran/lvqap/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTensor(t *testing.T, rng *rand.Rand, n int, hi int64) *tensor.Cost {
	t.Helper()
	c, err := tensor.FromFunc(n, func(_, _, _, _ int) int64 { return rng.Int63n(hi) })
	require.NoError(t, err)

	return c
}

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

func optimum(t *testing.T, c *tensor.Cost) int64 {
	t.Helper()
	best := int64(-1)
	permutations(c.N(), func(p []int) {
		v, err := c.Cost(p)
		require.NoError(t, err)
		if best < 0 || v < best {
			best = v
		}
	})

	return best
}

// chainTensor is a Koopmans–Beckmann instance: four facilities with flows
// 0–1:5, 1–2:3, 2–3:1 placed on a line with d(k,p) = |k−p|.
func chainTensor(t *testing.T) *tensor.Cost {
	t.Helper()
	flow := [4][4]int64{
		{0, 5, 0, 0},
		{5, 0, 3, 0},
		{0, 3, 0, 1},
		{0, 0, 1, 0},
	}
	c, err := tensor.FromFunc(4, func(i, k, j, p int) int64 {
		if i == j {
			return 0
		}
		d := int64(k - p)
		if d < 0 {
			d = -d
		}

		return flow[i][j] * d
	})
	require.NoError(t, err)

	return c
}

// requireConserved checks R′ + Σ C′ over π equals the original cost for
// every permutation, and that no feasible cell went negative.
func requireConserved(t *testing.T, orig *tensor.Cost, s *hgb.Stepper, step string) {
	t.Helper()
	work := s.Tensor()
	n := orig.N()
	permutations(n, func(p []int) {
		want, err := orig.Cost(p)
		require.NoError(t, err)
		got, err := work.Cost(p)
		require.NoError(t, err)
		require.Equal(t, want, s.Constant()+got, "%s: perm %v", step, p)
	})
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for p := 0; p < n; p++ {
					if tensor.Feasible(i, k, j, p) {
						require.GreaterOrEqual(t, work.At(i, k, j, p), int64(0), "%s: cell (%d,%d,%d,%d)", step, i, k, j, p)
					}
				}
			}
		}
	}
}

func TestBound_NilTensor(t *testing.T) {
	_, err := hgb.Bound(nil, hgb.Options{})
	assert.ErrorIs(t, err, hgb.ErrNilTensor)
}

func TestBound_SingleFacility(t *testing.T) {
	c, err := tensor.New(1)
	require.NoError(t, err)
	c.Set(0, 0, 0, 0, 17)

	res, err := hgb.Bound(c, hgb.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(17), res.LowerBound)
	assert.True(t, res.Exact)
	assert.Equal(t, []int{0}, res.Assignment)
}

func TestBound_NegativeCell(t *testing.T) {
	c, err := tensor.New(3)
	require.NoError(t, err)
	c.Set(0, 0, 1, 1, -4)
	_, err = hgb.Bound(c, hgb.Options{})
	assert.ErrorIs(t, err, hungarian.ErrNegativeCost)
}

func TestBound_DoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := randomTensor(t, rng, 4, 40)
	before := c.Clone()
	_, err := hgb.Bound(c, hgb.Options{})
	require.NoError(t, err)
	assert.True(t, before.Equal(c))
}

func TestBound_Chain(t *testing.T) {
	c := chainTensor(t)
	require.Equal(t, int64(18), optimum(t, c))

	res, err := hgb.Bound(c, hgb.Options{})
	require.NoError(t, err)
	assert.True(t, res.Exact)
	assert.Equal(t, int64(18), res.LowerBound)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Stalled)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Assignment)
	got, err := c.Cost(res.Assignment)
	require.NoError(t, err)
	assert.Equal(t, int64(18), got)
}

func TestBound_SoundAgainstEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 120; trial++ {
		n := 2 + rng.Intn(4)
		hi := []int64{3, 50, 1000}[rng.Intn(3)]
		c := randomTensor(t, rng, n, hi)
		opt := optimum(t, c)

		res, err := hgb.Bound(c, hgb.Options{})
		require.NoError(t, err)
		require.LessOrEqual(t, res.LowerBound, opt, "trial %d", trial)
		require.GreaterOrEqual(t, res.LowerBound, int64(0))
		require.GreaterOrEqual(t, res.Iterations, 1)
		if res.Exact {
			require.Equal(t, opt, res.LowerBound, "trial %d", trial)
			got, err := c.Cost(res.Assignment)
			require.NoError(t, err)
			require.Equal(t, opt, got, "trial %d", trial)
			require.False(t, res.Stalled)
		}
	}
}

func TestBound_IterationCapAndCutoff(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	c := randomTensor(t, rng, 5, 1000)

	one, err := hgb.Bound(c, hgb.Options{MaxIterations: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, one.Iterations)
	if !one.Exact {
		assert.True(t, one.Stalled)
	}

	full, err := hgb.Bound(c, hgb.Options{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, full.LowerBound, one.LowerBound)

	cut, err := hgb.Bound(c, hgb.Options{Cutoff: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, cut.LowerBound, full.LowerBound)
	if !cut.Exact && cut.LowerBound >= 1 {
		assert.False(t, cut.Stalled)
		assert.Equal(t, 1, cut.Iterations)
	}
}

func TestSteps_ConservePermutationCost(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for trial := 0; trial < 25; trial++ {
		n := 2 + rng.Intn(3)
		orig := randomTensor(t, rng, n, 200)
		s := hgb.NewStepper(orig)

		s.Consolidate()
		requireConserved(t, orig, s, "consolidate")
		require.NoError(t, s.ReduceAll())
		requireConserved(t, orig, s, "reduce")

		for round := 0; round < 3; round++ {
			_, err := s.MatchLeaders()
			require.NoError(t, err)
			requireConserved(t, orig, s, "match")
			require.NoError(t, s.Redistribute())
			requireConserved(t, orig, s, "redistribute")
		}
	}
}

func TestSpread_RemainderGoesToFirstRows(t *testing.T) {
	c, err := tensor.New(4)
	require.NoError(t, err)
	c.Set(1, 2, 1, 2, 8) // 8 over 3 rows: 3, 3, 2

	s := hgb.NewStepper(c)
	s.Spread(1, 2)
	w := s.Tensor()
	assert.Equal(t, int64(0), w.Leader(1, 2))
	for _, p := range []int{0, 1, 3} {
		assert.Equal(t, int64(3), w.At(1, 2, 0, p))
		assert.Equal(t, int64(3), w.At(1, 2, 2, p))
		assert.Equal(t, int64(2), w.At(1, 2, 3, p))
	}
	requireConserved(t, c, s, "spread")
}
