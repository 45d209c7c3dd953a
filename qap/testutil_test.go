// Package qap_test provides helpers shared across the qap test files.
package qap_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/matrix"
	"github.com/katalvlaran/lvqap/qap"
	"github.com/stretchr/testify/require"
)

const (
	// seedDet is the fixed seed for annealing runs.
	seedDet = int64(7)

	// chainOptimum is the optimum of chainProblem.
	chainOptimum = 18
)

// zeroF allocates an n⁴ tensor of zeros.
func zeroF(n int) [][][][]float64 {
	f := make([][][][]float64, n)
	for i := range f {
		f[i] = make([][][]float64, n)
		for j := range f[i] {
			f[i][j] = make([][]float64, n)
			for k := range f[i][j] {
				f[i][j][k] = make([]float64, n)
			}
		}
	}

	return f
}

// randomProblem draws D in [0,100) with a zero diagonal and a sparse F in
// [0,1); roughly a third of the F cells are zero.
func randomProblem(t testing.TB, rng *rand.Rand, n int) qap.Problem {
	t.Helper()
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				require.NoError(t, d.Set(i, j, float64(rng.Intn(100))))
			}
		}
	}
	f := zeroF(n)
	for i := range f {
		for j := range f[i] {
			for k := range f[i][j] {
				for p := range f[i][j][k] {
					if rng.Intn(3) > 0 {
						f[i][j][k][p] = rng.Float64()
					}
				}
			}
		}
	}
	p, err := qap.NewProblem(n, d, f)
	require.NoError(t, err)

	return p
}

// chainProblem is a Koopmans–Beckmann instance: flows 0–1:5, 1–2:3, 2–3:1
// and positions on a line, F[i][j][k][p] = |k−p|. Optimum 18 at the identity
// and its reverse.
func chainProblem(t *testing.T) qap.Problem {
	t.Helper()
	d, err := matrix.NewFromRows([][]float64{
		{0, 5, 0, 0},
		{5, 0, 3, 0},
		{0, 3, 0, 1},
		{0, 0, 1, 0},
	})
	require.NoError(t, err)
	f := zeroF(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				for p := 0; p < 4; p++ {
					if k > p {
						f[i][j][k][p] = float64(k - p)
					} else {
						f[i][j][k][p] = float64(p - k)
					}
				}
			}
		}
	}
	p, err := qap.NewProblem(4, d, f)
	require.NoError(t, err)

	return p
}

// requireValidX asserts that X is 0/1 with unit row and column sums and
// agrees with assign.
func requireValidX(t *testing.T, res qap.Result) {
	t.Helper()
	n := len(res.Assignment)
	require.Len(t, res.X, n)
	cols := make([]int, n)
	for i, row := range res.X {
		require.Len(t, row, n)
		sum := 0
		for k, x := range row {
			require.Contains(t, []int{0, 1}, x)
			sum += x
			cols[k] += x
		}
		require.Equal(t, 1, sum, "row %d", i)
		require.Equal(t, 1, row[res.Assignment[i]])
	}
	for k, s := range cols {
		require.Equal(t, 1, s, "column %d", k)
	}
}

// countingObserver records solver events; safe for concurrent use.
type countingObserver struct {
	mu         sync.Mutex
	nodes      int
	bounds     int
	pruned     int
	incumbents []int64
	finished   int
}

var _ qap.Observer = (*countingObserver)(nil)

func (o *countingObserver) NodeExpanded(int) {
	o.mu.Lock()
	o.nodes++
	o.mu.Unlock()
}

func (o *countingObserver) BoundComputed(hgb.Result) {
	o.mu.Lock()
	o.bounds++
	o.mu.Unlock()
}

func (o *countingObserver) Pruned(int) {
	o.mu.Lock()
	o.pruned++
	o.mu.Unlock()
}

func (o *countingObserver) Incumbent(cost int64) {
	o.mu.Lock()
	o.incumbents = append(o.incumbents, cost)
	o.mu.Unlock()
}

func (o *countingObserver) Finished(qap.Algorithm, qap.Stats) {
	o.mu.Lock()
	o.finished++
	o.mu.Unlock()
}
