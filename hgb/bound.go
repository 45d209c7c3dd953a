package hgb

import (
	"fmt"

	"github.com/katalvlaran/lvqap/hungarian"
	"github.com/katalvlaran/lvqap/tensor"
)

// Bound returns a lower bound on min_π Σ C[i][π i][j][π j], together with
// an optimal assignment when the bound is certified exact.
//
// Contracts:
//   - c is not modified; all work happens on a clone.
//   - Every feasible cell of c must be ≥ 0.
//
// Errors: ErrNilTensor, or a wrapped hungarian.ErrNegativeCost for
// negative cells.
func Bound(c *tensor.Cost, opts Options) (Result, error) {
	if c == nil {
		return Result{}, ErrNilTensor
	}
	opts = opts.withDefaults()

	if c.N() == 1 {
		return Result{
			LowerBound: c.Leader(0, 0),
			Exact:      true,
			Assignment: []int{0},
		}, nil
	}

	e := newEngine(c.Clone(), opts)

	// Step 1.
	e.c.Consolidate()
	if err := e.reduceAll(); err != nil {
		return Result{}, err
	}

	var (
		res  Result
		cost int64
		err  error
	)
	for {
		// Step 2.
		res.Iterations++
		if cost, err = e.matchLeaders(); err != nil {
			return Result{}, err
		}
		if e.probeExact() {
			res.LowerBound = e.lb
			res.Exact = true
			res.Assignment = append([]int(nil), e.assign...)

			return res, nil
		}
		if opts.Cutoff > 0 && e.lb >= opts.Cutoff {
			res.LowerBound = e.lb

			return res, nil
		}
		if cost == 0 || res.Iterations >= opts.MaxIterations {
			res.LowerBound = e.lb
			res.Stalled = true

			return res, nil
		}

		// Steps 3 and 4.
		if err = e.redistribute(); err != nil {
			return Result{}, err
		}
	}
}

// matchLeaders solves the leader matrix, adds its optimum to R′ and writes
// the reduced leaders back. It returns the matching cost.
func (e *engine) matchLeaders() (int64, error) {
	res, err := hungarian.Solve(e.c.Leaders())
	if err != nil {
		return 0, fmt.Errorf("hgb: leader matching: %w", err)
	}
	e.lb += res.Cost

	var i, k int
	for i = 0; i < e.n; i++ {
		for k = 0; k < e.n; k++ {
			e.c.Set(i, k, i, k, res.Reduced[i][k])
		}
	}

	return res.Cost, nil
}

// probeExact searches for a permutation whose leaders and pair cells are all
// zero. Such a permutation costs exactly R′ and is therefore optimal. The
// search gives up after opts.MaxProbes placements.
func (e *engine) probeExact() bool {
	e.probes = 0
	for k := range e.used {
		e.used[k] = false
	}

	return e.probe(0)
}

func (e *engine) probe(i int) bool {
	if i == e.n {
		return true
	}
	var k, j, p int
	for k = 0; k < e.n; k++ {
		if e.used[k] || e.c.Leader(i, k) != 0 {
			continue
		}
		e.probes++
		if e.probes > e.opts.MaxProbes {
			return false
		}
		ok := true
		for j = 0; j < i; j++ {
			p = e.assign[j]
			if e.c.At(i, k, j, p) != 0 || e.c.At(j, p, i, k) != 0 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		e.assign[i] = k
		e.used[k] = true
		if e.probe(i + 1) {
			return true
		}
		e.used[k] = false
		if e.probes > e.opts.MaxProbes {
			return false
		}
	}

	return false
}

// redistribute spreads every positive leader over its submatrix
// (Step 3), consolidates, and re-reduces zero leaders before modified ones
// (Step 4).
func (e *engine) redistribute() error {
	var (
		zero     = make([][2]int, 0, e.n*e.n)
		modified = make([][2]int, 0, e.n*e.n)
		i, k     int
	)
	for i = 0; i < e.n; i++ {
		for k = 0; k < e.n; k++ {
			if e.c.Leader(i, k) > 0 {
				e.spread(i, k)
				modified = append(modified, [2]int{i, k})
			} else {
				zero = append(zero, [2]int{i, k})
			}
		}
	}
	e.c.Consolidate()

	for _, lk := range append(zero, modified...) {
		if err := e.reduceLeader(lk[0], lk[1]); err != nil {
			return err
		}
	}

	return nil
}

// spread moves leader (i,k) into its n−1 submatrix rows: row r receives
// ⌊L/(n−1)⌋, plus one unit for the first L mod (n−1) rows, on each of its
// cells. A permutation through (i,k) picks one cell per row, so it pays
// exactly L either way.
func (e *engine) spread(i, k int) {
	var (
		rows       = int64(e.n - 1)
		lead       = e.c.Leader(i, k)
		share      = lead / rows
		rem        = lead % rows
		a, b, j, p int
		add        int64
	)
	for a = 0; a < e.n-1; a++ {
		j = skip(a, i)
		add = share
		if int64(a) < rem {
			add++
		}
		if add == 0 {
			continue
		}
		for b = 0; b < e.n-1; b++ {
			p = skip(b, k)
			e.c.Add(i, k, j, p, add)
		}
	}
	e.c.Set(i, k, i, k, 0)
}
