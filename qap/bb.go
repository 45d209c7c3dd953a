// Package qap — Branch-and-Bound guided by the Hahn–Grant dual bound.
//
// A node is a shrinking cost tensor c of order m plus the scaled cost
// already committed by its ancestors (prefix). Fixing facility i at
// position k yields the child tensor tensor.Fix(c, i, k), whose every
// permutation costs exactly C[i][k][i][k] less than its lift in c, so
//
//	bound(child) = prefix + C[i][k][i][k] + hgb.Bound(child)
//
// is a valid lower bound on everything below it.
//
// Rationale (succinct):
//  1. All children of a node are bounded first, then explored in ascending
//     bound order; the incumbent tightens early and later siblings prune.
//  2. A child is pruned when its bound is ≥ the incumbent. Only strictly
//     better solutions are accepted, so the first optimum found is kept.
//  3. When hgb certifies a child exact, its assignment is taken directly.
//  4. The incumbent is one atomic int64 (lock-free minimum) plus a
//     mutex-guarded assignment committed at the root. With Workers > 1 the
//     root children run concurrently; a stale read only weakens pruning.
//  5. hgb.Options.Cutoff is set to the node's remaining budget, so the dual
//     ascent stops as soon as the child is known to be prunable.
//
// Complexity:
//   - Worst case exponential in n. Per child: O(n⁴) derivation plus the
//     Hahn–Grant ascent (O(n⁵) per iteration).
//   - Memory: one derived tensor per level of the current path.

package qap

import (
	"errors"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/tensor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// errNoIncumbent guards an impossible state: a complete search that found no
// permutation below MaxInt64.
var errNoIncumbent = errors.New("qap: search ended without an incumbent")

// bbEngine holds the search policy, the shared incumbent and the counters.
// One engine serves one solve; all fields touched by workers are atomic or
// mutex-guarded.
type bbEngine struct {
	opts  Options
	bound hgb.Options
	log   *zap.Logger
	obs   Observer

	// best is the scaled cost of the incumbent (MaxInt64 = none yet).
	best atomic.Int64

	mu            sync.Mutex
	bestAssign    []int
	bestCommitted int64

	nodes, pruned, boundCalls, boundIters, exactBounds, improvements atomic.Int64
}

// child is a scored (facility, position) fixing of a node.
type child struct {
	i, k   int
	fixed  int64 // C[i][k][i][k] in the parent
	lb     int64 // hgb bound of the child tensor
	exact  bool
	assign []int // child optimum when exact
}

func newBBEngine(opts Options, log *zap.Logger) *bbEngine {
	e := &bbEngine{
		opts:          opts,
		bound:         opts.Bound,
		log:           log,
		obs:           opts.Observer,
		bestCommitted: math.MaxInt64,
	}
	e.best.Store(math.MaxInt64)

	return e
}

// branchAndBound returns an optimal permutation of c and its scaled cost.
func branchAndBound(c *tensor.Cost, opts Options, log *zap.Logger) ([]int, int64, Stats, error) {
	var (
		e     = newBBEngine(opts, log)
		n     = c.N()
		stats Stats
	)

	// Stage 1: optional incumbent from annealing.
	if opts.SeedIncumbent && n > 1 {
		var seedStats Stats
		a, v, err := anneal(c, opts, &seedStats)
		if err != nil {
			return nil, 0, Stats{}, err
		}
		e.best.Store(v)
		e.commit(a, v)
		log.Debug("incumbent seeded", zap.Int64("cost", v))
	}

	// Stage 2: root bound. Exact ⇒ done; meeting the incumbent ⇒ done.
	var cutoff int64
	if cur := e.best.Load(); cur != math.MaxInt64 {
		cutoff = cur
	}
	root, err := e.evalBound(c, cutoff)
	if err != nil {
		return nil, 0, Stats{}, err
	}
	stats.RootBound = root.LowerBound
	log.Debug("root bound",
		zap.Int64("bound", root.LowerBound),
		zap.Bool("exact", root.Exact),
		zap.Int("iterations", root.Iterations))
	switch {
	case root.Exact:
		if e.offer(root.LowerBound, 0) {
			e.commit(root.Assignment, root.LowerBound)
		}
	case root.LowerBound >= e.best.Load():
		// the seeded incumbent is optimal
	default:
		// Stage 3: search.
		if err = e.searchRoot(c); err != nil {
			return nil, 0, Stats{}, err
		}
	}

	if e.bestAssign == nil {
		return nil, 0, Stats{}, errNoIncumbent
	}
	stats.Nodes = e.nodes.Load()
	stats.Pruned = e.pruned.Load()
	stats.BoundCalls = e.boundCalls.Load()
	stats.BoundIters = e.boundIters.Load()
	stats.ExactBounds = e.exactBounds.Load()
	stats.Improvements = e.improvements.Load()

	return e.bestAssign, e.bestCommitted, stats, nil
}

// searchRoot expands the root and explores its children, concurrently when
// opts.Workers > 1. Every root child commits its subtree's best.
func (e *bbEngine) searchRoot(c *tensor.Cost) error {
	e.nodes.Add(1)
	e.nodeExpanded(0)
	if c.N() == 1 {
		if e.offer(c.Leader(0, 0), 0) {
			e.commit([]int{0}, c.Leader(0, 0))
		}

		return nil
	}
	kids, err := e.children(c, 0, 0)
	if err != nil {
		return err
	}
	e.log.Debug("root expanded", zap.Int("children", len(kids)))

	run := func(ch child) error {
		a, v, ok, err := e.explore(c, ch, 0, 0)
		if err != nil {
			return err
		}
		if ok {
			e.commit(a, v)
		}

		return nil
	}

	if e.opts.Workers <= 1 {
		for _, ch := range kids {
			if err = run(ch); err != nil {
				return err
			}
		}

		return nil
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for _, ch := range kids {
		g.Go(func() error { return run(ch) })
	}

	return g.Wait()
}

// branch returns the best permutation of c whose total (prefix + cost) is
// strictly below the incumbent at the time it was found.
func (e *bbEngine) branch(c *tensor.Cost, depth int, prefix int64) ([]int, int64, bool, error) {
	e.nodes.Add(1)
	e.nodeExpanded(depth)

	if c.N() == 1 {
		v := c.Leader(0, 0)
		if e.offer(prefix+v, depth) {
			return []int{0}, v, true, nil
		}

		return nil, 0, false, nil
	}

	kids, err := e.children(c, depth, prefix)
	if err != nil {
		return nil, 0, false, err
	}

	var (
		found     []int
		foundCost int64
		ok        bool
	)
	for _, ch := range kids {
		a, v, got, err := e.explore(c, ch, depth, prefix)
		if err != nil {
			return nil, 0, false, err
		}
		if got && (!ok || v < foundCost) {
			found, foundCost, ok = a, v, true
		}
	}

	return found, foundCost, ok, nil
}

// children fixes every candidate pair of c, bounds the child tensors and
// returns the survivors sorted by ascending total bound (ties: index order).
func (e *bbEngine) children(c *tensor.Cost, depth int, prefix int64) ([]child, error) {
	var (
		n          = c.N()
		facilities = n
		out        = make([]child, 0, n*n)
		i, k       int
		limit      int64
	)
	if e.opts.Branching == BranchFirstFacility {
		facilities = 1
	}
	for i = 0; i < facilities; i++ {
		for k = 0; k < n; k++ {
			fixed := c.Leader(i, k)
			limit = e.best.Load() - prefix - fixed
			if limit <= 0 {
				e.prune(depth + 1)
				continue
			}
			sub, err := tensor.Fix(c, i, k)
			if err != nil {
				return nil, err
			}
			br, err := e.evalBound(sub, limit)
			if err != nil {
				return nil, err
			}
			if br.LowerBound >= limit {
				e.prune(depth + 1)
				continue
			}
			out = append(out, child{i: i, k: k, fixed: fixed, lb: br.LowerBound, exact: br.Exact, assign: br.Assignment})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].fixed+out[a].lb < out[b].fixed+out[b].lb
	})

	return out, nil
}

// explore re-checks a scored child against the current incumbent, then
// either takes its certified optimum or recurses. The returned assignment
// and cost are in the parent's indices.
func (e *bbEngine) explore(c *tensor.Cost, ch child, depth int, prefix int64) ([]int, int64, bool, error) {
	limit := e.best.Load() - prefix - ch.fixed
	if ch.lb >= limit {
		e.prune(depth + 1)

		return nil, 0, false, nil
	}
	if ch.exact {
		if !e.offer(prefix+ch.fixed+ch.lb, depth+1) {
			return nil, 0, false, nil
		}

		return tensor.Expand(ch.assign, ch.i, ch.k), ch.fixed + ch.lb, true, nil
	}

	sub, err := tensor.Fix(c, ch.i, ch.k)
	if err != nil {
		return nil, 0, false, err
	}
	a, v, ok, err := e.branch(sub, depth+1, prefix+ch.fixed)
	if err != nil || !ok {
		return nil, 0, false, err
	}

	return tensor.Expand(a, ch.i, ch.k), ch.fixed + v, true, nil
}

// evalBound runs the Hahn–Grant ascent with the given cutoff and records
// the counters.
func (e *bbEngine) evalBound(c *tensor.Cost, cutoff int64) (hgb.Result, error) {
	o := e.bound
	o.Cutoff = cutoff
	res, err := hgb.Bound(c, o)
	if err != nil {
		return hgb.Result{}, err
	}
	e.boundCalls.Add(1)
	e.boundIters.Add(int64(res.Iterations))
	if res.Exact {
		e.exactBounds.Add(1)
	}
	if e.obs != nil {
		e.obs.BoundComputed(res)
	}

	return res, nil
}

// offer lowers the incumbent to total if total is strictly smaller.
func (e *bbEngine) offer(total int64, depth int) bool {
	for {
		cur := e.best.Load()
		if total >= cur {
			return false
		}
		if e.best.CompareAndSwap(cur, total) {
			e.improvements.Add(1)
			e.log.Debug("incumbent improved", zap.Int64("cost", total), zap.Int("depth", depth))
			if e.obs != nil {
				e.obs.Incumbent(total)
			}

			return true
		}
	}
}

// commit stores assign as the reported solution if it beats the committed one.
func (e *bbEngine) commit(assign []int, cost int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bestAssign == nil || cost < e.bestCommitted {
		e.bestAssign = append([]int(nil), assign...)
		e.bestCommitted = cost
	}
}

func (e *bbEngine) prune(depth int) {
	e.pruned.Add(1)
	if e.obs != nil {
		e.obs.Pruned(depth)
	}
}

func (e *bbEngine) nodeExpanded(depth int) {
	if e.obs != nil {
		e.obs.NodeExpanded(depth)
	}
}
