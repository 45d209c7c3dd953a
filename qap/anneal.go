package qap

import (
	"math"

	"github.com/katalvlaran/lvqap/tensor"
)

// anneal runs opts.Restarts independent simulated-annealing chains on c and
// returns the best permutation seen. The error is non-nil only when a
// start permutation fails tensor validation.
//
// Move: swap the positions of two distinct facilities. A move with cost
// change Δ is accepted when Δ ≤ 0, or with probability exp(−Δ/T) otherwise.
// T starts at opts.InitialTemp (or start cost / n when zero) and is
// multiplied by opts.Cooling after every move.
//
// Restart r draws from deriveRNG(opts.Seed, r), so results depend only on
// the seed.
//
// Complexity: O(restarts·iterations·n).
func anneal(c *tensor.Cost, opts Options, stats *Stats) ([]int, int64, error) {
	n := c.N()
	if n == 1 {
		return []int{0}, c.Leader(0, 0), nil
	}
	iters := opts.Iterations
	if iters == 0 {
		iters = 2000 * n * n
	}

	var (
		best     = make([]int, n)
		bestCost = int64(math.MaxInt64)
		r, it    int
		a, b     int
		delta    int64
		temp     float64
	)
	for r = 0; r < opts.Restarts; r++ {
		rng := deriveRNG(opts.Seed, uint64(r))
		cur := permRange(n, rng)
		curCost, err := c.Cost(cur)
		if err != nil {
			return nil, 0, err
		}
		if curCost < bestCost {
			bestCost = curCost
			copy(best, cur)
		}

		temp = opts.InitialTemp
		if temp == 0 {
			temp = math.Max(1, float64(curCost)/float64(n))
		}
		for it = 0; it < iters; it++ {
			a = rng.Intn(n)
			b = rng.Intn(n - 1)
			if b >= a {
				b++
			}
			delta = swapDelta(c, cur, a, b)
			stats.Moves++
			if delta <= 0 || rng.Float64() < math.Exp(-float64(delta)/temp) {
				cur[a], cur[b] = cur[b], cur[a]
				curCost += delta
				stats.Accepted++
				if curCost < bestCost {
					bestCost = curCost
					copy(best, cur)
					stats.Improvements++
				}
			}
			temp *= opts.Cooling
		}
	}

	return best, bestCost, nil
}

// swapDelta returns cost(π with a and b swapped) − cost(π) in O(n).
// π is restored before returning.
func swapDelta(c *tensor.Cost, pi []int, a, b int) int64 {
	before := touching(c, pi, a, b)
	pi[a], pi[b] = pi[b], pi[a]
	after := touching(c, pi, a, b)
	pi[a], pi[b] = pi[b], pi[a]

	return after - before
}

// touching sums every term C[i][π i][j][π j] with i or j in {a, b}.
func touching(c *tensor.Cost, pi []int, a, b int) int64 {
	var (
		s int64
		j int
	)
	for j = 0; j < len(pi); j++ {
		s += c.At(a, pi[a], j, pi[j]) + c.At(b, pi[b], j, pi[j])
		if j != a && j != b {
			s += c.At(j, pi[j], a, pi[a]) + c.At(j, pi[j], b, pi[b])
		}
	}

	return s
}
