package qap

import (
	"math"

	"github.com/katalvlaran/lvqap/tensor"
)

// bruteForce enumerates every permutation of c in lexicographic order and
// returns the first one of minimum cost.
//
// Partial costs are accumulated facility by facility: placing facility i at
// position k adds its leader plus both pair cells against every facility
// already placed, so each leaf costs O(1) beyond its parent.
//
// Complexity: O(n!·n) time, O(n) extra space.
func bruteForce(c *tensor.Cost, stats *Stats) ([]int, int64, error) {
	n := c.N()
	if n > MaxBruteForceSize {
		return nil, 0, ErrTooLarge
	}

	var (
		assign   = make([]int, n)
		used     = make([]bool, n)
		best     = make([]int, n)
		bestCost = int64(math.MaxInt64)
		rec      func(i int, partial int64)
	)
	rec = func(i int, partial int64) {
		if i == n {
			stats.Nodes++
			if partial < bestCost {
				bestCost = partial
				copy(best, assign)
				stats.Improvements++
			}

			return
		}
		var (
			k, j  int
			delta int64
		)
		for k = 0; k < n; k++ {
			if used[k] {
				continue
			}
			delta = c.Leader(i, k)
			for j = 0; j < i; j++ {
				delta += c.At(i, k, j, assign[j]) + c.At(j, assign[j], i, k)
			}
			assign[i] = k
			used[k] = true
			rec(i+1, partial+delta)
			used[k] = false
		}
	}
	rec(0, 0)

	return best, bestCost, nil
}
