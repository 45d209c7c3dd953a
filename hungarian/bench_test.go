package hungarian_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvqap/hungarian"
)

// benchmarkSolve runs Solve on a fixed pseudo-random m×m matrix.
func benchmarkSolve(b *testing.B, m int) {
	rng := rand.New(rand.NewSource(1))
	cost := make([][]int64, m)
	for i := range cost {
		cost[i] = make([]int64, m)
		for j := range cost[i] {
			cost[i][j] = rng.Int63n(1_000_000)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := hungarian.Solve(cost); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}

func BenchmarkSolve_8(b *testing.B)   { benchmarkSolve(b, 8) }
func BenchmarkSolve_32(b *testing.B)  { benchmarkSolve(b, 32) }
func BenchmarkSolve_128(b *testing.B) { benchmarkSolve(b, 128) }
