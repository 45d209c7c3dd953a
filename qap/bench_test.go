package qap_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvqap/qap"
)

func benchSolve(b *testing.B, n int, mod func(*qap.Options)) {
	rng := rand.New(rand.NewSource(1))
	p := randomProblem(b, rng, n)
	opts := qap.DefaultOptions()
	mod(&opts)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := qap.Solve(p, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBranchAndBound_6(b *testing.B) { benchSolve(b, 6, func(*qap.Options) {}) }
func BenchmarkBranchAndBound_7(b *testing.B) { benchSolve(b, 7, func(*qap.Options) {}) }
func BenchmarkBranchAndBound_7_FirstFacility(b *testing.B) {
	benchSolve(b, 7, func(o *qap.Options) { o.Branching = qap.BranchFirstFacility })
}
func BenchmarkBranchAndBound_7_Workers4(b *testing.B) {
	benchSolve(b, 7, func(o *qap.Options) { o.Workers = 4 })
}
func BenchmarkBruteForce_7(b *testing.B) {
	benchSolve(b, 7, func(o *qap.Options) { o.Algo = qap.BruteForce })
}
func BenchmarkAnnealing_7(b *testing.B) {
	benchSolve(b, 7, func(o *qap.Options) { o.Algo = qap.SimulatedAnnealing })
}
