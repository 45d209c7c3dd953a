package qap

import (
	"errors"
	"time"

	"github.com/katalvlaran/lvqap/hgb"
	"go.uber.org/zap"
)

// Sentinel errors returned by the qap solvers.
var (
	// ErrInvalidSize indicates n < 1.
	ErrInvalidSize = errors.New("qap: problem size must be ≥ 1")

	// ErrNonSquare indicates that D is not square.
	ErrNonSquare = errors.New("qap: travel-cost matrix is not square")

	// ErrDimensionMismatch indicates that D or F do not match n.
	ErrDimensionMismatch = errors.New("qap: dimension mismatch")

	// ErrNegativeWeight indicates a negative entry in D or F.
	ErrNegativeWeight = errors.New("qap: negative weight")

	// ErrNaNInf indicates a NaN or ±Inf entry in D or F.
	ErrNaNInf = errors.New("qap: NaN or Inf weight")

	// ErrBadScale indicates a non-positive or non-finite Options.Scale.
	ErrBadScale = errors.New("qap: scale must be finite and > 0")

	// ErrScaleOverflow indicates that the scaled tensor could overflow int64
	// arithmetic somewhere in the search.
	ErrScaleOverflow = errors.New("qap: scaled costs overflow int64")

	// ErrTooLarge indicates that BruteForce was asked for n > MaxBruteForceSize.
	ErrTooLarge = errors.New("qap: instance too large for brute force")

	// ErrUnsupportedAlgorithm indicates an unknown Options.Algo.
	ErrUnsupportedAlgorithm = errors.New("qap: unsupported algorithm")

	// ErrBadOptions indicates an out-of-range option value.
	ErrBadOptions = errors.New("qap: invalid options")

	// ErrInvalidAssignment indicates a slice or matrix that is not a permutation.
	ErrInvalidAssignment = errors.New("qap: invalid assignment")
)

// MaxBruteForceSize is the largest n BruteForce accepts (10! ≈ 3.6·10⁶ leaves).
const MaxBruteForceSize = 10

// Algorithm selects the solver used by Solve.
type Algorithm int

const (
	// BranchAndBound is the exact Hahn–Grant guided search (default).
	BranchAndBound Algorithm = iota

	// BruteForce enumerates every permutation.
	BruteForce

	// SimulatedAnnealing is the seeded swap-neighbourhood heuristic.
	SimulatedAnnealing
)

// String returns the short name used in configs and reports.
func (a Algorithm) String() string {
	switch a {
	case BranchAndBound:
		return "bb"
	case BruteForce:
		return "brute"
	case SimulatedAnnealing:
		return "anneal"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a short or long name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "bb", "branch-and-bound", "branchandbound":
		return BranchAndBound, nil
	case "brute", "brute-force", "bruteforce":
		return BruteForce, nil
	case "anneal", "sa", "simulated-annealing":
		return SimulatedAnnealing, nil
	default:
		return 0, ErrUnsupportedAlgorithm
	}
}

// BranchRule selects which (facility, position) fixings a node expands.
type BranchRule int

const (
	// BranchPairs expands every remaining (facility, position) pair.
	BranchPairs BranchRule = iota

	// BranchFirstFacility expands only the first remaining facility over all
	// positions. Each permutation is then reached exactly once.
	BranchFirstFacility
)

// Options configures Solve. Start from DefaultOptions; zero numeric fields
// are replaced by their defaults.
type Options struct {
	Algo Algorithm // solver to run

	// Scale converts float costs to int64 (default DefaultScale).
	Scale float64

	// Branch-and-bound.
	Branching     BranchRule  // BranchPairs (default) or BranchFirstFacility
	Bound         hgb.Options // Hahn–Grant iteration and probe caps
	SeedIncumbent bool        // run annealing first to seed the upper bound
	Workers       int         // >1 evaluates root branches concurrently

	// Simulated annealing.
	Seed        int64   // 0 ⇒ fixed default stream
	Iterations  int     // moves per restart (0 ⇒ 2000·n²)
	Restarts    int     // independent restarts (0 ⇒ 1)
	InitialTemp float64 // 0 ⇒ derived from the start cost
	Cooling     float64 // geometric factor in (0,1) (0 ⇒ DefaultCooling)

	// Logger receives Info on solve start/finish and Debug on root branches
	// and incumbent improvements. Nil means zap.NewNop().
	Logger *zap.Logger

	// Observer receives search events. Nil disables them.
	Observer Observer
}

const (
	// DefaultScale is the float→int64 cost multiplier.
	DefaultScale = 1e6

	// DefaultCooling is the annealing temperature factor per move.
	DefaultCooling = 0.999
)

// DefaultOptions returns exact branch-and-bound with default scale, bound
// caps and a single worker.
func DefaultOptions() Options {
	return Options{
		Algo:      BranchAndBound,
		Scale:     DefaultScale,
		Branching: BranchPairs,
		Bound: hgb.Options{
			MaxIterations: hgb.DefaultMaxIterations,
			MaxProbes:     hgb.DefaultMaxProbes,
		},
		Workers:  1,
		Restarts: 1,
		Cooling:  DefaultCooling,
	}
}

// Observer receives solver events. Implementations must be safe for
// concurrent use when Options.Workers > 1.
type Observer interface {
	// NodeExpanded is called once per branch node, depth 0 being the root.
	NodeExpanded(depth int)

	// BoundComputed is called after every Hahn–Grant evaluation.
	BoundComputed(res hgb.Result)

	// Pruned is called when a child is discarded by its bound.
	Pruned(depth int)

	// Incumbent is called when a strictly better scaled cost is found.
	Incumbent(cost int64)

	// Finished is called once per Solve with the final statistics.
	Finished(algo Algorithm, stats Stats)
}

// Stats summarises one solve.
type Stats struct {
	Nodes        int64 // branch nodes expanded (BB) or leaves visited (brute force)
	Pruned       int64 // children discarded by their bound
	BoundCalls   int64 // Hahn–Grant evaluations
	BoundIters   int64 // leader matchings across all evaluations
	ExactBounds  int64 // evaluations that certified their subproblem
	Improvements int64 // incumbent updates
	RootBound    int64 // scaled root lower bound (BB only)
	Moves        int64 // annealing moves attempted
	Accepted     int64 // annealing moves accepted
	Elapsed      time.Duration
}

// Result is the outcome of Solve.
type Result struct {
	// Assignment maps facility → position.
	Assignment []int

	// X is the n×n 0/1 assignment matrix, X[i][Assignment[i]] == 1.
	X [][]int

	// ScaledCost is the integer objective the solver optimised.
	ScaledCost int64

	// Cost is the float objective of Assignment on the original D and F.
	Cost float64

	// Optimal reports that the solver proves Assignment optimal on the
	// scaled tensor (BranchAndBound, BruteForce).
	Optimal bool

	Algo  Algorithm
	Stats Stats
}
