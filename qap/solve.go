// Package qap - unified dispatcher.
//
// Solve validates a Problem, derives its scaled tensor and routes to the
// algorithm selected by Options.Algo. SolveTensor is the same dispatcher for
// callers that already hold a scaled tensor.
package qap

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/lvqap/tensor"
	"go.uber.org/zap"
)

// Solve validates p and opts, then runs the selected solver.
//
// Contracts:
//   - p is not modified.
//   - Result.Cost is the float objective of Result.Assignment on p.D and p.F;
//     Result.ScaledCost is the integer objective that was optimised.
//
// Errors: the sentinels of types.go.
func Solve(p Problem, opts Options) (Result, error) {
	opts = normalize(opts)
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if err := validateProblem(p); err != nil {
		return Result{}, err
	}
	c, err := p.CostTensor(opts.Scale)
	if err != nil {
		return Result{}, err
	}

	res, err := SolveTensor(c, opts)
	if err != nil {
		return Result{}, err
	}
	if res.Cost, err = p.Evaluate(res.Assignment); err != nil {
		return Result{}, err
	}

	return res, nil
}

// SolveBranchAndBound is Solve with Algo = BranchAndBound.
func SolveBranchAndBound(p Problem, opts Options) (Result, error) {
	opts.Algo = BranchAndBound

	return Solve(p, opts)
}

// SolveBruteForce is Solve with Algo = BruteForce.
func SolveBruteForce(p Problem, opts Options) (Result, error) {
	opts.Algo = BruteForce

	return Solve(p, opts)
}

// SolveAnnealing is Solve with Algo = SimulatedAnnealing.
func SolveAnnealing(p Problem, opts Options) (Result, error) {
	opts.Algo = SimulatedAnnealing

	return Solve(p, opts)
}

// SolveTensor runs the selected solver on an already scaled tensor. The
// reported Cost is ScaledCost / opts.Scale.
//
// Errors: ErrInvalidSize for a nil tensor, ErrNegativeWeight for negative
// cells, ErrScaleOverflow when the cells are too large for safe int64
// arithmetic, and the option sentinels.
func SolveTensor(c *tensor.Cost, opts Options) (Result, error) {
	opts = normalize(opts)
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if err := validateTensor(c); err != nil {
		return Result{}, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("algo", opts.Algo), zap.Int("n", c.N()))
	log.Info("solve started")

	var (
		start   = time.Now()
		assign  []int
		cost    int64
		stats   Stats
		optimal bool
		err     error
	)
	switch opts.Algo {
	case BranchAndBound:
		assign, cost, stats, err = branchAndBound(c, opts, log)
		optimal = true
	case BruteForce:
		assign, cost, err = bruteForce(c, &stats)
		optimal = true
	case SimulatedAnnealing:
		assign, cost, err = anneal(c, opts, &stats)
	default:
		err = ErrUnsupportedAlgorithm
	}
	if err != nil {
		log.Warn("solve failed", zap.Error(err))

		return Result{}, fmt.Errorf("qap: %s: %w", opts.Algo, err)
	}
	stats.Elapsed = time.Since(start)

	x, err := AssignmentMatrix(assign)
	if err != nil {
		return Result{}, err
	}
	log.Info("solve finished",
		zap.Int64("scaled_cost", cost),
		zap.Ints("assignment", assign),
		zap.Int64("nodes", stats.Nodes),
		zap.Int64("pruned", stats.Pruned),
		zap.Duration("elapsed", stats.Elapsed))
	if opts.Observer != nil {
		opts.Observer.Finished(opts.Algo, stats)
	}

	return Result{
		Assignment: assign,
		X:          x,
		ScaledCost: cost,
		Cost:       float64(cost) / opts.Scale,
		Optimal:    optimal,
		Algo:       opts.Algo,
		Stats:      stats,
	}, nil
}

// validateTensor rejects nil tensors, negative cells and magnitudes for
// which 4·n⁴·max could overflow int64.
func validateTensor(c *tensor.Cost) error {
	if c == nil {
		return ErrInvalidSize
	}
	if c.Min() < 0 {
		return ErrNegativeWeight
	}
	n := float64(c.N())
	if float64(c.Max()) > math.MaxInt64/(4*n*n*n*n) {
		return ErrScaleOverflow
	}

	return nil
}
