package hgb

import "errors"

// ErrNilTensor is returned when Bound receives a nil tensor.
var ErrNilTensor = errors.New("hgb: nil cost tensor")

const (
	// DefaultMaxIterations caps the Step 2–4 loop.
	DefaultMaxIterations = 64

	// DefaultMaxProbes caps the nodes visited by one exactness probe.
	DefaultMaxProbes = 4096
)

// Options controls the dual ascent. The zero value selects the defaults.
type Options struct {
	// MaxIterations bounds the number of leader matchings (≤ 0 → default).
	MaxIterations int

	// MaxProbes bounds the exactness DFS per iteration (≤ 0 → default).
	MaxProbes int

	// Cutoff stops the ascent as soon as the bound reaches it. Callers that
	// only need to know whether a node can be pruned pass their limit here.
	// Zero disables the cutoff.
	Cutoff int64
}

// Result is the outcome of Bound.
type Result struct {
	// LowerBound never exceeds the optimum of the input tensor.
	LowerBound int64

	// Exact reports that LowerBound is the optimum and Assignment attains it.
	Exact bool

	// Assignment is set only when Exact (assignment[facility] = position).
	Assignment []int

	// Iterations counts leader matchings performed.
	Iterations int

	// Stalled reports that the loop ended without a certificate and without
	// reaching the cutoff.
	Stalled bool
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxProbes <= 0 {
		o.MaxProbes = DefaultMaxProbes
	}

	return o
}
