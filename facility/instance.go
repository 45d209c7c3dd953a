package facility

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvqap/matrix"
	"github.com/katalvlaran/lvqap/qap"
)

const (
	// DefaultUnitCost is the travel cost per distance unit.
	DefaultUnitCost = 10.0

	// DefaultSymmetryTolerance bounds |D[i][j] − D[j][i]| for the built-in
	// distance policies, which are symmetric.
	DefaultSymmetryTolerance = 1e-9
)

// Instance is an immutable facility set with its derived D and F.
type Instance struct {
	facilities []Facility
	unitCost   float64
	d          *matrix.Dense
	f          [][][][]float64
}

type config struct {
	unitCost float64
	distance DistanceFunc
	risk     RiskFunc

	symmetric bool
	symTol    float64
}

// Option configures NewInstance.
type Option func(*config)

// WithUnitCost sets the cost per distance unit (must be finite and ≥ 0).
func WithUnitCost(v float64) Option { return func(c *config) { c.unitCost = v } }

// WithDistance replaces the distance policy.
func WithDistance(fn DistanceFunc) Option { return func(c *config) { c.distance = fn } }

// WithRisk replaces the risk policy.
func WithRisk(fn RiskFunc) Option { return func(c *config) { c.risk = fn } }

// WithSymmetricDistance makes NewInstance reject a distance policy whose
// D is not symmetric within tol (matrix.ErrAsymmetry).
func WithSymmetricDistance(tol float64) Option {
	return func(c *config) { c.symmetric, c.symTol = true, tol }
}

// NewInstance validates fs and derives D and F.
//
// Errors: ErrNoFacilities, ErrBadRisk, ErrBadCoordinate, ErrBadRecord,
// ErrBadOption, and matrix.ErrAsymmetry under WithSymmetricDistance.
//
// Complexity: O(n⁴) for F.
func NewInstance(fs []Facility, opts ...Option) (*Instance, error) {
	cfg := config{unitCost: DefaultUnitCost, distance: Haversine, risk: SuccessorRisk}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.distance == nil || cfg.risk == nil ||
		math.IsNaN(cfg.unitCost) || math.IsInf(cfg.unitCost, 0) || cfg.unitCost < 0 {
		return nil, ErrBadOption
	}
	if err := ValidateAll(fs); err != nil {
		return nil, err
	}

	var (
		n          = len(fs)
		own        = append([]Facility(nil), fs...)
		i, j, k, p int
	)
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if err = d.Set(i, j, cfg.unitCost*cfg.distance(own[i], own[j])); err != nil {
				return nil, err
			}
		}
	}
	if cfg.symmetric {
		if err = matrix.ValidateSymmetric(d, cfg.symTol); err != nil {
			return nil, fmt.Errorf("facility: distance: %w", err)
		}
	}

	f := make([][][][]float64, n)
	for i = 0; i < n; i++ {
		f[i] = make([][][]float64, n)
		for j = 0; j < n; j++ {
			f[i][j] = make([][]float64, n)
			for k = 0; k < n; k++ {
				f[i][j][k] = make([]float64, n)
				for p = 0; p < n; p++ {
					f[i][j][k][p] = cfg.risk(own, i, j, k, p)
				}
			}
		}
	}

	return &Instance{facilities: own, unitCost: cfg.unitCost, d: d, f: f}, nil
}

// Len returns the number of facilities.
func (in *Instance) Len() int { return len(in.facilities) }

// Facilities returns a copy of the facility list.
func (in *Instance) Facilities() []Facility {
	return append([]Facility(nil), in.facilities...)
}

// Problem returns the solver input. It shares D and F with the instance;
// solvers never mutate them.
func (in *Instance) Problem() qap.Problem {
	return qap.Problem{N: len(in.facilities), D: in.d, F: in.f}
}

// Route orders the facilities by their assigned position.
//
// Errors: qap.ErrInvalidAssignment.
func (in *Instance) Route(assign []int) ([]Facility, error) {
	if err := qap.ValidateAssignment(assign, len(in.facilities)); err != nil {
		return nil, err
	}
	out := make([]Facility, len(assign))
	for i, pos := range assign {
		out[pos] = in.facilities[i]
	}

	return out, nil
}

// RouteString renders the route as "A -> B -> C".
func (in *Instance) RouteString(assign []int) (string, error) {
	route, err := in.Route(assign)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(route))
	for i, f := range route {
		ids[i] = f.ID
	}

	return strings.Join(ids, " -> "), nil
}

// Solve runs qap.Solve on the instance and wraps errors with the instance size.
func (in *Instance) Solve(opts qap.Options) (qap.Result, error) {
	res, err := qap.Solve(in.Problem(), opts)
	if err != nil {
		return qap.Result{}, fmt.Errorf("facility: solve n=%d: %w", len(in.facilities), err)
	}

	return res, nil
}
