package hgb

import "github.com/katalvlaran/lvqap/tensor"

// Stepper exposes single engine steps to the black-box tests.
type Stepper struct{ e *engine }

// NewStepper wraps a private clone of c.
func NewStepper(c *tensor.Cost) *Stepper {
	return &Stepper{e: newEngine(c.Clone(), Options{}.withDefaults())}
}

func (s *Stepper) Tensor() *tensor.Cost         { return s.e.c }
func (s *Stepper) Constant() int64              { return s.e.lb }
func (s *Stepper) Consolidate()                 { s.e.c.Consolidate() }
func (s *Stepper) ReduceLeader(i, k int) error  { return s.e.reduceLeader(i, k) }
func (s *Stepper) ReduceAll() error             { return s.e.reduceAll() }
func (s *Stepper) MatchLeaders() (int64, error) { return s.e.matchLeaders() }
func (s *Stepper) Spread(i, k int)              { s.e.spread(i, k) }
func (s *Stepper) Redistribute() error          { return s.e.redistribute() }
