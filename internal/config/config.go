// Package config loads lvqap settings from a YAML file and LVQAP_*
// environment variables, applies defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/lvqap/facility"
	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/internal/logging"
	"github.com/katalvlaran/lvqap/qap"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full tool configuration.
type Config struct {
	Log      logging.Config `mapstructure:"log" yaml:"log"`
	Solver   SolverConfig   `mapstructure:"solver" yaml:"solver"`
	Instance InstanceConfig `mapstructure:"instance" yaml:"instance"`
	Bench    BenchConfig    `mapstructure:"bench" yaml:"bench"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`

	// Output is the report format: text, json or yaml.
	Output string `mapstructure:"output" yaml:"output" validate:"oneof=text json yaml"`
}

// SolverConfig mirrors qap.Options.
type SolverConfig struct {
	Algo          string  `mapstructure:"algo" yaml:"algo" validate:"oneof=bb brute anneal"`
	Scale         float64 `mapstructure:"scale" yaml:"scale" validate:"gt=0"`
	Branching     string  `mapstructure:"branching" yaml:"branching" validate:"oneof=pairs first"`
	SeedIncumbent bool    `mapstructure:"seed_incumbent" yaml:"seed_incumbent"`
	Workers       int     `mapstructure:"workers" yaml:"workers" validate:"min=1,max=256"`
	MaxIterations int     `mapstructure:"max_iterations" yaml:"max_iterations" validate:"min=1"`
	MaxProbes     int     `mapstructure:"max_probes" yaml:"max_probes" validate:"min=1"`
	Seed          int64   `mapstructure:"seed" yaml:"seed"`
	Iterations    int     `mapstructure:"iterations" yaml:"iterations" validate:"min=0"`
	Restarts      int     `mapstructure:"restarts" yaml:"restarts" validate:"min=1"`
	Cooling       float64 `mapstructure:"cooling" yaml:"cooling" validate:"gt=0,lt=1"`
}

// InstanceConfig selects how facilities become D and F.
type InstanceConfig struct {
	UnitCost float64 `mapstructure:"unit_cost" yaml:"unit_cost" validate:"gte=0"`
	Distance string  `mapstructure:"distance" yaml:"distance" validate:"oneof=haversine euclidean"`
	Risk     string  `mapstructure:"risk" yaml:"risk" validate:"oneof=successor predecessor"`
}

// BenchConfig drives the benchmark suite over random instances.
type BenchConfig struct {
	MinN  int      `mapstructure:"min_n" yaml:"min_n" validate:"min=1"`
	MaxN  int      `mapstructure:"max_n" yaml:"max_n" validate:"gtefield=MinN"`
	Reps  int      `mapstructure:"reps" yaml:"reps" validate:"min=1"`
	Seed  int64    `mapstructure:"seed" yaml:"seed"`
	Algos []string `mapstructure:"algos" yaml:"algos" validate:"min=1,dive,oneof=bb brute anneal"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr" validate:"omitempty,hostname_port"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

var validate = validator.New()

// Validate checks every field and joins the failures into one ErrInvalid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", field, strings.ToLower(fe.Param()))
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// SolverOptions converts the solver section into qap.Options. The config
// must have passed Validate.
func (c *Config) SolverOptions() (qap.Options, error) {
	algo, err := qap.ParseAlgorithm(c.Solver.Algo)
	if err != nil {
		return qap.Options{}, err
	}
	opts := qap.DefaultOptions()
	opts.Algo = algo
	opts.Scale = c.Solver.Scale
	if c.Solver.Branching == "first" {
		opts.Branching = qap.BranchFirstFacility
	}
	opts.SeedIncumbent = c.Solver.SeedIncumbent
	opts.Workers = c.Solver.Workers
	opts.Bound = hgb.Options{MaxIterations: c.Solver.MaxIterations, MaxProbes: c.Solver.MaxProbes}
	opts.Seed = c.Solver.Seed
	opts.Iterations = c.Solver.Iterations
	opts.Restarts = c.Solver.Restarts
	opts.Cooling = c.Solver.Cooling

	return opts, nil
}

// InstanceOptions converts the instance section into facility options.
func (c *Config) InstanceOptions() []facility.Option {
	opts := []facility.Option{
		facility.WithUnitCost(c.Instance.UnitCost),
		facility.WithSymmetricDistance(facility.DefaultSymmetryTolerance),
	}
	if c.Instance.Distance == "euclidean" {
		opts = append(opts, facility.WithDistance(facility.Euclidean))
	}
	if c.Instance.Risk == "predecessor" {
		opts = append(opts, facility.WithRisk(facility.PredecessorRisk))
	}

	return opts
}

// BenchAlgorithms parses Bench.Algos.
func (c *Config) BenchAlgorithms() ([]qap.Algorithm, error) {
	out := make([]qap.Algorithm, 0, len(c.Bench.Algos))
	for _, s := range c.Bench.Algos {
		a, err := qap.ParseAlgorithm(s)
		if err != nil {
			return nil, fmt.Errorf("config: bench algo %q: %w", s, err)
		}
		out = append(out, a)
	}

	return out, nil
}
