// Package suite benchmarks the solvers on random facility instances.
//
// For every n in [MinN, MaxN] it draws Reps instances, solves each with every
// configured algorithm and records route, cost and wall time. Runs are then
// aggregated per (n, algorithm) into mean and population standard deviation
// of the time, and every heuristic cost is compared with the exact optimum of
// the same instance when an exact algorithm was part of the run.
package suite

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvqap/facility"
	"github.com/katalvlaran/lvqap/qap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ErrBadConfig is returned for an empty or inverted size range, no
// repetitions or no algorithms.
var ErrBadConfig = errors.New("suite: invalid configuration")

// Config drives one suite run.
type Config struct {
	MinN, MaxN int
	Reps       int
	Seed       int64
	Algos      []qap.Algorithm

	// Solver is the base option set; Algo is overwritten per run.
	Solver qap.Options

	// Instance options for facility.NewInstance.
	Instance []facility.Option

	// Workers bounds how many instances are solved concurrently (0 ⇒ 1).
	Workers int

	Logger *zap.Logger
}

// Run is one (instance, algorithm) solve.
type Run struct {
	N          int           `json:"n" yaml:"n"`
	Rep        int           `json:"rep" yaml:"rep"`
	Algo       string        `json:"algo" yaml:"algo"`
	Route      string        `json:"route" yaml:"route"`
	Assignment []int         `json:"assignment" yaml:"assignment"`
	Cost       float64       `json:"cost" yaml:"cost"`
	ScaledCost int64         `json:"scaled_cost" yaml:"scaled_cost"`
	Optimal    bool          `json:"optimal" yaml:"optimal"`
	Gap        *float64      `json:"gap,omitempty" yaml:"gap,omitempty"`
	Nodes      int64         `json:"nodes" yaml:"nodes"`
	Elapsed    time.Duration `json:"-" yaml:"-"`
	Millis     float64       `json:"ms" yaml:"ms"`
	Skipped    string        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Summary aggregates the runs of one (n, algorithm).
type Summary struct {
	N        int     `json:"n" yaml:"n"`
	Algo     string  `json:"algo" yaml:"algo"`
	Runs     int     `json:"runs" yaml:"runs"`
	MeanMs   float64 `json:"mean_ms" yaml:"mean_ms"`
	StdDevMs float64 `json:"stddev_ms" yaml:"stddev_ms"`
	MeanGap  float64 `json:"mean_gap" yaml:"mean_gap"`
}

// Report is the outcome of Execute.
type Report struct {
	ID        string    `json:"id" yaml:"id"`
	Started   time.Time `json:"started" yaml:"started"`
	Finished  time.Time `json:"finished" yaml:"finished"`
	Seed      int64     `json:"seed" yaml:"seed"`
	Runs      []Run     `json:"runs" yaml:"runs"`
	Summaries []Summary `json:"summaries" yaml:"summaries"`
}

// Execute runs the suite. Instances are independent, so they are solved by
// up to cfg.Workers goroutines; the report order is deterministic regardless.
// The first solver error cancels the remaining work.
func Execute(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.MinN < 1 || cfg.MaxN < cfg.MinN || cfg.Reps < 1 || len(cfg.Algos) == 0 {
		return nil, ErrBadConfig
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	rep := &Report{ID: uuid.NewString(), Started: time.Now().UTC(), Seed: cfg.Seed}
	log = log.With(zap.String("run_id", rep.ID))
	log.Info("suite started",
		zap.Int("min_n", cfg.MinN), zap.Int("max_n", cfg.MaxN),
		zap.Int("reps", cfg.Reps), zap.Int("workers", workers))

	type job struct{ n, r int }
	var jobs []job
	for n := cfg.MinN; n <= cfg.MaxN; n++ {
		for r := 0; r < cfg.Reps; r++ {
			jobs = append(jobs, job{n, r})
		}
	}
	results := make([][]Run, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, jb := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runs, err := solveInstance(cfg, jb.n, jb.r, log)
			if err != nil {
				return err
			}
			results[idx] = runs

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("suite aborted", zap.Error(err))

		return nil, err
	}

	for _, runs := range results {
		rep.Runs = append(rep.Runs, runs...)
	}
	rep.Summaries = summarize(rep.Runs)
	rep.Finished = time.Now().UTC()
	log.Info("suite finished", zap.Int("runs", len(rep.Runs)), zap.Duration("elapsed", rep.Finished.Sub(rep.Started)))

	return rep, nil
}

// instanceSeed gives every (n, rep) its own reproducible facility set.
func instanceSeed(seed int64, n, r int) int64 {
	return seed*1_000_003 + int64(n)*1_009 + int64(r)
}

func solveInstance(cfg Config, n, r int, log *zap.Logger) ([]Run, error) {
	fs, err := facility.Random(n, instanceSeed(cfg.Seed, n, r))
	if err != nil {
		return nil, err
	}
	in, err := facility.NewInstance(fs, cfg.Instance...)
	if err != nil {
		return nil, err
	}

	var (
		runs          = make([]Run, 0, len(cfg.Algos))
		optimum int64 = -1
	)
	for _, algo := range cfg.Algos {
		run := Run{N: n, Rep: r, Algo: algo.String()}
		if algo == qap.BruteForce && n > qap.MaxBruteForceSize {
			run.Skipped = qap.ErrTooLarge.Error()
			log.Debug("run skipped", zap.Int("n", n), zap.String("algo", run.Algo))
			runs = append(runs, run)

			continue
		}
		opts := cfg.Solver
		opts.Algo = algo
		opts.Logger = log
		res, err := in.Solve(opts)
		if err != nil {
			return nil, fmt.Errorf("suite: n=%d rep=%d %s: %w", n, r, algo, err)
		}
		if run.Route, err = in.RouteString(res.Assignment); err != nil {
			return nil, err
		}
		run.Assignment = res.Assignment
		run.Cost = res.Cost
		run.ScaledCost = res.ScaledCost
		run.Optimal = res.Optimal
		run.Nodes = res.Stats.Nodes
		run.Elapsed = res.Stats.Elapsed
		run.Millis = float64(res.Stats.Elapsed) / float64(time.Millisecond)
		if res.Optimal && optimum < 0 {
			optimum = res.ScaledCost
		}
		runs = append(runs, run)
	}

	if optimum >= 0 {
		for i := range runs {
			if runs[i].Skipped != "" {
				continue
			}
			gap := relativeGap(runs[i].ScaledCost, optimum)
			runs[i].Gap = &gap
		}
	}

	return runs, nil
}

// relativeGap is (cost − opt)/opt on scaled costs; a zero optimum yields 0
// for a matching cost and 1 otherwise.
func relativeGap(cost, opt int64) float64 {
	if cost <= opt {
		return 0
	}
	if opt == 0 {
		return 1
	}

	return float64(cost-opt) / float64(opt)
}

func summarize(runs []Run) []Summary {
	type key struct {
		n    int
		algo string
	}
	var (
		order []key
		times = map[key][]float64{}
		gaps  = map[key][]float64{}
	)
	for _, r := range runs {
		if r.Skipped != "" {
			continue
		}
		k := key{r.N, r.Algo}
		if _, ok := times[k]; !ok {
			order = append(order, k)
		}
		times[k] = append(times[k], r.Millis)
		if r.Gap != nil {
			gaps[k] = append(gaps[k], *r.Gap)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		if order[a].n != order[b].n {
			return order[a].n < order[b].n
		}

		return order[a].algo < order[b].algo
	})

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		mean, sd := meanStdDev(times[k])
		gap, _ := meanStdDev(gaps[k])
		out = append(out, Summary{N: k.n, Algo: k.algo, Runs: len(times[k]), MeanMs: mean, StdDevMs: sd, MeanGap: gap})
	}

	return out
}

// meanStdDev returns the mean and population standard deviation; both are
// zero for an empty sample.
func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean, variance := stat.PopMeanVariance(xs, nil)

	return mean, math.Sqrt(variance)
}
