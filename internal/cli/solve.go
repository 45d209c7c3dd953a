package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvqap/facility"
	"github.com/katalvlaran/lvqap/qap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// solveReport is the printable outcome of the solve command.
type solveReport struct {
	Instance   string  `json:"instance" yaml:"instance"`
	N          int     `json:"n" yaml:"n"`
	Algo       string  `json:"algo" yaml:"algo"`
	Route      string  `json:"route" yaml:"route"`
	Assignment []int   `json:"assignment" yaml:"assignment"`
	Cost       float64 `json:"cost" yaml:"cost"`
	ScaledCost int64   `json:"scaled_cost" yaml:"scaled_cost"`
	Optimal    bool    `json:"optimal" yaml:"optimal"`
	Nodes      int64   `json:"nodes" yaml:"nodes"`
	Pruned     int64   `json:"pruned" yaml:"pruned"`
	BoundCalls int64   `json:"bound_calls" yaml:"bound_calls"`
	RootBound  int64   `json:"root_bound" yaml:"root_bound"`
	Millis     float64 `json:"ms" yaml:"ms"`
}

func (r solveReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"instance: %s (n=%d)\nalgo:     %s\nroute:    %s\ncost:     %.6f (scaled %d)\noptimal:  %t\nnodes:    %d (pruned %d, bounds %d, root bound %d)\ntime:     %.3f ms\n",
		r.Instance, r.N, r.Algo, r.Route, r.Cost, r.ScaledCost, r.Optimal,
		r.Nodes, r.Pruned, r.BoundCalls, r.RootBound, r.Millis)

	return err
}

func addInstanceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("distance", "haversine", "distance provider (haversine, euclidean)")
	f.String("risk", "successor", "risk policy (successor, predecessor)")
	f.Float64("unit-cost", facility.DefaultUnitCost, "travel cost per distance unit")
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <instance.csv|instance.json>",
		Short: "Solve one facility instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetAppContext(cmd)
			if err != nil {
				return err
			}

			return runSolve(cmd, app, args[0])
		},
	}

	f := cmd.Flags()
	f.String("algo", "bb", "algorithm (bb, brute, anneal)")
	f.Int("workers", 1, "concurrent root branches for bb")
	f.String("branching", "pairs", "branching rule for bb (pairs, first)")
	f.Bool("seed-incumbent", false, "seed bb with an annealing solution")
	f.Int64("seed", 0, "annealing random seed")
	f.Float64("scale", qap.DefaultScale, "float to integer cost multiplier")
	addInstanceFlags(cmd)

	return cmd
}

// readFacilities picks the parser from the file extension; anything other
// than .json is read as CSV.
func readFacilities(path string) ([]facility.Facility, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		return facility.ParseJSON(data)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return facility.ReadCSV(f)
}

func runSolve(cmd *cobra.Command, app *AppContext, path string) error {
	log := app.Logger.With(zap.String("instance", path))

	fs, err := readFacilities(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	in, err := facility.NewInstance(fs, app.Config.InstanceOptions()...)
	if err != nil {
		return err
	}
	opts, err := app.Config.SolverOptions()
	if err != nil {
		return err
	}
	opts.Logger = log
	if app.Collector != nil {
		opts.Observer = app.Collector
	}

	res, err := in.Solve(opts)
	if err != nil {
		return err
	}
	route, err := in.RouteString(res.Assignment)
	if err != nil {
		return err
	}

	rep := solveReport{
		Instance:   path,
		N:          in.Len(),
		Algo:       res.Algo.String(),
		Route:      route,
		Assignment: res.Assignment,
		Cost:       res.Cost,
		ScaledCost: res.ScaledCost,
		Optimal:    res.Optimal,
		Nodes:      res.Stats.Nodes,
		Pruned:     res.Stats.Pruned,
		BoundCalls: res.Stats.BoundCalls,
		RootBound:  res.Stats.RootBound,
		Millis:     float64(res.Stats.Elapsed.Microseconds()) / 1000,
	}

	return writeOutput(cmd.OutOrStdout(), app.Config.Output, rep, rep.writeText)
}
