package cli

import (
	"github.com/katalvlaran/lvqap/internal/suite"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the solvers on random instances",
		Long: "bench draws --reps random instances for every n in [--min, --max], solves\n" +
			"each with every algorithm in --algos and reports mean/stddev time per n\n" +
			"and the gap of every heuristic to the exact optimum.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := GetAppContext(cmd)
			if err != nil {
				return err
			}
			algos, err := app.Config.BenchAlgorithms()
			if err != nil {
				return err
			}
			opts, err := app.Config.SolverOptions()
			if err != nil {
				return err
			}
			if app.Collector != nil {
				opts.Observer = app.Collector
			}

			rep, err := suite.Execute(cmd.Context(), suite.Config{
				MinN:     app.Config.Bench.MinN,
				MaxN:     app.Config.Bench.MaxN,
				Reps:     app.Config.Bench.Reps,
				Seed:     app.Config.Bench.Seed,
				Algos:    algos,
				Solver:   opts,
				Instance: app.Config.InstanceOptions(),
				Workers:  parallel,
				Logger:   app.Logger,
			})
			if err != nil {
				return err
			}

			return rep.Write(cmd.OutOrStdout(), app.Config.Output)
		},
	}

	f := cmd.Flags()
	f.Int("min", 3, "smallest instance size")
	f.Int("max", 6, "largest instance size")
	f.Int("reps", 3, "instances per size")
	f.Int64("seed", 1, "instance generator seed")
	f.StringSlice("algos", []string{"bb", "brute", "anneal"}, "algorithms to run (bb, brute, anneal)")
	f.Int("workers", 1, "concurrent root branches inside each bb solve")
	f.IntVar(&parallel, "parallel", 1, "instances solved concurrently")
	addInstanceFlags(cmd)

	return cmd
}
