package cli

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvqap/facility"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	var (
		n    int
		seed int64
		out  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random facility instance as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := GetAppContext(cmd)
			if err != nil {
				return err
			}
			fs, err := facility.Random(n, seed)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return facility.WriteCSV(cmd.OutOrStdout(), fs)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err = facility.WriteCSV(f, fs); err != nil {
				f.Close()

				return fmt.Errorf("write %s: %w", out, err)
			}
			if err = f.Close(); err != nil {
				return err
			}
			app.Logger.Info("instance written", zap.String("path", out), zap.Int("n", n), zap.Int64("seed", seed))

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&n, "n", 6, "number of facilities")
	f.Int64Var(&seed, "seed", 1, "generator seed")
	f.StringVar(&out, "out", "", "output file (stdout when empty or -)")

	return cmd
}
