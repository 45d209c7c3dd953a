package suite

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format names accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders the report in the named format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("suite: unknown format %q", format)
	}
}

// WriteText prints the summary table followed by one line per run.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s (seed %d)\n\n", r.ID, r.Seed)
	fmt.Fprintln(tw, "N\tALGO\tRUNS\tMEAN ms\tSTDDEV ms\tMEAN GAP")
	for _, s := range r.Summaries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.3f\t%.3f\t%.2f%%\n", s.N, s.Algo, s.Runs, s.MeanMs, s.StdDevMs, 100*s.MeanGap)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "N\tREP\tALGO\tCOST\tms\tROUTE")
	for _, run := range r.Runs {
		if run.Skipped != "" {
			fmt.Fprintf(tw, "%d\t%d\t%s\t-\t-\tskipped: %s\n", run.N, run.Rep, run.Algo, run.Skipped)

			continue
		}
		cost := fmt.Sprintf("%.4f", run.Cost)
		if run.Optimal {
			cost += "*"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.3f\t%s\n", run.N, run.Rep, run.Algo, cost, run.Millis, run.Route)
	}

	return tw.Flush()
}
