// Package cli implements the lvqap command tree: solve, bench and generate.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/katalvlaran/lvqap/internal/config"
	"github.com/katalvlaran/lvqap/internal/logging"
	"github.com/katalvlaran/lvqap/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// RootOptions holds the global flags that are not configuration keys.
type RootOptions struct {
	ConfigPath string
}

// AppContext carries initialized dependencies through the command tree.
type AppContext struct {
	Config    *config.Config
	Logger    *zap.Logger
	Collector *metrics.Collector // nil unless --metrics-addr is set

	server *http.Server
}

type appContextKey struct{}

// globalFlagKeys maps persistent flags to configuration keys.
var globalFlagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"output":       "output",
	"metrics-addr": "metrics.addr",
}

// commandFlagKeys maps each subcommand's local flags to configuration keys.
var commandFlagKeys = map[string]map[string]string{
	"solve": {
		"algo":           "solver.algo",
		"workers":        "solver.workers",
		"branching":      "solver.branching",
		"seed-incumbent": "solver.seed_incumbent",
		"seed":           "solver.seed",
		"scale":          "solver.scale",
		"distance":       "instance.distance",
		"risk":           "instance.risk",
		"unit-cost":      "instance.unit_cost",
	},
	"bench": {
		"min":       "bench.min_n",
		"max":       "bench.max_n",
		"reps":      "bench.reps",
		"seed":      "bench.seed",
		"algos":     "bench.algos",
		"workers":   "solver.workers",
		"distance":  "instance.distance",
		"risk":      "instance.risk",
		"unit-cost": "instance.unit_cost",
	},
}

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lvqap",
		Short: "Exact facility-route assignment (QAP) solver",
		Long: "lvqap places facilities on route positions minimising travel cost weighted by\n" +
			"risk. The default solver is an exact branch-and-bound guided by the\n" +
			"Hahn-Grant lower bound; brute force and simulated annealing are available\n" +
			"for comparison.",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPostRun(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log encoding (console, json)")
	pf.StringP("output", "o", "text", "output format (text, json, yaml)")
	pf.String("metrics-addr", "", "serve Prometheus metrics on host:port while the command runs")

	cmd.AddCommand(newSolveCmd(), newBenchCmd(), newGenerateCmd())

	return cmd
}

// persistentPreRun loads config with the executing command's flags bound,
// builds the logger and optionally starts the metrics endpoint.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()
	if err := bindFlags(v, cmd.Flags(), globalFlagKeys); err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags(), commandFlagKeys[cmd.Name()]); err != nil {
		return err
	}
	cfg, err := config.LoadViper(v, opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	app := &AppContext{Config: cfg, Logger: log.Named("lvqap")}

	if cfg.Metrics.Addr != "" {
		reg, collector, err := newMetrics(cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		app.Collector = collector
		if app.server, err = serveMetrics(cfg.Metrics.Addr, reg, app.Logger); err != nil {
			return err
		}
	}

	cmd.SetContext(context.WithValue(cmd.Context(), appContextKey{}, app))

	return nil
}

func persistentPostRun(cmd *cobra.Command) error {
	app, err := GetAppContext(cmd)
	if err != nil {
		return err
	}
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.Logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	_ = app.Logger.Sync()

	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("cli: bind --%s: %w", flag, err)
		}
	}

	return nil
}

// newMetrics creates a private registry with the solver collector and the
// process/Go collectors.
func newMetrics(namespace string) (*prometheus.Registry, *metrics.Collector, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c, err := metrics.NewCollector(namespace, reg)
	if err != nil {
		return nil, nil, err
	}

	return reg, c, nil
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return mux
}

// serveMetrics listens on addr before returning so that bind errors surface
// as command errors.
func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cli: metrics listen: %w", err)
	}
	srv := &http.Server{Handler: metricsHandler(reg), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("metrics endpoint up", zap.String("addr", ln.Addr().String()))

	return srv, nil
}

// GetAppContext extracts the AppContext set by the root command.
func GetAppContext(cmd *cobra.Command) (*AppContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("cli: command context is nil")
	}
	app, ok := ctx.Value(appContextKey{}).(*AppContext)
	if !ok || app == nil {
		return nil, errors.New("cli: app context not initialised")
	}

	return app, nil
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

		return 1
	}

	return 0
}
