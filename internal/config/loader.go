package config

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvqap/facility"
	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/metrics"
	"github.com/katalvlaran/lvqap/qap"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override: LVQAP_SOLVER_WORKERS=4
// sets solver.workers.
const EnvPrefix = "LVQAP"

func setDefaults(v *viper.Viper) {
	def := qap.DefaultOptions()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_paths", []string{"stderr"})

	v.SetDefault("solver.algo", def.Algo.String())
	v.SetDefault("solver.scale", def.Scale)
	v.SetDefault("solver.branching", "pairs")
	v.SetDefault("solver.seed_incumbent", false)
	v.SetDefault("solver.workers", def.Workers)
	v.SetDefault("solver.max_iterations", hgb.DefaultMaxIterations)
	v.SetDefault("solver.max_probes", hgb.DefaultMaxProbes)
	v.SetDefault("solver.seed", 0)
	v.SetDefault("solver.iterations", 0)
	v.SetDefault("solver.restarts", def.Restarts)
	v.SetDefault("solver.cooling", def.Cooling)

	v.SetDefault("instance.unit_cost", facility.DefaultUnitCost)
	v.SetDefault("instance.distance", "haversine")
	v.SetDefault("instance.risk", "successor")

	v.SetDefault("bench.min_n", 3)
	v.SetDefault("bench.max_n", 6)
	v.SetDefault("bench.reps", 3)
	v.SetDefault("bench.seed", 1)
	v.SetDefault("bench.algos", []string{"bb", "brute", "anneal"})

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.namespace", metrics.DefaultNamespace)

	v.SetDefault("output", "text")
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}

	return cfg
}

// Load reads path (skipped when empty), merges LVQAP_* overrides and the
// defaults, then validates.
func Load(path string) (*Config, error) {
	return LoadViper(viper.New(), path)
}

// LoadViper is Load on a caller-prepared viper instance, typically one with
// command-line flags bound. Precedence: flags, env, file, defaults.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	return finalize(v)
}

func finalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
