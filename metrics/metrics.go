// Package metrics exports solver telemetry to Prometheus.
//
// Collector implements qap.Observer; plug it into qap.Options.Observer and
// register it with any prometheus.Registerer. All metric updates are safe
// for concurrent use, so one Collector may observe a parallel search.
package metrics

import (
	"strconv"

	"github.com/katalvlaran/lvqap/hgb"
	"github.com/katalvlaran/lvqap/qap"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "lvqap"

var (
	depthBuckets = prometheus.LinearBuckets(0, 1, 16)
	iterBuckets  = prometheus.ExponentialBuckets(1, 2, 8)
)

// Collector holds the solver metrics.
type Collector struct {
	nodes        prometheus.Counter
	depth        prometheus.Histogram
	pruned       prometheus.Counter
	bounds       *prometheus.CounterVec
	boundIters   prometheus.Histogram
	incumbent    prometheus.Gauge
	improvements prometheus.Counter
	rootBound    prometheus.Gauge
	solves       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

var _ qap.Observer = (*Collector)(nil)

// NewCollector creates the metrics under namespace (DefaultNamespace when
// empty) and registers them with reg (prometheus.DefaultRegisterer when nil).
// Registering twice on the same registry fails with the registry's error.
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Branch nodes expanded by the exact search.",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_depth",
			Help:      "Depth of expanded branch nodes.",
			Buckets:   depthBuckets,
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_pruned_total",
			Help:      "Children discarded by their lower bound.",
		}),
		bounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bounds_computed_total",
			Help:      "Hahn-Grant bound evaluations, by whether the bound was exact.",
		}, []string{"exact"}),
		boundIters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bound_iterations",
			Help:      "Leader matchings per bound evaluation.",
			Buckets:   iterBuckets,
		}),
		incumbent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incumbent_scaled_cost",
			Help:      "Best scaled cost found by the running search.",
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incumbent_improvements_total",
			Help:      "Incumbent updates.",
		}),
		rootBound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "root_bound_scaled",
			Help:      "Root lower bound of the last finished exact search.",
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Finished solves by algorithm.",
		}, []string{"algo"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of finished solves.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algo"}),
	}

	collectors := []prometheus.Collector{
		c.nodes, c.depth, c.pruned, c.bounds, c.boundIters,
		c.incumbent, c.improvements, c.rootBound, c.solves, c.duration,
	}
	for _, m := range collectors {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Collector) NodeExpanded(depth int) {
	c.nodes.Inc()
	c.depth.Observe(float64(depth))
}

func (c *Collector) BoundComputed(res hgb.Result) {
	c.bounds.WithLabelValues(strconv.FormatBool(res.Exact)).Inc()
	c.boundIters.Observe(float64(res.Iterations))
}

func (c *Collector) Pruned(int) { c.pruned.Inc() }

func (c *Collector) Incumbent(cost int64) {
	c.incumbent.Set(float64(cost))
	c.improvements.Inc()
}

// Finished records the solve under its algorithm label. The root bound gauge
// is only touched by exact searches.
func (c *Collector) Finished(algo qap.Algorithm, stats qap.Stats) {
	c.solves.WithLabelValues(algo.String()).Inc()
	c.duration.WithLabelValues(algo.String()).Observe(stats.Elapsed.Seconds())
	if algo == qap.BranchAndBound {
		c.rootBound.Set(float64(stats.RootBound))
	}
}
