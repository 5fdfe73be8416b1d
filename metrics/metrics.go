// Package metrics exposes the Prometheus instruments of a solve pass.
//
// Every Registry owns a private prometheus.Registry, so several engines
// (or tests) can run side by side without colliding on the global one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Solver labels.
const (
	SolverDemand  = "demand"
	SolverReturns = "returns"
	SolverRings   = "rings"
	SolverGas     = "gas"
)

// Registry holds the solve-pass metrics.
type Registry struct {
	registry *prometheus.Registry

	SolveTotal         *prometheus.CounterVec
	SolveDuration      prometheus.Histogram
	SolverPassTotal    *prometheus.CounterVec
	HeatLossIterations prometheus.Histogram
	SPReductions       prometheus.Histogram
	PipesSizedTotal    *prometheus.CounterVec
}

// NewRegistry creates a Registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.SolveTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydronet_solve_total",
			Help: "Total number of solve passes",
		},
		[]string{"status"}, // ok, error, cancelled
	)
	r.SolveDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_solve_duration_seconds",
			Help:    "Duration of solve passes in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
	r.SolverPassTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydronet_solver_pass_total",
			Help: "Per-solver outcomes within solve passes",
		},
		[]string{"solver", "outcome"},
	)
	r.HeatLossIterations = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_heat_loss_iterations",
			Help:    "Passes taken by the pipe heat-loss fixed point",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)
	r.SPReductions = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hydronet_sp_reductions",
			Help:    "Series-parallel reductions per decomposed return loop",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
	r.PipesSizedTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydronet_pipes_sized_total",
			Help: "Pipes sized, by solver",
		},
		[]string{"solver"},
	)

	return r
}

// Gatherer exposes the private registry, e.g. to promhttp.HandlerFor.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// RecordSolve records one solve pass.
func (r *Registry) RecordSolve(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.SolveTotal.WithLabelValues(status).Inc()
	r.SolveDuration.Observe(d.Seconds())
}

// RecordPass records a solver outcome, e.g. ("rings", "sized").
func (r *Registry) RecordPass(solver, outcome string) {
	if r == nil {
		return
	}
	r.SolverPassTotal.WithLabelValues(solver, outcome).Inc()
}

// ObserveHeatLoss records the passes one heat-loss calculation took.
func (r *Registry) ObserveHeatLoss(passes int) {
	if r == nil {
		return
	}
	r.HeatLossIterations.Observe(float64(passes))
}

// ObserveReductions records the length of a series-parallel reduction log.
func (r *Registry) ObserveReductions(n int) {
	if r == nil {
		return
	}
	r.SPReductions.Observe(float64(n))
}

// PipeSized counts one pipe sized by solver.
func (r *Registry) PipeSized(solver string) {
	if r == nil {
		return
	}
	r.PipesSizedTotal.WithLabelValues(solver).Inc()
}
