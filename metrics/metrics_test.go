package metrics_test

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/metrics"
)

func counterValue(t *testing.T, r *metrics.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func matches(m *dto.Metric, labels map[string]string) bool {
	if len(m.GetLabel()) != len(labels) {
		return false
	}
	for _, lp := range m.GetLabel() {
		if labels[lp.GetName()] != lp.GetValue() {
			return false
		}
	}

	return true
}

func TestRegistry_Counters(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordSolve("ok", 20*time.Millisecond)
	r.RecordSolve("ok", 10*time.Millisecond)
	r.RecordPass(metrics.SolverRings, "sized")
	r.PipeSized(metrics.SolverGas)
	r.PipeSized(metrics.SolverGas)
	r.PipeSized(metrics.SolverGas)

	assert.Equal(t, 2.0, counterValue(t, r, "hydronet_solve_total", map[string]string{"status": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, r, "hydronet_solver_pass_total", map[string]string{"solver": "rings", "outcome": "sized"}))
	assert.Equal(t, 3.0, counterValue(t, r, "hydronet_pipes_sized_total", map[string]string{"solver": "gas"}))
}

func TestRegistry_Histograms(t *testing.T) {
	r := metrics.NewRegistry()
	r.ObserveHeatLoss(6)
	r.ObserveReductions(12)

	var m dto.Metric
	require.NoError(t, r.HeatLossIterations.Write(&m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
	assert.Equal(t, 6.0, m.GetHistogram().GetSampleSum())
}

func TestRegistry_Isolated(t *testing.T) {
	a, b := metrics.NewRegistry(), metrics.NewRegistry()
	a.RecordPass(metrics.SolverGas, "sized")
	assert.Zero(t, counterValue(t, b, "hydronet_solver_pass_total", map[string]string{"solver": "gas", "outcome": "sized"}))
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *metrics.Registry
	assert.NotPanics(t, func() {
		r.RecordSolve("ok", time.Second)
		r.RecordPass("x", "y")
		r.ObserveHeatLoss(1)
		r.ObserveReductions(1)
		r.PipeSized("x")
	})
}
