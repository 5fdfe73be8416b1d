package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/hydronet/gas"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/metrics"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/returns"
	"github.com/katalvlaran/hydronet/ringmain"
)

// Solve outcomes recorded in metrics.
const (
	StatusOK       = "ok"
	StatusCanceled = "canceled"
)

// Engine runs solve passes over one store.
type Engine struct {
	store   network.Store
	sizer   network.PipeSizer
	metrics *metrics.Registry
	logger  logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSizer replaces the catalog sizer.
func WithSizer(sz network.PipeSizer) Option { return func(en *Engine) { en.sizer = sz } }

// WithMetrics records every pass and solver outcome in m.
func WithMetrics(m *metrics.Registry) Option { return func(en *Engine) { en.metrics = m } }

// WithLogger logs to l instead of the logger carried by the context.
func WithLogger(l logrus.FieldLogger) Option { return func(en *Engine) { en.logger = l } }

// New returns an Engine for s. Pipes are sized from the store's catalog
// unless WithSizer says otherwise.
func New(s network.Store, opts ...Option) *Engine {
	en := &Engine{store: s}
	for _, o := range opts {
		o(en)
	}
	if en.sizer == nil {
		en.sizer = network.NewCatalogSizer(s)
	}

	return en
}

// stage is one step of a pass. It returns an error only to stop the pass.
type stage struct {
	name string
	run  func(ctx context.Context) error
}

// Solve runs one pass and reports what it did. The context is checked
// between stages; a pass cut short returns the context's error and leaves
// the records of the stages that finished.
func (en *Engine) Solve(ctx context.Context) (*Report, error) {
	start := time.Now()
	if en.logger != nil {
		ctx = logging.WithLogger(ctx, en.logger)
	}
	rep := &Report{ID: uuid.NewString()}
	ctx, log := logging.WithFields(ctx, logrus.Fields{"solve": rep.ID})

	var (
		g     *network.FlowGraph
		loops []*returns.Record
	)
	retSolver := returns.NewSolver(en.store, en.sizer, returns.WithMetrics(en.metrics))

	stages := []stage{
		{"graph", func(context.Context) error {
			g = network.BuildFlowGraph(en.store)

			return nil
		}},
		{"returns", func(ctx context.Context) error {
			loops = returns.IdentifyReturns(ctx, en.store, g)
			rep.Returns = len(loops)
			for _, rec := range loops {
				en.metrics.ObserveReductions(rec.Reductions)
			}

			return nil
		}},
		{"demand", func(ctx context.Context) error {
			rep.BranchesSized = network.DemandPass(ctx, en.store, g, en.sizer)
			for i := 0; i < rep.BranchesSized; i++ {
				en.metrics.PipeSized(metrics.SolverDemand)
			}

			return nil
		}},
		{"rings", func(ctx context.Context) error {
			rep.Rings = ringmain.NewSolver(en.store, en.sizer, ringmain.WithMetrics(en.metrics)).CalculateAllRings(ctx, g)

			return nil
		}},
		{"balance", func(ctx context.Context) error {
			for _, rec := range loops {
				if err := ctx.Err(); err != nil {
					return err
				}
				if retSolver.Balance(ctx, rec) {
					rep.ReturnsBalanced++
					en.metrics.RecordPass(metrics.SolverReturns, "balanced")
				} else {
					en.metrics.RecordPass(metrics.SolverReturns, "unbalanced")
				}
			}

			return nil
		}},
		{"gas", func(ctx context.Context) error {
			rep.GasComponents = gas.NewSolver(en.store, gas.WithMetrics(en.metrics)).CalculateAll(ctx, g)

			return nil
		}},
		{"reach", func(ctx context.Context) error {
			var err error
			rep.Unreached, err = network.Unreached(ctx, en.store, g)

			return err
		}},
		{"pressures", func(context.Context) error {
			rep.Pressures = make(map[string]map[string]float64)
			for _, e := range en.store.Entities() {
				src, ok := e.(*network.FlowSource)
				if !ok {
					continue
				}
				p, err := network.PeakPressures(en.store, g, src)
				if err != nil {
					log.WithError(err).WithField("source", src.ID).Warn("pressure walk failed")
					continue
				}
				rep.Pressures[src.ID] = p
			}

			return nil
		}},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, en.abort(start, st.name, err)
		}
		log.WithField("stage", st.name).Debug("stage")
		if err := st.run(ctx); err != nil {
			return nil, en.abort(start, st.name, err)
		}
	}

	rep.collect(en.store)
	rep.Duration = time.Since(start)
	en.metrics.RecordSolve(StatusOK, rep.Duration)
	log.WithFields(logrus.Fields{
		"returns":    rep.Returns,
		"rings":      rep.Rings,
		"gas":        rep.GasComponents,
		"annotated":  len(rep.Annotations),
		"durationMS": rep.Duration.Milliseconds(),
	}).Info("solve finished")

	return rep, nil
}

func (en *Engine) abort(start time.Time, stage string, err error) error {
	status := "error"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = StatusCanceled
	}
	en.metrics.RecordSolve(status, time.Since(start))

	return fmt.Errorf("engine: %s: %w", stage, err)
}
