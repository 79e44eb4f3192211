// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package estimator computes expectation values of low-weight observables
// after shallow circuits by tensor-network contraction instead of full
// state-vector simulation.
//
// The pipeline composes the U†·O·U sandwich, cancels everything outside
// the observable's lightcone, converts the remainder into a tensor
// network capped with |0⟩ boundaries, plans a contraction path, and
// executes it to a single scalar.
package estimator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
	"github.com/AleutianAI/lightcone/services/estimator/expectation"
	"github.com/AleutianAI/lightcone/services/estimator/telemetry"
	"github.com/AleutianAI/lightcone/services/estimator/tensornet"
)

// CostReport is the planner's pre-execution estimate, exposed so callers
// can bound wall-clock time (OpCost / assumed FLOP/s) and memory
// (LargestIntermediate × bytes per element) and abort before committing.
type CostReport struct {
	// OpCost is the estimated multiply-accumulate count.
	OpCost float64

	// LargestIntermediate is the element count of the biggest tensor the
	// contraction will materialize.
	LargestIntermediate int
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Value is the expectation value. When the imaginary residue is
	// within the configured tolerance of zero, only the real part is kept.
	Value complex128

	// Cost is the planner's estimate for the executed contraction.
	Cost CostReport

	// Operations is the sandwich gate count before simplification.
	Operations int

	// SimplifiedOperations is the gate count after lightcone
	// simplification.
	SimplifiedOperations int

	// LiveQubits is the number of qubits surviving simplification.
	LiveQubits int

	// Elapsed is the total pipeline duration.
	Elapsed time.Duration
}

// Request pairs a circuit with an observable for batch estimation.
type Request struct {
	Circuit    *circuit.Circuit
	Observable circuit.PauliString
}

// Estimator runs the expectation-value pipeline.
//
// Description:
//
//	An Estimator holds configuration, a logger, and lazily initialized
//	metrics. Each pipeline run owns all of its intermediate state, so one
//	Estimator may serve concurrent runs without coordination.
//
// Thread Safety: Safe for concurrent use.
type Estimator struct {
	cfg    Config
	logger *slog.Logger

	metricsOnce sync.Once
	metrics     *telemetry.Metrics
}

// New creates an estimator.
//
// Inputs:
//
//	cfg - Estimator settings. Zero values fall back to defaults.
//	logger - Logger for pipeline logs. If nil, uses slog.Default().
//
// Outputs:
//
//	*Estimator - The configured estimator.
//	error - ErrInvalidConfig for out-of-range settings.
func New(cfg Config, logger *slog.Logger) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{cfg: cfg, logger: logger}, nil
}

// initMetrics lazily registers metrics. Failures log and degrade to
// nil instruments rather than failing the pipeline.
func (e *Estimator) initMetrics() *telemetry.Metrics {
	e.metricsOnce.Do(func() {
		m, err := telemetry.NewMetrics(telemetry.Meter())
		if err != nil {
			e.logger.Warn("metrics init failed, continuing without", "error", err)
			return
		}
		e.metrics = m
	})
	return e.metrics
}

// Estimate computes ⟨0|U†OU|0⟩ for one circuit and observable.
//
// Inputs:
//
//	ctx - Controls cancellation between pipeline stages. Contraction
//	      itself is not interruptible once started.
//	u - The forward circuit. Read-only.
//	obs - The Pauli-string observable, implicit coefficient 1.
//
// Outputs:
//
//	*Result - Value, cost report, and shrinkage statistics.
//	error - ErrNilCircuit, expectation.ErrInvalidObservable,
//	        tensornet.ErrDisconnectedNetwork,
//	        tensornet.ErrContractionOverflow, or a context error.
func (e *Estimator) Estimate(ctx context.Context, u *circuit.Circuit, obs circuit.PauliString) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := e.logger.With("run_id", runID, "observable", obs.String())

	ctx, span := telemetry.Tracer().Start(ctx, "estimator.Estimate",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("circuit.moments", safeMoments(u)),
		))
	defer span.End()

	res, net, path, err := e.prepare(ctx, u, obs, log)
	if err != nil {
		e.countRun(ctx, "error")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		e.countRun(ctx, "canceled")
		return nil, err
	}

	contractStart := time.Now()
	raw, err := net.Contract(path, e.cfg.MemoryBudgetBytes)
	if err != nil {
		e.countRun(ctx, "error")
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("contract: %w", err)
	}
	e.recordStage(ctx, "contract", time.Since(contractStart))

	res.Value = tensornet.CollapseReal(raw, e.cfg.NegligibleTolerance)
	res.Elapsed = time.Since(start)

	e.countRun(ctx, "ok")
	if m := e.initMetrics(); m != nil {
		m.ContractionCost.Record(ctx, res.Cost.OpCost)
		m.LargestIntermediate.Record(ctx, int64(res.Cost.LargestIntermediate))
	}
	log.Info("estimation complete",
		"value", fmt.Sprintf("%v", res.Value),
		"op_cost", res.Cost.OpCost,
		"largest_intermediate", res.Cost.LargestIntermediate,
		"elapsed", res.Elapsed)
	return res, nil
}

// Plan runs the pipeline up to path planning and returns the cost report
// without contracting. Callers reviewing the estimate may abort instead
// of committing resources.
func (e *Estimator) Plan(ctx context.Context, u *circuit.Circuit, obs circuit.PauliString) (*CostReport, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "estimator.Plan")
	defer span.End()

	res, _, _, err := e.prepare(ctx, u, obs, e.logger)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &res.Cost, nil
}

// EstimateAll runs independent pipelines for every request with bounded
// parallelism (Config.Workers). Results are positionally aligned with the
// requests. The first error cancels the remaining runs.
func (e *Estimator) EstimateAll(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, req := range reqs {
		g.Go(func() error {
			r, err := e.Estimate(ctx, req.Circuit, req.Observable)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// prepare runs compose → simplify → convert → rank-simplify → plan and
// returns a partially filled result, the capped network, and the path.
func (e *Estimator) prepare(ctx context.Context, u *circuit.Circuit, obs circuit.PauliString, log *slog.Logger) (*Result, *tensornet.Network, *tensornet.PathInfo, error) {
	if u == nil {
		return nil, nil, nil, ErrNilCircuit
	}

	stageStart := time.Now()
	sandwich, err := expectation.ForExpectationValue(u, obs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("compose: %w", err)
	}
	e.recordStage(ctx, "compose", time.Since(stageStart))

	res := &Result{Operations: sandwich.NumOperations()}

	stageStart = time.Now()
	simplified := expectation.Simplify(sandwich, expectation.Options{
		Tolerance: e.cfg.NegligibleTolerance,
		MergeMaxK: e.cfg.MergeMaxK,
	})
	e.recordStage(ctx, "simplify", time.Since(stageStart))

	// The live qubit set may have shrunk; re-derive it here rather than
	// reusing the pre-simplification list.
	qubits := simplified.Qubits()
	res.SimplifiedOperations = simplified.NumOperations()
	res.LiveQubits = len(qubits)
	if m := e.initMetrics(); m != nil {
		m.OperationsPruned.Add(ctx, int64(res.Operations-res.SimplifiedOperations))
	}
	log.Debug("lightcone simplification done",
		"operations", res.Operations,
		"simplified_operations", res.SimplifiedOperations,
		"live_qubits", res.LiveQubits)

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	stageStart = time.Now()
	net, frontier, err := tensornet.FromCircuit(simplified, qubits)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("convert: %w", err)
	}
	net.CapWithZeroBras(frontier)
	net.RankSimplify()
	e.recordStage(ctx, "convert", time.Since(stageStart))

	stageStart = time.Now()
	path, err := net.Plan()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("plan: %w", err)
	}
	e.recordStage(ctx, "plan", time.Since(stageStart))

	res.Cost = CostReport{OpCost: path.OpCost, LargestIntermediate: path.LargestIntermediate}
	return res, net, path, nil
}

func (e *Estimator) recordStage(ctx context.Context, stage string, d time.Duration) {
	if m := e.initMetrics(); m != nil {
		m.StageDuration.Record(ctx, d.Seconds(),
			metric.WithAttributes(attribute.String("stage", stage)))
	}
}

func (e *Estimator) countRun(ctx context.Context, status string) {
	if m := e.initMetrics(); m != nil {
		m.EstimationsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("status", status)))
	}
}

func safeMoments(u *circuit.Circuit) int {
	if u == nil {
		return 0
	}
	return u.NumMoments()
}
