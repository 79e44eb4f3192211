// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics contains the predefined metrics for the estimator pipeline.
// All metrics use the "estimator_" prefix for consistent naming.
//
// Thread Safety: Safe for concurrent use after creation.
type Metrics struct {
	// EstimationsTotal counts pipeline runs by status.
	EstimationsTotal metric.Int64Counter

	// StageDuration records per-stage duration in seconds, by stage.
	StageDuration metric.Float64Histogram

	// OperationsPruned counts gates removed by the lightcone simplifier.
	OperationsPruned metric.Int64Counter

	// ContractionCost records the planner's estimated multiply-accumulate
	// count per run.
	ContractionCost metric.Float64Histogram

	// LargestIntermediate records the element count of the biggest
	// intermediate tensor per run.
	LargestIntermediate metric.Int64Histogram
}

// NewMetrics creates a Metrics instance with all instruments registered
// on the given meter.
//
// Outputs:
//
//	*Metrics - The registered metrics.
//	error - Non-nil if any instrument fails to register.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.EstimationsTotal, err = meter.Int64Counter("estimator_estimations_total",
		metric.WithDescription("Total expectation-value pipeline runs by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("estimations_total: %w", err)
	}

	m.StageDuration, err = meter.Float64Histogram("estimator_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("stage_duration: %w", err)
	}

	m.OperationsPruned, err = meter.Int64Counter("estimator_operations_pruned_total",
		metric.WithDescription("Gates removed by lightcone simplification"),
	)
	if err != nil {
		return nil, fmt.Errorf("operations_pruned: %w", err)
	}

	m.ContractionCost, err = meter.Float64Histogram("estimator_contraction_cost_flops",
		metric.WithDescription("Planner multiply-accumulate estimate per run"),
	)
	if err != nil {
		return nil, fmt.Errorf("contraction_cost: %w", err)
	}

	m.LargestIntermediate, err = meter.Int64Histogram("estimator_largest_intermediate_elements",
		metric.WithDescription("Largest intermediate tensor element count per run"),
	)
	if err != nil {
		return nil, fmt.Errorf("largest_intermediate: %w", err)
	}

	return m, nil
}
