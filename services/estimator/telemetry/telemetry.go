// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry provides OpenTelemetry helpers for the estimator:
// a shared tracer and meter plus the predefined pipeline metrics.
//
// The package uses the OpenTelemetry API only; wiring an SDK exporter is
// the embedding application's concern. Without an SDK installed, every
// instrument is a no-op, which keeps the library free of observability
// side effects by default.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation scope names.
const (
	// ScopeEstimator is the tracer/meter scope for the estimator pipeline.
	ScopeEstimator = "lightcone.estimator"
)

// Tracer returns the estimator tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(ScopeEstimator)
}

// Meter returns the estimator meter.
func Meter() metric.Meter {
	return otel.Meter(ScopeEstimator)
}
