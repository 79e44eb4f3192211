// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estimator

import "errors"

// Sentinel errors for the estimator package. Pipeline stage errors
// (ErrInvalidObservable, ErrDisconnectedNetwork, ErrContractionOverflow)
// are wrapped from the expectation and tensornet packages and remain
// matchable with errors.Is.
var (
	// ErrInvalidConfig indicates out-of-range configuration values.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNilCircuit indicates a nil circuit was submitted.
	ErrNilCircuit = errors.New("nil circuit")
)
