// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command lightcone estimates observable expectation values for shallow
// grid circuits by tensor-network contraction.
//
// Usage:
//
//	go run ./cmd/lightcone estimate --rows 3 --cols 4
//	go run ./cmd/lightcone estimate --rows 3 --cols 4 --plan-only
//
// An optional config.yaml in the working directory tunes the pipeline:
//
//	negligible_tolerance: 1e-6
//	merge_max_k: 2
//	memory_budget_bytes: 17179869184
//	workers: 4
package main

import "log"

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
