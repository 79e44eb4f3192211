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

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	// DefaultNegligibleTolerance is the absolute threshold below which a
	// merged gate is treated as the identity.
	DefaultNegligibleTolerance = 1e-6

	// DefaultMergeMaxK is the largest unitary arity considered while
	// merging during lightcone simplification.
	DefaultMergeMaxK = 2
)

// Config contains all estimator settings.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after the
// estimator is created.
type Config struct {
	// NegligibleTolerance is the identity threshold for dropping merged
	// gates. This is an accuracy/cost trade-off owned by the caller:
	// smaller values risk missing cancellations to floating-point noise,
	// larger values risk incorrect results.
	NegligibleTolerance float64 `json:"negligible_tolerance" yaml:"negligible_tolerance"`

	// MergeMaxK is the largest unitary arity produced by k-local merging.
	MergeMaxK int `json:"merge_max_k" yaml:"merge_max_k"`

	// MemoryBudgetBytes caps the largest intermediate tensor. The planner
	// estimate is checked before contraction begins; 0 disables the guard.
	MemoryBudgetBytes int64 `json:"memory_budget_bytes" yaml:"memory_budget_bytes"`

	// Workers bounds concurrent pipeline runs in EstimateAll.
	// 0 means runtime.NumCPU().
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		NegligibleTolerance: DefaultNegligibleTolerance,
		MergeMaxK:           DefaultMergeMaxK,
	}
}

// Validate checks the configuration, applying defaults for zero values.
func (c *Config) Validate() error {
	if c.NegligibleTolerance == 0 {
		c.NegligibleTolerance = DefaultNegligibleTolerance
	}
	if c.NegligibleTolerance < 0 {
		return fmt.Errorf("%w: negligible_tolerance %g", ErrInvalidConfig, c.NegligibleTolerance)
	}
	if c.MergeMaxK == 0 {
		c.MergeMaxK = DefaultMergeMaxK
	}
	if c.MergeMaxK < 1 {
		return fmt.Errorf("%w: merge_max_k %d", ErrInvalidConfig, c.MergeMaxK)
	}
	if c.MemoryBudgetBytes < 0 {
		return fmt.Errorf("%w: memory_budget_bytes %d", ErrInvalidConfig, c.MemoryBudgetBytes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// LoadConfig reads a YAML configuration file and validates it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
