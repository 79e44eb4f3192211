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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAppliesDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultNegligibleTolerance, cfg.NegligibleTolerance)
	assert.Equal(t, DefaultMergeMaxK, cfg.MergeMaxK)
	assert.Positive(t, cfg.Workers)
	assert.Zero(t, cfg.MemoryBudgetBytes, "0 means unbounded, not defaulted")
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative tolerance", cfg: Config{NegligibleTolerance: -1e-6}},
		{name: "negative merge k", cfg: Config{MergeMaxK: -1}},
		{name: "negative budget", cfg: Config{MemoryBudgetBytes: -1}},
		{name: "negative workers", cfg: Config{Workers: -2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "negligible_tolerance: 1e-5\nmerge_max_k: 2\nmemory_budget_bytes: 1024\nworkers: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-5, cfg.NegligibleTolerance)
	assert.Equal(t, 2, cfg.MergeMaxK)
	assert.Equal(t, int64(1024), cfg.MemoryBudgetBytes)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultNegligibleTolerance, cfg.NegligibleTolerance)
	assert.Equal(t, DefaultMergeMaxK, cfg.MergeMaxK)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: {not a number"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merge_max_k: -3\n"), 0o600))
	_, err = LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
