// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tensornet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
)

// cappedNetwork builds the closed network for a circuit.
func cappedNetwork(t *testing.T, c *circuit.Circuit) *Network {
	t.Helper()
	net, frontier, err := FromCircuit(c, c.Qubits())
	require.NoError(t, err)
	net.CapWithZeroBras(frontier)
	return net
}

func TestPlanEmptyNetwork(t *testing.T) {
	net := &Network{}
	_, err := net.Plan()
	require.ErrorIs(t, err, ErrEmptyNetwork)
}

func TestPlanDisconnectedNetwork(t *testing.T) {
	// Two tensors with no leg in common cannot reach a single scalar.
	net := &Network{Tensors: []*Tensor{
		{Inds: []string{"a"}, Data: zeroStateVec()},
		{Inds: []string{"b"}, Data: zeroStateVec()},
	}}
	_, err := net.Plan()
	require.ErrorIs(t, err, ErrDisconnectedNetwork)
}

func TestPlanCostMetrics(t *testing.T) {
	u := circuit.Grid(2, 2, circuit.GridOptions{FinalRotation: 0.3})
	net := cappedNetwork(t, u)

	path, err := net.Plan()
	require.NoError(t, err)

	// n tensors contract to a scalar in exactly n-1 pairwise steps.
	assert.Len(t, path.Steps, net.NumTensors()-1)
	assert.Greater(t, path.OpCost, 0.0)

	maxInput := 0
	for _, tn := range net.Tensors {
		if s := tn.Size(); s > maxInput {
			maxInput = s
		}
	}
	assert.GreaterOrEqual(t, path.LargestIntermediate, maxInput)
	assert.Equal(t, int64(path.LargestIntermediate)*8, path.MemoryBytes())
}

func TestPlanDeterministic(t *testing.T) {
	u := circuit.Grid(2, 3, circuit.GridOptions{FinalRotation: 0.456})

	p1, err := cappedNetwork(t, u).Plan()
	require.NoError(t, err)
	p2, err := cappedNetwork(t, u).Plan()
	require.NoError(t, err)

	assert.Equal(t, p1.Steps, p2.Steps)
	assert.Equal(t, p1.OpCost, p2.OpCost)
	assert.Equal(t, p1.LargestIntermediate, p2.LargestIntermediate)
}

func TestPlanStepsReferenceValidIDs(t *testing.T) {
	u := circuit.Grid(1, 3, circuit.GridOptions{FinalRotation: 0.1})
	net := cappedNetwork(t, u)
	path, err := net.Plan()
	require.NoError(t, err)

	// SSA ids: inputs are 0..n-1, each step adds one. Every id referenced
	// must already exist and never be reused.
	n := net.NumTensors()
	consumed := make(map[int]bool)
	for i, s := range path.Steps {
		for _, id := range []int{s.Left, s.Right} {
			assert.Less(t, id, n+i, "step %d references an id not yet produced", i)
			assert.False(t, consumed[id], "id %d consumed twice", id)
			consumed[id] = true
		}
	}
}
