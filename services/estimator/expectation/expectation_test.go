// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package expectation

import (
	"testing"

	"github.com/fumin/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
)

// bracketZero evaluates ⟨0...0|C|0...0⟩ by dense matrix application over
// the circuit's own qubit register. Only viable for small registers; the
// production path never does this.
func bracketZero(t *testing.T, c *circuit.Circuit) complex64 {
	t.Helper()
	qs := c.Qubits()
	require.LessOrEqual(t, len(qs), 10, "register too large for dense check")
	dim := 1 << len(qs)
	state := tensor.Zeros(dim, 1)
	state.SetAt([]int{0, 0}, 1)
	for _, g := range c.AllGates() {
		m, err := circuit.Embed(g, qs)
		require.NoError(t, err)
		state = tensor.Product(tensor.Zeros(1), m, state, [][2]int{{1, 0}})
	}
	return state.At(0, 0)
}

func TestForExpectationValueShape(t *testing.T) {
	u := circuit.Grid(2, 2, circuit.GridOptions{FinalRotation: 0.3})
	obs := circuit.PauliString{
		{Row: 0, Col: 0}: circuit.PauliZ,
		{Row: 0, Col: 1}: circuit.PauliZ,
	}

	sandwich, err := ForExpectationValue(u, obs)
	require.NoError(t, err)

	assert.Equal(t, 2*u.NumMoments()+1, sandwich.NumMoments())
	assert.Equal(t, 2*u.NumOperations()+len(obs), sandwich.NumOperations())
}

func TestForExpectationValueErrors(t *testing.T) {
	u := circuit.FromGates(circuit.H(circuit.Qubit{}))

	_, err := ForExpectationValue(u, circuit.PauliString{})
	require.ErrorIs(t, err, ErrEmptyObservable)

	off := circuit.Qubit{Row: 9, Col: 9}
	_, err = ForExpectationValue(u, circuit.PauliString{off: circuit.PauliZ})
	require.ErrorIs(t, err, ErrInvalidObservable)
	assert.Contains(t, err.Error(), off.String())
}

func TestSimplifyCancelsSpectatorQubits(t *testing.T) {
	// Three disconnected wires; the observable touches only the middle
	// one, so the outer Hadamard pairs must cancel completely.
	q0 := circuit.Qubit{}
	q1 := circuit.Qubit{Col: 1}
	q2 := circuit.Qubit{Col: 2}
	u := circuit.FromGates(circuit.H(q0), circuit.H(q1), circuit.H(q2))
	obs := circuit.PauliString{q1: circuit.PauliZ}

	sandwich, err := ForExpectationValue(u, obs)
	require.NoError(t, err)

	got := Simplify(sandwich, DefaultOptions())
	assert.Equal(t, []circuit.Qubit{q1}, got.Qubits())
	assert.Equal(t, 1, got.NumOperations())
}

func TestSimplifyDropsExactIdentityRuns(t *testing.T) {
	q := circuit.Qubit{}
	u := circuit.FromGates(circuit.X(q), circuit.X(q))
	got := Simplify(u, DefaultOptions())
	assert.Equal(t, 0, got.NumOperations())
	assert.Equal(t, 0, got.NumMoments())
}

func TestSimplifyMonotonicAndIdempotent(t *testing.T) {
	u := circuit.Grid(2, 3, circuit.GridOptions{FinalRotation: 0.456})
	obs := circuit.PauliString{
		{Row: 0, Col: 1}: circuit.PauliZ,
		{Row: 1, Col: 1}: circuit.PauliZ,
	}
	sandwich, err := ForExpectationValue(u, obs)
	require.NoError(t, err)

	s1 := Simplify(sandwich, DefaultOptions())
	assert.Less(t, s1.NumOperations(), sandwich.NumOperations())

	s2 := Simplify(s1, DefaultOptions())
	assert.Equal(t, s1.NumOperations(), s2.NumOperations())
	assert.Equal(t, s1.NumMoments(), s2.NumMoments())
}

func TestSimplifyPreservesBoundaryAmplitude(t *testing.T) {
	u := circuit.Grid(2, 2, circuit.GridOptions{FinalRotation: 0.7})
	obs := circuit.PauliString{
		{Row: 0, Col: 0}: circuit.PauliZ,
		{Row: 1, Col: 0}: circuit.PauliZ,
	}
	sandwich, err := ForExpectationValue(u, obs)
	require.NoError(t, err)

	want := bracketZero(t, sandwich)
	got := bracketZero(t, Simplify(sandwich, DefaultOptions()))

	assert.InDelta(t, float64(real(want)), float64(real(got)), 1e-5)
	assert.InDelta(t, float64(imag(want)), float64(imag(got)), 1e-5)
}

func TestSimplifyDeterministic(t *testing.T) {
	u := circuit.Grid(3, 3, circuit.GridOptions{FinalRotation: 0.456})
	obs := circuit.PauliString{
		{Row: 1, Col: 1}: circuit.PauliZ,
	}
	sandwich, err := ForExpectationValue(u, obs)
	require.NoError(t, err)

	a := Simplify(sandwich, DefaultOptions())
	b := Simplify(sandwich, DefaultOptions())
	require.Equal(t, a.NumOperations(), b.NumOperations())
	require.Equal(t, a.NumMoments(), b.NumMoments())
	ga, gb := a.AllGates(), b.AllGates()
	for i := range ga {
		assert.Equal(t, ga[i].Qubits(), gb[i].Qubits())
	}
}

func TestOptionsZeroValueFallsBackToDefaults(t *testing.T) {
	q := circuit.Qubit{}
	u := circuit.FromGates(circuit.H(q), circuit.H(q))
	got := Simplify(u, Options{})
	assert.Equal(t, 0, got.NumOperations())
}
