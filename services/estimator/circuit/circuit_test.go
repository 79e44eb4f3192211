// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGatesEarliestSlotPacking(t *testing.T) {
	a := Qubit{}
	b := Qubit{Col: 1}
	c := Qubit{Col: 2}

	// H(a) and H(b) share no qubits and pack into one moment; CZ(a, b)
	// must wait; H(c) backfills into the first moment.
	cir := FromGates(H(a), H(b), CZ(a, b), H(c))
	require.Equal(t, 2, cir.NumMoments())
	assert.Equal(t, 3, cir.Moments()[0].Size())
	assert.Equal(t, 1, cir.Moments()[1].Size())
	assert.Equal(t, 4, cir.NumOperations())
}

func TestFromGatesPreservesPerQubitOrder(t *testing.T) {
	q := Qubit{}
	cir := FromGates(H(q), X(q), Z(q))
	require.Equal(t, 3, cir.NumMoments())
	gs := cir.AllGates()
	assert.Equal(t, "H", gs[0].Name())
	assert.Equal(t, "X", gs[1].Name())
	assert.Equal(t, "Z", gs[2].Name())
}

func TestNewMomentRejectsOverlap(t *testing.T) {
	q := Qubit{}
	_, err := NewMoment(H(q), X(q))
	require.ErrorIs(t, err, ErrOverlappingGates)
}

func TestAdjointReversesAndConjugates(t *testing.T) {
	a := Qubit{}
	b := Qubit{Col: 1}
	cir := FromGates(H(a), CZ(a, b), Rx(0.3, b))

	adj := cir.Adjoint()
	require.Equal(t, cir.NumMoments(), adj.NumMoments())

	gs := adj.AllGates()
	require.Len(t, gs, 3)
	assert.Equal(t, "Rx†", gs[0].Name())
	assert.Equal(t, "CZ†", gs[1].Name())
	assert.Equal(t, "H†", gs[2].Name())

	// U·U† over each qubit wire: composing a gate with its adjoint from
	// the reversed circuit yields identity; spot-check via matrices.
	rx := cir.AllGates()[2]
	rxd := gs[0]
	m := rx.Matrix()
	md := rxd.Matrix()
	// (Rx†·Rx)[0][0] = conj(m00)*m00 + conj(m10)*m10 = 1.
	got := md.At(0, 0)*m.At(0, 0) + md.At(0, 1)*m.At(1, 0)
	assert.InDelta(t, 1.0, float64(real(got)), 1e-6)
	assert.InDelta(t, 0.0, float64(imag(got)), 1e-6)
}

func TestQubitsSortedRowMajor(t *testing.T) {
	cir := FromGates(
		H(Qubit{Row: 1, Col: 0}),
		H(Qubit{Row: 0, Col: 1}),
		H(Qubit{Row: 0, Col: 0}),
	)
	qs := cir.Qubits()
	require.Len(t, qs, 3)
	assert.Equal(t, Qubit{Row: 0, Col: 0}, qs[0])
	assert.Equal(t, Qubit{Row: 0, Col: 1}, qs[1])
	assert.Equal(t, Qubit{Row: 1, Col: 0}, qs[2])
}

func TestConcat(t *testing.T) {
	q := Qubit{}
	c1 := FromGates(H(q))
	c2 := FromGates(X(q), Z(q))
	cat := Concat(c1, c2)
	assert.Equal(t, 3, cat.NumMoments())
	assert.Equal(t, 3, cat.NumOperations())
}

func TestPauliStringRendering(t *testing.T) {
	a := Qubit{Row: 1, Col: 1}
	b := Qubit{Row: 1, Col: 2}
	obs := PauliString{b: PauliZ, a: PauliZ}

	assert.Equal(t, "Z(q1_1)*Z(q1_2)", obs.String())

	m := obs.Moment()
	require.Equal(t, 2, m.Size())
	assert.Equal(t, "Z", m.Gates()[0].Name())
	assert.Equal(t, []Qubit{a}, m.Gates()[0].Qubits())
}

func TestGridStructure(t *testing.T) {
	cir := Grid(2, 3, GridOptions{FinalRotation: 0.456})

	// 6 Hadamards + 7 edges (4 horizontal, 3 vertical) + 6 rotations.
	assert.Equal(t, 19, cir.NumOperations())
	assert.Len(t, cir.Qubits(), 6)

	// First moment is the Hadamard layer, packed together.
	assert.Equal(t, 6, cir.Moments()[0].Size())

	// Deterministic: building twice gives the same moment structure.
	again := Grid(2, 3, GridOptions{FinalRotation: 0.456})
	require.Equal(t, cir.NumMoments(), again.NumMoments())
	for i, m := range cir.Moments() {
		assert.Equal(t, m.Size(), again.Moments()[i].Size())
	}
}

func TestGridEdgeWeights(t *testing.T) {
	var seen [][2]Qubit
	Grid(2, 2, GridOptions{
		EdgeWeight: func(a, b Qubit) float64 {
			seen = append(seen, [2]Qubit{a, b})
			return 0.5
		},
	})
	// 2x2 grid has 4 edges, lower endpoint first.
	require.Len(t, seen, 4)
	for _, e := range seen {
		assert.True(t, e[0].Less(e[1]), "edge %v not ordered", e)
	}
}
