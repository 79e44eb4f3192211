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
	"fmt"

	"github.com/fumin/tensor"
)

// Gate is an immutable unitary operator acting on an ordered tuple of qubits.
//
// Description:
//
//	A Gate carries its full 2^k x 2^k matrix representation, where k is the
//	number of qubits it acts on. The first qubit in the tuple corresponds to
//	the most significant bit of the matrix row/column index, matching the
//	axis order produced when the matrix is reshaped into a rank-2k tensor.
//
// Thread Safety: Immutable after construction, safe for concurrent use.
type Gate struct {
	name   string
	qubits []Qubit
	mat    *tensor.Dense
}

// NewGate creates a gate from a matrix and the qubits it acts on.
//
// Inputs:
//
//	name - Display name used in logs and derived gate names.
//	mat - The 2^k x 2^k unitary matrix. Ownership transfers to the gate.
//	qubits - The ordered, pairwise-distinct qubits the gate acts on.
//
// Outputs:
//
//	Gate - The constructed gate.
//	error - ErrInvalidGate if the qubit tuple is empty or repeats a qubit,
//	        or if the matrix shape does not match 2^k x 2^k.
func NewGate(name string, mat *tensor.Dense, qubits ...Qubit) (Gate, error) {
	if len(qubits) == 0 {
		return Gate{}, fmt.Errorf("%w: gate %q has no qubits", ErrInvalidGate, name)
	}
	seen := make(map[Qubit]struct{}, len(qubits))
	for _, q := range qubits {
		if _, ok := seen[q]; ok {
			return Gate{}, fmt.Errorf("%w: gate %q repeats qubit %s", ErrInvalidGate, name, q)
		}
		seen[q] = struct{}{}
	}
	dim := 1 << len(qubits)
	shape := mat.Shape()
	if len(shape) != 2 || shape[0] != dim || shape[1] != dim {
		return Gate{}, fmt.Errorf("%w: gate %q on %d qubits needs a %dx%d matrix, got shape %v",
			ErrInvalidGate, name, len(qubits), dim, dim, shape)
	}
	qs := make([]Qubit, len(qubits))
	copy(qs, qubits)
	return Gate{name: name, qubits: qs, mat: mat}, nil
}

// mustGate panics on construction errors. Used only by the fixed gate
// constructors in gates.go, whose matrices are correct by inspection.
func mustGate(name string, mat *tensor.Dense, qubits ...Qubit) Gate {
	g, err := NewGate(name, mat, qubits...)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the gate's display name.
func (g Gate) Name() string { return g.name }

// NumQubits returns the gate arity k.
func (g Gate) NumQubits() int { return len(g.qubits) }

// Qubits returns the ordered qubit tuple. The returned slice is a copy.
func (g Gate) Qubits() []Qubit {
	qs := make([]Qubit, len(g.qubits))
	copy(qs, g.qubits)
	return qs
}

// Matrix returns the gate's unitary matrix as a fresh tensor.
func (g Gate) Matrix() *tensor.Dense {
	return cloneDense(g.mat)
}

// Adjoint returns the Hermitian conjugate of the gate on the same qubits.
func (g Gate) Adjoint() Gate {
	return Gate{
		name:   g.name + "†",
		qubits: g.qubits,
		mat:    cloneDense(g.mat.H()),
	}
}

// OnQubit reports whether the gate acts on q.
func (g Gate) OnQubit(q Qubit) bool {
	for _, gq := range g.qubits {
		if gq == q {
			return true
		}
	}
	return false
}

// Embed returns g's matrix extended to the ordered qubit list, acting as
// the identity on qubits outside the gate's support.
//
// Inputs:
//
//	g - The gate to embed.
//	qubits - The ordered target register. Must contain every gate qubit.
//
// Outputs:
//
//	*tensor.Dense - The 2^m x 2^m embedded matrix, m = len(qubits). The
//	                i-th register qubit maps to bit m-1-i of the index.
//	error - ErrInvalidGate if a gate qubit is missing from the register.
func Embed(g Gate, qubits []Qubit) (*tensor.Dense, error) {
	pos := make([]int, len(g.qubits))
	for i, gq := range g.qubits {
		pos[i] = -1
		for j, q := range qubits {
			if q == gq {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return nil, fmt.Errorf("%w: embed target misses qubit %s of gate %q",
				ErrInvalidGate, gq, g.name)
		}
	}

	m := len(qubits)
	k := len(g.qubits)
	dim := 1 << m
	// extract maps a full register index to the gate's k-bit sub-index.
	extract := func(idx int) int {
		sub := 0
		for i, p := range pos {
			bit := (idx >> (m - 1 - p)) & 1
			sub |= bit << (k - 1 - i)
		}
		return sub
	}
	// gateMask selects the gate bits; clearing it leaves the spectators.
	gateMask := 0
	for _, p := range pos {
		gateMask |= 1 << (m - 1 - p)
	}

	rows := make([][]complex64, dim)
	for r := 0; r < dim; r++ {
		rows[r] = make([]complex64, dim)
		for c := 0; c < dim; c++ {
			if r&^gateMask != c&^gateMask {
				continue
			}
			rows[r][c] = g.mat.At(extract(r), extract(c))
		}
	}
	return tensor.T2(rows), nil
}

// cloneDense copies src into a freshly allocated tensor.
func cloneDense(src *tensor.Dense) *tensor.Dense {
	shape := src.Shape()
	dst := tensor.Zeros(shape...)
	dst.Set(make([]int, len(shape)), src)
	return dst
}
