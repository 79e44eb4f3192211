// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package circuit provides the immutable quantum-circuit model consumed by
// the expectation pipeline: qubits on a planar grid, matrix-backed gates,
// moments of disjoint gates, and Pauli-string observables.
package circuit

// Circuit is an ordered sequence of moments applied to an implicit |0...0⟩
// initial state.
//
// Thread Safety: Immutable after construction, safe for concurrent use.
type Circuit struct {
	moments []Moment
}

// New creates a circuit from the given moments.
func New(moments ...Moment) *Circuit {
	ms := make([]Moment, len(moments))
	copy(ms, moments)
	return &Circuit{moments: ms}
}

// FromGates packs gates into moments using earliest-slot packing: each gate
// lands in the first moment after the last moment touching any of its
// qubits. Per-qubit gate order is preserved.
func FromGates(gates ...Gate) *Circuit {
	last := make(map[Qubit]int) // qubit -> first free moment index
	var moments [][]Gate
	for _, g := range gates {
		slot := 0
		for _, q := range g.qubits {
			if s, ok := last[q]; ok && s > slot {
				slot = s
			}
		}
		for len(moments) <= slot {
			moments = append(moments, nil)
		}
		moments[slot] = append(moments[slot], g)
		for _, q := range g.qubits {
			last[q] = slot + 1
		}
	}
	ms := make([]Moment, len(moments))
	for i, gs := range moments {
		ms[i] = Moment{gates: gs}
	}
	return &Circuit{moments: ms}
}

// Moments returns the circuit's moments. The returned slice is a copy.
func (c *Circuit) Moments() []Moment {
	ms := make([]Moment, len(c.moments))
	copy(ms, c.moments)
	return ms
}

// NumMoments returns the circuit depth.
func (c *Circuit) NumMoments() int { return len(c.moments) }

// NumOperations returns the total gate count across all moments.
func (c *Circuit) NumOperations() int {
	n := 0
	for _, m := range c.moments {
		n += len(m.gates)
	}
	return n
}

// Qubits returns the sorted set of qubits the circuit acts on.
func (c *Circuit) Qubits() []Qubit {
	var qs []Qubit
	for _, m := range c.moments {
		for _, g := range m.gates {
			qs = append(qs, g.qubits...)
		}
	}
	return dedupQubits(qs)
}

// AllGates returns every gate in time order (moment by moment).
func (c *Circuit) AllGates() []Gate {
	var gs []Gate
	for _, m := range c.moments {
		gs = append(gs, m.gates...)
	}
	return gs
}

// Adjoint returns U† : moments in reverse order with every gate conjugated.
func (c *Circuit) Adjoint() *Circuit {
	ms := make([]Moment, len(c.moments))
	for i, m := range c.moments {
		ms[len(c.moments)-1-i] = m.adjoint()
	}
	return &Circuit{moments: ms}
}

// Concat returns the concatenation of circuits in order.
func Concat(cs ...*Circuit) *Circuit {
	var ms []Moment
	for _, c := range cs {
		ms = append(ms, c.moments...)
	}
	return &Circuit{moments: ms}
}
