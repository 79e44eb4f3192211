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

import "fmt"

// Moment is an ordered collection of gates with pairwise-disjoint qubit
// supports, representing one logical timestep.
//
// Thread Safety: Immutable after construction, safe for concurrent use.
type Moment struct {
	gates []Gate
}

// NewMoment creates a moment from gates with disjoint supports.
//
// Outputs:
//
//	Moment - The constructed moment.
//	error - ErrOverlappingGates if two gates share a qubit.
func NewMoment(gates ...Gate) (Moment, error) {
	seen := make(map[Qubit]string)
	for _, g := range gates {
		for _, q := range g.qubits {
			if prev, ok := seen[q]; ok {
				return Moment{}, fmt.Errorf("%w: %q and %q both act on %s",
					ErrOverlappingGates, prev, g.name, q)
			}
			seen[q] = g.name
		}
	}
	gs := make([]Gate, len(gates))
	copy(gs, gates)
	return Moment{gates: gs}, nil
}

// Gates returns the moment's gates. The returned slice is a copy.
func (m Moment) Gates() []Gate {
	gs := make([]Gate, len(m.gates))
	copy(gs, m.gates)
	return gs
}

// Size returns the number of gates in the moment.
func (m Moment) Size() int { return len(m.gates) }

// Qubits returns the sorted set of qubits the moment acts on.
func (m Moment) Qubits() []Qubit {
	var qs []Qubit
	for _, g := range m.gates {
		qs = append(qs, g.qubits...)
	}
	return dedupQubits(qs)
}

// adjoint reverses nothing within the moment (supports are disjoint, the
// gates commute) but conjugates every gate.
func (m Moment) adjoint() Moment {
	gs := make([]Gate, len(m.gates))
	for i, g := range m.gates {
		gs[i] = g.Adjoint()
	}
	return Moment{gates: gs}
}
