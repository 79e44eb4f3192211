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

// Pauli names a single-qubit Pauli operator.
type Pauli int

const (
	// PauliX is the bit-flip operator.
	PauliX Pauli = iota

	// PauliY is the combined bit- and phase-flip operator.
	PauliY

	// PauliZ is the phase-flip operator.
	PauliZ
)

// String returns the one-letter name of the operator.
func (p Pauli) String() string {
	switch p {
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	default:
		return "?"
	}
}

// gate returns the Pauli as a concrete gate on q.
func (p Pauli) gate(q Qubit) Gate {
	switch p {
	case PauliX:
		return X(q)
	case PauliY:
		return Y(q)
	case PauliZ:
		return Z(q)
	default:
		return I(q)
	}
}

// PauliString is a tensor product of single-qubit Pauli operators over a
// qubit subset, with an implicit coefficient of 1. It is the only
// observable form accepted by the expectation pipeline; weighted sums are
// a composition concern for callers.
//
// Thread Safety: Treat as immutable once handed to the pipeline.
type PauliString map[Qubit]Pauli

// Qubits returns the observable's support in row-major order.
func (ps PauliString) Qubits() []Qubit {
	qs := make([]Qubit, 0, len(ps))
	for q := range ps {
		qs = append(qs, q)
	}
	SortQubits(qs)
	return qs
}

// Moment renders the Pauli string as a single circuit moment, one gate per
// supported qubit, in row-major qubit order.
func (ps PauliString) Moment() Moment {
	gs := make([]Gate, 0, len(ps))
	for _, q := range ps.Qubits() {
		gs = append(gs, ps[q].gate(q))
	}
	return Moment{gates: gs}
}

// String renders the observable like "Z(q1_1)*Z(q1_2)".
func (ps PauliString) String() string {
	s := ""
	for i, q := range ps.Qubits() {
		if i > 0 {
			s += "*"
		}
		s += ps[q].String() + "(" + q.String() + ")"
	}
	return s
}
