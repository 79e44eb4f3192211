// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package expectation composes and simplifies the U†·O·U sandwich circuit
// whose contraction against |0⟩ on both ends yields ⟨0|U†OU|0⟩.
package expectation

import (
	"fmt"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
)

// ForExpectationValue builds the sandwich circuit U†·O·U.
//
// Description:
//
//	The result is U's moments, one moment applying the Pauli string, and
//	U's adjoint (moments reversed, gates conjugated). Applying the sandwich
//	to |0...0⟩ and projecting back onto |0...0⟩ reproduces ⟨0|U†OU|0⟩.
//	U must be unitary: the circuit model carries no measurements, so this
//	holds by construction.
//
// Inputs:
//
//	u - The forward circuit. Read-only.
//	obs - The Pauli-string observable, implicit coefficient 1.
//
// Outputs:
//
//	*circuit.Circuit - The sandwich circuit.
//	error - ErrEmptyObservable for an empty Pauli string,
//	        ErrInvalidObservable if obs acts on a qubit outside u.
func ForExpectationValue(u *circuit.Circuit, obs circuit.PauliString) (*circuit.Circuit, error) {
	if len(obs) == 0 {
		return nil, ErrEmptyObservable
	}
	qubits := make(map[circuit.Qubit]struct{})
	for _, q := range u.Qubits() {
		qubits[q] = struct{}{}
	}
	for _, q := range obs.Qubits() {
		if _, ok := qubits[q]; !ok {
			return nil, fmt.Errorf("%w: qubit %s not in circuit", ErrInvalidObservable, q)
		}
	}
	return circuit.Concat(u, circuit.New(obs.Moment()), u.Adjoint()), nil
}
