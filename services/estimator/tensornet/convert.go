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
	"fmt"

	"github.com/fumin/tensor"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
)

// Frontier maps each qubit to the index of its most recently used
// tensor-network leg. It advances monotonically as gates are consumed and
// is owned exclusively by one conversion.
type Frontier map[circuit.Qubit]int

// Leg returns the label of qubit q's timeline leg at the given step.
// Labels are a pure function of (step, qubit), so repeated conversions of
// the same circuit are bit-identical.
func Leg(step int, q circuit.Qubit) string {
	return fmt.Sprintf("i%d_%s", step, q)
}

// FromCircuit converts a circuit into a tensor network.
//
// Description:
//
//	Each qubit timeline opens with an explicit rank-1 |0⟩ ket tensor at
//	step 0 (tagged TagKetZero). Each gate becomes one tensor whose data is
//	the gate matrix reshaped to rank 2k, with one outgoing and one incoming
//	leg per qubit: the incoming leg carries the qubit's current frontier
//	value, the outgoing leg carries frontier+1, and the frontier advances.
//	Axis order is all outgoing legs in gate qubit order, then all incoming
//	legs, matching the row-major reshape of the matrix.
//
//	The returned network has one open leg per live qubit (the final
//	frontier leg); CapWithZeroBras closes them.
//
// Inputs:
//
//	c - The (simplified) circuit. Read-only.
//	qubits - The deterministically ordered live qubit list. Every gate
//	         qubit must appear here.
//
// Outputs:
//
//	*Network - The converted network, tensors in deterministic order.
//	Frontier - The final frontier, mapping each live qubit to its last leg.
//	error - ErrUnknownQubit if a gate acts outside the live qubit list.
func FromCircuit(c *circuit.Circuit, qubits []circuit.Qubit) (*Network, Frontier, error) {
	frontier := make(Frontier, len(qubits))
	live := make(map[circuit.Qubit]struct{}, len(qubits))
	net := &Network{}

	for _, q := range qubits {
		frontier[q] = 0
		live[q] = struct{}{}
		net.Tensors = append(net.Tensors, &Tensor{
			Inds: []string{Leg(0, q)},
			Tags: []string{TagKetZero},
			Data: zeroStateVec(),
		})
	}

	for _, m := range c.Moments() {
		for _, g := range m.Gates() {
			gq := g.Qubits()
			k := len(gq)
			inds := make([]string, 0, 2*k)
			for _, q := range gq {
				if _, ok := live[q]; !ok {
					return nil, nil, fmt.Errorf("%w: gate %q on %s", ErrUnknownQubit, g.Name(), q)
				}
				inds = append(inds, Leg(frontier[q]+1, q))
			}
			for _, q := range gq {
				inds = append(inds, Leg(frontier[q], q))
				frontier[q]++
			}
			shape := make([]int, 2*k)
			for i := range shape {
				shape[i] = 2
			}
			net.Tensors = append(net.Tensors, &Tensor{
				Inds: inds,
				Data: g.Matrix().Reshape(shape...),
			})
		}
	}
	return net, frontier, nil
}

// CapWithZeroBras appends one rank-1 ⟨0| tensor per live qubit at its final
// frontier leg, encoding the projection back onto the all-zero state. After
// capping, a well-formed network has no open legs.
func (n *Network) CapWithZeroBras(f Frontier) {
	qs := make([]circuit.Qubit, 0, len(f))
	for q := range f {
		qs = append(qs, q)
	}
	circuit.SortQubits(qs)
	for _, q := range qs {
		n.Tensors = append(n.Tensors, &Tensor{
			Inds: []string{Leg(f[q], q)},
			Tags: []string{TagBraZero},
			Data: zeroStateVec(),
		})
	}
}

// zeroStateVec returns the |0⟩ column vector squeezed to a plain vector.
// ⟨0| has the same real data, so both boundaries share this constructor.
func zeroStateVec() *tensor.Dense {
	return tensor.T2([][]complex64{{1}, {0}}).Reshape(2)
}
