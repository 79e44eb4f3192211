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
	"github.com/fumin/tensor"

	"github.com/AleutianAI/lightcone/services/estimator/circuit"
)

// Default simplifier parameters.
const (
	// DefaultTolerance is the absolute threshold below which a merged gate
	// is treated as the identity and dropped. Smaller values may miss
	// cancellations to floating-point noise; larger values trade accuracy
	// for a smaller network.
	DefaultTolerance = 1e-6

	// DefaultMergeMaxK is the largest unitary arity considered during
	// k-local merging.
	DefaultMergeMaxK = 2
)

// Options configures the lightcone simplifier.
type Options struct {
	// Tolerance is the absolute identity threshold for dropping gates.
	Tolerance float64

	// MergeMaxK is the largest gate arity produced by merging. Must be at
	// least 1; values above 2 grow merged matrices exponentially.
	MergeMaxK int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, MergeMaxK: DefaultMergeMaxK}
}

// Simplify reduces a sandwich circuit to an equivalent-expectation-value
// circuit with fewer operations and, typically, fewer live qubits.
//
// Description:
//
//	Runs merge(k=MergeMaxK..2) → drop-negligible → merge(k=1) → drop-empty
//	to a fixed point. Gates outside the observable's lightcone meet their
//	adjoints once the operations between them have cancelled, merge to the
//	identity, and are dropped; the iteration terminates because every pass
//	either strictly reduces the operation count or reaches the fixed point.
//
//	The live qubit set of the result may be smaller than the input's:
//	callers must re-derive qubit lists from the returned circuit.
//
// Inputs:
//
//	c - The sandwich circuit. Read-only; a new circuit is returned.
//	opts - Simplifier options; zero values fall back to the defaults.
//
// Outputs:
//
//	*circuit.Circuit - The simplified circuit. A circuit with no reducible
//	                   structure is returned structurally unchanged.
func Simplify(c *circuit.Circuit, opts Options) *circuit.Circuit {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MergeMaxK < 1 {
		opts.MergeMaxK = DefaultMergeMaxK
	}

	ops := c.AllGates()
	n := len(ops)
	for {
		for k := opts.MergeMaxK; k >= 2; k-- {
			ops = mergeK(ops, k)
		}
		ops = dropNegligible(ops, opts.Tolerance)
		ops = mergeK(ops, 1)
		ops = dropNegligible(ops, opts.Tolerance)
		if len(ops) >= n {
			break
		}
		n = len(ops)
	}
	// Empty-moment elision falls out of repacking the surviving gates.
	return circuit.FromGates(ops...)
}

// mergeK repeatedly multiplies pairs of causally adjacent gates whose
// combined support has at most k qubits, until no such pair remains.
//
// Two gates are causally adjacent when they share at least one qubit and
// no gate between them in time order touches any qubit of their combined
// support. The merged gate takes the later gate's slot, which commutes
// with every operation in between.
func mergeK(ops []circuit.Gate, k int) []circuit.Gate {
	for {
		i, j := findMergeable(ops, k)
		if i < 0 {
			return ops
		}
		merged := mergePair(ops[i], ops[j])
		out := make([]circuit.Gate, 0, len(ops)-1)
		out = append(out, ops[:i]...)
		out = append(out, ops[i+1:j]...)
		out = append(out, merged)
		out = append(out, ops[j+1:]...)
		ops = out
	}
}

// findMergeable returns the first mergeable pair in scan order, or (-1, -1).
func findMergeable(ops []circuit.Gate, k int) (int, int) {
	for i := 0; i < len(ops); i++ {
		union := ops[i].Qubits()
	next:
		for j := i + 1; j < len(ops); j++ {
			if !sharesQubit(ops[i], ops[j]) {
				continue
			}
			combined := unionQubits(union, ops[j].Qubits())
			if len(combined) > k {
				continue
			}
			for x := i + 1; x < j; x++ {
				if touchesAny(ops[x], combined) {
					continue next
				}
			}
			return i, j
		}
	}
	return -1, -1
}

// mergePair multiplies a (earlier) and b (later) into one gate over the
// sorted union of their supports: matrix = embed(b) · embed(a).
func mergePair(a, b circuit.Gate) circuit.Gate {
	union := unionQubits(a.Qubits(), b.Qubits())
	ea, err := circuit.Embed(a, union)
	if err != nil {
		panic(err) // union contains a's qubits by construction
	}
	eb, err := circuit.Embed(b, union)
	if err != nil {
		panic(err)
	}
	prod := tensor.Product(tensor.Zeros(1), eb, ea, [][2]int{{1, 0}})
	g, err := circuit.NewGate("merged", prod, union...)
	if err != nil {
		panic(err)
	}
	return g
}

// dropNegligible removes gates whose matrix is within atol of the identity
// in max-norm. No global-phase allowance is made: products of a gate run
// with its adjoint cancel to the identity exactly, up to rounding.
func dropNegligible(ops []circuit.Gate, atol float64) []circuit.Gate {
	out := ops[:0:0]
	for _, g := range ops {
		if !isNearIdentity(g, atol) {
			out = append(out, g)
		}
	}
	return out
}

func isNearIdentity(g circuit.Gate, atol float64) bool {
	mat := g.Matrix()
	for idx, v := range mat.All() {
		var want complex64
		if idx[0] == idx[1] {
			want = 1
		}
		d := v - want
		if float64(real(d)*real(d)+imag(d)*imag(d)) > atol*atol {
			return false
		}
	}
	return true
}

func sharesQubit(a, b circuit.Gate) bool {
	for _, q := range b.Qubits() {
		if a.OnQubit(q) {
			return true
		}
	}
	return false
}

func touchesAny(g circuit.Gate, qs []circuit.Qubit) bool {
	for _, q := range qs {
		if g.OnQubit(q) {
			return true
		}
	}
	return false
}

func unionQubits(a, b []circuit.Qubit) []circuit.Qubit {
	seen := make(map[circuit.Qubit]struct{}, len(a)+len(b))
	var out []circuit.Qubit
	for _, q := range a {
		if _, ok := seen[q]; !ok {
			seen[q] = struct{}{}
			out = append(out, q)
		}
	}
	for _, q := range b {
		if _, ok := seen[q]; !ok {
			seen[q] = struct{}{}
			out = append(out, q)
		}
	}
	circuit.SortQubits(out)
	return out
}
