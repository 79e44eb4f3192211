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

// GridOptions configures the reference shallow-grid circuit.
type GridOptions struct {
	// EdgeWeight returns the ZZ exponent for the edge (a, b), a < b.
	// Nil means weight 1 on every edge.
	EdgeWeight func(a, b Qubit) float64

	// FinalRotation is the X-rotation angle applied to every qubit after
	// the entangling layers.
	FinalRotation float64
}

// Grid builds the reference shallow circuit on a rows x cols qubit grid:
// a Hadamard on every qubit, one weighted ZZ gate per nearest-neighbour
// edge, and a final X rotation on every qubit.
//
// Description:
//
//	Edge gates are emitted in row-major order of their lower endpoint
//	(horizontal edge before vertical edge at each site) and packed into
//	moments with earliest-slot packing, so the produced circuit is
//	deterministic for fixed inputs.
func Grid(rows, cols int, opts GridOptions) *Circuit {
	weight := opts.EdgeWeight
	if weight == nil {
		weight = func(a, b Qubit) float64 { return 1 }
	}

	var gates []Gate
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			gates = append(gates, H(Qubit{Row: r, Col: c}))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			q := Qubit{Row: r, Col: c}
			if c+1 < cols {
				right := Qubit{Row: r, Col: c + 1}
				gates = append(gates, ZZPow(weight(q, right), q, right))
			}
			if r+1 < rows {
				down := Qubit{Row: r + 1, Col: c}
				gates = append(gates, ZZPow(weight(q, down), q, down))
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			gates = append(gates, Rx(opts.FinalRotation, Qubit{Row: r, Col: c}))
		}
	}
	return FromGates(gates...)
}
