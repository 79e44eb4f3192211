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
	"math"

	"github.com/fumin/tensor"
)

// Contract executes a planned path against the network, producing the
// scalar value of the fully contracted network.
//
// Description:
//
//	Pairwise contractions run in plan order. The network is consumed: the
//	tensors' data buffers are no longer owned by the network afterwards.
//	The pre-flight memory guard compares the planner's largest-intermediate
//	estimate against budgetBytes before any heavy computation; execution
//	itself does not fail from this class once the guard passes.
//
// Inputs:
//
//	path - The planned contraction order for this network.
//	budgetBytes - Memory ceiling for the largest intermediate; 0 disables
//	              the guard.
//
// Outputs:
//
//	complex64 - The scalar value of the network.
//	error - ErrContractionOverflow when the pre-flight guard trips,
//	        ErrInvalidPath if the path does not match the network,
//	        ErrOpenLegs if contraction does not close every leg.
func (n *Network) Contract(path *PathInfo, budgetBytes int64) (complex64, error) {
	if len(n.Tensors) == 0 {
		return 0, ErrEmptyNetwork
	}
	if budgetBytes > 0 && path.MemoryBytes() > budgetBytes {
		return 0, fmt.Errorf("%w: largest intermediate needs %d bytes, budget %d",
			ErrContractionOverflow, path.MemoryBytes(), budgetBytes)
	}

	pool := make(map[int]*Tensor, len(n.Tensors))
	for i, t := range n.Tensors {
		pool[i] = t
	}
	nextID := len(n.Tensors)

	for _, step := range path.Steps {
		a, oka := pool[step.Left]
		b, okb := pool[step.Right]
		if !oka || !okb {
			return 0, fmt.Errorf("%w: step (%d, %d)", ErrInvalidPath, step.Left, step.Right)
		}
		delete(pool, step.Left)
		delete(pool, step.Right)

		shared := len(a.sharedInds(b))
		if shared == 0 {
			return 0, fmt.Errorf("%w: step (%d, %d) shares no leg", ErrInvalidPath, step.Left, step.Right)
		}
		var res *Tensor
		if a.Rank()+b.Rank() == 2*shared {
			res = scalarTensor(scalarDot(a, b))
		} else {
			res = contractPair(a, b)
		}
		pool[nextID] = res
		nextID++
	}

	if len(pool) != 1 {
		return 0, fmt.Errorf("%w: %d tensors remain", ErrInvalidPath, len(pool))
	}
	var final *Tensor
	for _, t := range pool {
		final = t
	}
	if final.Rank() != 0 {
		return 0, fmt.Errorf("%w: %v", ErrOpenLegs, final.Inds)
	}
	return final.Data.At(0), nil
}

// scalarTensor wraps a scalar value as a leg-less tensor backed by a
// one-element dense array.
func scalarTensor(v complex64) *Tensor {
	d := tensor.Zeros(1)
	d.SetAt([]int{0}, v)
	return &Tensor{Data: d}
}

// CollapseReal reports the scalar as a real value when its imaginary part
// is within atol of zero, the expected case for a Hermitian observable on
// a properly closed network. Otherwise the complex value is returned as-is.
func CollapseReal(v complex64, atol float64) complex128 {
	if math.Abs(float64(imag(v))) <= atol {
		return complex(float64(real(v)), 0)
	}
	return complex128(v)
}
