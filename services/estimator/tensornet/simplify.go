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

// RankSimplify contracts connected tensor pairs whose result rank does not
// exceed the larger input rank, repeating to a fixed point.
//
// Description:
//
//	This folds boundary vectors and single-qubit gate tensors into their
//	neighbours before global path search, shrinking the search space
//	without changing the contracted value. Skipping it affects performance
//	only, never correctness. Pairs whose contraction would already produce
//	the final scalar (rank 0 from both sides' legs cancelling) are left to
//	the contractor.
//
//	The scan order is deterministic (first eligible pair in tensor order),
//	so simplified networks are reproducible for a fixed input network.
func (n *Network) RankSimplify() {
	for {
		i, j := n.findFoldable()
		if i < 0 {
			return
		}
		merged := contractPair(n.Tensors[i], n.Tensors[j])
		out := make([]*Tensor, 0, len(n.Tensors)-1)
		out = append(out, n.Tensors[:i]...)
		out = append(out, merged)
		out = append(out, n.Tensors[i+1:j]...)
		out = append(out, n.Tensors[j+1:]...)
		n.Tensors = out
	}
}

// findFoldable returns the first pair (i, j) whose contraction is
// rank-non-increasing and non-scalar, or (-1, -1).
func (n *Network) findFoldable() (int, int) {
	for i := 0; i < len(n.Tensors); i++ {
		a := n.Tensors[i]
		for j := i + 1; j < len(n.Tensors); j++ {
			b := n.Tensors[j]
			shared := len(a.sharedInds(b))
			if shared == 0 {
				continue
			}
			rank := a.Rank() + b.Rank() - 2*shared
			if rank == 0 {
				continue
			}
			if rank <= max(a.Rank(), b.Rank()) {
				return i, j
			}
		}
	}
	return -1, -1
}
