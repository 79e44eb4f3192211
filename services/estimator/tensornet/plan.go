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

// Step is one pairwise contraction in a path. Left and Right are SSA ids:
// the n input tensors take ids 0..n-1 in network order, and each step's
// result takes the next id.
type Step struct {
	Left  int
	Right int
}

// PathInfo is a planned contraction order with its derived cost metrics.
type PathInfo struct {
	// Steps is the pairwise contraction sequence.
	Steps []Step

	// OpCost estimates the total multiply-accumulate count of executing
	// the path. Never negative.
	OpCost float64

	// LargestIntermediate is the element count of the biggest tensor held
	// at any point, inputs included.
	LargestIntermediate int
}

// MemoryBytes returns the pre-flight memory estimate for the path: the
// largest intermediate times the dense backend's element size.
func (p *PathInfo) MemoryBytes() int64 {
	return int64(p.LargestIntermediate) * BytesPerElement
}

// simTensor is the planner's shadow of a tensor: legs and dims, no data.
type simTensor struct {
	id   int
	inds []string
	dims []int
}

func (s *simTensor) size() int {
	n := 1
	for _, d := range s.dims {
		n *= d
	}
	return n
}

// Plan computes a deterministic greedy contraction path minimizing, at
// each step, the growth of the produced intermediate.
//
// Description:
//
//	Among all tensor pairs sharing a leg, the planner picks the pair whose
//	result size minus input sizes is smallest, breaking ties by smaller
//	result size and then by SSA id order. Greedy is a standard
//	tensor-network path heuristic; the tie-break rule makes cost estimates
//	reproducible for a fixed network topology.
//
// Outputs:
//
//	*PathInfo - The planned path and its cost metrics.
//	error - ErrEmptyNetwork for a network with no tensors, or
//	        ErrDisconnectedNetwork when the leg-sharing graph has more
//	        than one component.
func (n *Network) Plan() (*PathInfo, error) {
	if len(n.Tensors) == 0 {
		return nil, ErrEmptyNetwork
	}
	if comps := n.components(); len(comps) > 1 {
		return nil, ErrDisconnectedNetwork
	}

	live := make([]*simTensor, len(n.Tensors))
	info := &PathInfo{}
	for i, t := range n.Tensors {
		st := &simTensor{id: i, inds: append([]string(nil), t.Inds...), dims: t.Data.Shape()}
		live[i] = st
		if s := st.size(); s > info.LargestIntermediate {
			info.LargestIntermediate = s
		}
	}

	nextID := len(n.Tensors)
	for len(live) > 1 {
		bi, bj := -1, -1
		bestGrowth, bestSize := 0.0, 0
		for i := 0; i < len(live); i++ {
			for j := i + 1; j < len(live); j++ {
				res, ok := simContract(live[i], live[j])
				if !ok {
					continue
				}
				growth := float64(res.size() - live[i].size() - live[j].size())
				if bi < 0 || growth < bestGrowth ||
					(growth == bestGrowth && res.size() < bestSize) {
					bi, bj = i, j
					bestGrowth, bestSize = growth, res.size()
				}
			}
		}
		if bi < 0 {
			// Unreachable for a connected network.
			return nil, ErrDisconnectedNetwork
		}

		a, b := live[bi], live[bj]
		res, _ := simContract(a, b)
		res.id = nextID
		nextID++

		info.Steps = append(info.Steps, Step{Left: a.id, Right: b.id})
		info.OpCost += contractionFlops(a, b)
		if s := res.size(); s > info.LargestIntermediate {
			info.LargestIntermediate = s
		}

		// Remove bj first so bi stays valid.
		live = append(live[:bj], live[bj+1:]...)
		live = append(live[:bi], live[bi+1:]...)
		live = append(live, res)
	}
	return info, nil
}

// simContract returns the shadow result of contracting a and b, or false
// when they share no leg.
func simContract(a, b *simTensor) (*simTensor, bool) {
	shared := make(map[string]struct{})
	for _, s := range a.inds {
		for _, t := range b.inds {
			if s == t {
				shared[s] = struct{}{}
			}
		}
	}
	if len(shared) == 0 {
		return nil, false
	}
	res := &simTensor{}
	for i, s := range a.inds {
		if _, ok := shared[s]; !ok {
			res.inds = append(res.inds, s)
			res.dims = append(res.dims, a.dims[i])
		}
	}
	for i, s := range b.inds {
		if _, ok := shared[s]; !ok {
			res.inds = append(res.inds, s)
			res.dims = append(res.dims, b.dims[i])
		}
	}
	return res, true
}

// contractionFlops counts multiply-accumulates for a pairwise contraction:
// the product of the dimensions of the union of both tensors' legs.
func contractionFlops(a, b *simTensor) float64 {
	seen := make(map[string]int)
	for i, s := range a.inds {
		seen[s] = a.dims[i]
	}
	for i, s := range b.inds {
		seen[s] = b.dims[i]
	}
	flops := 1.0
	for _, d := range seen {
		flops *= float64(d)
	}
	return flops
}
