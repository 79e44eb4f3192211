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

import "github.com/fumin/tensor"

// Network is a set of tensors connected by shared leg labels. Contracting
// a closed network eliminates every leg and yields a scalar.
//
// Thread Safety: Owned exclusively by one pipeline run; not safe for
// concurrent mutation.
type Network struct {
	// Tensors in deterministic construction order. Planner tie-breaking
	// depends on this order, so reconversion of the same circuit yields
	// bit-identical plans.
	Tensors []*Tensor
}

// NumTensors returns the tensor count.
func (n *Network) NumTensors() int { return len(n.Tensors) }

// components groups tensor indices by leg-sharing connectivity.
func (n *Network) components() [][]int {
	parent := make([]int, len(n.Tensors))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	byInd := make(map[string]int)
	for i, t := range n.Tensors {
		for _, ind := range t.Inds {
			if j, ok := byInd[ind]; ok {
				parent[find(i)] = find(j)
			} else {
				byInd[ind] = i
			}
		}
	}
	groups := make(map[int][]int)
	for i := range n.Tensors {
		r := find(i)
		groups[r] = append(groups[r], i)
	}
	out := make([][]int, 0, len(groups))
	for i := range n.Tensors {
		if find(i) == i {
			out = append(out, groups[i])
		}
	}
	return out
}

// contractPair contracts tensors a and b over every shared leg.
//
// The result's legs are a's free legs followed by b's free legs, matching
// the dense backend's axis ordering. The pair must share at least one leg;
// a pair sharing every leg (a full dot product) is handled by the
// contractor's scalar path instead, since the dense backend represents
// tensors of rank one and above.
func contractPair(a, b *Tensor) *Tensor {
	shared := a.sharedInds(b)
	axes := make([][2]int, len(shared))
	for i, s := range shared {
		axes[i] = [2]int{a.indPos(s), b.indPos(s)}
	}
	data := tensor.Product(tensor.Zeros(1), a.Data, b.Data, axes)

	inds := make([]string, 0, a.Rank()+b.Rank()-2*len(shared))
	for _, s := range a.Inds {
		if b.indPos(s) < 0 {
			inds = append(inds, s)
		}
	}
	for _, s := range b.Inds {
		if a.indPos(s) < 0 {
			inds = append(inds, s)
		}
	}
	tags := append(append([]string(nil), a.Tags...), b.Tags...)
	return &Tensor{Inds: inds, Tags: tags, Data: data}
}

// scalarDot computes the full dot product of two tensors sharing every
// leg, avoiding a rank-0 dense result.
func scalarDot(a, b *Tensor) complex64 {
	// Align b's axes to a's leg order: result axis i is b's axis for a.Inds[i].
	perm := make([]int, len(a.Inds))
	for i, s := range a.Inds {
		perm[i] = b.indPos(s)
	}
	bt := b.Data
	if len(perm) > 0 {
		bt = b.Data.Transpose(perm...)
	}
	var sum complex64
	for idx, v := range a.Data.All() {
		sum += v * bt.At(idx...)
	}
	return sum
}
