// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tensornet converts simplified sandwich circuits into tensor
// networks and plans and executes their contraction to a scalar.
package tensornet

import "github.com/fumin/tensor"

// Tags identifying boundary tensors.
const (
	// TagKetZero marks a |0⟩ boundary tensor opening a qubit timeline.
	TagKetZero = "ket0"

	// TagBraZero marks a ⟨0| boundary tensor closing a qubit timeline.
	TagBraZero = "bra0"
)

// BytesPerElement is the size of one dense element. The backend stores
// complex64 values; memory estimates everywhere must use this constant so
// a precision change cannot desynchronize the pre-flight guard from the
// data.
const BytesPerElement = 8

// Tensor is a named multi-dimensional array with ordered, labeled legs.
// Two tensors sharing a leg label are implicitly connected.
//
// Thread Safety: Not safe for concurrent mutation. A Tensor is owned
// exclusively by one pipeline run.
type Tensor struct {
	// Inds are the leg labels, one per data axis, in axis order.
	Inds []string

	// Tags carries optional identification tags (boundary markers).
	Tags []string

	// Data holds the dense array. len(Data.Shape()) == len(Inds).
	Data *tensor.Dense
}

// Rank returns the number of legs.
func (t *Tensor) Rank() int { return len(t.Inds) }

// Size returns the element count of the dense data.
func (t *Tensor) Size() int {
	n := 1
	for _, d := range t.Data.Shape() {
		n *= d
	}
	return n
}

// HasTag reports whether the tensor carries the given tag.
func (t *Tensor) HasTag(tag string) bool {
	for _, g := range t.Tags {
		if g == tag {
			return true
		}
	}
	return false
}

// indPos returns the axis position of the leg label, or -1.
func (t *Tensor) indPos(ind string) int {
	for i, s := range t.Inds {
		if s == ind {
			return i
		}
	}
	return -1
}

// sharedInds returns the leg labels common to t and o, in t's axis order.
func (t *Tensor) sharedInds(o *Tensor) []string {
	var shared []string
	for _, s := range t.Inds {
		if o.indPos(s) >= 0 {
			shared = append(shared, s)
		}
	}
	return shared
}
