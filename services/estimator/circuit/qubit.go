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

import (
	"fmt"
	"sort"
)

// Qubit identifies a qubit on a planar grid.
//
// Description:
//
//	Qubits are value types with a total order (row-major) so that every
//	component downstream of the circuit model can index them
//	deterministically. The zero value is the top-left grid site.
//
// Thread Safety: Immutable value type, safe for concurrent use.
type Qubit struct {
	// Row is the vertical grid coordinate.
	Row int

	// Col is the horizontal grid coordinate.
	Col int
}

// String returns the canonical name of the qubit, e.g. "q1_2".
// The name is embedded in tensor-network leg labels, so it must be a
// pure function of the coordinates.
func (q Qubit) String() string {
	return fmt.Sprintf("q%d_%d", q.Row, q.Col)
}

// Less reports whether q orders before o in row-major order.
func (q Qubit) Less(o Qubit) bool {
	if q.Row != o.Row {
		return q.Row < o.Row
	}
	return q.Col < o.Col
}

// SortQubits sorts qubits in place in row-major order.
func SortQubits(qs []Qubit) {
	sort.Slice(qs, func(i, j int) bool { return qs[i].Less(qs[j]) })
}

// dedupQubits returns the sorted set of distinct qubits.
func dedupQubits(qs []Qubit) []Qubit {
	set := make(map[Qubit]struct{}, len(qs))
	for _, q := range qs {
		set[q] = struct{}{}
	}
	out := make([]Qubit, 0, len(set))
	for q := range set {
		out = append(out, q)
	}
	SortQubits(out)
	return out
}
