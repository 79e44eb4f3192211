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

import "errors"

// Sentinel errors for the tensornet package.
var (
	// ErrEmptyNetwork indicates an operation on a network with no tensors.
	ErrEmptyNetwork = errors.New("empty network")

	// ErrDisconnectedNetwork indicates the leg-sharing graph has more than
	// one component. A disconnected network cannot denote a single
	// expectation value; this is an internal invariant violation of the
	// converter, not a recoverable condition.
	ErrDisconnectedNetwork = errors.New("disconnected network")

	// ErrContractionOverflow indicates the planned contraction would
	// materialize an intermediate tensor exceeding the memory budget.
	// Recoverable: raise the budget or coarsen the simplifier tolerance.
	ErrContractionOverflow = errors.New("contraction overflow")

	// ErrOpenLegs indicates contraction finished with free indices left,
	// so the network did not reduce to a scalar.
	ErrOpenLegs = errors.New("open legs after contraction")

	// ErrUnknownQubit indicates a circuit gate acts on a qubit missing
	// from the converter's live qubit list.
	ErrUnknownQubit = errors.New("unknown qubit")

	// ErrInvalidPath indicates a contraction path referencing tensors that
	// do not exist or were already consumed.
	ErrInvalidPath = errors.New("invalid contraction path")
)
