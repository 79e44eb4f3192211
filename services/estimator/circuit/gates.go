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
	"math"
	"math/cmplx"

	"github.com/fumin/tensor"
)

// Standard single- and two-qubit gate constructors.
//
// Matrices follow the usual computational-basis convention with the first
// qubit of a two-qubit gate on the most significant bit.

func c64(x complex128) complex64 { return complex64(x) }

// I returns the single-qubit identity gate.
func I(q Qubit) Gate {
	return mustGate("I", tensor.T2([][]complex64{
		{1, 0},
		{0, 1},
	}), q)
}

// H returns the Hadamard gate.
func H(q Qubit) Gate {
	s := complex64(complex(1/math.Sqrt2, 0))
	return mustGate("H", tensor.T2([][]complex64{
		{s, s},
		{s, -s},
	}), q)
}

// X returns the Pauli-X gate.
func X(q Qubit) Gate {
	return mustGate("X", tensor.T2([][]complex64{
		{0, 1},
		{1, 0},
	}), q)
}

// Y returns the Pauli-Y gate.
func Y(q Qubit) Gate {
	return mustGate("Y", tensor.T2([][]complex64{
		{0, -1i},
		{1i, 0},
	}), q)
}

// Z returns the Pauli-Z gate.
func Z(q Qubit) Gate {
	return mustGate("Z", tensor.T2([][]complex64{
		{1, 0},
		{0, -1},
	}), q)
}

// Rx returns a rotation by theta radians about the X axis.
func Rx(theta float64, q Qubit) Gate {
	c := c64(complex(math.Cos(theta/2), 0))
	s := c64(complex(0, -math.Sin(theta/2)))
	return mustGate("Rx", tensor.T2([][]complex64{
		{c, s},
		{s, c},
	}), q)
}

// Ry returns a rotation by theta radians about the Y axis.
func Ry(theta float64, q Qubit) Gate {
	c := c64(complex(math.Cos(theta/2), 0))
	s := c64(complex(math.Sin(theta/2), 0))
	return mustGate("Ry", tensor.T2([][]complex64{
		{c, -s},
		{s, c},
	}), q)
}

// Rz returns a rotation by theta radians about the Z axis.
func Rz(theta float64, q Qubit) Gate {
	p := c64(cmplx.Exp(complex(0, theta/2)))
	n := c64(cmplx.Exp(complex(0, -theta/2)))
	return mustGate("Rz", tensor.T2([][]complex64{
		{n, 0},
		{0, p},
	}), q)
}

// CZ returns the controlled-Z gate. CZ is symmetric in its qubits.
func CZ(a, b Qubit) Gate {
	return mustGate("CZ", tensor.T2([][]complex64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}), a, b)
}

// CNOT returns the controlled-NOT gate with control a and target b.
func CNOT(a, b Qubit) Gate {
	return mustGate("CNOT", tensor.T2([][]complex64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}), a, b)
}

// ZZPow returns (Z⊗Z)^t, the weighted entangling gate used on grid edges.
// The eigenvalue -1 subspace picks up the phase e^{iπt}; t=1 gives Z⊗Z.
func ZZPow(t float64, a, b Qubit) Gate {
	p := c64(cmplx.Exp(complex(0, math.Pi*t)))
	return mustGate("ZZ", tensor.T2([][]complex64{
		{1, 0, 0, 0},
		{0, p, 0, 0},
		{0, 0, p, 0},
		{0, 0, 0, 1},
	}), a, b)
}
