//
// arith.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"fmt"

	"github.com/markkurossi/garble/circuit"
)

// NewAdd22 emits a half adder.
func NewAdd22(b *circuit.Builder, x, y circuit.Wire) (
	sum, carry circuit.Wire) {

	sum = b.NextWire()
	carry = b.NextWire()
	b.XOR(x, y, sum)
	b.AND(x, y, carry)
	return
}

// NewAdd32 emits a full adder.
func NewAdd32(b *circuit.Builder, x, y, cin circuit.Wire) (
	sum, cout circuit.Wire) {

	w1 := b.NextWire()
	w2 := b.NextWire()
	sum = b.NextWire()
	w4 := b.NextWire()
	cout = b.NextWire()

	b.XOR(cin, x, w1)
	b.XOR(y, x, w2)
	b.XOR(cin, w2, sum)
	b.AND(w1, w2, w4)
	b.XOR(x, w4, cout)
	return
}

// NewAdder emits a ripple adder over the two halves of the inputs,
// little-endian. It returns the sum bits and the final carry.
func NewAdder(b *circuit.Builder, inputs []circuit.Wire) (
	[]circuit.Wire, circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return nil, 0, fmt.Errorf("invalid adder width %d", len(inputs))
	}
	split := len(inputs) / 2
	outputs := make([]circuit.Wire, split)

	sum, carry := NewAdd22(b, inputs[0], inputs[split])
	outputs[0] = sum
	for i := 1; i < split; i++ {
		sum, carry = NewAdd32(b, inputs[i], inputs[split+i], carry)
		outputs[i] = sum
	}
	return outputs, carry, nil
}

// NewInc emits an incrementer.
func NewInc(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	outputs := make([]circuit.Wire, len(inputs))
	outputs[0] = b.NextWire()
	b.NOT(inputs[0], outputs[0])
	carry := inputs[0]
	for i := 1; i < len(inputs); i++ {
		outputs[i] = b.NextWire()
		b.XOR(inputs[i], carry, outputs[i])
		newCarry := b.NextWire()
		b.AND(inputs[i], carry, newCarry)
		carry = newCarry
	}
	return outputs
}

// NewSubtractor emits a subtracter over the two halves of the
// inputs: first minus second via two's complement.
func NewSubtractor(b *circuit.Builder, inputs []circuit.Wire) (
	[]circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return nil, fmt.Errorf("invalid subtracter width %d", len(inputs))
	}
	split := len(inputs) / 2

	neg := NewInc(b, NewNot(b, inputs[split:]))
	tmp := make([]circuit.Wire, len(inputs))
	copy(tmp, inputs[:split])
	copy(tmp[split:], neg)

	outputs, _, err := NewAdder(b, tmp)
	return outputs, err
}

// NewShl shifts the inputs left by one, filling with the fixed zero
// wire.
func NewShl(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	outputs := make([]circuit.Wire, len(inputs))
	outputs[0] = b.WireZero()
	copy(outputs[1:], inputs[:len(inputs)-1])
	return outputs
}

// NewShr shifts the inputs right by one, filling with the fixed zero
// wire.
func NewShr(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	outputs := make([]circuit.Wire, len(inputs))
	outputs[len(inputs)-1] = b.WireZero()
	copy(outputs, inputs[1:])
	return outputs
}

// NewMultiplier emits a shift-and-add multiplier over the two halves
// of the inputs. The result is twice the operand width.
func NewMultiplier(b *circuit.Builder, inputs []circuit.Wire) (
	[]circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return nil, fmt.Errorf("invalid multiplier width %d", len(inputs))
	}
	n := len(inputs) / 2
	x := inputs[:n]
	y := inputs[n:]

	// Partial products, shifted into place with fixed zeros.
	rows := make([][]circuit.Wire, n)
	for i := 0; i < n; i++ {
		row := make([]circuit.Wire, 2*n)
		for j := 0; j < i; j++ {
			row[j] = b.WireZero()
		}
		for j := i; j < i+n; j++ {
			wire := b.NextWire()
			b.AND(x[j-i], y[i], wire)
			row[j] = wire
		}
		for j := i + n; j < 2*n; j++ {
			row[j] = b.WireZero()
		}
		rows[i] = row
	}

	acc := rows[0]
	tmp := make([]circuit.Wire, 4*n)
	for i := 1; i < n; i++ {
		copy(tmp, acc)
		copy(tmp[2*n:], rows[i])
		sum, _, err := NewAdder(b, tmp)
		if err != nil {
			return nil, err
		}
		acc = sum
	}
	return acc, nil
}
