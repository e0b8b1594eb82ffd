//
// compare.go
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

// The comparator family takes two little-endian operands X and Y as
// the low and high halves of the inputs and describes the second
// operand relative to the first: NewLes is [Y < X], NewGre is
// [Y > X], NewLeq is [Y <= X], and NewGeq is [Y >= X].

// NewLes emits a comparator that outputs 1 iff the second operand is
// less than the first.
func NewLes(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return 0, fmt.Errorf("invalid comparator width %d", len(inputs))
	}
	split := len(inputs) / 2

	// For each bit position, collect "Y bit is 0, X bit is 1" and
	// propagate "bits equal" down to the less significant positions.
	andInputs := make([][]circuit.Wire, split-1)
	for i := range andInputs {
		andInputs[i] = make([]circuit.Wire, split-i)
	}
	finalOr := make([]circuit.Wire, split)

	for i := 0; i < split; i++ {
		y := inputs[split+i]
		x := inputs[i]

		notY := b.NextWire()
		b.NOT(y, notY)
		notX := b.NextWire()
		b.NOT(x, notX)

		yLess := b.NextWire()
		b.AND(notY, x, yLess)
		xLess := b.NextWire()
		b.AND(y, notX, xLess)

		if i != split-1 {
			andInputs[i][0] = yLess
		}

		differ := b.NextWire()
		b.OR(yLess, xLess, differ)
		equal := b.NextWire()
		b.NOT(differ, equal)

		for j := 0; j < i; j++ {
			andInputs[j][i-j] = equal
		}
		if i == split-1 {
			finalOr[split-1] = yLess
		}
	}

	for i := 0; i < split-1; i++ {
		wire, err := NewAnd(b, andInputs[i])
		if err != nil {
			return 0, err
		}
		finalOr[i] = wire
	}

	if split == 1 {
		return finalOr[0], nil
	}
	return NewOr(b, finalOr)
}

// NewGre emits a comparator that outputs 1 iff the second operand is
// greater than the first.
func NewGre(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return 0, fmt.Errorf("invalid comparator width %d", len(inputs))
	}
	split := len(inputs) / 2
	swapped := make([]circuit.Wire, len(inputs))
	copy(swapped, inputs[split:])
	copy(swapped[split:], inputs[:split])
	return NewLes(b, swapped)
}

// NewLeq emits a comparator that outputs 1 iff the second operand is
// less than or equal to the first.
func NewLeq(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	gre, err := NewGre(b, inputs)
	if err != nil {
		return 0, err
	}
	out := b.NextWire()
	b.NOT(gre, out)
	return out, nil
}

// NewGeq emits a comparator that outputs 1 iff the second operand is
// greater than or equal to the first.
func NewGeq(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	les, err := NewLes(b, inputs)
	if err != nil {
		return 0, err
	}
	out := b.NextWire()
	b.NOT(les, out)
	return out, nil
}

// NewEqu emits an equality test over the two halves of the inputs.
func NewEqu(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	if len(inputs) < 2 || len(inputs)%2 != 0 {
		return 0, fmt.Errorf("invalid comparator width %d", len(inputs))
	}
	diffs := NewXor(b, inputs)

	any := diffs[0]
	for i := 1; i < len(diffs); i++ {
		wire := b.NextWire()
		b.OR(any, diffs[i], wire)
		any = wire
	}
	out := b.NextWire()
	b.NOT(any, out)
	return out, nil
}

// NewMin emits a circuit selecting the smaller of the two operands.
func NewMin(b *circuit.Builder, inputs []circuit.Wire) (
	[]circuit.Wire, error) {

	les, err := NewLes(b, inputs)
	if err != nil {
		return nil, err
	}
	split := len(inputs) / 2
	outputs := make([]circuit.Wire, split)
	for i := 0; i < split; i++ {
		wire, err := NewMux21(b, les, inputs[i], inputs[split+i])
		if err != nil {
			return nil, err
		}
		outputs[i] = wire
	}
	return outputs, nil
}
