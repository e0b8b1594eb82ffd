//
// circuits.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package circuits implements gadgets for emitting boolean circuits:
// vector gates, a multiplexer, arithmetic, comparators, and the
// GF(2^8) tower the AES S-box is built from. All gadgets allocate
// wires from the builder and return the wires carrying their results.
package circuits

import (
	"fmt"

	"github.com/markkurossi/garble/circuit"
)

// NewAnd folds AND across the inputs.
func NewAnd(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	if len(inputs) < 2 {
		return 0, fmt.Errorf("AND needs at least 2 inputs, got %d",
			len(inputs))
	}
	out := b.NextWire()
	b.AND(inputs[0], inputs[1], out)
	for i := 2; i < len(inputs); i++ {
		wire := b.NextWire()
		b.AND(inputs[i], out, wire)
		out = wire
	}
	return out, nil
}

// NewOr folds OR across the inputs.
func NewOr(b *circuit.Builder, inputs []circuit.Wire) (
	circuit.Wire, error) {

	if len(inputs) < 2 {
		return 0, fmt.Errorf("OR needs at least 2 inputs, got %d",
			len(inputs))
	}
	out := b.NextWire()
	b.OR(inputs[0], inputs[1], out)
	for i := 2; i < len(inputs); i++ {
		wire := b.NextWire()
		b.OR(inputs[i], out, wire)
		out = wire
	}
	return out, nil
}

// NewXor xors the two halves of the inputs pairwise.
func NewXor(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	split := len(inputs) / 2
	outputs := make([]circuit.Wire, split)
	for i := 0; i < split; i++ {
		wire := b.NextWire()
		b.XOR(inputs[i], inputs[split+i], wire)
		outputs[i] = wire
	}
	return outputs
}

// NewNot inverts every input.
func NewNot(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	outputs := make([]circuit.Wire, len(inputs))
	for i, in := range inputs {
		outputs[i] = b.NextWire()
		b.NOT(in, outputs[i])
	}
	return outputs
}

// NewMux21 selects input0 when the switch is 0 and input1 when it is
// 1.
func NewMux21(b *circuit.Builder, sw, input0, input1 circuit.Wire) (
	circuit.Wire, error) {

	notSw := b.NextWire()
	b.NOT(sw, notSw)
	and0 := b.NextWire()
	b.AND(notSw, input0, and0)
	and1 := b.NextWire()
	b.AND(sw, input1, and1)
	out := b.NextWire()
	b.OR(and0, and1, out)
	return out, nil
}

// NewMixed chains XOR, AND, and OR gates across the inputs. It
// exists for exercising all gate kernels with one circuit.
func NewMixed(b *circuit.Builder, inputs []circuit.Wire) circuit.Wire {
	out := inputs[0]
	for i := 0; i < len(inputs)-1; i++ {
		wire := b.NextWire()
		switch i % 3 {
		case 0:
			b.XOR(inputs[i+1], out, wire)
		case 1:
			b.AND(inputs[i+1], out, wire)
		case 2:
			b.OR(inputs[i+1], out, wire)
		}
		out = wire
	}
	return out
}

// NewMultiXor xors d groups of inputs together. The input count must
// be a multiple of d; the result has n/d wires.
func NewMultiXor(b *circuit.Builder, d int, inputs []circuit.Wire) (
	[]circuit.Wire, error) {

	if d < 2 || len(inputs)%d != 0 {
		return nil, fmt.Errorf("multi-XOR over %d inputs in %d groups",
			len(inputs), d)
	}
	div := len(inputs) / d
	outputs := make([]circuit.Wire, div)
	copy(outputs, inputs[:div])

	tmp := make([]circuit.Wire, 2*div)
	for i := 1; i < d; i++ {
		copy(tmp, outputs)
		copy(tmp[div:], inputs[div*i:div*(i+1)])
		outputs = NewXor(b, tmp)
	}
	return outputs, nil
}
