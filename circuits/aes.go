//
// aes.go
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

// AES-128 circuit components, modeled after the AES circuits of the
// MPC system of Huang, Evans, Katz, and Malka. State bytes follow the
// cipher input order; bits within a byte are little-endian, wire 8i+j
// carrying bit j of byte i.

// Basis-change matrices between the AES polynomial basis and the
// composite-field basis of the GF(2^8) inverter. X2S1 folds the
// S-box affine transform into the way back.
var (
	a2x1 = [8]int{0x98, 0xF3, 0xF2, 0x48, 0x09, 0x81, 0xA9, 0xFF}
	x2s1 = [8]int{0x58, 0x2D, 0x9E, 0x0B, 0xDC, 0x04, 0x03, 0x24}
)

// encoder emits the linear transform enc over the 8 input bits, input
// bit i selecting row enc[7-i]. Output bit j starts from the fixed
// wire given by bit j of constant.
func encoder(b *circuit.Builder, inputs []circuit.Wire, enc [8]int,
	constant int) []circuit.Wire {

	wires := make([]circuit.Wire, 8)
	for i := range wires {
		if constant&(1<<i) != 0 {
			wires[i] = b.WireOne()
		} else {
			wires[i] = b.WireZero()
		}
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if enc[7-i]&(1<<j) != 0 {
				wire := b.NextWire()
				b.XOR(wires[j], inputs[i], wire)
				wires[j] = wire
			}
		}
	}
	return wires
}

// AddRoundKey xors the 128-bit state with a 128-bit round key.
func AddRoundKey(b *circuit.Builder, state, key []circuit.Wire) (
	[]circuit.Wire, error) {

	if len(state) != 128 || len(key) != 128 {
		return nil, fmt.Errorf("invalid round key width %d/%d",
			len(state), len(key))
	}
	inputs := make([]circuit.Wire, 256)
	copy(inputs, state)
	copy(inputs[128:], key)
	return NewXor(b, inputs), nil
}

// SubBytes emits the AES S-box over one state byte: basis change into
// the composite field, GF(2^8) inversion, and the combined basis
// change back plus affine transform.
func SubBytes(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	tmp := encoder(b, inputs, a2x1, 0)
	inv := NewGF256Inv(b, tmp)
	return encoder(b, inv, x2s1, 0x63)
}

// ShiftRows permutes the state bytes. No gates are emitted.
func ShiftRows(inputs []circuit.Wire) []circuit.Wire {
	shift := [16]int{0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12, 1, 6, 11}

	outputs := make([]circuit.Wire, 128)
	for i := 0; i < 16; i++ {
		copy(outputs[8*i:8*i+8], inputs[8*shift[i]:8*shift[i]+8])
	}
	return outputs
}

// xtime multiplies a state byte by x in GF(2^8). Only rewiring and
// three XORs with the modular reduction bits.
func xtime(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	outputs := make([]circuit.Wire, 8)

	outputs[0] = inputs[7]
	outputs[2] = inputs[1]
	outputs[5] = inputs[4]
	outputs[6] = inputs[5]
	outputs[7] = inputs[6]

	w := b.NextWire()
	b.XOR(inputs[7], inputs[0], w)
	outputs[1] = w

	w = b.NextWire()
	b.XOR(inputs[7], inputs[2], w)
	outputs[3] = w

	w = b.NextWire()
	b.XOR(inputs[7], inputs[3], w)
	outputs[4] = w

	return outputs
}

// MixColumns mixes one 32-bit state column.
func MixColumns(b *circuit.Builder, inputs []circuit.Wire) (
	[]circuit.Wire, error) {

	if len(inputs) != 32 {
		return nil, fmt.Errorf("invalid column width %d", len(inputs))
	}

	var mul [4][]circuit.Wire
	for i := 0; i < 4; i++ {
		mul[i] = xtime(b, inputs[8*i:8*i+8])
	}

	outputs := make([]circuit.Wire, 32)
	for i := 0; i < 4; i++ {
		// out_i = 2*b_i + 3*b_{i+1} + b_{i+2} + b_{i+3}
		tmp := make([]circuit.Wire, 0, 40)
		tmp = append(tmp, mul[i]...)
		tmp = append(tmp, mul[(i+1)%4]...)
		tmp = append(tmp, inputs[8*((i+1)%4):8*((i+1)%4)+8]...)
		tmp = append(tmp, inputs[8*((i+2)%4):8*((i+2)%4)+8]...)
		tmp = append(tmp, inputs[8*((i+3)%4):8*((i+3)%4)+8]...)

		col, err := NewMultiXor(b, 5, tmp)
		if err != nil {
			return nil, err
		}
		copy(outputs[8*i:], col)
	}
	return outputs, nil
}

// NewAES128 builds the complete AES-128 circuit: 128 plaintext bits
// followed by the 11 expanded round keys as inputs, the 128
// ciphertext bits as outputs.
func NewAES128(typ circuit.Type) (*circuit.Circuit, error) {
	c := circuit.New(128*12, 128, typ)
	b := circuit.NewBuilder(c)

	inputs := circuit.InitWires(128 * 12)
	state := inputs[:128]
	key := func(round int) []circuit.Wire {
		return inputs[128*(round+1) : 128*(round+2)]
	}

	state, err := AddRoundKey(b, state, key(0))
	if err != nil {
		return nil, err
	}
	for round := 1; round <= 10; round++ {
		sub := make([]circuit.Wire, 128)
		for i := 0; i < 16; i++ {
			copy(sub[8*i:], SubBytes(b, state[8*i:8*i+8]))
		}
		state = ShiftRows(sub)

		if round < 10 {
			mixed := make([]circuit.Wire, 128)
			for i := 0; i < 4; i++ {
				col, err := MixColumns(b, state[32*i:32*i+32])
				if err != nil {
					return nil, err
				}
				copy(mixed[32*i:], col)
			}
			state = mixed
		}
		state, err = AddRoundKey(b, state, key(round))
		if err != nil {
			return nil, err
		}
	}
	if err := b.Finish(state); err != nil {
		return nil, err
	}
	return c, nil
}
