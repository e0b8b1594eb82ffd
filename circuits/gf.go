//
// gf.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"github.com/markkurossi/garble/circuit"
)

// The GF(2^8) inverter works in the composite field GF(((2^2)^2)^2):
// a byte is two GF(16) nibbles, a nibble two GF(4) bit pairs. The
// wire layout is little-endian throughout: index 0 is the least
// significant bit of the low half.

// gf4Mul multiplies two GF(4) elements (inputs 0..1 and 2..3).
func gf4Mul(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	hi0 := inputs[1]
	lo0 := inputs[0]
	hi1 := inputs[3]
	lo1 := inputs[2]

	t1 := b.NextWire()
	b.XOR(hi0, lo0, t1)
	t2 := b.NextWire()
	b.XOR(hi1, lo1, t2)
	e := b.NextWire()
	b.AND(t1, t2, e)

	t3 := b.NextWire()
	b.AND(hi0, hi1, t3)
	p := b.NextWire()
	b.XOR(t3, e, p)

	t4 := b.NextWire()
	b.AND(lo0, lo1, t4)
	q := b.NextWire()
	b.XOR(t4, e, q)

	return []circuit.Wire{q, p}
}

// gf4Sq squares a GF(4) element. Squaring is a bit swap; no gates.
func gf4Sq(inputs []circuit.Wire) []circuit.Wire {
	return []circuit.Wire{inputs[1], inputs[0]}
}

// gf4Scln multiplies a GF(4) element by the normal element N.
func gf4Scln(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	out := b.NextWire()
	b.XOR(inputs[0], inputs[1], out)
	return []circuit.Wire{out, inputs[0]}
}

// gf4Scln2 multiplies a GF(4) element by N^2.
func gf4Scln2(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	out := b.NextWire()
	b.XOR(inputs[0], inputs[1], out)
	return []circuit.Wire{inputs[1], out}
}

// gf16Mul multiplies two GF(16) elements (inputs 0..3 and 4..7).
func gf16Mul(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	ab := []circuit.Wire{inputs[2], inputs[3], inputs[0], inputs[1]}
	cd := []circuit.Wire{inputs[6], inputs[7], inputs[4], inputs[5]}

	x := NewXor(b, ab)
	y := NewXor(b, cd)
	e := gf4Mul(b, []circuit.Wire{x[0], x[1], y[0], y[1]})
	em := gf4Scln(b, e)

	ac := []circuit.Wire{ab[0], ab[1], cd[0], cd[1]}
	bd := []circuit.Wire{ab[2], ab[3], cd[2], cd[3]}

	t1 := gf4Mul(b, ac)
	t2 := gf4Mul(b, bd)

	p := NewXor(b, []circuit.Wire{t1[0], t1[1], em[0], em[1]})
	q := NewXor(b, []circuit.Wire{t2[0], t2[1], em[0], em[1]})

	return []circuit.Wire{q[0], q[1], p[0], p[1]}
}

// gf16SqScln squares a GF(16) element and scales it by the norm.
func gf16SqScln(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	hi := inputs[2:4]
	lo := inputs[0:2]

	x := NewXor(b, []circuit.Wire{hi[0], hi[1], lo[0], lo[1]})
	p := gf4Sq(x)
	q := gf4Scln2(b, gf4Sq(lo))

	return []circuit.Wire{q[0], q[1], p[0], p[1]}
}

// gf16Inv inverts a GF(16) element.
func gf16Inv(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	hi := inputs[2:4]
	lo := inputs[0:2]
	ab := []circuit.Wire{hi[0], hi[1], lo[0], lo[1]}

	x := NewXor(b, ab)
	xs := gf4Sq(x)
	c := gf4Scln(b, xs)
	d := gf4Mul(b, ab)

	y := NewXor(b, []circuit.Wire{c[0], c[1], d[0], d[1]})
	e := gf4Sq(y)

	p := gf4Mul(b, []circuit.Wire{e[0], e[1], lo[0], lo[1]})
	q := gf4Mul(b, []circuit.Wire{e[0], e[1], hi[0], hi[1]})

	return []circuit.Wire{q[0], q[1], p[0], p[1]}
}

// NewGF256Inv emits a GF(2^8) inverter over 8 input bits in the
// composite-field basis.
func NewGF256Inv(b *circuit.Builder, inputs []circuit.Wire) []circuit.Wire {
	x := NewXor(b, inputs)

	cd := make([]circuit.Wire, 8)
	copy(cd, gf16SqScln(b, x))
	copy(cd[4:], gf16Mul(b, inputs))

	y := NewXor(b, cd)
	e := gf16Inv(b, y)

	eb := make([]circuit.Wire, 8)
	copy(eb, e)
	copy(eb[4:], inputs[4:8])
	p := gf16Mul(b, eb)

	ea := make([]circuit.Wire, 8)
	copy(ea, e)
	copy(ea[4:], inputs[0:4])
	q := gf16Mul(b, ea)

	outputs := make([]circuit.Wire, 8)
	copy(outputs, p)
	copy(outputs[4:], q)
	return outputs
}
