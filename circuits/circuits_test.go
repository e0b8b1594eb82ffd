//
// circuits_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"testing"

	"github.com/markkurossi/garble/block"
	"github.com/markkurossi/garble/circuit"
)

func testPRG(t *testing.T, hi, lo uint64) *block.PRG {
	t.Helper()
	seed := block.New(hi, lo)
	prg, err := block.NewPRG(&seed)
	if err != nil {
		t.Fatalf("NewPRG: %s", err)
	}
	return prg
}

// evalCircuit garbles the circuit and evaluates it on the input bits.
func evalCircuit(t *testing.T, c *circuit.Circuit, inputs []bool) []bool {
	t.Helper()

	outputs, err := c.Garble(testPRG(t, 42, 7), nil)
	if err != nil {
		t.Fatalf("Garble: %s", err)
	}
	extracted, err := circuit.ExtractLabels(c.Wires[:c.N], inputs)
	if err != nil {
		t.Fatalf("ExtractLabels: %s", err)
	}
	observed, err := c.Eval(extracted)
	if err != nil {
		t.Fatalf("Eval: %s", err)
	}
	bits, err := circuit.MapOutputs(outputs, observed)
	if err != nil {
		t.Fatalf("MapOutputs: %s", err)
	}
	return bits
}

// intToBits returns the n-bit little-endian representation of v.
func intToBits(v, n int) []bool {
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = v&(1<<i) != 0
	}
	return bits
}

func bitsToInt(bits []bool) int {
	var v int
	for i, bit := range bits {
		if bit {
			v |= 1 << i
		}
	}
	return v
}

func operands(x, y, n int) []bool {
	return append(intToBits(x, n), intToBits(y, n)...)
}

func TestAdder4(t *testing.T) {
	for _, typ := range []circuit.Type{circuit.Standard,
		circuit.HalfGates} {
		for _, test := range []struct {
			x, y  int
			sum   int
			carry bool
		}{
			{5, 11, 0, true},
			{3, 4, 7, false},
			{15, 15, 14, true},
			{0, 0, 0, false},
		} {
			c := circuit.New(8, 5, typ)
			b := circuit.NewBuilder(c)

			sum, carry, err := NewAdder(b, circuit.InitWires(8))
			if err != nil {
				t.Fatalf("NewAdder: %s", err)
			}
			if err := b.Finish(append(sum, carry)); err != nil {
				t.Fatalf("Finish: %s", err)
			}

			bits := evalCircuit(t, c, operands(test.x, test.y, 4))
			if got := bitsToInt(bits[:4]); got != test.sum {
				t.Errorf("%s: %d+%d = %d, expected %d",
					typ, test.x, test.y, got, test.sum)
			}
			if bits[4] != test.carry {
				t.Errorf("%s: %d+%d carry = %v, expected %v",
					typ, test.x, test.y, bits[4], test.carry)
			}
		}
	}
}

func TestSubtractor4(t *testing.T) {
	for _, test := range []struct {
		x, y, diff int
	}{
		{11, 5, 6},
		{5, 11, 10}, // mod 16
		{7, 7, 0},
		{0, 1, 15},
	} {
		c := circuit.New(8, 4, circuit.HalfGates)
		b := circuit.NewBuilder(c)

		diff, err := NewSubtractor(b, circuit.InitWires(8))
		if err != nil {
			t.Fatalf("NewSubtractor: %s", err)
		}
		if err := b.Finish(diff); err != nil {
			t.Fatalf("Finish: %s", err)
		}

		bits := evalCircuit(t, c, operands(test.x, test.y, 4))
		if got := bitsToInt(bits); got != test.diff {
			t.Errorf("%d-%d = %d, expected %d", test.x, test.y, got,
				test.diff)
		}
	}
}

func TestMultiplier4(t *testing.T) {
	for _, test := range []struct {
		x, y int
	}{
		{3, 5},
		{7, 9},
		{15, 15},
		{0, 13},
	} {
		c := circuit.New(8, 8, circuit.HalfGates)
		b := circuit.NewBuilder(c)

		prod, err := NewMultiplier(b, circuit.InitWires(8))
		if err != nil {
			t.Fatalf("NewMultiplier: %s", err)
		}
		if err := b.Finish(prod); err != nil {
			t.Fatalf("Finish: %s", err)
		}

		bits := evalCircuit(t, c, operands(test.x, test.y, 4))
		if got := bitsToInt(bits); got != test.x*test.y {
			t.Errorf("%d*%d = %d, expected %d", test.x, test.y, got,
				test.x*test.y)
		}
	}
}

func TestInc4(t *testing.T) {
	for x := 0; x < 16; x++ {
		c := circuit.New(4, 4, circuit.HalfGates)
		b := circuit.NewBuilder(c)

		out := NewInc(b, circuit.InitWires(4))
		if err := b.Finish(out); err != nil {
			t.Fatalf("Finish: %s", err)
		}
		bits := evalCircuit(t, c, intToBits(x, 4))
		if got := bitsToInt(bits); got != (x+1)%16 {
			t.Errorf("%d+1 = %d, expected %d", x, got, (x+1)%16)
		}
	}
}

func buildComparator(t *testing.T,
	f func(*circuit.Builder, []circuit.Wire) (circuit.Wire,
		error)) *circuit.Circuit {
	t.Helper()

	c := circuit.New(8, 1, circuit.HalfGates)
	b := circuit.NewBuilder(c)
	out, err := f(b, circuit.InitWires(8))
	if err != nil {
		t.Fatalf("comparator: %s", err)
	}
	if err := b.Finish([]circuit.Wire{out}); err != nil {
		t.Fatalf("Finish: %s", err)
	}
	return c
}

func TestLes(t *testing.T) {
	// The result is 1 iff the second operand is less than the first.
	for _, test := range []struct {
		x, y   int
		expect bool
	}{
		{3, 5, false},
		{5, 3, true},
		{7, 7, false},
		{0, 15, false},
		{15, 0, true},
	} {
		c := buildComparator(t, NewLes)
		bits := evalCircuit(t, c, operands(test.x, test.y, 4))
		if bits[0] != test.expect {
			t.Errorf("les(%d,%d) = %v, expected %v",
				test.x, test.y, bits[0], test.expect)
		}
	}
}

func TestComparatorFamily(t *testing.T) {
	for x := 0; x < 16; x += 3 {
		for y := 0; y < 16; y += 3 {
			inputs := operands(x, y, 4)

			les := evalCircuit(t, buildComparator(t, NewLes), inputs)
			if les[0] != (y < x) {
				t.Errorf("les(%d,%d) = %v", x, y, les[0])
			}
			gre := evalCircuit(t, buildComparator(t, NewGre), inputs)
			if gre[0] != (y > x) {
				t.Errorf("gre(%d,%d) = %v", x, y, gre[0])
			}
			leq := evalCircuit(t, buildComparator(t, NewLeq), inputs)
			if leq[0] != (y <= x) {
				t.Errorf("leq(%d,%d) = %v", x, y, leq[0])
			}
			geq := evalCircuit(t, buildComparator(t, NewGeq), inputs)
			if geq[0] != (y >= x) {
				t.Errorf("geq(%d,%d) = %v", x, y, geq[0])
			}
			equ := evalCircuit(t, buildComparator(t, NewEqu), inputs)
			if equ[0] != (x == y) {
				t.Errorf("equ(%d,%d) = %v", x, y, equ[0])
			}
		}
	}
}

func TestLesWide(t *testing.T) {
	// Widths beyond the historical 22-bit ceiling.
	width := 32
	c := circuit.New(2*width, 1, circuit.HalfGates)
	b := circuit.NewBuilder(c)
	out, err := NewLes(b, circuit.InitWires(2*width))
	if err != nil {
		t.Fatalf("NewLes: %s", err)
	}
	if err := b.Finish([]circuit.Wire{out}); err != nil {
		t.Fatalf("Finish: %s", err)
	}
	inputs := append(intToBits(70000, width), intToBits(69999, width)...)
	bits := evalCircuit(t, c, inputs)
	if !bits[0] {
		t.Errorf("les(70000,69999) = %v", bits[0])
	}
}

func TestMin4(t *testing.T) {
	for _, test := range []struct {
		x, y int
	}{
		{3, 5},
		{5, 3},
		{7, 7},
		{0, 15},
	} {
		c := circuit.New(8, 4, circuit.HalfGates)
		b := circuit.NewBuilder(c)
		out, err := NewMin(b, circuit.InitWires(8))
		if err != nil {
			t.Fatalf("NewMin: %s", err)
		}
		if err := b.Finish(out); err != nil {
			t.Fatalf("Finish: %s", err)
		}
		bits := evalCircuit(t, c, operands(test.x, test.y, 4))
		expect := test.x
		if test.y < test.x {
			expect = test.y
		}
		if got := bitsToInt(bits); got != expect {
			t.Errorf("min(%d,%d) = %d, expected %d",
				test.x, test.y, got, expect)
		}
	}
}

func TestMux21(t *testing.T) {
	for combo := 0; combo < 8; combo++ {
		c := circuit.New(3, 1, circuit.HalfGates)
		b := circuit.NewBuilder(c)
		out, err := NewMux21(b, 0, 1, 2)
		if err != nil {
			t.Fatalf("NewMux21: %s", err)
		}
		if err := b.Finish([]circuit.Wire{out}); err != nil {
			t.Fatalf("Finish: %s", err)
		}
		sw := combo&1 != 0
		in0 := combo&2 != 0
		in1 := combo&4 != 0
		bits := evalCircuit(t, c, []bool{sw, in0, in1})
		expect := in0
		if sw {
			expect = in1
		}
		if bits[0] != expect {
			t.Errorf("mux(%v,%v,%v) = %v", sw, in0, in1, bits[0])
		}
	}
}

func TestShifts(t *testing.T) {
	for _, x := range []int{0, 1, 9, 15} {
		c := circuit.New(4, 8, circuit.HalfGates)
		b := circuit.NewBuilder(c)
		shl := NewShl(b, circuit.InitWires(4))
		shr := NewShr(b, circuit.InitWires(4))
		if err := b.Finish(append(shl, shr...)); err != nil {
			t.Fatalf("Finish: %s", err)
		}
		bits := evalCircuit(t, c, intToBits(x, 4))
		if got := bitsToInt(bits[:4]); got != (x<<1)&0xf {
			t.Errorf("shl(%d) = %d", x, got)
		}
		if got := bitsToInt(bits[4:]); got != x>>1 {
			t.Errorf("shr(%d) = %d", x, got)
		}
	}
}

func TestVectorGates(t *testing.T) {
	for v := 0; v < 16; v++ {
		c := circuit.New(4, 4, circuit.Standard)
		b := circuit.NewBuilder(c)
		and, _ := NewAnd(b, circuit.InitWires(4))
		or, _ := NewOr(b, circuit.InitWires(4))
		xor := NewXor(b, circuit.InitWires(4))
		not := NewNot(b, circuit.InitWires(4))
		if err := b.Finish([]circuit.Wire{and, or, xor[0],
			not[0]}); err != nil {
			t.Fatalf("Finish: %s", err)
		}

		bits := evalCircuit(t, c, intToBits(v, 4))
		if bits[0] != (v == 15) {
			t.Errorf("and(%04b) = %v", v, bits[0])
		}
		if bits[1] != (v != 0) {
			t.Errorf("or(%04b) = %v", v, bits[1])
		}
		if bits[2] != ((v&1 != 0) != (v&4 != 0)) {
			t.Errorf("xor(%04b) = %v", v, bits[2])
		}
		if bits[3] != (v&1 == 0) {
			t.Errorf("not(%04b) = %v", v, bits[3])
		}
	}
}

func TestMixed(t *testing.T) {
	for v := 0; v < 16; v++ {
		c := circuit.New(4, 1, circuit.Standard)
		b := circuit.NewBuilder(c)
		out := NewMixed(b, circuit.InitWires(4))
		if err := b.Finish([]circuit.Wire{out}); err != nil {
			t.Fatalf("Finish: %s", err)
		}

		in := intToBits(v, 4)
		expect := ((in[0] != in[1]) && in[2]) || in[3]

		bits := evalCircuit(t, c, in)
		if bits[0] != expect {
			t.Errorf("mixed(%04b) = %v, expected %v", v, bits[0], expect)
		}
	}
}

func TestGadgetErrors(t *testing.T) {
	c := circuit.New(4, 1, circuit.HalfGates)
	b := circuit.NewBuilder(c)

	if _, err := NewAnd(b, circuit.InitWires(1)); err == nil {
		t.Errorf("expected error for 1-input AND")
	}
	if _, err := NewLes(b, circuit.InitWires(3)); err == nil {
		t.Errorf("expected error for odd comparator width")
	}
	if _, _, err := NewAdder(b, circuit.InitWires(3)); err == nil {
		t.Errorf("expected error for odd adder width")
	}
	if _, err := NewMultiXor(b, 3, circuit.InitWires(4)); err == nil {
		t.Errorf("expected error for indivisible multi-XOR")
	}
}
