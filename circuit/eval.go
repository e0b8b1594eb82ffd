//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/markkurossi/garble/block"
)

// evalGate is the per-gate evaluation kernel of a scheme. It must
// walk the same tweak and table-slot schedule as the garbling kernel.
type evalGate func(c *Circuit, g *Gate, id, slot int, labels []block.Block,
	alg cipher.Block)

func (c *Circuit) evalGate() (evalGate, error) {
	switch c.Type {
	case Standard:
		return evalStandard, nil
	case HalfGates:
		return evalHalfGates, nil
	case PrivacyFree:
		return evalPrivacyFree, nil
	default:
		return nil, fmt.Errorf("invalid circuit type %s", c.Type)
	}
}

// Eval evaluates the garbled circuit on one label per input wire and
// returns one label per output wire.
func (c *Circuit) Eval(inputs []block.Block) ([]block.Block, error) {
	if c == nil {
		return nil, fmt.Errorf("eval: nil circuit")
	}
	if len(inputs) != c.N {
		return nil, fmt.Errorf(
			"eval: invalid amount of inputs, got %d, expected %d",
			len(inputs), c.N)
	}
	if c.NumWires < c.N+2 {
		return nil, fmt.Errorf("eval: circuit not finished")
	}
	kernel, err := c.evalGate()
	if err != nil {
		return nil, err
	}

	var buf block.Data
	alg, err := aes.NewCipher(c.GlobalKey.Bytes(&buf))
	if err != nil {
		return nil, err
	}

	labels := make([]block.Block, c.NumWires)
	copy(labels, inputs)

	// Fixed-constant wires.
	fixed := c.FixedLabel
	fixed.SetLsb(false)
	labels[c.N] = fixed
	fixed.SetLsb(true)
	labels[c.N+1] = fixed

	var slot int
	for i := range c.Gates {
		g := &c.Gates[i]
		switch g.Op {
		case AND, OR, XOR, NOT:
		default:
			return nil, fmt.Errorf("invalid gate type %s", g.Op)
		}
		kernel(c, g, i, slot, labels, alg)
		if g.Op != XOR {
			slot++
		}
	}

	outputs := make([]block.Block, c.M)
	for i, o := range c.Outputs {
		outputs[i] = labels[o.ID()]
	}
	return outputs, nil
}

// Decode maps output labels to plaintext bits with the output
// permutation bits recorded at garbling time.
func (c *Circuit) Decode(outputs []block.Block) ([]bool, error) {
	if len(outputs) != c.M {
		return nil, fmt.Errorf(
			"decode: invalid amount of outputs, got %d, expected %d",
			len(outputs), c.M)
	}
	if c.OutputPerms == nil {
		return nil, fmt.Errorf("decode: circuit not garbled")
	}
	bits := make([]bool, c.M)
	for i, o := range outputs {
		bits[i] = o.Lsb() != c.OutputPerms[i]
	}
	return bits, nil
}

func evalStandard(c *Circuit, g *Gate, id, slot int, labels []block.Block,
	alg cipher.Block) {

	a := labels[g.Input0.ID()]
	b := labels[g.Input1.ID()]

	if g.Op == XOR {
		a.Xor(b)
		labels[g.Output.ID()] = a
		return
	}

	var sa, sb int
	if a.Lsb() {
		sa = 1
	}
	if b.Lsb() {
		sb = 1
	}

	da := a
	da.Double()
	db := b
	db.Double()
	db.Double()

	val := da
	val.Xor(db)
	val.Xor(block.New(uint64(id), 0))

	tmp := val
	if sa+sb != 0 {
		tmp = c.Table[3*slot+2*sa+sb-1]
		tmp.Xor(val)
	}

	var buf block.Data
	val.GetData(&buf)
	alg.Encrypt(buf[:], buf[:])
	val.SetData(&buf)

	val.Xor(tmp)
	labels[g.Output.ID()] = val
}

func evalHalfGates(c *Circuit, g *Gate, id, slot int, labels []block.Block,
	alg cipher.Block) {

	a := labels[g.Input0.ID()]
	b := labels[g.Input1.ID()]

	switch g.Op {
	case XOR:
		a.Xor(b)
		labels[g.Output.ID()] = a
		return

	case NOT:
		// The garbler's label pair is offset by delta; the held
		// label is already the output label.
		labels[g.Output.ID()] = a
		return
	}

	sa := a.Lsb()
	sb := b.Lsb()

	ha, hb := hash2(a, b, tweak1(id), tweak2(id), alg)

	w := ha
	w.Xor(hb)
	if sa {
		w.Xor(c.Table[2*slot])
	}
	if sb {
		w.Xor(c.Table[2*slot+1])
		w.Xor(labels[g.Input0.ID()])
	}
	labels[g.Output.ID()] = w
}

func evalPrivacyFree(c *Circuit, g *Gate, id, slot int, labels []block.Block,
	alg cipher.Block) {

	a := labels[g.Input0.ID()]
	b := labels[g.Input1.ID()]

	switch g.Op {
	case XOR:
		a.Xor(b)
		labels[g.Output.ID()] = a
		return

	case NOT:
		labels[g.Output.ID()] = a
		return
	}

	sa := a.Lsb()

	ha := hash1(a, tweak1(id), alg)
	if sa {
		ha.SetLsb(true)
		ha.Xor(c.Table[slot])
		ha.Xor(b)
	} else {
		ha.SetLsb(false)
	}
	labels[g.Output.ID()] = ha
}
