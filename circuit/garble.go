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

// garbleGate is the per-gate garbling kernel of a scheme. The gate id
// feeds the tweaks; slot is the gate's position among the non-XOR
// gates and selects the ciphertext table entries.
type garbleGate func(c *Circuit, g *Gate, id, slot int, delta block.Block,
	alg cipher.Block)

func (c *Circuit) garbleGate() (garbleGate, error) {
	switch c.Type {
	case Standard:
		return garbleStandard, nil
	case HalfGates:
		return garbleHalfGates, nil
	case PrivacyFree:
		return garblePrivacyFree, nil
	default:
		return nil, fmt.Errorf("invalid circuit type %s", c.Type)
	}
}

// Garble garbles the circuit: it fills Wires, Table, OutputPerms,
// FixedLabel, and GlobalKey, and returns the output wire label pairs.
// If inputLabels is non-nil it must hold one label pair per input
// wire, all with a common free-XOR offset whose least significant bit
// is one; otherwise fresh input labels are drawn from the stream.
func (c *Circuit) Garble(prg *block.PRG, inputLabels []block.Pair) (
	[]block.Pair, error) {

	if c == nil || prg == nil {
		return nil, fmt.Errorf("garble: nil argument")
	}
	if c.NumWires < c.N+2 {
		return nil, fmt.Errorf("garble: circuit not finished")
	}
	kernel, err := c.garbleGate()
	if err != nil {
		return nil, err
	}

	if c.Wires == nil {
		c.Wires = make([]block.Pair, c.NumWires)
	}
	if c.Table == nil {
		c.Table = make([]block.Block, c.TableSize())
	}
	if c.OutputPerms == nil {
		c.OutputPerms = make([]bool, c.M)
	}

	var delta block.Block
	if inputLabels != nil {
		if len(inputLabels) != c.N {
			return nil, fmt.Errorf(
				"garble: invalid amount of input labels, got %d, expected %d",
				len(inputLabels), c.N)
		}
		copy(c.Wires, inputLabels)
		delta = c.Wires[0].L0
		delta.Xor(c.Wires[0].L1)
	} else {
		delta = CreateDelta(prg)
		for i := 0; i < c.N; i++ {
			l0 := prg.Block()
			if c.Type == PrivacyFree {
				l0.SetLsb(false)
			}
			l1 := l0
			l1.Xor(delta)
			c.Wires[i] = block.Pair{
				L0: l0,
				L1: l1,
			}
		}
	}

	// The fixed wires: wire N carries the constant 0, wire N+1 the
	// constant 1. The evaluator reconstructs the active labels from
	// FixedLabel alone by forcing the least significant bit.
	c.FixedLabel = prg.Block()

	zero0 := c.FixedLabel
	zero0.SetLsb(false)
	zero1 := zero0
	zero1.Xor(delta)
	c.Wires[c.N] = block.Pair{
		L0: zero0,
		L1: zero1,
	}

	one1 := c.FixedLabel
	one1.SetLsb(true)
	one0 := one1
	one0.Xor(delta)
	c.Wires[c.N+1] = block.Pair{
		L0: one0,
		L1: one1,
	}

	c.GlobalKey = prg.Block()

	var buf block.Data
	alg, err := aes.NewCipher(c.GlobalKey.Bytes(&buf))
	if err != nil {
		return nil, err
	}

	var slot int
	for i := range c.Gates {
		g := &c.Gates[i]
		switch g.Op {
		case AND, OR, XOR, NOT:
		default:
			return nil, fmt.Errorf("invalid gate type %s", g.Op)
		}
		kernel(c, g, i, slot, delta, alg)
		if g.Op != XOR {
			slot++
		}
	}

	outputs := make([]block.Pair, c.M)
	for i, o := range c.Outputs {
		outputs[i] = c.Wires[o.ID()]
		c.OutputPerms[i] = c.Wires[o.ID()].L0.Lsb()
	}
	return outputs, nil
}

// garbleStandard implements the GRR3 + free XOR garbling transform: a
// three-entry table per non-XOR gate, the all-zero row omitted.
func garbleStandard(c *Circuit, g *Gate, id, slot int, delta block.Block,
	alg cipher.Block) {

	a := c.Wires[g.Input0.ID()]
	b := c.Wires[g.Input1.ID()]

	if g.Op == XOR {
		l0 := a.L0
		l0.Xor(b.L0)
		l1 := l0
		l1.Xor(delta)
		c.Wires[g.Output.ID()] = block.Pair{
			L0: l0,
			L1: l1,
		}
		return
	}

	tweak := block.New(uint64(id), 0)

	pa := a.L0.Lsb()
	pb := b.L0.Lsb()

	// The asymmetric doubling domain-separates the gate inputs.
	a0 := a.L0
	a0.Double()
	a1 := a.L1
	a1.Double()
	b0 := b.L0
	b0.Double()
	b0.Double()
	b1 := b.L1
	b1.Double()
	b1.Double()

	var keys [4]block.Block
	keys[0] = a0
	keys[0].Xor(b0)
	keys[1] = a0
	keys[1].Xor(b1)
	keys[2] = a1
	keys[2].Xor(b0)
	keys[3] = a1
	keys[3].Xor(b1)
	for i := range keys {
		keys[i].Xor(tweak)
	}

	masks := keys
	block.EncryptECB(alg, keys[:])
	for i := range masks {
		masks[i].Xor(keys[i])
	}

	var la, lb int
	if pa {
		la = 1
	}
	if pb {
		lb = 1
	}

	newToken := masks[2*la+lb]
	newToken2 := delta
	newToken2.Xor(newToken)

	var label0, label1 block.Block
	var blocks [4]block.Block

	switch g.Op {
	case AND:
		if pa && pb {
			label0, label1 = newToken2, newToken
		} else {
			label0, label1 = newToken, newToken2
		}
		blocks[0] = label0
		blocks[1] = label0
		blocks[2] = label0
		blocks[3] = label1

	case OR:
		if pa || pb {
			label0, label1 = newToken2, newToken
		} else {
			label0, label1 = newToken, newToken2
		}
		blocks[0] = label0
		blocks[1] = label1
		blocks[2] = label1
		blocks[3] = label1

	case NOT:
		if !pa {
			label0, label1 = newToken2, newToken
		} else {
			label0, label1 = newToken, newToken2
		}
		blocks[0] = label1
		blocks[1] = label0
		blocks[2] = label1
		blocks[3] = label0
	}

	// The row at (pa,pb) decrypts to zero and is not stored.
	table := c.Table[3*slot:]
	rows := [4]int{
		2*la + lb,
		2*la + (1 - lb),
		2*(1-la) + lb,
		2*(1-la) + (1 - lb),
	}
	for i, row := range rows {
		if row != 0 {
			entry := blocks[i]
			entry.Xor(masks[i])
			table[row-1] = entry
		}
	}

	c.Wires[g.Output.ID()] = block.Pair{
		L0: label0,
		L1: label1,
	}
}

// garbleHalfGates implements the two-ciphertext half-gates transform.
// XOR and NOT gates are free.
func garbleHalfGates(c *Circuit, g *Gate, id, slot int, delta block.Block,
	alg cipher.Block) {

	a := c.Wires[g.Input0.ID()]
	b := c.Wires[g.Input1.ID()]

	switch g.Op {
	case XOR:
		l0 := a.L0
		l0.Xor(b.L0)
		l1 := l0
		l1.Xor(delta)
		c.Wires[g.Output.ID()] = block.Pair{
			L0: l0,
			L1: l1,
		}
		return

	case NOT:
		l0 := a.L0
		l0.Xor(delta)
		l1 := l0
		l1.Xor(delta)
		c.Wires[g.Output.ID()] = block.Pair{
			L0: l0,
			L1: l1,
		}
		return
	}

	pa := a.L0.Lsb()
	pb := b.L0.Lsb()

	ha0, ha1, hb0, hb1 := hash4(a.L0, a.L1, b.L0, b.L1,
		tweak1(id), tweak2(id), alg)

	table := c.Table[2*slot:]

	var w0 block.Block

	switch g.Op {
	case AND:
		// Generator half gate.
		table[0] = ha0
		table[0].Xor(ha1)
		if pb {
			table[0].Xor(delta)
		}
		w0 = ha0
		if pa {
			w0.Xor(table[0])
		}

		// Evaluator half gate.
		tmp := hb0
		tmp.Xor(hb1)
		table[1] = tmp
		table[1].Xor(a.L0)
		w0.Xor(hb0)
		if pb {
			w0.Xor(tmp)
		}

	case OR:
		table[0] = ha0
		table[0].Xor(ha1)
		if !pb {
			table[0].Xor(delta)
		}
		if pa {
			w0 = ha1
		} else {
			w0 = ha0
		}
		if pa || pb {
			w0.Xor(delta)
		}

		table[1] = hb0
		table[1].Xor(hb1)
		table[1].Xor(a.L1)
		if pb {
			w0.Xor(hb1)
		} else {
			w0.Xor(hb0)
		}
	}

	w1 := w0
	w1.Xor(delta)
	c.Wires[g.Output.ID()] = block.Pair{
		L0: w0,
		L1: w1,
	}
}

// garblePrivacyFree implements the one-ciphertext privacy-free
// transform. Every wire's 0-label has a clear and 1-label a set least
// significant bit; the hashes restore the invariant the doubling
// destroys. A NOT gate only swaps the label pair; circuits meant for
// privacy-free garbling should express inversion as XOR with the
// fixed-1 wire so the label-bit invariant holds on every path.
func garblePrivacyFree(c *Circuit, g *Gate, id, slot int, delta block.Block,
	alg cipher.Block) {

	a := c.Wires[g.Input0.ID()]
	b := c.Wires[g.Input1.ID()]

	switch g.Op {
	case XOR:
		l0 := a.L0
		l0.Xor(b.L0)
		l1 := l0
		l1.Xor(delta)
		c.Wires[g.Output.ID()] = block.Pair{
			L0: l0,
			L1: l1,
		}
		return

	case NOT:
		c.Wires[g.Output.ID()] = block.Pair{
			L0: a.L1,
			L1: a.L0,
		}
		return
	}

	ha0, ha1 := hash2(a.L0, a.L1, tweak1(id), tweak1(id), alg)
	ha0.SetLsb(false)
	ha1.SetLsb(true)

	tmp := ha0
	tmp.Xor(ha1)

	table := c.Table[slot:]

	var out block.Pair
	switch g.Op {
	case AND:
		tmp.Xor(b.L0)
		table[0] = tmp
		out.L0 = ha0
		out.L1 = ha0
		out.L1.Xor(delta)

	case OR:
		tmp.Xor(b.L1)
		table[0] = tmp
		out.L1 = ha1
		out.L0 = ha1
		out.L0.Xor(delta)
	}
	c.Wires[g.Output.ID()] = out
}
