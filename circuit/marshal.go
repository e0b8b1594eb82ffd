//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/markkurossi/garble/block"
)

// The buffer layout is little-endian and packed:
//
//	n | m | q | r | nxors (uint32) | type (byte)
//	table | fixed_label | global_key (16-byte blocks)
//	output_perms (byte each)
//	[ gates (op byte, input0, input1, output uint32)
//	  [ wires (2r blocks) ]
//	  outputs (uint32 each) ]
//
// The bracketed group is omitted with tableOnly; wires are omitted
// unless requested.

const headerSize = 5*4 + 1

// Size returns the serialized size of the circuit in bytes.
func (c *Circuit) Size(tableOnly, wires bool) int {
	size := headerSize
	size += c.TableSize() * 16
	size += 16 + 16
	size += c.M
	if !tableOnly {
		size += c.Q() * 13
		if wires {
			size += 2 * c.NumWires * 16
		}
		size += c.M * 4
	}
	return size
}

// ToBuffer serializes the garbled circuit.
func (c *Circuit) ToBuffer(tableOnly, wires bool) []byte {
	buf := make([]byte, c.Size(tableOnly, wires))
	var data block.Data
	var p int

	put32 := func(v int) {
		binary.LittleEndian.PutUint32(buf[p:], uint32(v))
		p += 4
	}
	putBlock := func(b block.Block) {
		copy(buf[p:], b.Bytes(&data))
		p += 16
	}

	put32(c.N)
	put32(c.M)
	put32(c.Q())
	put32(c.NumWires)
	put32(c.NumXor)
	buf[p] = byte(c.Type)
	p++

	for _, entry := range c.Table {
		putBlock(entry)
	}
	putBlock(c.FixedLabel)
	putBlock(c.GlobalKey)

	for _, perm := range c.OutputPerms {
		if perm {
			buf[p] = 1
		}
		p++
	}

	if tableOnly {
		return buf
	}

	for _, g := range c.Gates {
		buf[p] = byte(g.Op)
		p++
		put32(g.Input0.ID())
		put32(g.Input1.ID())
		put32(g.Output.ID())
	}
	if wires {
		for _, pair := range c.Wires {
			putBlock(pair.L0)
			putBlock(pair.L1)
		}
	}
	for _, o := range c.Outputs {
		put32(o.ID())
	}
	return buf
}

// FromBuffer deserializes a circuit into c. With tableOnly the
// circuit must already contain the gate list the buffer was created
// from; only the garbling data is restored.
func (c *Circuit) FromBuffer(buf []byte, tableOnly, wires bool) error {
	if len(buf) < headerSize {
		return fmt.Errorf("from buffer: truncated header")
	}
	var p int
	get32 := func() int {
		v := binary.LittleEndian.Uint32(buf[p:])
		p += 4
		return int(v)
	}

	n := get32()
	m := get32()
	q := get32()
	r := get32()
	nxors := get32()
	typ := Type(buf[p])
	p++

	switch typ {
	case Standard, HalfGates, PrivacyFree:
	default:
		return fmt.Errorf("from buffer: invalid circuit type %d", typ)
	}
	if tableOnly {
		if c.Gates == nil {
			return fmt.Errorf("from buffer: table-only load needs gates")
		}
		if q != c.Q() || nxors != c.NumXor || n != c.N || m != c.M ||
			r != c.NumWires || typ != c.Type {
			return fmt.Errorf("from buffer: circuit mismatch")
		}
	}
	c.N = n
	c.M = m
	c.NumWires = r
	c.NumXor = nxors
	c.Type = typ

	tableSize := (q - nxors) * typ.EntriesPerGate()
	need := tableSize*16 + 32 + m
	if !tableOnly {
		need += q * 13
		if wires {
			need += 2 * r * 16
		}
		need += m * 4
	}
	if len(buf) < headerSize+need {
		return fmt.Errorf("from buffer: truncated data")
	}

	getBlock := func() block.Block {
		var b block.Block
		b.SetBytes(buf[p:])
		p += 16
		return b
	}

	c.Table = make([]block.Block, tableSize)
	for i := range c.Table {
		c.Table[i] = getBlock()
	}
	c.FixedLabel = getBlock()
	c.GlobalKey = getBlock()

	c.OutputPerms = make([]bool, m)
	for i := range c.OutputPerms {
		c.OutputPerms[i] = buf[p] != 0
		p++
	}

	if tableOnly {
		return nil
	}

	c.Gates = make([]Gate, q)
	for i := range c.Gates {
		op := Op(buf[p])
		p++
		c.Gates[i] = Gate{
			Op:     op,
			Input0: Wire(get32()),
			Input1: Wire(get32()),
			Output: Wire(get32()),
		}
	}
	if wires {
		c.Wires = make([]block.Pair, r)
		for i := range c.Wires {
			l0 := getBlock()
			l1 := getBlock()
			c.Wires[i] = block.Pair{
				L0: l0,
				L1: l1,
			}
		}
	} else {
		c.Wires = nil
	}
	c.Outputs = make([]Wire, m)
	for i := range c.Outputs {
		c.Outputs[i] = Wire(get32())
	}
	return nil
}

// Save writes the serialized circuit to the writer.
func (c *Circuit) Save(w io.Writer, tableOnly, wires bool) error {
	buf := c.ToBuffer(tableOnly, wires)
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("save: short write: %d < %d", n, len(buf))
	}
	return nil
}

// Load reads a serialized circuit from the reader into c.
func (c *Circuit) Load(r io.Reader, tableOnly, wires bool) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return c.FromBuffer(buf, tableOnly, wires)
}
