//
// labels.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/garble/block"
)

// CreateDelta returns a fresh free-XOR offset: a random block with
// the least significant bit set so label pairs always differ in their
// permutation bit.
func CreateDelta(prg *block.PRG) block.Block {
	delta := prg.Block()
	delta.SetLsb(true)
	return delta
}

// CreateInputLabels creates n input label pairs with a common
// free-XOR offset. If delta is nil a fresh offset is created. With
// privacyFree the 0-labels get a clear least significant bit, as the
// privacy-free scheme requires of every wire.
func CreateInputLabels(prg *block.PRG, n int, delta *block.Block,
	privacyFree bool) []block.Pair {

	var d block.Block
	if delta != nil {
		d = *delta
	} else {
		d = CreateDelta(prg)
	}

	labels := make([]block.Pair, n)
	for i := range labels {
		l0 := prg.Block()
		if privacyFree {
			l0.SetLsb(false)
		}
		l1 := l0
		l1.Xor(d)
		labels[i] = block.Pair{
			L0: l0,
			L1: l1,
		}
	}
	return labels
}

// ExtractLabels selects the active label of every pair according to
// the input bits.
func ExtractLabels(labels []block.Pair, bits []bool) ([]block.Block, error) {
	if len(labels) != len(bits) {
		return nil, fmt.Errorf(
			"extract: got %d labels for %d bits", len(labels), len(bits))
	}
	extracted := make([]block.Block, len(labels))
	for i, pair := range labels {
		if bits[i] {
			extracted[i] = pair.L1
		} else {
			extracted[i] = pair.L0
		}
	}
	return extracted, nil
}

// MapOutputs resolves observed output labels back into bits by
// comparing them against the label pairs the garbler produced.
func MapOutputs(labels []block.Pair, outputs []block.Block) ([]bool, error) {
	if len(labels) != len(outputs) {
		return nil, fmt.Errorf(
			"map outputs: got %d labels for %d pairs",
			len(outputs), len(labels))
	}
	bits := make([]bool, len(outputs))
	for i, o := range outputs {
		switch {
		case o.Equal(labels[i].L0):
			bits[i] = false
		case o.Equal(labels[i].L1):
			bits[i] = true
		default:
			return nil, fmt.Errorf("unknown label %s for output %d: %w",
				o, i, ErrVerify)
		}
	}
	return bits, nil
}
