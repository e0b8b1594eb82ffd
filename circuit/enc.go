//
// enc.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/cipher"

	"github.com/markkurossi/garble/block"
)

// The garbling hash is fixed-key AES in a Davies-Meyer construction:
// H(x, t) = AES_K(k) ^ k where k = double(x) ^ t. The per-gate tweaks
// make every AES call in a garbling unique.

func tweak1(id int) block.Block {
	return block.New(uint64(2*id), 0)
}

func tweak2(id int) block.Block {
	return block.New(uint64(2*id)+1, 0)
}

// hash1 hashes a single block.
func hash1(x, tweak block.Block, alg cipher.Block) block.Block {
	var buf block.Data

	k := x
	k.Double()
	k.Xor(tweak)

	k.GetData(&buf)
	alg.Encrypt(buf[:], buf[:])

	var h block.Block
	h.SetData(&buf)
	h.Xor(k)

	return h
}

// hash2 hashes two blocks with one two-block ECB call.
func hash2(x, y, tweakX, tweakY block.Block, alg cipher.Block) (
	block.Block, block.Block) {

	var keys [2]block.Block

	keys[0] = x
	keys[0].Double()
	keys[0].Xor(tweakX)

	keys[1] = y
	keys[1].Double()
	keys[1].Xor(tweakY)

	masks := keys
	block.EncryptECB(alg, keys[:])

	keys[0].Xor(masks[0])
	keys[1].Xor(masks[1])

	return keys[0], keys[1]
}

// hash4 hashes both labels of two wires with one four-block ECB call,
// the a-labels under tweakA and the b-labels under tweakB.
func hash4(a0, a1, b0, b1, tweakA, tweakB block.Block, alg cipher.Block) (
	block.Block, block.Block, block.Block, block.Block) {

	var keys [4]block.Block

	keys[0] = a0
	keys[1] = a1
	keys[2] = b0
	keys[3] = b1

	for i := range keys {
		keys[i].Double()
	}
	keys[0].Xor(tweakA)
	keys[1].Xor(tweakA)
	keys[2].Xor(tweakB)
	keys[3].Xor(tweakB)

	masks := keys
	block.EncryptECB(alg, keys[:])

	for i := range keys {
		keys[i].Xor(masks[i])
	}

	return keys[0], keys[1], keys[2], keys[3]
}
