//
// prg.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package block

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// PRG implements the counter-mode AES label stream. Seeding with the
// same block reproduces the same stream of blocks, which garbling
// relies on for reproducible tests. A PRG is not safe for concurrent
// use; garbling contexts hold their own instance.
type PRG struct {
	seed    Block
	alg     cipher.Block
	counter uint64
}

// NewPRG creates a new label stream. If seed is nil, the seed is
// drawn from the cryptographic random source; an entropy failure is
// returned as an error.
func NewPRG(seed *Block) (*PRG, error) {
	var s Block

	if seed != nil {
		s = *seed
	} else {
		var buf Data
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("prg: unable to seed securely: %w", err)
		}
		s.SetData(&buf)
	}

	var buf Data
	s.GetData(&buf)
	alg, err := aes.NewCipher(buf[:])
	if err != nil {
		return nil, err
	}
	return &PRG{
		seed: s,
		alg:  alg,
	}, nil
}

// Seed returns the seed the stream was created with.
func (p *PRG) Seed() Block {
	return p.seed
}

// Block returns the next block of the stream: AES(counter++) under
// the seed key, the counter in the low half of the plaintext block.
func (p *PRG) Block() Block {
	var buf Data

	b := Block{
		Lo: p.counter,
	}
	p.counter++

	b.GetData(&buf)
	p.alg.Encrypt(buf[:], buf[:])
	b.SetData(&buf)

	return b
}
