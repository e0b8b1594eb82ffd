//
// hash.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/markkurossi/garble/block"
)

// ErrVerify is returned when a verification check fails: a table
// digest mismatch or an output label that is not in its encoding
// pair.
var ErrVerify = fmt.Errorf("verification failed")

// Hash returns the SHA-1 digest over the ciphertext table bytes. The
// digest is a fingerprint only; protocol-level verification is the
// caller's concern.
func (c *Circuit) Hash() []byte {
	var buf block.Data

	h := sha1.New()
	for _, entry := range c.Table {
		h.Write(entry.Bytes(&buf))
	}
	return h.Sum(nil)
}

// Check recomputes the table digest and compares it byte-for-byte
// against the argument digest.
func (c *Circuit) Check(digest []byte) error {
	if !bytes.Equal(c.Hash(), digest) {
		return fmt.Errorf("table digest mismatch: %w", ErrVerify)
	}
	return nil
}
